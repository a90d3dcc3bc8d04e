package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"counter-go/internal/constants"

	"github.com/joho/godotenv"
)

const (
	envPort        = "PORT"
	envLogLevel    = "LOG_LEVEL"
	envMetricsAddr = "METRICS_ADDR"
)

// Load 按 命令行参数 > 环境变量 > .env 文件 > 默认值 的顺序解析配置。
// args 不含程序名，只识别第一个位置参数作为端口。
func Load(args []string, envFiles ...string) (*Config, error) {
	fileEnv, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileEnv[key]
	}

	cfg := &Config{
		Port:        constants.DefaultPort,
		LogLevel:    strings.ToLower(strings.TrimSpace(lookup(envLogLevel))),
		MetricsAddr: strings.TrimSpace(lookup(envMetricsAddr)),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if v := lookup(envPort); v != "" {
		if port, ok := ParsePort(v); ok {
			cfg.Port = port
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring invalid %s %q", envPort, v))
		}
	}

	if len(args) > 0 {
		if port, ok := ParsePort(args[0]); ok {
			cfg.Port = port
		} else {
			// 参数无效时回到默认端口，不再使用环境变量中的值
			cfg.Port = constants.DefaultPort
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid port argument %q, using %d", args[0], constants.DefaultPort))
		}
	}

	return cfg, nil
}

// ParsePort 解析端口号，0 表示由系统分配
func ParsePort(s string) (int, bool) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 0 || port > 65535 {
		return 0, false
	}
	return port, true
}

// readEnvFiles 读取 .env 文件，文件不存在时跳过，不修改进程环境变量
func readEnvFiles(files []string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range values {
			// 先出现的文件优先
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	return merged, nil
}
