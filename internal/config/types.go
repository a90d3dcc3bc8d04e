package config

import (
	"fmt"
	"net"
	"strconv"
)

type Config struct {
	Port        int    // 监听端口
	LogLevel    string // 日志级别
	MetricsAddr string // Prometheus 导出地址，为空则不启动

	// 加载过程中的提示，日志器创建后再输出
	Warnings []string
}

// ListenAddr 监听所有网卡
func (c *Config) ListenAddr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

func (c *Config) String() string {
	metricsAddr := c.MetricsAddr
	if metricsAddr == "" {
		metricsAddr = "disabled"
	}
	return fmt.Sprintf("port=%d log_level=%s metrics_addr=%s", c.Port, c.LogLevel, metricsAddr)
}
