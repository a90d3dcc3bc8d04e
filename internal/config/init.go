package config

import (
	"counter-go/internal/logging"

	"go.uber.org/zap"
)

// DefaultEnvFile 工作目录下的 .env 文件
const DefaultEnvFile = ".env"

// Init 加载配置，按配置的日志级别创建日志器并输出加载结果
func Init(args []string) (*Config, *zap.Logger, error) {
	cfg, err := Load(args, DefaultEnvFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		cfg.Warnings = append(cfg.Warnings, err.Error()+", using info")
		cfg.LogLevel = "info"
		if logger, err = logging.New(cfg.LogLevel); err != nil {
			return nil, nil, err
		}
	}

	log := logger.Named("config")
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}
	log.Info("config loaded", zap.Stringer("config", cfg))
	return cfg, logger, nil
}
