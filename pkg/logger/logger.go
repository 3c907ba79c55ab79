package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gobasera/pkg/config"
)

// New создает логгер, который пишет и в stdout, и в файл журнала доступа.
func New(cfg config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.Log.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			return nil, fmt.Errorf("неверный log.level: %w", err)
		}
	}
	if cfg.Log.Encoding != "" {
		zapCfg.Encoding = cfg.Log.Encoding
	}

	zapCfg.OutputPaths = []string{"stdout"}
	if file := strings.TrimSpace(cfg.Log.AccessFile); file != "" {
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, file)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("ошибка создания логгера: %w", err)
	}
	return logger, nil
}
