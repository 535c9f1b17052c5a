package config

import (
	"github.com/oncall-dev/monitor-agent/internal/envconf"
	"github.com/oncall-dev/monitor-agent/internal/logger"
	"github.com/oncall-dev/monitor-agent/internal/repository"
)

type Config struct {
	// Logger for logging
	Logger *logger.Logger

	Repository *repository.Repository
}

func GetConfig(envConf *envconf.EnvDecoderConf, repo *repository.Repository) (*Config, error) {
	return &Config{
		Logger:     logger.NewConsole(envConf.Debug),
		Repository: repo,
	}, nil
}
