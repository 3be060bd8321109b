package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzible/internal/config"
)

// New builds the bot logger.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

// NewFile builds a logger writing to cfg.LogPath. The terminal UI owns
// stdout and stderr, so its logs go to a file instead.
func NewFile(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{cfg.LogPath}
	zc.ErrorOutputPaths = []string{cfg.LogPath}

	return zc.Build()
}
