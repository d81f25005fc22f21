package config

import (
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/repositories"
)

// InitSessionStore opens the configured session backend.
func InitSessionStore(cfg *Config, log *zap.Logger) (repositories.SessionRepository, error) {
	switch cfg.Store.Backend {
	case StorePostgres:
		db, err := InitDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		return repositories.NewSessionRepository(db, cfg.Store.Retention), nil
	case StoreFile:
		repo, err := repositories.NewFileSessionRepository(cfg.Storage.SessionPath, cfg.Store.Retention)
		if err != nil {
			return nil, err
		}
		log.Info("session store ready", zap.String("backend", StoreFile), zap.String("path", cfg.Storage.SessionPath))
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
