package api

import (
	"github.com/jtgreer/vigil/internal/config"
	"github.com/jtgreer/vigil/internal/infrastructure"
	"github.com/jtgreer/vigil/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	BasePath   string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:  infra.Lifecycle,
			Logger:     infra.Logger.With("module", "api"),
			Database:   infra.Database,
			Storage:    infra.Storage,
			Classifier: infra.Classifier,
		},
		Pagination: cfg.API.Pagination,
		BasePath:   cfg.API.BasePath,
	}
}
