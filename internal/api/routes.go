package api

import (
	"net/http"

	"github.com/jtgreer/vigil/internal/config"
	"github.com/jtgreer/vigil/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Analyses.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)
}
