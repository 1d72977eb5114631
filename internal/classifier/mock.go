package classifier

import (
	"context"
	"log/slog"

	"github.com/jtgreer/vigil/pkg/lifecycle"
)

// mock returns a fixed mildly-concerning response without calling any
// external service. Used for local development and integration testing.
type mock struct {
	logger *slog.Logger
}

func newMock(logger *slog.Logger) *mock {
	return &mock{logger: logger.With("system", "classifier")}
}

func (m *mock) Start(lc *lifecycle.Coordinator) error {
	m.logger.Warn("classifier running in mock mode")
	return nil
}

func (m *mock) Classify(ctx context.Context, image []byte, contentType string) (map[string]any, error) {
	return map[string]any{
		"classification": map[string]any{
			"label":              "yellow",
			"risk_score":         40.0,
			"explanation":        "Redness and mild swelling detected; caution advised.",
			"overall_confidence": 0.88,
			"features": map[string]any{
				"redness":  map[string]any{"present": true, "extent_percent": 30.0},
				"swelling": map[string]any{"present": true, "extent_percent": 15.0},
			},
		},
		"quality": map[string]any{
			"adequate_lighting": true,
			"focused":           true,
			"view_complete":     true,
			"notes":             "",
		},
	}, nil
}
