// Package classifier provides the external image classification collaborator.
// It defines the Classifier contract consumed by the analysis domain and two
// implementations: a Vertex AI Gemini client and a deterministic mock for
// credential-less development.
package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jtgreer/vigil/pkg/lifecycle"
)

// Classification modes selectable via configuration.
const (
	ModeVertex = "vertex"
	ModeMock   = "mock"
)

// Classifier sends image bytes to the external model and returns its parsed
// JSON response. Implementations must bound the call with the configured
// timeout; callers treat any error as the degraded path, never a hard failure.
type Classifier interface {
	// Start registers lifecycle hooks for the underlying client.
	Start(lc *lifecycle.Coordinator) error
	// Classify submits the image and returns the raw structured response.
	Classify(ctx context.Context, image []byte, contentType string) (map[string]any, error)
}

// New creates a Classifier for the configured mode.
func New(cfg *Config, logger *slog.Logger) (Classifier, error) {
	switch cfg.Mode {
	case ModeVertex:
		return newVertex(cfg, logger)
	case ModeMock:
		return newMock(logger), nil
	default:
		return nil, fmt.Errorf("unknown classifier mode: %q", cfg.Mode)
	}
}
