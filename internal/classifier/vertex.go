package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/jtgreer/vigil/pkg/formatting"
	"github.com/jtgreer/vigil/pkg/lifecycle"
)

// vertex calls a Gemini model on Vertex AI. The client dials lazily, so it
// is constructed up front and closed through the lifecycle coordinator.
type vertex struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func newVertex(cfg *Config, logger *slog.Logger) (*vertex, error) {
	opts := []option.ClientOption{}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := genai.NewClient(context.Background(), cfg.ProjectID, cfg.Location, opts...)
	if err != nil {
		return nil, fmt.Errorf("vertex client init failed: %w", err)
	}

	return &vertex{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.TimeoutDuration(),
		logger:  logger.With("system", "classifier"),
	}, nil
}

func (v *vertex) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := v.client.Close(); err != nil {
			v.logger.Error("vertex client close error", "error", err)
		}
	})
	return nil
}

func (v *vertex) Classify(ctx context.Context, image []byte, contentType string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	model := v.client.GenerativeModel(v.model)
	model.GenerationConfig.ResponseMIMEType = "application/json"

	start := time.Now()
	resp, err := model.GenerateContent(ctx,
		genai.Text(Prompt),
		genai.ImageData(imageFormat(contentType), image),
	)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty model response")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}

	result, err := formatting.Parse[map[string]any](string(text))
	if err != nil {
		return nil, err
	}

	v.logger.Info("classification complete", "model", v.model, "duration", time.Since(start))
	return result, nil
}

// imageFormat converts a MIME type to the bare format genai.ImageData expects.
func imageFormat(contentType string) string {
	return strings.TrimPrefix(contentType, "image/")
}
