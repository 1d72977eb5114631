// Package analyses implements the site-photo analysis domain: accepting image
// uploads, running them through the external classifier, normalizing the
// result, and serving the append-only analysis history.
package analyses

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jtgreer/vigil/internal/triage"
)

// Analysis is one recorded triage of an uploaded site photo. Records are
// append-only; history is served most recent first.
type Analysis struct {
	ID             uuid.UUID       `json:"id"`
	Seq            int64           `json:"-"`
	Filename       string          `json:"filename"`
	ContentType    string          `json:"content_type"`
	SizeBytes      int64           `json:"size_bytes"`
	StorageKey     string          `json:"-"`
	ImageURL       string          `json:"image_url"`
	Label          triage.Label    `json:"label"`
	Degraded       bool            `json:"degraded"`
	Classification triage.Document `json:"classification"`
	// Raw is the classifier's response as returned, before normalization.
	// Null when the classifier call failed.
	Raw       json.RawMessage `json:"gemini"`
	Timestamp time.Time       `json:"timestamp"`
}

// AnalyzeCommand carries an uploaded image into the analysis pipeline.
type AnalyzeCommand struct {
	Data        []byte
	Filename    string
	ContentType string
}

// AllowedContentTypes enumerates the accepted image MIME types.
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Validate rejects empty uploads and unsupported content types.
func (c AnalyzeCommand) Validate() error {
	if len(c.Data) == 0 {
		return fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	if !AllowedContentTypes[c.ContentType] {
		return fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, c.ContentType)
	}
	return nil
}

// BatchResult pairs one batch entry's filename with its analysis or failure.
type BatchResult struct {
	Filename string    `json:"filename"`
	Analysis *Analysis `json:"analysis,omitempty"`
	Error    string    `json:"error,omitempty"`
}
