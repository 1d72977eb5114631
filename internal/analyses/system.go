package analyses

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/jtgreer/vigil/pkg/pagination"
)

// System defines the public contract for analysis domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Analyze classifies and records a single uploaded image. Classifier
	// failure degrades the result; only validation or persistence failure
	// returns an error.
	Analyze(ctx context.Context, cmd AnalyzeCommand) (*Analysis, error)

	// AnalyzeBatch runs Analyze concurrently over the commands, returning
	// one result per command in input order.
	AnalyzeBatch(ctx context.Context, cmds []AnalyzeCommand) []BatchResult

	// History returns every recorded analysis, most recent first.
	History(ctx context.Context) ([]Analysis, error)

	Search(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, id uuid.UUID) (*Analysis, error)

	// Image streams the stored photo for an analysis along with its content type.
	Image(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)
}
