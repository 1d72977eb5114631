package analyses

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jtgreer/vigil/internal/classifier"
	"github.com/jtgreer/vigil/internal/triage"
	"github.com/jtgreer/vigil/pkg/pagination"
	"github.com/jtgreer/vigil/pkg/query"
	"github.com/jtgreer/vigil/pkg/repository"
	"github.com/jtgreer/vigil/pkg/storage"
)

// batchWorkers bounds concurrent classifier calls during batch analysis.
const batchWorkers = 4

type repo struct {
	db         *sql.DB
	storage    storage.System
	classifier classifier.Classifier
	logger     *slog.Logger
	pagination pagination.Config
	basePath   string
}

// New creates an analysis repository implementing the System interface.
// basePath is the mounted API prefix used to build image URLs.
func New(
	db *sql.DB,
	store storage.System,
	cls classifier.Classifier,
	logger *slog.Logger,
	pagination pagination.Config,
	basePath string,
) System {
	return &repo{
		db:         db,
		storage:    store,
		classifier: cls,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
		basePath:   basePath,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) Analyze(ctx context.Context, cmd AnalyzeCommand) (*Analysis, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	raw, degraded := r.classify(ctx, cmd)
	doc := resolveDocument(raw, degraded)

	return r.record(ctx, cmd, doc, raw, degraded)
}

func (r *repo) AnalyzeBatch(ctx context.Context, cmds []AnalyzeCommand) []BatchResult {
	results := make([]BatchResult, len(cmds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)

	for i, cmd := range cmds {
		g.Go(func() error {
			results[i].Filename = cmd.Filename

			a, err := r.Analyze(ctx, cmd)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}

			results[i].Analysis = a
			return nil
		})
	}

	g.Wait()
	return results
}

func (r *repo) History(ctx context.Context) ([]Analysis, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	records, err := repository.QueryMany(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	for i := range records {
		records[i].ImageURL = r.imageURL(records[i].ID)
	}
	return records, nil
}

func (r *repo) Search(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	for i := range records {
		records[i].ImageURL = r.imageURL(records[i].ID)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	a.ImageURL = r.imageURL(a.ID)
	return &a, nil
}

func (r *repo) Image(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}

	rc, err := r.storage.Download(ctx, a.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("download image %s: %w", a.StorageKey, err)
	}

	return rc, a.ContentType, nil
}

// resolveDocument normalizes the raw classifier response. A degraded result
// keeps the safe default; a response without a usable label gets one derived
// from its own features.
func resolveDocument(raw map[string]any, degraded bool) triage.Document {
	doc := triage.Normalize(raw)
	if !degraded && doc.Label == triage.LabelUncertain {
		doc = triage.Derive(doc)
	}
	return doc
}

// classify runs the external call; any failure flips the degraded flag
// instead of propagating, so the upload is still recorded.
func (r *repo) classify(ctx context.Context, cmd AnalyzeCommand) (map[string]any, bool) {
	raw, err := r.classifier.Classify(ctx, cmd.Data, cmd.ContentType)
	if err != nil {
		r.logger.Warn("classification failed, recording degraded result",
			"filename", cmd.Filename,
			"error", err,
		)
		return nil, true
	}
	return raw, false
}

func (r *repo) record(
	ctx context.Context,
	cmd AnalyzeCommand,
	doc triage.Document,
	raw map[string]any,
	degraded bool,
) (*Analysis, error) {
	id := uuid.New()
	key := buildStorageKey(id, cmd.ContentType)

	clsJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode classification: %w", err)
	}

	var rawJSON []byte
	if raw != nil {
		if rawJSON, err = json.Marshal(raw); err != nil {
			return nil, fmt.Errorf("encode raw response: %w", err)
		}
	}

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload image blob: %w", err)
	}

	q := `
		INSERT INTO analyses(id, filename, content_type, size_bytes, storage_key, label, degraded, classification, raw_response)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, seq, filename, content_type, size_bytes, storage_key, label, degraded, classification, raw_response, created_at`

	insertArgs := []any{
		id,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		key,
		doc.Label,
		degraded,
		clsJSON,
		rawJSON,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanAnalysis)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	a.ImageURL = r.imageURL(a.ID)

	r.logger.Info("analysis recorded",
		"id", a.ID,
		"label", a.Label,
		"degraded", a.Degraded,
	)
	return &a, nil
}

func (r *repo) imageURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/history/image/%s", r.basePath, id)
}

func buildStorageKey(id uuid.UUID, contentType string) string {
	ext := "bin"
	switch contentType {
	case "image/jpeg":
		ext = "jpg"
	case "image/png":
		ext = "png"
	case "image/webp":
		ext = "webp"
	}
	return fmt.Sprintf("images/%s.%s", id, ext)
}
