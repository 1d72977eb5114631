package analyses

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jtgreer/vigil/pkg/handlers"
	"github.com/jtgreer/vigil/pkg/pagination"
	"github.com/jtgreer/vigil/pkg/routes"
)

// Handler provides HTTP endpoints for analysis operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, pagination config, and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "analyses"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/analyze", Handler: h.Analyze},
			{Method: "POST", Pattern: "/analyze/batch", Handler: h.AnalyzeBatch},
		},
		Children: []routes.Group{
			{
				Prefix: "/history",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.History},
					{Method: "GET", Pattern: "/{id}", Handler: h.Find},
					{Method: "GET", Pattern: "/image/{id}", Handler: h.Image},
					{Method: "POST", Pattern: "/search", Handler: h.Search},
				},
			},
		},
	}
}

// Analyze processes a multipart upload with an "image" field, classifies the
// photo, and returns the recorded analysis.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	cmd, err := h.readImage(r, "image")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	a, err := h.sys.Analyze(r.Context(), *cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// AnalyzeBatch processes a multipart upload with one or more "images" fields
// and returns a result per image in upload order.
func (h *Handler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrImageTooLarge)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidImage)
		return
	}

	cmds := make([]AnalyzeCommand, 0, len(files))
	for _, header := range files {
		cmd, err := readFileHeader(header)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		cmds = append(cmds, *cmd)
	}

	results := h.sys.AnalyzeBatch(r.Context(), cmds)
	handlers.RespondJSON(w, http.StatusOK, results)
}

// History returns every recorded analysis, most recent first, as a plain array.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.sys.History(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching analyses.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.Search(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single analysis by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	a, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Image streams the stored photo for an analysis.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	rc, contentType, err := h.sys.Image(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("image stream interrupted", "id", id, "error", err)
	}
}

func (h *Handler) readImage(r *http.Request, field string) (*AnalyzeCommand, error) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return nil, ErrImageTooLarge
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, ErrInvalidImage
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ErrInvalidImage
	}

	return &AnalyzeCommand{
		Data:        data,
		Filename:    header.Filename,
		ContentType: detectContentType(header.Header.Get("Content-Type"), data),
	}, nil
}

func readFileHeader(header *multipart.FileHeader) (*AnalyzeCommand, error) {
	file, err := header.Open()
	if err != nil {
		return nil, ErrInvalidImage
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ErrInvalidImage
	}

	return &AnalyzeCommand{
		Data:        data,
		Filename:    header.Filename,
		ContentType: detectContentType(header.Header.Get("Content-Type"), data),
	}, nil
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}
