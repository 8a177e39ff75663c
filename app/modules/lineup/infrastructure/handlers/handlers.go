package lineuphandlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	lineupservice "github.com/Black-And-White-Club/dugout/app/modules/lineup/application"
	"github.com/Black-And-White-Club/dugout/app/modules/lineup/application/parsers"
	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
	"go.opentelemetry.io/otel/trace"
)

// ErrorPrefix is put in front of every error shown to a user.
const ErrorPrefix = lineupservice.ErrorPrefix

// UploadField is the multipart field carrying a stats file.
const UploadField = "file"

var errNoUpload = errors.New("no file uploaded")

// LineupHandlers implements the Handlers interface.
type LineupHandlers struct {
	service        lineupservice.Service
	layouts        []parsers.FieldLayout
	maxUploadBytes int64
	logger         *slog.Logger
	tracer         trace.Tracer
}

// NewLineupHandlers creates a new LineupHandlers instance. layouts drives the
// flat-field form and must match the service's field parser.
func NewLineupHandlers(
	service lineupservice.Service,
	layouts []parsers.FieldLayout,
	maxUploadBytes int64,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &LineupHandlers{
		service:        service,
		layouts:        layouts,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
		tracer:         tracer,
	}
}

// HandleHealth reports liveness.
func (h *LineupHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

// userMessage turns a failure or an infrastructure error into the one string
// shown to the user.
func userMessage(failure *lineuptypes.Failure, err error) string {
	switch {
	case err != nil:
		return ErrorPrefix + err.Error()
	case failure != nil:
		return ErrorPrefix + failure.Message
	}
	return ""
}

// textsFromForm reads the four pasted blocks out of a parsed form.
func textsFromForm(r *http.Request) map[lineuptypes.Role]string {
	texts := make(map[lineuptypes.Role]string, len(lineuptypes.Roles))
	for _, role := range lineuptypes.Roles {
		texts[role] = r.FormValue(role.String())
	}
	return texts
}

// fieldsFromForm flattens a parsed form into single values.
func fieldsFromForm(r *http.Request) map[string]string {
	fields := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields
}

// readUpload parses a multipart request and returns the uploaded file.
func (h *LineupHandlers) readUpload(r *http.Request) (string, []byte, error) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	file, header, err := r.FormFile(UploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, errNoUpload
		}
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > h.maxUploadBytes {
		return "", nil, fmt.Errorf("upload exceeds %d bytes", h.maxUploadBytes)
	}
	return header.Filename, data, nil
}
