package lineuphandlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	lineupservice "github.com/Black-And-White-Club/dugout/app/modules/lineup/application"
	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
)

const (
	contentTypeJSON = "application/json"
	contentTypePNG  = "image/png"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// LineupRequest is the JSON body accepted by the API routes: one pasted
// block per list.
type LineupRequest struct {
	MyHitters   string `json:"my_hitters"`
	MyPitchers  string `json:"my_pitchers"`
	OppHitters  string `json:"opp_hitters"`
	OppPitchers string `json:"opp_pitchers"`
}

func (req LineupRequest) texts() map[lineuptypes.Role]string {
	return map[lineuptypes.Role]string{
		lineuptypes.RoleMyHitters:   req.MyHitters,
		lineuptypes.RoleMyPitchers:  req.MyPitchers,
		lineuptypes.RoleOppHitters:  req.OppHitters,
		lineuptypes.RoleOppPitchers: req.OppPitchers,
	}
}

// LineupResponse is the JSON body returned by HandleAPILineup.
type LineupResponse struct {
	SelectionID string            `json:"selection_id,omitempty"`
	Lineup      []lineuptypes.Row `json:"lineup"`
	Rotation    []lineuptypes.Row `json:"rotation"`
	Error       string            `json:"error,omitempty"`
}

// requestError marks input the API could not even decode.
type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// selectFromRequest runs a selection from either a multipart upload or a JSON body.
func (h *LineupHandlers) selectFromRequest(ctx context.Context, r *http.Request) (lineupservice.SelectionResult, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		name, data, err := h.readUpload(r)
		if err != nil {
			return lineupservice.SelectionResult{}, &requestError{err: err}
		}
		return h.service.SelectFromFile(ctx, name, data)
	}

	var req LineupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return lineupservice.SelectionResult{}, &requestError{err: fmt.Errorf("invalid request body: %w", err)}
	}
	return h.service.SelectFromText(ctx, req.texts())
}

// HandleAPILineup returns the lineup and rotation as JSON.
func (h *LineupHandlers) HandleAPILineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LineupHandlers.HandleAPILineup")
	defer span.End()

	result, err := h.selectFromRequest(ctx, r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	if result.IsFailure() {
		writeJSON(w, http.StatusUnprocessableEntity, LineupResponse{
			SelectionID: result.Failure.ID.String(),
			Error:       userMessage(result.Failure, nil),
		})
		return
	}
	writeJSON(w, http.StatusOK, LineupResponse{
		SelectionID: result.Success.ID.String(),
		Lineup:      result.Success.Lineup,
		Rotation:    result.Success.Rotation,
	})
}

// HandleAPIChart returns the lineup scores as a PNG.
func (h *LineupHandlers) HandleAPIChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LineupHandlers.HandleAPIChart")
	defer span.End()

	h.serveArtifact(ctx, w, r, contentTypePNG, "lineup.png", h.service.RenderChart)
}

// HandleAPIExport returns the lineup and rotation as a workbook attachment.
func (h *LineupHandlers) HandleAPIExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LineupHandlers.HandleAPIExport")
	defer span.End()

	h.serveArtifact(ctx, w, r, contentTypeXLSX, "lineup.xlsx", h.service.ExportWorkbook)
}

func (h *LineupHandlers) serveArtifact(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	contentType, filename string,
	build func(context.Context, lineuptypes.Selection) ([]byte, error),
) {
	result, err := h.selectFromRequest(ctx, r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	if result.IsFailure() {
		writeJSON(w, http.StatusUnprocessableEntity, LineupResponse{
			SelectionID: result.Failure.ID.String(),
			Error:       userMessage(result.Failure, nil),
		})
		return
	}

	data, err := build(ctx, *result.Success)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if contentType == contentTypeXLSX {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeError maps undecodable input to 400 and anything else to 500.
func (h *LineupHandlers) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		h.logger.WarnContext(ctx, "Rejected lineup request", slog.Any("error", err))
		writeJSON(w, http.StatusBadRequest, LineupResponse{Error: userMessage(nil, err)})
		return
	}
	h.logger.ErrorContext(ctx, "Lineup request failed", slog.Any("error", err))
	writeJSON(w, http.StatusInternalServerError, LineupResponse{Error: userMessage(nil, err)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
