package lineuphandlers

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	lineupservice "github.com/Black-And-White-Club/dugout/app/modules/lineup/application"
	"github.com/Black-And-White-Club/dugout/app/modules/lineup/application/parsers"
	lineuptypes "github.com/Black-And-White-Club/dugout/app/modules/lineup/domain/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"title": sectionTitle,
}).ParseFS(templateFS, "templates/index.html"))

type formCell struct {
	Name  string
	Value string
}

type formSection struct {
	Role    lineuptypes.Role
	Columns []string
	Rows    [][]formCell
}

type pageData struct {
	Texts           map[string]string
	Sections        []formSection
	Lineup          []lineuptypes.Row
	LineupColumns   []string
	Rotation        []lineuptypes.Row
	RotationColumns []string
	Error           string
	Selected        bool

	status int
}

func sectionTitle(role lineuptypes.Role) string {
	switch role {
	case lineuptypes.RoleMyHitters:
		return "My hitters"
	case lineuptypes.RoleMyPitchers:
		return "My pitchers"
	case lineuptypes.RoleOppHitters:
		return "Opponent hitters"
	case lineuptypes.RoleOppPitchers:
		return "Opponent pitchers"
	}
	return strings.ReplaceAll(role.String(), "_", " ")
}

// newPage builds the form, pre-filled from whatever the user submitted.
func (h *LineupHandlers) newPage(r *http.Request) *pageData {
	page := &pageData{Texts: make(map[string]string, len(lineuptypes.Roles))}
	for _, role := range lineuptypes.Roles {
		page.Texts[role.String()] = r.FormValue(role.String())
	}
	for _, layout := range h.layouts {
		section := formSection{Role: layout.Role, Columns: layout.Columns}
		for i := 0; i < layout.MaxRows; i++ {
			cells := make([]formCell, 0, len(layout.Columns))
			for _, col := range layout.Columns {
				name := parsers.FieldName(layout.Role, col, i)
				cells = append(cells, formCell{Name: name, Value: r.FormValue(name)})
			}
			section.Rows = append(section.Rows, cells)
		}
		page.Sections = append(page.Sections, section)
	}
	return page
}

func (p *pageData) apply(result lineupservice.SelectionResult, err error) {
	if err != nil || result.IsFailure() {
		p.Error = userMessage(result.Failure, err)
		return
	}
	if result.Success == nil {
		return
	}
	p.Selected = true
	p.Lineup = result.Success.Lineup
	p.LineupColumns = lineuptypes.Columns(p.Lineup, lineuptypes.ColPos, lineuptypes.ColName, lineuptypes.ColScore)
	p.Rotation = result.Success.Rotation
	p.RotationColumns = lineuptypes.Columns(p.Rotation, lineuptypes.ColName, lineuptypes.ColERA)
}

func (h *LineupHandlers) render(w http.ResponseWriter, r *http.Request, page *pageData) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, page); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render page", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if page.status != 0 {
		w.WriteHeader(page.status)
	}
	_, _ = buf.WriteTo(w)
}

// parseForm renders an error page when the form body cannot be read.
func (h *LineupHandlers) parseForm(w http.ResponseWriter, r *http.Request) bool {
	err := r.ParseForm()
	if err == nil {
		return true
	}
	h.logger.WarnContext(r.Context(), "Form rejected", slog.Any("error", err))

	page := h.newPage(r)
	page.Error = ErrorPrefix + fmt.Sprintf("failed to read form: %v", err)
	page.status = http.StatusBadRequest
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		page.Error = ErrorPrefix + fmt.Sprintf("form exceeds %d bytes", tooLarge.Limit)
		page.status = http.StatusRequestEntityTooLarge
	}
	h.render(w, r, page)
	return false
}

// HandleIndex renders the empty input form.
func (h *LineupHandlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.newPage(r))
}

// HandlePasteForm selects from the four pasted text areas.
func (h *LineupHandlers) HandlePasteForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LineupHandlers.HandlePasteForm")
	defer span.End()

	if !h.parseForm(w, r) {
		return
	}
	page := h.newPage(r)
	page.apply(h.service.SelectFromText(ctx, textsFromForm(r)))
	h.render(w, r, page)
}

// HandleFieldsForm selects from the flat per-cell form.
func (h *LineupHandlers) HandleFieldsForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LineupHandlers.HandleFieldsForm")
	defer span.End()

	if !h.parseForm(w, r) {
		return
	}
	page := h.newPage(r)
	page.apply(h.service.SelectFromFields(ctx, fieldsFromForm(r)))
	h.render(w, r, page)
}

// HandleUploadForm selects from an uploaded CSV or workbook.
func (h *LineupHandlers) HandleUploadForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LineupHandlers.HandleUploadForm")
	defer span.End()

	name, data, err := h.readUpload(r)
	page := h.newPage(r)
	if err != nil {
		h.logger.WarnContext(ctx, "Upload rejected", slog.Any("error", err))
		page.Error = ErrorPrefix + lineupservice.FileErrorPrefix + err.Error()
		h.render(w, r, page)
		return
	}
	page.apply(h.service.SelectFromFile(ctx, name, data))
	h.render(w, r, page)
}
