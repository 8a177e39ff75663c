package lineuphandlers

import "net/http"

// Handlers defines the HTTP surface of the lineup module.
type Handlers interface {
	// HandleIndex renders the empty input form.
	HandleIndex(w http.ResponseWriter, r *http.Request)
	// HandlePasteForm selects from the four pasted text areas.
	HandlePasteForm(w http.ResponseWriter, r *http.Request)
	// HandleFieldsForm selects from the flat per-cell form.
	HandleFieldsForm(w http.ResponseWriter, r *http.Request)
	// HandleUploadForm selects from an uploaded CSV or workbook.
	HandleUploadForm(w http.ResponseWriter, r *http.Request)

	HandleAPILineup(w http.ResponseWriter, r *http.Request)
	HandleAPIChart(w http.ResponseWriter, r *http.Request)
	HandleAPIExport(w http.ResponseWriter, r *http.Request)

	HandleHealth(w http.ResponseWriter, r *http.Request)
}
