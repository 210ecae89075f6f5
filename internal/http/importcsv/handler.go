// Package importcsv accepts expense sheet uploads and appends the parsed
// rows to the expense ledger.
package importcsv

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/heritage/internal/http/authn"
	"github.com/MrJamesThe3rd/heritage/internal/http/response"
	"github.com/MrJamesThe3rd/heritage/internal/importer"
	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

// maxUploadSize bounds how much of an upload is read into memory.
const maxUploadSize = 10 << 20 // 10 MiB

type Handler struct {
	store    *ledger.Store
	importer *importer.Service
}

func New(store *ledger.Store, imp *importer.Service) *Handler {
	return &Handler{store: store, importer: imp}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse multipart form", http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatRegister
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importer.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recordedBy := recordedBy(r)

	imported := 0
	skipped := 0

	for _, params := range rows {
		params.RecordedBy = recordedBy

		if _, err := h.store.AddExpense(r.Context(), params); err != nil {
			// A bad row must not abort the rest of the sheet.
			if errors.Is(err, ledger.ErrInvalidEntry) {
				skipped++
				continue
			}

			slog.Error("failed to import expense row", slog.Any("error", err))
			http.Error(w, "failed to import expenses", http.StatusInternalServerError)

			return
		}

		imported++
	}

	response.JSON(w, http.StatusOK, importResponse{
		Imported: imported,
		Skipped:  skipped,
	})
}

type importResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func recordedBy(r *http.Request) string {
	identity := authn.FromContext(r.Context())

	if identity.Name != "" {
		return identity.Name
	}

	return "import"
}
