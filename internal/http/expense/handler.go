package expense

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/heritage/internal/http/authn"
	"github.com/MrJamesThe3rd/heritage/internal/http/response"
	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

type Handler struct {
	store *ledger.Store
}

func New(store *ledger.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/{id}/revert", h.revert)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, err := response.Decode[createExpenseRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := req.toParams()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params.RecordedBy = recordedBy(r)

	expense, err := h.store.AddExpense(r.Context(), params)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidEntry) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "failed to record expense", http.StatusInternalServerError)

		return
	}

	response.JSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	expenses := h.store.Expenses()

	if bookingID := r.URL.Query().Get("booking_id"); bookingID != "" {
		filtered := expenses[:0]

		for _, e := range expenses {
			if e.BookingID == bookingID {
				filtered = append(filtered, e)
			}
		}

		expenses = filtered
	}

	resp := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toExpenseResponse(&e))
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *Handler) revert(w http.ResponseWriter, r *http.Request) {
	req, err := response.Decode[revertExpenseRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expense, err := h.store.RevertExpense(r.Context(), chi.URLParam(r, "id"), ledger.RevertParams{
		Reason:     req.Reason,
		RecordedBy: recordedBy(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrExpenseNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ledger.ErrAlreadyReverted),
			errors.Is(err, ledger.ErrInvalidEntry):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "failed to revert expense", http.StatusInternalServerError)
		}

		return
	}

	response.JSON(w, http.StatusCreated, toExpenseResponse(expense))
}

// ListVendors serves the vendor directory, including vendors created
// implicitly by expense entries.
func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors := h.store.Vendors()

	resp := make([]vendorResponse, 0, len(vendors))
	for _, v := range vendors {
		resp = append(resp, vendorResponse{
			ID:         v.ID,
			Name:       v.Name,
			CategoryID: v.CategoryID,
		})
	}

	response.JSON(w, http.StatusOK, resp)
}

// ListCategories serves the expense categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.store.Categories()

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryResponse{
			ID:               c.ID,
			Name:             c.Name,
			RequiresManpower: c.RequiresManpower,
		})
	}

	response.JSON(w, http.StatusOK, resp)
}

func recordedBy(r *http.Request) string {
	identity := authn.FromContext(r.Context())

	if identity.Name != "" {
		return identity.Name
	}

	if identity.UID != "" {
		return identity.UID
	}

	return "office"
}

type createExpenseRequest struct {
	BookingID     string `json:"booking_id"`
	Date          string `json:"date"`
	Category      string `json:"category"`
	Vendor        string `json:"vendor"`
	Amount        int64  `json:"amount"`
	Method        string `json:"method"`
	Note          string `json:"note"`
	ManpowerCount int    `json:"manpower_count"`
	RatePerPerson int64  `json:"rate_per_person"`
}

func (req createExpenseRequest) toParams() (ledger.ExpenseParams, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return ledger.ExpenseParams{}, errors.New("invalid date, expected YYYY-MM-DD")
	}

	return ledger.ExpenseParams{
		BookingID:     req.BookingID,
		Date:          date,
		Category:      req.Category,
		Vendor:        req.Vendor,
		Amount:        req.Amount,
		Method:        ledger.Method(req.Method),
		Note:          req.Note,
		ManpowerCount: req.ManpowerCount,
		RatePerPerson: req.RatePerPerson,
	}, nil
}

type revertExpenseRequest struct {
	Reason string `json:"reason"`
}

type expenseResponse struct {
	ID            string `json:"id"`
	BookingID     string `json:"booking_id,omitempty"`
	Date          string `json:"date"`
	Category      string `json:"category"`
	Vendor        string `json:"vendor"`
	Amount        int64  `json:"amount"`
	Method        string `json:"method"`
	Type          string `json:"type"`
	Note          string `json:"note,omitempty"`
	ManpowerCount int    `json:"manpower_count,omitempty"`
	RatePerPerson int64  `json:"rate_per_person,omitempty"`
	RecordedBy    string `json:"recorded_by,omitempty"`
}

func toExpenseResponse(e *ledger.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		BookingID:     e.BookingID,
		Date:          e.Date.Format(time.DateOnly),
		Category:      e.Category,
		Vendor:        e.Vendor,
		Amount:        e.Amount,
		Method:        string(e.Method),
		Type:          string(e.Type),
		Note:          e.Note,
		ManpowerCount: e.ManpowerCount,
		RatePerPerson: e.RatePerPerson,
		RecordedBy:    e.RecordedBy,
	}
}

type vendorResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

type categoryResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	RequiresManpower bool   `json:"requires_manpower"`
}
