package booking

import (
	"errors"
	"log/slog"
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

// Routes registers the booking endpoints. Booking numbers contain slashes
// (HG/2025/001), so single-booking endpoints take the id as a query
// parameter rather than a path segment.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/detail", h.get)
	r.Patch("/detail", h.update)
	r.Post("/payments", h.addPayment)
	r.Post("/payments/revert", h.revertPayment)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	req, err := response.Decode[createBookingRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	booking, err := req.toBooking()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.store.AddBooking(r.Context(), booking)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrDuplicateBooking):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, ledger.ErrInvalidEntry):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "failed to create booking", http.StatusInternalServerError)
		}

		return
	}

	response.JSON(w, http.StatusCreated, toBookingResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bookings := h.store.Bookings()

	if season := r.URL.Query().Get("season"); season != "" && season != ledger.SeasonAll {
		filtered := bookings[:0]

		for _, b := range bookings {
			if b.Season == season {
				filtered = append(filtered, b)
			}
		}

		bookings = filtered
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	booking, err := h.store.Booking(id)
	if err != nil {
		if errors.Is(err, ledger.ErrBookingNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, "failed to load booking", http.StatusInternalServerError)

		return
	}

	response.JSON(w, http.StatusOK, toBookingResponse(booking))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	req, err := response.Decode[updateBookingRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.store.UpdateBooking(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, ledger.ErrBookingNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, "failed to update booking", http.StatusInternalServerError)

		return
	}

	response.JSON(w, http.StatusOK, toBookingResponse(updated))
}

func (h *Handler) addPayment(w http.ResponseWriter, r *http.Request) {
	req, err := response.Decode[addPaymentRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	params := ledger.PaymentParams{
		Date:       date,
		Amount:     req.Amount,
		Method:     ledger.Method(req.Method),
		Note:       req.Note,
		RecordedBy: recordedBy(r),
	}

	if _, err := h.store.AddPayment(r.Context(), req.BookingID, params); err != nil {
		switch {
		case errors.Is(err, ledger.ErrBookingNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ledger.ErrInvalidEntry):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "failed to record payment", http.StatusInternalServerError)
		}

		return
	}

	booking, err := h.store.Booking(req.BookingID)
	if err != nil {
		http.Error(w, "failed to read back booking", http.StatusInternalServerError)
		return
	}

	response.JSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (h *Handler) revertPayment(w http.ResponseWriter, r *http.Request) {
	req, err := response.Decode[revertPaymentRequest](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = h.store.RevertPayment(r.Context(), req.BookingID, req.PaymentID, ledger.RevertParams{
		Reason:     req.Reason,
		RecordedBy: recordedBy(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrBookingNotFound),
			errors.Is(err, ledger.ErrPaymentNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ledger.ErrAlreadyReverted),
			errors.Is(err, ledger.ErrInvalidEntry):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "failed to revert payment", http.StatusInternalServerError)
		}

		return
	}

	booking, err := h.store.Booking(req.BookingID)
	if err != nil {
		http.Error(w, "failed to read back booking", http.StatusInternalServerError)
		return
	}

	response.JSON(w, http.StatusOK, toBookingResponse(booking))
}

func recordedBy(r *http.Request) string {
	identity := authn.FromContext(r.Context())

	if identity.Name != "" {
		return identity.Name
	}

	if identity.UID != "" {
		return identity.UID
	}

	slog.Debug("recording ledger entry without caller identity",
		slog.String("path", r.URL.Path),
	)

	return "office"
}
