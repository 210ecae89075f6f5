package booking

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/heritage/internal/ledger"
)

type createBookingRequest struct {
	ID        string                             `json:"id"`
	Client    string                             `json:"client"`
	Status    string                             `json:"status"`
	Tier      string                             `json:"tier"`
	Season    string                             `json:"season"`
	EventDate string                             `json:"event_date"`
	Contact   string                             `json:"contact"`
	EventType string                             `json:"event_type"`
	Rate      int64                              `json:"rate"`
	Discount  int64                              `json:"discount"`
	Guests    int                                `json:"guests"`
	Shift     string                             `json:"shift"`
	Services  map[string]serviceSelectionPayload `json:"services"`
}

func (req createBookingRequest) toBooking() (*ledger.Booking, error) {
	eventDate, err := time.Parse(time.DateOnly, req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("invalid event_date, expected YYYY-MM-DD")
	}

	b := &ledger.Booking{
		ID:        req.ID,
		Client:    req.Client,
		Status:    ledger.Status(req.Status),
		Tier:      ledger.Tier(req.Tier),
		Season:    req.Season,
		EventDate: eventDate,
		Contact:   req.Contact,
		EventType: req.EventType,
		Rate:      req.Rate,
		Discount:  req.Discount,
		Guests:    req.Guests,
		Shift:     ledger.Shift(req.Shift),
	}

	if b.Status == "" {
		b.Status = ledger.StatusUpcoming
	}

	if req.Services != nil {
		b.Services = make(map[string]ledger.ServiceSelection, len(req.Services))
		for id, sel := range req.Services {
			b.Services[id] = sel.toSelection()
		}
	}

	return b, nil
}

type updateBookingRequest struct {
	Client    *string                            `json:"client"`
	Status    *string                            `json:"status"`
	Tier      *string                            `json:"tier"`
	Season    *string                            `json:"season"`
	EventDate *string                            `json:"event_date"`
	Contact   *string                            `json:"contact"`
	EventType *string                            `json:"event_type"`
	Rate      *int64                             `json:"rate"`
	Discount  *int64                             `json:"discount"`
	Guests    *int                               `json:"guests"`
	Shift     *string                            `json:"shift"`
	Services  map[string]serviceSelectionPayload `json:"services"`
	Refund    *int64                             `json:"refund"`
}

func (req updateBookingRequest) toPatch() (ledger.BookingPatch, error) {
	patch := ledger.BookingPatch{
		Client:    req.Client,
		Season:    req.Season,
		Contact:   req.Contact,
		EventType: req.EventType,
		Rate:      req.Rate,
		Discount:  req.Discount,
		Guests:    req.Guests,
		Refund:    req.Refund,
	}

	if req.Status != nil {
		status := ledger.Status(*req.Status)
		patch.Status = &status
	}

	if req.Tier != nil {
		tier := ledger.Tier(*req.Tier)
		patch.Tier = &tier
	}

	if req.Shift != nil {
		shift := ledger.Shift(*req.Shift)
		patch.Shift = &shift
	}

	if req.EventDate != nil {
		eventDate, err := time.Parse(time.DateOnly, *req.EventDate)
		if err != nil {
			return ledger.BookingPatch{}, fmt.Errorf("invalid event_date, expected YYYY-MM-DD")
		}

		patch.EventDate = &eventDate
	}

	if req.Services != nil {
		patch.Services = make(map[string]ledger.ServiceSelection, len(req.Services))
		for id, sel := range req.Services {
			patch.Services[id] = sel.toSelection()
		}
	}

	return patch, nil
}

type addPaymentRequest struct {
	BookingID string `json:"booking_id"`
	Date      string `json:"date"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
	Note      string `json:"note"`
}

type revertPaymentRequest struct {
	BookingID string `json:"booking_id"`
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason"`
}

type serviceSelectionPayload struct {
	Enabled bool   `json:"enabled"`
	Option  string `json:"option"`
	Count   int    `json:"count"`
}

func (p serviceSelectionPayload) toSelection() ledger.ServiceSelection {
	return ledger.ServiceSelection{
		Enabled: p.Enabled,
		Option:  p.Option,
		Count:   p.Count,
	}
}

type bookingResponse struct {
	ID        string                             `json:"id"`
	Client    string                             `json:"client"`
	Status    string                             `json:"status"`
	Tier      string                             `json:"tier"`
	Season    string                             `json:"season"`
	EventDate string                             `json:"event_date"`
	Contact   string                             `json:"contact"`
	EventType string                             `json:"event_type"`
	Rate      int64                              `json:"rate"`
	Discount  int64                              `json:"discount"`
	Guests    int                                `json:"guests"`
	Shift     string                             `json:"shift"`
	Services  map[string]serviceSelectionPayload `json:"services,omitempty"`
	Payments  []paymentResponse                  `json:"payments"`
	Received  int64                              `json:"received"`
	Expenses  int64                              `json:"expenses"`
	Refund    int64                              `json:"refund,omitempty"`
	CreatedAt time.Time                          `json:"created_at"`
	UpdatedAt *time.Time                         `json:"updated_at,omitempty"`
	CreatedBy string                             `json:"created_by,omitempty"`
}

type paymentResponse struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Amount     int64  `json:"amount"`
	Method     string `json:"method"`
	Type       string `json:"type"`
	Note       string `json:"note,omitempty"`
	RecordedBy string `json:"recorded_by,omitempty"`
}

func toBookingResponse(b *ledger.Booking) bookingResponse {
	resp := bookingResponse{
		ID:        b.ID,
		Client:    b.Client,
		Status:    string(b.Status),
		Tier:      string(b.Tier),
		Season:    b.Season,
		EventDate: b.EventDate.Format(time.DateOnly),
		Contact:   b.Contact,
		EventType: b.EventType,
		Rate:      b.Rate,
		Discount:  b.Discount,
		Guests:    b.Guests,
		Shift:     string(b.Shift),
		Payments:  make([]paymentResponse, 0, len(b.Payments)),
		Received:  b.Received(),
		Expenses:  b.Expenses,
		Refund:    b.Refund,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		CreatedBy: b.CreatedBy,
	}

	if b.Services != nil {
		resp.Services = make(map[string]serviceSelectionPayload, len(b.Services))
		for id, sel := range b.Services {
			resp.Services[id] = serviceSelectionPayload{
				Enabled: sel.Enabled,
				Option:  sel.Option,
				Count:   sel.Count,
			}
		}
	}

	for _, p := range b.Payments {
		resp.Payments = append(resp.Payments, paymentResponse{
			ID:         p.ID,
			Date:       p.Date.Format(time.DateOnly),
			Amount:     p.Amount,
			Method:     string(p.Method),
			Type:       string(p.Type),
			Note:       p.Note,
			RecordedBy: p.RecordedBy,
		})
	}

	return resp
}
