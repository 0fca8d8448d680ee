package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/arminveh/cinema-box-office/internal/catalog"
	"github.com/arminveh/cinema-box-office/internal/engine"
	"github.com/arminveh/cinema-box-office/internal/model"
	"github.com/arminveh/cinema-box-office/internal/queue"
)

// PaymentRecorder persists and lists payment records.  Satisfied by
// repository.PaymentRepo; tests substitute a stub.
type PaymentRecorder interface {
	Create(ctx context.Context, p *model.Payment) error
	ListByUser(ctx context.Context, userID uint64) ([]model.Payment, error)
}

// EventPublisher pushes a booking-confirmed event to the broker.
// Publishing is best effort; the booking flow never fails on it.
type EventPublisher func(ctx context.Context, ev queue.BookingConfirmedEvent) error

// BookingHandler drives the seat reservation lifecycle over HTTP: seat
// map rendering, atomic multi-seat hold, confirm with payment
// recording, cancel, and the global hold reset.  All methods assume
// JWT authentication ran, except the seat map which is public.
type BookingHandler struct {
	Engine   *engine.Engine
	Catalog  *catalog.Catalog
	Payments PaymentRecorder
	Publish  EventPublisher
}

// NewBookingHandler constructs a BookingHandler.  Engine and Catalog
// must be non-nil; Payments and Publish may be nil, which disables
// payment recording and event publishing respectively.
func NewBookingHandler(eng *engine.Engine, cat *catalog.Catalog, pay PaymentRecorder, pub EventPublisher) *BookingHandler {
	if eng == nil || cat == nil {
		panic("nil engine or catalog passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: eng, Catalog: cat, Payments: pay, Publish: pub}
}

// showtimeRequest is the shared request body for hold/confirm/cancel:
// showtime coordinates plus the seat labels being acted on.
type showtimeRequest struct {
	HallID uint64   `json:"hall_id"`
	Date   string   `json:"date"`
	Slot   string   `json:"slot"`
	Seats  []string `json:"seats"`
	Method string   `json:"payment_method,omitempty"`
}

// parseShowtime validates the coordinates and seat labels and returns
// the scoped key with the parsed addresses.  Validation failures come
// back as a ready-to-return HTTP error response (non-nil error means
// the response was already written).
func (h *BookingHandler) parseShowtime(c echo.Context, body *showtimeRequest) (model.ShowtimeKey, []model.SeatAddress, error) {
	var zero model.ShowtimeKey
	if err := c.Bind(body); err != nil {
		return zero, nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.HallID == 0 {
		return zero, nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id is required"})
	}
	if !catalog.ValidDate(body.Date) {
		return zero, nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}
	if !catalog.ValidSlot(body.Slot) {
		return zero, nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time slot"})
	}
	if len(body.Seats) == 0 {
		return zero, nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
	}
	addrs := make([]model.SeatAddress, 0, len(body.Seats))
	for _, label := range body.Seats {
		a, err := model.ParseSeatAddress(label)
		if err != nil {
			return zero, nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat label", "seat": label})
		}
		addrs = append(addrs, a)
	}
	return model.ShowtimeKeyOf(body.HallID, body.Date, body.Slot), addrs, nil
}

// seatView is the response shape of one seat.
type seatView struct {
	Label      string           `json:"label"`
	Status     model.SeatStatus `json:"status"`
	PriceCents uint32           `json:"price_cents"`
}

func toSeatViews(seats []model.Seat) []seatView {
	out := make([]seatView, 0, len(seats))
	for _, s := range seats {
		out = append(out, seatView{Label: s.Label, Status: s.Status, PriceCents: s.PriceCents})
	}
	return out
}

// HoldSeats handles POST /v1/bookings/hold.  It atomically holds the
// requested seats for one showtime.  On conflict it returns 409 naming
// exactly the unavailable seats; no seat from the request stays held.
func (h *BookingHandler) HoldSeats(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body showtimeRequest
	key, addrs, errResp := h.parseShowtime(c, &body)
	if errResp != nil {
		return errResp
	}
	seats, err := h.Engine.ReserveSeats(key, addrs)
	if err != nil {
		return h.reservationError(c, err)
	}
	total := uint32(0)
	for _, s := range seats {
		total += s.PriceCents
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"seats":              toSeatViews(seats),
		"total_amount_cents": total,
	})
}

// ConfirmSeats handles POST /v1/bookings/confirm.  It records the
// payment, moves the held seats to booked (write-through to durable
// storage) and publishes a booking-confirmed event.  Confirming seats
// that are no longer held is a safe no-op that records no payment, so
// client retries cannot double-book or double-charge.
func (h *BookingHandler) ConfirmSeats(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body showtimeRequest
	key, addrs, errResp := h.parseShowtime(c, &body)
	if errResp != nil {
		return errResp
	}
	hall, err := h.Catalog.HallByID(key.HallID)
	if err != nil {
		return h.reservationError(c, err)
	}

	// Only seats that are actually held get charged and published.
	// Without this, a retried confirm would record a fresh payment row
	// and emit a duplicate event on every attempt even though the
	// engine treats the retry as a no-op.
	held := make([]model.SeatAddress, 0, len(addrs))
	for _, a := range addrs {
		seat, err := h.Engine.FindSeat(key, a)
		if err != nil {
			return h.reservationError(c, err)
		}
		if seat.Status == model.SeatHeld {
			held = append(held, a)
		}
	}
	if len(held) == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"message":   "no held seats to confirm",
			"confirmed": 0,
		})
	}

	method := body.Method
	if method == "" {
		method = "CARD"
	}
	total := hall.Type.PriceCents() * uint32(len(held))
	payment := &model.Payment{
		Reference:   uuid.NewString(),
		UserID:      userID,
		HallID:      key.HallID,
		Date:        key.Date,
		Slot:        key.Slot,
		AmountCents: total,
		Method:      method,
	}
	if h.Payments != nil {
		if err := h.Payments.Create(c.Request().Context(), payment); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record payment"})
		}
	}
	if err := h.Engine.ConfirmCartReservation(key, held); err != nil {
		return h.reservationError(c, err)
	}
	if h.Publish != nil {
		_ = h.Publish(c.Request().Context(), queue.BookingConfirmedEvent{
			UserID:           userID,
			HallID:           hall.ID,
			HallType:         string(hall.Type),
			Date:             key.Date,
			Slot:             key.Slot,
			Seats:            model.SeatLabels(held),
			TotalAmountCents: total,
			PaymentRef:       payment.Reference,
			ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"payment_ref":        payment.Reference,
		"total_amount_cents": total,
	})
}

// CancelSeats handles POST /v1/bookings/cancel.  It releases the
// caller's holds; cancelling seats that are not held is a no-op.
func (h *BookingHandler) CancelSeats(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body showtimeRequest
	key, addrs, errResp := h.parseShowtime(c, &body)
	if errResp != nil {
		return errResp
	}
	if err := h.Engine.CancelCartReservation(key, addrs); err != nil {
		return h.reservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"released": len(addrs)})
}

// ListMyPayments handles GET /v1/my-payments and returns the caller's
// payment history, newest first.
func (h *BookingHandler) ListMyPayments(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if h.Payments == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "payment history unavailable"})
	}
	payments, err := h.Payments.ListByUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("list payments: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list payments"})
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": payments})
}

// ClearHolds handles POST /v1/admin/bookings/clear.  It drops every
// hold across every showtime; booked seats are untouched.  Admin only.
func (h *BookingHandler) ClearHolds(c echo.Context) error {
	h.Engine.ClearAllCartReservations()
	return c.JSON(http.StatusOK, echo.Map{"cleared": true})
}

// seatRow groups a seat map row for rendering.
type seatRow struct {
	Row   string     `json:"row"`
	Seats []seatView `json:"seats"`
}

// GetSeatMap handles GET /v1/halls/:id/seatmap?date=...&slot=...
// It renders the full grid of one showtime with the live derived
// status of every seat.  Public: guests pick seats before signing in.
func (h *BookingHandler) GetSeatMap(c echo.Context) error {
	hallID, date, slot, errResp := showtimeQuery(c)
	if errResp != nil {
		return errResp
	}
	key := model.ShowtimeKeyOf(hallID, date, slot)
	seats, err := h.Engine.FindSeatsByShowtime(key)
	if err != nil {
		return h.reservationError(c, err)
	}
	rows := make([]seatRow, 0)
	for _, s := range seats {
		rl := string(s.Address.Row)
		if len(rows) == 0 || rows[len(rows)-1].Row != rl {
			rows = append(rows, seatRow{Row: rl})
		}
		last := &rows[len(rows)-1]
		last.Seats = append(last.Seats, seatView{Label: s.Label, Status: s.Status, PriceCents: s.PriceCents})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"hall_id": hallID,
		"date":    date,
		"slot":    slot,
		"rows":    rows,
	})
}

// GetSeat handles GET /v1/halls/:id/seats/:label?date=...&slot=...
// Single-seat lookup with derived status and price.
func (h *BookingHandler) GetSeat(c echo.Context) error {
	hallID, date, slot, errResp := showtimeQuery(c)
	if errResp != nil {
		return errResp
	}
	addr, err := model.ParseSeatAddress(c.Param("label"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat label"})
	}
	seat, err := h.Engine.FindSeat(model.ShowtimeKeyOf(hallID, date, slot), addr)
	if err != nil {
		return h.reservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"seat": seatView{Label: seat.Label, Status: seat.Status, PriceCents: seat.PriceCents},
	})
}

// reservationError maps engine and catalog failures onto the HTTP
// taxonomy: unknown hall -> 404, invalid seat or empty request -> 400,
// contested seats -> 409 with the conflicting labels, anything
// else -> 500.
func (h *BookingHandler) reservationError(c echo.Context, err error) error {
	if conflicts, ok := engine.IsSeatUnavailable(err); ok {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":       "seats unavailable",
			"unavailable": model.SeatLabels(conflicts),
		})
	}
	switch {
	case errors.Is(err, catalog.ErrHallNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
	case errors.Is(err, model.ErrInvalidSeat):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrNoSeats):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no seats requested"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
}

// showtimeQuery reads hall id, date and slot for the public seat
// endpoints.  A written response is signalled by a non-nil error.
func showtimeQuery(c echo.Context) (uint64, string, string, error) {
	hallID, err := parseID(c.Param("id"))
	if err != nil {
		return 0, "", "", c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
	}
	date := c.QueryParam("date")
	slot := c.QueryParam("slot")
	if !catalog.ValidDate(date) {
		return 0, "", "", c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}
	if !catalog.ValidSlot(slot) {
		return 0, "", "", c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time slot"})
	}
	return hallID, date, slot, nil
}
