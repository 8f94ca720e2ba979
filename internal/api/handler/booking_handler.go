package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/way2pg/way2pg-api/internal/api/metrics"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	AccommodationID string `json:"accommodation_id" validate:"required"`
	Message         string `json:"message"`
}

// Create submits an interest request against a listing.
//
// @Summary      Create a booking request
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Target accommodation and optional message"
// @Success      201   {object}  ports.BookingView
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateBookingInput{
		StudentID:       userID,
		AccommodationID: req.AccommodationID,
		Message:         req.Message,
	})
	if err != nil {
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, view)
}

// Cancel withdraws a pending booking.
//
// @Summary      Cancel a booking request
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Booking id"
// @Success      200  {object}  ports.BookingView
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.service.Cancel(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.BookingsCancelledTotal.Inc()
	return c.JSON(http.StatusOK, view)
}

// List returns the caller's bookings newest-first.
//
// @Summary      List own booking requests
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.BookingView
// @Router       /v1/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if views == nil {
		views = []ports.BookingView{}
	}
	return c.JSON(http.StatusOK, views)
}
