package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/way2pg/way2pg-api/internal/api/middleware"
	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

type stubBookingService struct {
	created   *ports.CreateBookingInput
	cancelled string
	view      ports.BookingView
	listErr   error
	list      []ports.BookingView
}

func (s *stubBookingService) Create(_ context.Context, input ports.CreateBookingInput) (*ports.BookingView, error) {
	s.created = &input
	return &s.view, nil
}

func (s *stubBookingService) Cancel(_ context.Context, studentID, bookingID string) (*ports.BookingView, error) {
	s.cancelled = studentID + "/" + bookingID
	return &s.view, nil
}

func (s *stubBookingService) List(context.Context, string) ([]ports.BookingView, error) {
	return s.list, s.listErr
}

func newBookingContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "student_1")
	c.Set(middleware.CtxRole, domain.RoleStudent)
	return c, rec
}

func TestBookingCreateHandler(t *testing.T) {
	svc := &stubBookingService{view: ports.BookingView{ID: "bkg_1", Status: "pending"}}
	h := NewBookingHandler(svc)

	c, rec := newBookingContext(t, http.MethodPost, "/v1/bookings", `{"accommodation_id":"acc_1","message":"hi"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.created == nil || svc.created.StudentID != "student_1" || svc.created.AccommodationID != "acc_1" {
		t.Fatalf("service input = %+v", svc.created)
	}

	var got ports.BookingView
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != "bkg_1" {
		t.Errorf("response id = %q", got.ID)
	}
}

func TestBookingCreateHandlerMissingAccommodation(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{})

	c, _ := newBookingContext(t, http.MethodPost, "/v1/bookings", `{"message":"hi"}`)
	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBookingCreateHandlerWithoutIdentity(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{"accommodation_id":"acc_1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestBookingCancelHandler(t *testing.T) {
	svc := &stubBookingService{view: ports.BookingView{ID: "bkg_1", Status: "cancelled"}}
	h := NewBookingHandler(svc)

	c, rec := newBookingContext(t, http.MethodPost, "/v1/bookings/bkg_1/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues("bkg_1")

	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.cancelled != "student_1/bkg_1" {
		t.Errorf("service call = %q", svc.cancelled)
	}
}

func TestBookingListHandlerEmpty(t *testing.T) {
	h := NewBookingHandler(&stubBookingService{})

	c, rec := newBookingContext(t, http.MethodGet, "/v1/bookings", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	// nil from the service must render as [] not null.
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("body = %q, want []", body)
	}
}
