package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SAMASS-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SAMASS-BookingService/internal/usecase/create_booking"
)

type stubUseCase struct {
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func doRequest(t *testing.T, uc *stubUseCase, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(payload))
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func validBody() *CreateBookingRequest {
	return &CreateBookingRequest{
		SlotID:      1,
		ServiceID:   1,
		Duration:    60,
		ClientName:  "Claire Dupont",
		ClientEmail: "claire@example.com",
	}
}

func TestHandle_Created(t *testing.T) {
	now := time.Date(2026, 9, 3, 14, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:              42,
		SlotID:          101,
		ServiceID:       1,
		ServiceTitle:    "Massage Tonique",
		Price:           80,
		StartAt:         now,
		EndAt:           now.Add(time.Hour),
		DurationMinutes: 60,
		Status:          "pending",
		ClientName:      "Claire Dupont",
		ClientEmail:     "claire@example.com",
	}}

	rec := doRequest(t, uc, validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2026-09-03T14:00:00Z", resp.StartAt)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slot not available", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"slot busy", createBooking.ErrSlotBusy, http.StatusConflict},
		{"service not found", createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"duration not offered", createBooking.ErrDurationNotOffered, http.StatusBadRequest},
		{"duration exceeds slot", createBooking.ErrDurationExceedsSlot, http.StatusBadRequest},
		{"too soon", createBooking.ErrTooSoon, http.StatusBadRequest},
		{"out of window", createBooking.ErrOutOfWindow, http.StatusBadRequest},
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tc.err}, validBody())
			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandle_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	NewHandler(&stubUseCase{}, nopLogger{}).Handle(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidStartAt(t *testing.T) {
	body := validBody()
	body.StartAt = "03/09/2026 14:00"

	rec := doRequest(t, &stubUseCase{}, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
