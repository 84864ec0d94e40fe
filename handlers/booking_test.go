package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slotify/models"
	"slotify/services/booking"
)

type fakeService struct {
	freeSlots func(ctx context.Context, req models.FreeSlotsRequest) ([]models.SlotView, error)
	nextFree  func(ctx context.Context, req models.NextFreeRequest) ([]models.DaySlots, error)
	checkSlot func(ctx context.Context, req models.AvailabilityRequest) (bool, error)
	book      func(ctx context.Context, req models.BookingRequest, key string) (models.BookingConfirmation, error)
	delete    func(ctx context.Context, req models.DeleteRequest) error
}

func (s *fakeService) FreeSlots(ctx context.Context, req models.FreeSlotsRequest) ([]models.SlotView, error) {
	return s.freeSlots(ctx, req)
}

func (s *fakeService) NextFree(ctx context.Context, req models.NextFreeRequest) ([]models.DaySlots, error) {
	return s.nextFree(ctx, req)
}

func (s *fakeService) CheckSlot(ctx context.Context, req models.AvailabilityRequest) (bool, error) {
	return s.checkSlot(ctx, req)
}

func (s *fakeService) Book(ctx context.Context, req models.BookingRequest, key string) (models.BookingConfirmation, error) {
	return s.book(ctx, req, key)
}

func (s *fakeService) Delete(ctx context.Context, req models.DeleteRequest) error {
	return s.delete(ctx, req)
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(svc, zap.NewNop())

	r := gin.New()
	r.POST("/free-slots", h.FreeSlotsHandler)
	r.POST("/next-free", h.NextFreeHandler)
	r.GET("/next-free", h.NextFreeHandler)
	r.POST("/book", h.BookHandler)
	r.POST("/check-availability", h.CheckSlotHandler)
	r.POST("/check-slot", h.CheckSlotHandler)
	r.POST("/delete", h.DeleteHandler)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFreeSlotsHandlerEmptyListIsOK(t *testing.T) {
	svc := &fakeService{
		freeSlots: func(_ context.Context, req models.FreeSlotsRequest) ([]models.SlotView, error) {
			assert.Equal(t, "2026-09-05", req.Date)
			return []models.SlotView{}, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/free-slots", `{"date":"2026-09-05"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"free_slots":[]}`, w.Body.String())
}

func TestFreeSlotsHandlerRequiresDate(t *testing.T) {
	svc := &fakeService{}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/free-slots", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFreeSlotsHandlerValidationError(t *testing.T) {
	svc := &fakeService{
		freeSlots: func(context.Context, models.FreeSlotsRequest) ([]models.SlotView, error) {
			return nil, &booking.ValidationError{Message: "unknown timezone"}
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/free-slots", `{"date":"2026-09-02","timezone":"Nope"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFreeSlotsHandlerGatewayError(t *testing.T) {
	svc := &fakeService{
		freeSlots: func(context.Context, models.FreeSlotsRequest) ([]models.SlotView, error) {
			return nil, &booking.GatewayError{Op: "list busy intervals", Err: assert.AnError}
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/free-slots", `{"date":"2026-09-02"}`, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestNextFreeHandlerGetQueryParams(t *testing.T) {
	svc := &fakeService{
		nextFree: func(_ context.Context, req models.NextFreeRequest) ([]models.DaySlots, error) {
			assert.Equal(t, 2, req.Count)
			assert.Equal(t, "Europe/Berlin", req.Timezone)
			return []models.DaySlots{{Date: "2026-09-03", Slots: []models.SlotView{
				{Date: "2026-09-03", Start: "08:00", End: "08:30"},
				{Date: "2026-09-03", Start: "08:30", End: "09:00"},
			}}}, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/next-free?count=2&timezone=Europe%2FBerlin", "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		NextSlots []models.DaySlots `json:"next_slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.NextSlots, 1)
	assert.Len(t, body.NextSlots[0].Slots, 2)
}

func TestNextFreeHandlerRejectsBadCount(t *testing.T) {
	svc := &fakeService{}
	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/next-free?count=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckSlotHandler(t *testing.T) {
	svc := &fakeService{
		checkSlot: func(_ context.Context, req models.AvailabilityRequest) (bool, error) {
			return req.Time == "09:00", nil
		},
	}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/check-availability", `{"date":"2026-09-02","time":"09:00"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"available":true}`, w.Body.String())

	// Same handler behind the alias route.
	w = doJSON(t, r, http.MethodPost, "/check-slot", `{"date":"2026-09-02","time":"09:30"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"available":false}`, w.Body.String())
}

func TestBookHandlerSuccess(t *testing.T) {
	svc := &fakeService{
		book: func(_ context.Context, req models.BookingRequest, key string) (models.BookingConfirmation, error) {
			assert.Equal(t, "Alice", req.Name)
			assert.Equal(t, "retry-1", key)
			return models.BookingConfirmation{Status: "booked", EventID: "evt-1"}, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/book",
		`{"date":"2026-09-02","time":"09:00","name":"Alice"}`,
		map[string]string{"X-Idempotency-Key": "retry-1"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"booked","event_id":"evt-1"}`, w.Body.String())
}

func TestBookHandlerConflict(t *testing.T) {
	svc := &fakeService{
		book: func(context.Context, models.BookingRequest, string) (models.BookingConfirmation, error) {
			return models.BookingConfirmation{}, &booking.ConflictError{Date: "2026-09-02", Time: "09:00"}
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/book",
		`{"date":"2026-09-02","time":"09:00","name":"Alice"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookHandlerRequiresFields(t *testing.T) {
	svc := &fakeService{}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/book", `{"date":"2026-09-02"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteHandler(t *testing.T) {
	svc := &fakeService{
		delete: func(_ context.Context, req models.DeleteRequest) error {
			assert.Equal(t, "evt-1", req.EventID)
			return nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/delete", `{"event_id":"evt-1"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, w.Body.String())
}

func TestDeleteHandlerNotFound(t *testing.T) {
	svc := &fakeService{
		delete: func(context.Context, models.DeleteRequest) error {
			return &booking.NotFoundError{Message: "no appointment at 2026-09-02 09:00"}
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/delete", `{"date":"2026-09-02","time":"09:00"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
