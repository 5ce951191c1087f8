package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
	"adpilot/internal/core/port/mocks"
)

func newTestHandler(t *testing.T) (*mocks.MockControllerUseCase, http.Handler) {
	t.Helper()
	svc := mocks.NewMockControllerUseCase(t)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	h := NewHandler(svc, metrics, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, h.Router()
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestCampaignStatus(t *testing.T) {
	svc, h := newTestHandler(t)
	svc.EXPECT().Status(mock.Anything, int64(7)).Return(&domain.CampaignStatus{
		CampaignID:  7,
		ExternalID:  "ext-7",
		State:       domain.StatePausedSpend,
		DailyBudget: "32.00",
		SpentToday:  "12.00",
	}, nil)

	rec := serve(h, http.MethodGet, "/api/v1/campaigns/7/status")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PAUSED_SPEND", body["state"])
	assert.Equal(t, "32.00", body["daily_budget"])
	assert.Equal(t, float64(7), body["campaign_id"])
}

func TestCampaignStatusErrors(t *testing.T) {
	svc, h := newTestHandler(t)
	svc.EXPECT().Status(mock.Anything, int64(404)).Return(nil, port.ErrCampaignNotFound)
	svc.EXPECT().Status(mock.Anything, int64(500)).Return(nil, errors.New("db down"))

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/v1/campaigns/404/status").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(h, http.MethodGet, "/api/v1/campaigns/500/status").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodGet, "/api/v1/campaigns/abc/status").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodGet, "/api/v1/campaigns/0/status").Code)
}

func TestInventoryCreated(t *testing.T) {
	svc, h := newTestHandler(t)
	svc.EXPECT().EnqueueInventory(mock.Anything, int64(1)).Return(true, nil)
	svc.EXPECT().EnqueueInventory(mock.Anything, int64(2)).Return(false, nil)
	svc.EXPECT().EnqueueInventory(mock.Anything, int64(3)).Return(false, port.ErrInventoryNotFound)
	svc.EXPECT().EnqueueInventory(mock.Anything, int64(4)).Return(false, errors.New("db down"))

	rec := serve(h, http.MethodPost, "/api/v1/inventory/1/created")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"inventory_id":1,"queued":true}`, rec.Body.String())

	rec = serve(h, http.MethodPost, "/api/v1/inventory/2/created")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"inventory_id":2,"queued":false}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodPost, "/api/v1/inventory/3/created").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(h, http.MethodPost, "/api/v1/inventory/4/created").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(h, http.MethodGet, "/api/v1/inventory/1/created").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	_, h := newTestHandler(t)

	rec := serve(h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}
