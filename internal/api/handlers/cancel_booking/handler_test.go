package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	owner     int64
	cancelled map[int64]bool
	requester *int64
	banReason string
}

func newFakeService(owner int64) *fakeService {
	return &fakeService{owner: owner, cancelled: make(map[int64]bool)}
}

func (f *fakeService) Cancel(_ context.Context, bookingID int64, requesterID *int64) (*models.CancelResult, error) {
	f.requester = requesterID
	if bookingID != 5 || f.cancelled[bookingID] {
		return nil, bookings.ErrBookingNotFound
	}
	if requesterID != nil && *requesterID != f.owner {
		return nil, bookings.ErrAccessDenied
	}
	f.cancelled[bookingID] = true
	return &models.CancelResult{
		BookingID: bookingID,
		UserID:    f.owner,
		MasterID:  3,
		Date:      time.Date(2030, 3, 10, 0, 0, 0, 0, time.UTC),
		Time:      types.TimeString("14:00"),
	}, nil
}

func (f *fakeService) BanAndCancel(ctx context.Context, bookingID int64, reason string) (*models.CancelResult, error) {
	f.banReason = reason
	return f.Cancel(ctx, bookingID, nil)
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPost)
	r.HandleFunc("/admin/bookings/{bookingId}/cancel", h.HandleAdmin).Methods(http.MethodPost)
	r.HandleFunc("/admin/bookings/{bookingId}/ban", h.HandleBan).Methods(http.MethodPost)
	return r
}

func do(r http.Handler, path string, userID int64, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CustomerCancel(t *testing.T) {
	svc := newFakeService(42)
	r := newRouter(NewHandler(svc, nopLogger{}))

	rec := do(r, "/bookings/5/cancel", 7, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(r, "/bookings/5/cancel", 42, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.requester)
	assert.Equal(t, int64(42), *svc.requester)

	var resp models.CancelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.CancelResponse{BookingID: 5, Date: "2030-03-10", Time: "14:00", MasterID: 3}, resp)

	rec = do(r, "/bookings/5/cancel", 42, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, "/bookings/abc/cancel", 42, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAdmin_CancelsWithoutOwnerCheck(t *testing.T) {
	svc := newFakeService(42)
	r := newRouter(NewHandler(svc, nopLogger{}))

	rec := do(r, "/admin/bookings/5/cancel", 1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.requester)
}

func TestHandleBan(t *testing.T) {
	svc := newFakeService(42)
	r := newRouter(NewHandler(svc, nopLogger{}))

	rec := do(r, "/admin/bookings/5/ban", 1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultBanReason, svc.banReason)

	svc = newFakeService(42)
	r = newRouter(NewHandler(svc, nopLogger{}))
	rec = do(r, "/admin/bookings/5/ban", 1, `{"reason":"не пришел"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "не пришел", svc.banReason)
}
