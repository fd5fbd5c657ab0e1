package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookings struct{ byID map[int64]*domain.Booking }

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookings) GetLatestByUserID(_ context.Context, userID int64) (*domain.Booking, error) {
	var latest *domain.Booking
	for _, b := range f.byID {
		if b.UserID == userID && (latest == nil || b.Date.After(latest.Date)) {
			latest = b
		}
	}
	if latest == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return latest, nil
}

func (f *fakeBookings) ListByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.byID {
		if b.Date.Equal(date) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookings) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeSlots struct{ released []domain.SlotKey }

func (f *fakeSlots) ReleaseSlot(_ context.Context, key domain.SlotKey) error {
	f.released = append(f.released, key)
	return nil
}

type fakeReminders struct{ cancelled []int64 }

func (f *fakeReminders) Cancel(_ context.Context, bookingID int64) error {
	f.cancelled = append(f.cancelled, bookingID)
	return nil
}

type fakeBlacklist struct{ banned map[int64]string }

func (f *fakeBlacklist) Add(_ context.Context, userID int64, reason string) (*domain.BlacklistEntry, error) {
	f.banned[userID] = reason
	return &domain.BlacklistEntry{UserID: userID, Reason: reason}, nil
}

type fakeNotifier struct{ notified []int64 }

func (f *fakeNotifier) NotifyCancellation(_ context.Context, b *domain.Booking) {
	f.notified = append(f.notified, b.UserID)
}

var msk = time.FixedZone("MSK", 3*60*60)

type testEnv struct {
	svc       *Service
	bookings  *fakeBookings
	slots     *fakeSlots
	reminders *fakeReminders
	blacklist *fakeBlacklist
	notifier  *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		bookings: &fakeBookings{byID: map[int64]*domain.Booking{
			1: {ID: 1, UserID: 100, MasterID: 1, Date: time.Date(2030, 3, 12, 0, 0, 0, 0, time.UTC), Time: "14:00"},
			2: {ID: 2, UserID: 200, MasterID: 2, Date: time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC), Time: "10:00"},
		}},
		slots:     &fakeSlots{},
		reminders: &fakeReminders{},
		blacklist: &fakeBlacklist{banned: map[int64]string{}},
		notifier:  &fakeNotifier{},
	}
	env.svc = NewService(env.bookings, env.slots, env.reminders, env.blacklist, env.notifier, fakeTxManager{}, msk, nopLogger{})
	env.svc.timeProvider = fixedTime{now: time.Date(2030, 3, 10, 12, 0, 0, 0, msk)}
	return env
}

func TestService_Cancel_ByOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.svc.Cancel(ctx, 1, ptr.Ptr(int64(100)))
	require.NoError(t, err)
	assert.Equal(t, "14:00", result.Time.String())
	assert.Equal(t, int64(1), result.MasterID)

	require.Len(t, env.slots.released, 1)
	assert.Equal(t, int64(1), env.slots.released[0].MasterID)
	assert.Equal(t, []int64{1}, env.reminders.cancelled)
	assert.Empty(t, env.notifier.notified, "owner is not notified about own cancellation")

	_, err = env.svc.Cancel(ctx, 1, ptr.Ptr(int64(100)))
	require.ErrorIs(t, err, ErrBookingNotFound)
	assert.Len(t, env.slots.released, 1)
}

func TestService_Cancel_AccessDenied(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Cancel(context.Background(), 1, ptr.Ptr(int64(999)))
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, env.bookings.byID, int64(1))
	assert.Empty(t, env.slots.released)
	assert.Empty(t, env.reminders.cancelled)
}

func TestService_Cancel_ByAdminNotifiesClient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Cancel(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{100}, env.notifier.notified)
}

func TestService_GetActiveForCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	booking, err := env.svc.GetActiveForCustomer(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), booking.ID)

	_, err = env.svc.GetActiveForCustomer(ctx, 200)
	require.ErrorIs(t, err, ErrBookingNotFound, "past visit is not active")

	_, err = env.svc.GetActiveForCustomer(ctx, 300)
	require.ErrorIs(t, err, ErrBookingNotFound)

	_, err = env.svc.Cancel(ctx, 1, ptr.Ptr(int64(100)))
	require.NoError(t, err)
	_, err = env.svc.GetActiveForCustomer(ctx, 100)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_BanAndCancel(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.BanAndCancel(context.Background(), 1, "не пришел")
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.UserID)
	assert.Equal(t, "не пришел", env.blacklist.banned[100])
	assert.NotContains(t, env.bookings.byID, int64(1))

	_, err = env.svc.BanAndCancel(context.Background(), 42, "")
	require.ErrorIs(t, err, ErrBookingNotFound)
}
