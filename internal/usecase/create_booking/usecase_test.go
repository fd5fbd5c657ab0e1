package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reminders"
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

type fakeBookings struct {
	bookings []*domain.Booking
	locked   []int64
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = int64(len(f.bookings) + 1)
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeBookings) GetLatestByUserID(_ context.Context, userID int64) (*domain.Booking, error) {
	var latest *domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && (latest == nil || b.Date.After(latest.Date)) {
			latest = b
		}
	}
	if latest == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return latest, nil
}

func (f *fakeBookings) LockCustomer(_ context.Context, userID int64) error {
	f.locked = append(f.locked, userID)
	return nil
}

type fakeCatalog struct{}

func (fakeCatalog) GetHall(_ context.Context, id int64) (*domain.Hall, error) {
	switch id {
	case 1:
		return &domain.Hall{ID: 1, Name: "Стрижки"}, nil
	case 2:
		return &domain.Hall{ID: 2, Name: "Ногти"}, nil
	}
	return nil, catalogRepo.ErrHallNotFound
}

func (fakeCatalog) GetMaster(_ context.Context, id int64) (*domain.Master, error) {
	switch id {
	case 1:
		return &domain.Master{ID: 1, Name: "Мастер 1", HallID: 1, IsActive: true}, nil
	case 3:
		return &domain.Master{ID: 3, Name: "Мастер (ногти)", HallID: 2, IsActive: true}, nil
	case 4:
		return &domain.Master{ID: 4, Name: "Уволен", HallID: 1, IsActive: false}, nil
	}
	return nil, catalogRepo.ErrMasterNotFound
}

func (fakeCatalog) GetService(_ context.Context, id int64) (*domain.Service, error) {
	switch id {
	case 1:
		return &domain.Service{ID: 1, Name: "Женская стрижка", HallID: 1, Price: 1500}, nil
	case 5:
		return &domain.Service{ID: 5, Name: "Маникюр", HallID: 2, Price: 1500}, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

type fakeInventory struct {
	open     bool
	reserved map[string]int64
}

func (f *fakeInventory) IsDayOpen(context.Context, time.Time) (bool, error) {
	return f.open, nil
}

func (f *fakeInventory) ReserveSlot(_ context.Context, key domain.SlotKey, userID int64) (bool, error) {
	if _, taken := f.reserved[key.String()]; taken {
		return false, nil
	}
	f.reserved[key.String()] = userID
	return true, nil
}

type fakeBlacklist map[int64]bool

func (f fakeBlacklist) IsBlacklisted(_ context.Context, userID int64) (bool, error) {
	return f[userID], nil
}

type fakeScheduler struct {
	requests []reminders.ReminderRequest
	err      error
}

func (f *fakeScheduler) Schedule(_ context.Context, req reminders.ReminderRequest) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.requests = append(f.requests, req)
	return true, nil
}

type fakeAdmins struct{ notified []int64 }

func (f *fakeAdmins) NotifyNewBooking(_ context.Context, b *domain.Booking) {
	f.notified = append(f.notified, b.ID)
}

var msk = time.FixedZone("MSK", 3*60*60)

type testEnv struct {
	uc        *UseCase
	bookings  *fakeBookings
	inventory *fakeInventory
	scheduler *fakeScheduler
	admins    *fakeAdmins
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		bookings:  &fakeBookings{},
		inventory: &fakeInventory{open: true, reserved: map[string]int64{}},
		scheduler: &fakeScheduler{},
		admins:    &fakeAdmins{},
	}
	env.uc = NewUseCase(env.bookings, fakeCatalog{}, env.inventory, fakeBlacklist{666: true},
		env.scheduler, env.admins, fakeTxManager{}, msk, nopLogger{})
	env.uc.timeProvider = fixedTime{now: time.Date(2030, 3, 10, 12, 0, 0, 0, msk)}
	return env
}

func validRequest(userID int64) *Request {
	return &Request{
		UserID:    userID,
		Name:      " Анна ",
		Phone:     "+7 (999) 123-45-67",
		ServiceID: 1,
		HallID:    1,
		MasterID:  1,
		Date:      time.Date(2030, 3, 12, 0, 0, 0, 0, msk),
		Time:      "14:00",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	env := newTestEnv(t)

	booking, err := env.uc.Execute(context.Background(), validRequest(100))
	require.NoError(t, err)

	assert.Equal(t, int64(1), booking.ID)
	assert.Equal(t, "Анна", booking.Name)
	assert.Equal(t, "Женская стрижка", booking.ServiceName)
	assert.Equal(t, "Стрижки", booking.HallName)
	assert.Equal(t, "Мастер 1", booking.MasterName)
	assert.Equal(t, []int64{100}, env.bookings.locked)

	require.Len(t, env.scheduler.requests, 1)
	assert.Equal(t, int64(1), env.scheduler.requests[0].BookingID)
	assert.Equal(t, "Женская стрижка", env.scheduler.requests[0].ServiceName)
	assert.Equal(t, []int64{1}, env.admins.notified)
}

func TestUseCase_Execute_OneActiveBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.Execute(ctx, validRequest(100))
	require.NoError(t, err)

	second := validRequest(100)
	second.Time = "16:00"
	_, err = env.uc.Execute(ctx, second)
	require.ErrorIs(t, err, ErrActiveBookingExists)
	assert.Len(t, env.inventory.reserved, 1)
}

func TestUseCase_Execute_PastBookingDoesNotBlock(t *testing.T) {
	env := newTestEnv(t)
	env.bookings.bookings = append(env.bookings.bookings, &domain.Booking{
		ID: 50, UserID: 100, Date: time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC), Time: "10:00",
	})

	_, err := env.uc.Execute(context.Background(), validRequest(100))
	require.NoError(t, err)
}

func TestUseCase_Execute_SlotContention(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.Execute(ctx, validRequest(100))
	require.NoError(t, err)

	_, err = env.uc.Execute(ctx, validRequest(200))
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, env.bookings.bookings, 1)
	assert.Len(t, env.scheduler.requests, 1)
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(env *testEnv, req *Request)
		wantErr error
	}{
		{
			name:    "blacklisted",
			mutate:  func(_ *testEnv, req *Request) { req.UserID = 666 },
			wantErr: ErrBlacklisted,
		},
		{
			name:    "closed day",
			mutate:  func(env *testEnv, _ *Request) { env.inventory.open = false },
			wantErr: ErrDayNotAvailable,
		},
		{
			name:    "service from another hall",
			mutate:  func(_ *testEnv, req *Request) { req.ServiceID = 5 },
			wantErr: ErrHallMismatch,
		},
		{
			name:    "master from another hall",
			mutate:  func(_ *testEnv, req *Request) { req.MasterID = 3 },
			wantErr: ErrHallMismatch,
		},
		{
			name:    "deactivated master",
			mutate:  func(_ *testEnv, req *Request) { req.MasterID = 4 },
			wantErr: ErrMasterNotFound,
		},
		{
			name:    "unknown service",
			mutate:  func(_ *testEnv, req *Request) { req.ServiceID = 99 },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "unknown hall",
			mutate:  func(_ *testEnv, req *Request) { req.HallID = 99 },
			wantErr: ErrHallNotFound,
		},
		{
			name:    "appointment in the past",
			mutate:  func(_ *testEnv, req *Request) { req.Date = time.Date(2030, 3, 10, 0, 0, 0, 0, msk); req.Time = "11:00" },
			wantErr: ErrTooLateToBook,
		},
		{
			name:    "bad phone",
			mutate:  func(_ *testEnv, req *Request) { req.Phone = "call me" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty name",
			mutate:  func(_ *testEnv, req *Request) { req.Name = "   " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad time",
			mutate:  func(_ *testEnv, req *Request) { req.Time = "9:00" },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := validRequest(100)
			tt.mutate(env, req)

			_, err := env.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, env.bookings.bookings)
			assert.Empty(t, env.scheduler.requests)
		})
	}
}

func TestUseCase_Execute_ScheduleFailureKeepsBooking(t *testing.T) {
	env := newTestEnv(t)
	env.scheduler.err = errors.New("db is down")

	booking, err := env.uc.Execute(context.Background(), validRequest(100))
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.Len(t, env.bookings.bookings, 1)
	assert.Equal(t, []int64{booking.ID}, env.admins.notified)
}
