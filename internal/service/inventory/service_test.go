package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type countingMetrics struct {
	mu      sync.Mutex
	results map[string]int
}

func (m *countingMetrics) IncSlotReservation(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result]++
}

type fakeSlots struct {
	mu    sync.Mutex
	days  map[string]*domain.WorkingDay
	slots map[string]*domain.TimeSlot
	fail  error
}

func newFakeSlots() *fakeSlots {
	return &fakeSlots{
		days:  make(map[string]*domain.WorkingDay),
		slots: make(map[string]*domain.TimeSlot),
	}
}

func (f *fakeSlots) EnsureWorkingDay(_ context.Context, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := date.Format(domain.DateFormat)
	if _, ok := f.days[k]; ok {
		return false, nil
	}
	f.days[k] = &domain.WorkingDay{ID: int64(len(f.days) + 1), Date: date}
	return true, nil
}

func (f *fakeSlots) SetDayClosed(ctx context.Context, date time.Time, closed bool) error {
	_, _ = f.EnsureWorkingDay(ctx, date)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days[date.Format(domain.DateFormat)].IsClosed = closed
	return nil
}

func (f *fakeSlots) GetWorkingDay(_ context.Context, date time.Time) (*domain.WorkingDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day, ok := f.days[date.Format(domain.DateFormat)]
	if !ok {
		return nil, slotRepo.ErrDayNotFound
	}
	return day, nil
}

func (f *fakeSlots) DeleteWorkingDay(_ context.Context, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := date.Format(domain.DateFormat)
	if _, ok := f.days[k]; !ok {
		return slotRepo.ErrDayNotFound
	}
	delete(f.days, k)
	for sk, s := range f.slots {
		if s.Date.Format(domain.DateFormat) == k {
			delete(f.slots, sk)
		}
	}
	return nil
}

func (f *fakeSlots) ListOpenDays(_ context.Context, from, to time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var days []time.Time
	for _, d := range f.days {
		if !d.IsClosed && !d.Date.Before(from) && !d.Date.After(to) {
			days = append(days, d.Date)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

func (f *fakeSlots) CreateSlots(_ context.Context, date time.Time, times []types.TimeString, masterIDs []int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := 0
	for _, m := range masterIDs {
		for _, tm := range times {
			key := domain.SlotKey{Date: date, Time: tm, MasterID: m}
			if _, ok := f.slots[key.String()]; ok {
				continue
			}
			f.slots[key.String()] = &domain.TimeSlot{Date: date, Time: tm, MasterID: m}
			created++
		}
	}
	return created, nil
}

func (f *fakeSlots) GetSlot(_ context.Context, key domain.SlotKey) (*domain.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[key.String()]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSlots) DeleteSlot(_ context.Context, key domain.SlotKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[key.String()]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(f.slots, key.String())
	return nil
}

func (f *fakeSlots) ListAvailableTimes(_ context.Context, date time.Time, masterID int64) ([]types.TimeString, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	times := make([]types.TimeString, 0)
	for _, s := range f.slots {
		if s.MasterID == masterID && s.Date.Equal(date) && !s.IsBooked {
			times = append(times, s.Time)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times, nil
}

func (f *fakeSlots) ListByDate(_ context.Context, date time.Time) ([]*domain.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var slots []*domain.TimeSlot
	for _, s := range f.slots {
		if s.Date.Equal(date) {
			slots = append(slots, s)
		}
	}
	return slots, nil
}

func (f *fakeSlots) Reserve(_ context.Context, key domain.SlotKey, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return false, f.fail
	}
	s, ok := f.slots[key.String()]
	if !ok || s.IsBooked {
		return false, nil
	}
	s.IsBooked = true
	s.BookedBy = &userID
	return true, nil
}

func (f *fakeSlots) Release(_ context.Context, key domain.SlotKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.slots[key.String()]; ok {
		s.IsBooked = false
		s.BookedBy = nil
	}
	return nil
}

type fakeBookings struct{ byDate map[string]int }

func (f fakeBookings) CountByDate(_ context.Context, date time.Time) (int, error) {
	return f.byDate[date.Format(domain.DateFormat)], nil
}

type fakeMasters struct{ masters []*domain.Master }

func (f fakeMasters) ListActiveMasters(_ context.Context, _ *int64) ([]*domain.Master, error) {
	var active []*domain.Master
	for _, m := range f.masters {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active, nil
}

func (f fakeMasters) GetMaster(_ context.Context, id int64) (*domain.Master, error) {
	for _, m := range f.masters {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, catalogRepo.ErrMasterNotFound
}

type testEnv struct {
	svc      *Service
	slots    *fakeSlots
	bookings fakeBookings
	metrics  *countingMetrics
}

var (
	msk  = time.FixedZone("MSK", 3*60*60)
	day1 = time.Date(2030, 3, 10, 0, 0, 0, 0, msk)
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		slots:    newFakeSlots(),
		bookings: fakeBookings{byDate: map[string]int{}},
		metrics:  &countingMetrics{results: map[string]int{}},
	}
	masters := fakeMasters{masters: []*domain.Master{
		{ID: 1, Name: "Мастер 1", HallID: 1, IsActive: true},
		{ID: 2, Name: "Мастер 2", HallID: 1, IsActive: true},
		{ID: 3, Name: "Уволен", HallID: 2, IsActive: false},
	}}

	env.svc = NewService(
		env.slots,
		env.bookings,
		masters,
		fakeTxManager{},
		env.metrics,
		config.InventoryConfig{OpenHour: 10, CloseHour: 19, HorizonDays: 30},
		msk,
		nopLogger{},
	)
	env.svc.timeProvider = fixedTime{now: time.Date(2030, 3, 9, 22, 30, 0, 0, time.UTC)}
	return env
}

func TestService_AddWorkingDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.AddWorkingDay(ctx, day1)
	require.NoError(t, err)
	assert.Equal(t, 20, created, "10 hourly slots for each of 2 active masters")

	again, err := env.svc.AddWorkingDay(ctx, day1)
	require.NoError(t, err)
	assert.Zero(t, again)

	times, err := env.svc.ListAvailableSlots(ctx, day1, 1)
	require.NoError(t, err)
	require.Len(t, times, 10)
	assert.Equal(t, types.TimeString("10:00"), times[0])
	assert.Equal(t, types.TimeString("19:00"), times[9])

	none, err := env.svc.ListAvailableSlots(ctx, day1, 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_ListAvailableSlots_ClosedOrMissingDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	times, err := env.svc.ListAvailableSlots(ctx, day1, 1)
	require.NoError(t, err)
	assert.NotNil(t, times)
	assert.Empty(t, times)

	_, err = env.svc.AddWorkingDay(ctx, day1)
	require.NoError(t, err)
	require.NoError(t, env.svc.CloseDay(ctx, day1, true))

	times, err = env.svc.ListAvailableSlots(ctx, day1, 1)
	require.NoError(t, err)
	assert.Empty(t, times)

	require.NoError(t, env.svc.CloseDay(ctx, day1, false))
	times, err = env.svc.ListAvailableSlots(ctx, day1, 1)
	require.NoError(t, err)
	assert.Len(t, times, 10)
}

func TestService_ReserveAndRelease(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.AddWorkingDay(ctx, day1)
	require.NoError(t, err)

	key := domain.SlotKey{Date: day1, Time: "12:00", MasterID: 1}

	ok, err := env.svc.ReserveSlot(ctx, key, 100)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.svc.ReserveSlot(ctx, key, 200)
	require.NoError(t, err)
	assert.False(t, ok, "second reservation of the same slot must lose")

	times, err := env.svc.ListAvailableSlots(ctx, day1, 1)
	require.NoError(t, err)
	assert.NotContains(t, times, types.TimeString("12:00"))

	require.NoError(t, env.svc.ReleaseSlot(ctx, key))
	ok, err = env.svc.ReserveSlot(ctx, key, 200)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 2, env.metrics.results[metrics.ReservationReserved])
	assert.Equal(t, 1, env.metrics.results[metrics.ReservationTaken])
}

func TestService_ReserveSlot_ConcurrentSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.AddWorkingDay(ctx, day1)
	require.NoError(t, err)

	key := domain.SlotKey{Date: day1, Time: "15:00", MasterID: 2}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			ok, err := env.svc.ReserveSlot(ctx, key, user)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestService_ReserveSlot_StorageError(t *testing.T) {
	env := newTestEnv(t)
	env.slots.fail = errors.New("connection reset")

	ok, err := env.svc.ReserveSlot(context.Background(), domain.SlotKey{Date: day1, Time: "10:00", MasterID: 1}, 1)
	require.ErrorIs(t, err, ErrInternal)
	assert.False(t, ok)
	assert.Equal(t, 1, env.metrics.results[metrics.ReservationError])
}

func TestService_RemoveWorkingDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.ErrorIs(t, env.svc.RemoveWorkingDay(ctx, day1), ErrDayNotFound)

	_, err := env.svc.AddWorkingDay(ctx, day1)
	require.NoError(t, err)

	env.bookings.byDate[day1.Format(domain.DateFormat)] = 1
	require.ErrorIs(t, env.svc.RemoveWorkingDay(ctx, day1), ErrDayHasBookings)

	env.bookings.byDate[day1.Format(domain.DateFormat)] = 0
	require.NoError(t, env.svc.RemoveWorkingDay(ctx, day1))

	slots, err := env.svc.ListDaySlots(ctx, day1)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestService_ManualSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	key := domain.SlotKey{Date: day1, Time: "20:30", MasterID: 1}

	require.NoError(t, env.svc.AddTimeSlot(ctx, key))
	require.ErrorIs(t, env.svc.AddTimeSlot(ctx, domain.SlotKey{Date: day1, Time: "20:30", MasterID: 3}), ErrMasterNotFound)
	require.ErrorIs(t, env.svc.AddTimeSlot(ctx, domain.SlotKey{Date: day1, Time: "25:00", MasterID: 1}), ErrInvalidInput)

	ok, err := env.svc.ReserveSlot(ctx, key, 7)
	require.NoError(t, err)
	require.True(t, ok)
	require.ErrorIs(t, env.svc.RemoveTimeSlot(ctx, key), ErrSlotBooked)

	require.NoError(t, env.svc.ReleaseSlot(ctx, key))
	require.NoError(t, env.svc.RemoveTimeSlot(ctx, key))
	require.ErrorIs(t, env.svc.RemoveTimeSlot(ctx, key), ErrSlotNotFound)
}

func TestService_ListWorkingDays(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 22:30 UTC 9 марта = 01:30 MSK 10 марта
	assert.Equal(t, day1, env.svc.Today())

	past := day1.AddDate(0, 0, -1)
	closed := day1.AddDate(0, 0, 2)
	far := day1.AddDate(0, 0, 31)
	for _, d := range []time.Time{past, day1, day1.AddDate(0, 0, 1), closed, far} {
		_, err := env.svc.AddWorkingDay(ctx, d)
		require.NoError(t, err)
	}
	require.NoError(t, env.svc.CloseDay(ctx, closed, true))

	days, err := env.svc.ListWorkingDays(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day1, day1.AddDate(0, 0, 1)}, days)

	days, err = env.svc.ListWorkingDays(ctx, 40)
	require.NoError(t, err)
	assert.Len(t, days, 3)
}
