package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/review"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReviews struct {
	items  []*domain.Review
	nextID int64
}

func (f *fakeReviews) Create(_ context.Context, r *domain.Review) (*domain.Review, error) {
	f.nextID++
	r.ID = f.nextID
	f.items = append(f.items, r)
	return r, nil
}

func (f *fakeReviews) ExistsForBooking(_ context.Context, userID int64, bookingID *int64) (bool, error) {
	for _, r := range f.items {
		if r.UserID != userID {
			continue
		}
		if bookingID == nil && r.BookingID == nil {
			return true, nil
		}
		if bookingID != nil && r.BookingID != nil && *r.BookingID == *bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviews) List(_ context.Context, limit int, rating *int) ([]*domain.Review, error) {
	out := make([]*domain.Review, 0)
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		if rating == nil || f.items[i].Rating == *rating {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeReviews) Average(context.Context, *int64) (*domain.RatingSummary, error) {
	return &domain.RatingSummary{}, nil
}

func (f *fakeReviews) Stats(context.Context) ([]domain.RatingBucket, error) { return nil, nil }

func (f *fakeReviews) Delete(_ context.Context, id int64) error {
	for i, r := range f.items {
		if r.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return reviewRepo.ErrReviewNotFound
}

type fakeBookings map[int64]*domain.Booking

func (f fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

type recordingAdmins struct {
	messages []string
}

func (a *recordingAdmins) NotifyAdmins(_ context.Context, text string) {
	a.messages = append(a.messages, text)
}

func newTestService() (*Service, *fakeReviews, *recordingAdmins) {
	repo := &fakeReviews{}
	admins := &recordingAdmins{}
	bookings := fakeBookings{7: {ID: 7, UserID: 42}}
	return NewService(repo, bookings, admins, nopLogger{}), repo, admins
}

func TestService_Add(t *testing.T) {
	svc, repo, admins := newTestService()
	ctx := context.Background()

	review, err := svc.Add(ctx, &AddRequest{UserID: 42, Name: " Анна ", Rating: 5, Text: "Отлично", BookingID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	assert.Equal(t, "Анна", review.Name)
	assert.Len(t, repo.items, 1)
	assert.Empty(t, admins.messages)

	_, err = svc.Add(ctx, &AddRequest{UserID: 42, Name: "Анна", Rating: 4, BookingID: ptr.Ptr(int64(7))})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestService_Add_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *AddRequest
		err  error
	}{
		{name: "rating too low", req: &AddRequest{UserID: 42, Name: "Анна", Rating: 0}, err: ErrInvalidRating},
		{name: "rating too high", req: &AddRequest{UserID: 42, Name: "Анна", Rating: 6}, err: ErrInvalidRating},
		{name: "empty name", req: &AddRequest{UserID: 42, Name: "  ", Rating: 5}, err: ErrInvalidInput},
		{name: "unknown booking", req: &AddRequest{UserID: 42, Name: "Анна", Rating: 5, BookingID: ptr.Ptr(int64(99))}, err: ErrBookingNotFound},
		{name: "foreign booking", req: &AddRequest{UserID: 13, Name: "Иван", Rating: 5, BookingID: ptr.Ptr(int64(7))}, err: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.req)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestService_Add_LowRatingNotifiesAdmins(t *testing.T) {
	svc, _, admins := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, &AddRequest{UserID: 42, Name: "<Анна>", Rating: domain.LowRatingThreshold})
	require.NoError(t, err)
	require.Len(t, admins.messages, 1)
	assert.Contains(t, admins.messages[0], "&lt;Анна&gt;")
	assert.Contains(t, admins.messages[0], "Без комментария")

	// Отзывы без записи могут повторяться
	_, err = svc.Add(ctx, &AddRequest{UserID: 42, Name: "Анна", Rating: 1, Text: "Плохо"})
	require.NoError(t, err)
	assert.Len(t, admins.messages, 2)
}

func TestService_ListAndDelete(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, rating := range []int{5, 4, 5} {
		_, err := svc.Add(ctx, &AddRequest{UserID: 42, Name: "Анна", Rating: rating})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, 0, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	fives, err := svc.List(ctx, 10, ptr.Ptr(5))
	require.NoError(t, err)
	assert.Len(t, fives, 2)

	_, err = svc.List(ctx, 10, ptr.Ptr(9))
	assert.ErrorIs(t, err, ErrInvalidRating)

	require.NoError(t, svc.Delete(ctx, all[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, all[0].ID), ErrReviewNotFound)
}
