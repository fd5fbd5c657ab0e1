package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingNotifier struct {
	sent   map[int64][]string
	failed map[int64]bool
}

func (n *recordingNotifier) Send(_ context.Context, userID int64, text string) error {
	if n.failed[userID] {
		return errors.New("chat not found")
	}
	n.sent[userID] = append(n.sent[userID], text)
	return nil
}

func TestService_NotifyNewBooking_BestEffort(t *testing.T) {
	n := &recordingNotifier{sent: map[int64][]string{}, failed: map[int64]bool{1: true}}
	svc := NewService(n, []int64{1, 2}, nopLogger{})

	svc.NotifyNewBooking(context.Background(), &domain.Booking{
		UserID:      42,
		Name:        "Анна <VIP>",
		Phone:       "+79990000000",
		ServiceName: "Маникюр",
		HallName:    "Ногти",
		MasterName:  "Мастер (ногти)",
		Date:        time.Date(2030, 3, 12, 0, 0, 0, 0, time.UTC),
		Time:        "14:00",
	})

	assert.Empty(t, n.sent[1])
	require.Len(t, n.sent[2], 1)
	assert.Contains(t, n.sent[2][0], "Анна &lt;VIP&gt;")
	assert.Contains(t, n.sent[2][0], "12.03.2030 в 14:00")
}

func TestService_SendToClient(t *testing.T) {
	n := &recordingNotifier{sent: map[int64][]string{}, failed: map[int64]bool{13: true}}
	svc := NewService(n, nil, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.SendToClient(ctx, 7, "  Мастер заболел, перезапишитесь  "))
	require.Len(t, n.sent[7], 1)
	assert.True(t, strings.HasSuffix(n.sent[7][0], "Мастер заболел, перезапишитесь"))

	require.ErrorIs(t, svc.SendToClient(ctx, 7, "   "), ErrInvalidInput)
	require.ErrorIs(t, svc.SendToClient(ctx, 7, strings.Repeat("а", domain.MaxMessageLength+1)), ErrInvalidInput)
	require.ErrorIs(t, svc.SendToClient(ctx, 13, "привет"), ErrDeliveryFailed)
}
