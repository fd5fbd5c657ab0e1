package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAPI struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestClient_Send(t *testing.T) {
	api := &fakeAPI{}
	client := NewClientWithAPI(api, nopLogger{})

	require.NoError(t, client.Send(context.Background(), 42, "<b>hi</b>"))
	require.Len(t, api.sent, 1)
	assert.Equal(t, int64(42), api.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, api.sent[0].ParseMode)
	assert.Equal(t, "<b>hi</b>", api.sent[0].Text)
}

func TestClient_SendErrors(t *testing.T) {
	api := &fakeAPI{err: &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}}
	client := NewClientWithAPI(api, nopLogger{})

	err := client.Send(context.Background(), 42, "text")
	require.ErrorIs(t, err, ErrRecipientUnavailable)

	api.err = errors.New("dial tcp: i/o timeout")
	err = client.Send(context.Background(), 42, "text")
	require.ErrorIs(t, err, ErrInternal)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	api.err = nil
	require.ErrorIs(t, client.Send(ctx, 42, "text"), ErrInternal)
	assert.Empty(t, api.sent)
}
