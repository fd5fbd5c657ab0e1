package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client отправка сообщений через Telegram Bot API
type Client struct {
	api BotAPI
	log Logger
}

// NewClient создает клиента Bot API с таймаутом HTTP запросов
func NewClient(token string, timeout time.Duration, log Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create bot api: %v", ErrInternal, err)
	}

	log.Info("Telegram bot authorized as @%s", api.Self.UserName)
	return NewClientWithAPI(api, log), nil
}

// NewClientWithAPI создает клиента поверх готового BotAPI
func NewClientWithAPI(api BotAPI, log Logger) *Client {
	return &Client{api: api, log: log}
}

// Send отправляет HTML сообщение в чат пользователя
func (c *Client) Send(ctx context.Context, userID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := c.api.Send(msg); err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusForbidden || apiErr.Code == http.StatusBadRequest) {
			c.log.Warn("Telegram: user=%d unavailable: %s", userID, apiErr.Message)
			return fmt.Errorf("%w: %s", ErrRecipientUnavailable, apiErr.Message)
		}
		return fmt.Errorf("%w: failed to send message: %v", ErrInternal, err)
	}

	return nil
}

// LogNotifier пишет сообщения в лог, когда токен бота не задан
type LogNotifier struct {
	log Logger
}

func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, userID int64, text string) error {
	n.log.Info("Notification to user=%d: %s", userID, text)
	return nil
}
