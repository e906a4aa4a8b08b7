// Package notifier delivers status messages to a Telegram chat through the
// Bot API sendMessage method.
package notifier

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const RequestTimeout = 10 * time.Second

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID string
	logger *zap.Logger
}

// NewTelegram prepares a notifier for chatID, which is either a numeric chat
// id or an @channel username. Unlike tgbotapi.NewBotAPI it does not call getMe,
// so Notify is the only request the notifier makes. An empty endpoint uses
// tgbotapi.APIEndpoint.
func NewTelegram(token, chatID, endpoint string, httpClient *http.Client, logger *zap.Logger) *Telegram {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bot := &tgbotapi.BotAPI{
		Token:  token,
		Client: httpClient,
		Buffer: 100,
	}
	bot.SetAPIEndpoint(endpoint)

	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: logger.Named("telegram"),
	}
}

// Notify sends text with Markdown formatting. A transport failure or a reply
// with ok=false is returned to the caller; there is no retry.
func (t *Telegram) Notify(text string) error {
	msg := t.message(text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	sent, err := t.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("telegram sendMessage to %s: %w", t.chatID, err)
	}

	t.logger.Info("message sent successfully",
		zap.String("chat_id", t.chatID),
		zap.Int("message_id", sent.MessageID),
	)
	return nil
}

func (t *Telegram) message(text string) tgbotapi.MessageConfig {
	if id, err := strconv.ParseInt(t.chatID, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text)
	}
	return tgbotapi.NewMessageToChannel(t.chatID, text)
}
