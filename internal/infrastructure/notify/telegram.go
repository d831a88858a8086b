package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rvc-001/planning-sub000/internal/domain/repository"
)

// TelegramNotifier posts stage completions to a planning group chat,
// optionally into a topic thread. It is strictly best effort: callers log
// failures and move on.
type TelegramNotifier struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	threadID int
}

// NewTelegramNotifier connects the bot. chatID 0 means notifications are
// off; callers should skip constructing the notifier in that case.
func NewTelegramNotifier(token string, chatID int64, threadID int) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, threadID: threadID}, nil
}

var _ repository.Notifier = (*TelegramNotifier)(nil)

func (n *TelegramNotifier) NotifyStageDone(_ context.Context, page, jobCardNo, summary string) error {
	if n.bot == nil || n.chatID == 0 {
		return nil
	}
	text := fmt.Sprintf("✅ %s\nJob card: %s\nPage: %s", summary, jobCardNo, page)

	// MessageConfig carries no topic field, so thread-targeted sends go
	// through raw params.
	if n.threadID > 0 {
		params := make(tgbotapi.Params)
		params.AddNonZero64("chat_id", n.chatID)
		params.AddNonZero("message_thread_id", n.threadID)
		params.AddNonEmpty("text", text)
		_, err := n.bot.MakeRequest("sendMessage", params)
		return err
	}

	_, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text))
	return err
}
