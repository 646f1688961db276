package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MikeMC777/cafelove/internal/order"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts a summary of each order to the admin chat.
type TelegramNotifier struct {
	bot    botSender
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) OrderPlaced(ctx context.Context, o order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, FormatOrderMessage(o))); err != nil {
		return fmt.Errorf("telegram send order %s: %w", o.ID, err)
	}
	return nil
}

// FormatOrderMessage renders the plain-text admin notification.
func FormatOrderMessage(o order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s\n", o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s x%d (%s) -> %s\n", it.Title, it.Quantity, it.Price, it.Address)
	}
	fmt.Fprintf(&b, "Total: $%s (%s)", o.Total, o.PaymentMethod)
	return b.String()
}
