package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MikeMC777/cafelove/internal/order"
)

func sampleOrder() order.Order {
	return order.Order{
		ID:     "o-1",
		UserID: "u-1",
		Items: []order.Item{
			{MenuItemID: 1, Title: "Espresso", Price: "2.50", Quantity: 2, Address: "Main St 1"},
			{MenuItemID: 101, Title: "Croissant", Price: "2.00", Quantity: 1, Address: "Elm St 2"},
		},
		Total:         "7.00",
		Status:        order.StatusPending,
		PaymentMethod: order.PaymentCashOnDelivery,
		CreatedAt:     time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}
}

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error { return nil }

func TestAMQPPublisher_OrderPlaced(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch}

	if err := p.OrderPlaced(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if ch.exchange != OrdersExchange || ch.key != OrderPlacedRoutingKey {
		t.Fatalf("routed to %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.DeliveryMode != amqp.Persistent || ch.msg.ContentType != "application/json" || ch.msg.MessageId != "o-1" {
		t.Fatalf("publishing=%+v", ch.msg)
	}
	var ev OrderPlacedEvent
	if err := json.Unmarshal(ch.msg.Body, &ev); err != nil {
		t.Fatalf("body: %v", err)
	}
	if ev.OrderID != "o-1" || ev.Total != "7.00" || len(ev.Items) != 2 {
		t.Fatalf("event=%+v", ev)
	}
}

func TestAMQPPublisher_PropagatesError(t *testing.T) {
	p := &AMQPPublisher{ch: &fakeChannel{err: errors.New("channel closed")}}
	if err := p.OrderPlaced(context.Background(), sampleOrder()); err == nil {
		t.Fatalf("expected error")
	}
}

type fakeBot struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramNotifier_SendsToAdminChat(t *testing.T) {
	bot := &fakeBot{}
	n := &TelegramNotifier{bot: bot, chatID: 42}

	if err := n.OrderPlaced(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("sent=%d", len(bot.sent))
	}
	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("unexpected chattable %T", bot.sent[0])
	}
	if msg.ChatID != 42 {
		t.Fatalf("chat=%d", msg.ChatID)
	}
	if !strings.Contains(msg.Text, "Espresso x2") || !strings.Contains(msg.Text, "Total: $7.00") {
		t.Fatalf("text=%q", msg.Text)
	}
}

func TestTelegramNotifier_CanceledContext(t *testing.T) {
	bot := &fakeBot{}
	n := &TelegramNotifier{bot: bot, chatID: 42}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.OrderPlaced(ctx, sampleOrder()); err == nil {
		t.Fatalf("expected context error")
	}
	if len(bot.sent) != 0 {
		t.Fatalf("should not send after cancel")
	}
}

func TestFormatOrderMessage(t *testing.T) {
	got := FormatOrderMessage(sampleOrder())
	want := "New order o-1\n" +
		"- Espresso x2 (2.50) -> Main St 1\n" +
		"- Croissant x1 (2.00) -> Elm St 2\n" +
		"Total: $7.00 (cash on delivery)"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

type countingNotifier struct {
	calls int
	err   error
}

func (c *countingNotifier) OrderPlaced(context.Context, order.Order) error {
	c.calls++
	return c.err
}

func TestMulti_CallsAllAndJoinsErrors(t *testing.T) {
	a := &countingNotifier{err: errors.New("a failed")}
	b := &countingNotifier{}
	c := &countingNotifier{err: errors.New("c failed")}

	err := Multi{a, b, c, Nop{}}.OrderPlaced(context.Background(), sampleOrder())
	if a.calls != 1 || b.calls != 1 || c.calls != 1 {
		t.Fatalf("calls a=%d b=%d c=%d", a.calls, b.calls, c.calls)
	}
	if err == nil || !strings.Contains(err.Error(), "a failed") || !strings.Contains(err.Error(), "c failed") {
		t.Fatalf("err=%v", err)
	}
	if err := (Multi{b}).OrderPlaced(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("err=%v", err)
	}
}
