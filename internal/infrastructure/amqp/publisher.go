package amqp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	appbilling "github.com/jhoicas/ephone-api/internal/application/billing"
)

var _ appbilling.ApprovalNotifier = (*Publisher)(nil)

// channel es la parte de *amqp091.Channel que usa el publicador.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// EventObserver recibe el resultado de cada publicación ("ok" o "error").
type EventObserver interface {
	ObserveEvent(result string)
}

// Publisher publica InvoiceApproved en un exchange topic.
type Publisher struct {
	conn       *amqp091.Connection
	mu         sync.Mutex // un canal AMQP no es seguro para uso concurrente
	ch         channel
	exchange   string
	routingKey string
	log        zerolog.Logger
	observer   EventObserver
}

// NewPublisher conecta al broker y declara el exchange.
func NewPublisher(url, exchange, routingKey string, log zerolog.Logger, observer EventObserver) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	p := newPublisher(ch, exchange, routingKey, log, observer)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange, routingKey string, log zerolog.Logger, observer EventObserver) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, routingKey: routingKey, log: log, observer: observer}
}

// InvoiceApproved publica el evento como mensaje persistente.
func (p *Publisher) InvoiceApproved(ctx context.Context, ev appbilling.InvoiceApprovedEvent) error {
	msg := NewInvoiceApprovedMessage(ev)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.MessageID,
			Type:         InvoiceApprovedType,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	p.mu.Unlock()
	if err != nil {
		p.observe("error")
		return fmt.Errorf("publish message: %w", err)
	}
	p.observe("ok")

	p.log.Info().
		Str("message_id", msg.MessageID).
		Int64("invoice_id", msg.InvoiceID).
		Str("exchange", p.exchange).
		Str("routing_key", p.routingKey).
		Msg("evento de aprobación publicado")
	return nil
}

func (p *Publisher) observe(result string) {
	if p.observer != nil {
		p.observer.ObserveEvent(result)
	}
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
