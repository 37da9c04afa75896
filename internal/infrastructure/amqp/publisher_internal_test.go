package amqp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/ephone-api/internal/application/billing"
)

type fakeChannel struct {
	exchange, key string
	msgs          []amqp091.Publishing
	err           error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange, f.key = exchange, key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

type countingObserver map[string]int

func (c countingObserver) ObserveEvent(result string) { c[result]++ }

func TestPublisher_InvoiceApproved(t *testing.T) {
	ch := &fakeChannel{}
	obs := countingObserver{}
	p := newPublisher(ch, "ephone.billing", "invoice.approved", zerolog.Nop(), obs)

	ev := appbilling.InvoiceApprovedEvent{
		InvoiceID: 1, SectorID: 3, SectorName: "Unidade Norte", Month: 6, Year: 2024,
		Total: decimal.RequireFromString("129.90"), ApprovedAt: time.Date(2024, 6, 28, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.InvoiceApproved(context.Background(), ev))

	require.Len(t, ch.msgs, 1)
	assert.Equal(t, "ephone.billing", ch.exchange)
	assert.Equal(t, "invoice.approved", ch.key)
	assert.Equal(t, InvoiceApprovedType, ch.msgs[0].Type)
	assert.NotEmpty(t, ch.msgs[0].MessageId)

	got, err := InvoiceApprovedMessageFromJSON(ch.msgs[0].Body)
	require.NoError(t, err)
	assert.Equal(t, ch.msgs[0].MessageId, got.MessageID)
	assert.True(t, ev.Total.Equal(got.Total))
	assert.Equal(t, 1, obs["ok"])
}

func TestPublisher_ErrorDelBroker(t *testing.T) {
	obs := countingObserver{}
	p := newPublisher(&fakeChannel{err: errors.New("channel closed")}, "x", "y", zerolog.Nop(), obs)
	err := p.InvoiceApproved(context.Background(), appbilling.InvoiceApprovedEvent{})
	assert.Error(t, err)
	assert.Equal(t, 1, obs["error"])
}
