package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-bankledger/events"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs    []kafka.Message
	batches int
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.batches++
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEncodesEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w, topic: "ledger_events"}

	amount := decimal.RequireFromString("12.34")
	ev := events.New(events.TransactionPosted, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ev.AccountNumber = "1000"
	ev.TransactionID = 7
	ev.Amount = &amount

	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "1000", string(msg.Key))
	assert.Equal(t, ev.OccurredAt, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, events.TransactionPosted, string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev.ID, decoded["event_id"])
	assert.Equal(t, "12.34", decoded["amount"])
	assert.EqualValues(t, 7, decoded["transaction_id"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &Publisher{writer: &fakeWriter{err: boom}, topic: "ledger_events"}
	err := p.Publish(context.Background(), events.New(events.AccountOpened, time.Now()))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "ledger_events")
}

func TestPublishWritesOneBatch(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w, topic: "ledger_events"}

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	debit := events.New(events.TransactionPosted, at)
	debit.AccountNumber = "1000"
	credit := events.New(events.TransactionPosted, at)
	credit.AccountNumber = "1001"

	require.NoError(t, p.Publish(context.Background(), debit, credit))
	assert.Equal(t, 1, w.batches)
	require.Len(t, w.msgs, 2)
	assert.Equal(t, "1000", string(w.msgs[0].Key))
	assert.Equal(t, "1001", string(w.msgs[1].Key))

	require.NoError(t, p.Publish(context.Background()))
	assert.Equal(t, 1, w.batches)
}
