package messaging

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthline/voice-agent/pkg/metrics"
)

type stubBroker struct {
	err       error
	published int
	closed    bool
}

func (b *stubBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	if b.err != nil {
		return b.err
	}
	b.published++
	return nil
}

func (b *stubBroker) Close() error {
	b.closed = true
	return nil
}

func TestInstrumentCountsPublishes(t *testing.T) {
	m := metrics.NewWith(prometheus.NewRegistry(), "test")
	inner := &stubBroker{}
	broker := Instrument(inner, m)

	require.NoError(t, broker.Publish(context.Background(), "calls.appointments", "payload"))
	require.NoError(t, broker.Publish(context.Background(), "calls.refills", "payload"))

	assert.Equal(t, 2, inner.published)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsPublished))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EventsFailed))
}

func TestInstrumentCountsFailures(t *testing.T) {
	m := metrics.NewWith(prometheus.NewRegistry(), "test")
	broker := Instrument(&stubBroker{err: assert.AnError}, m)

	require.Error(t, broker.Publish(context.Background(), "calls.appointments", "payload"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsFailed))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EventsPublished))
}

func TestInstrumentDelegatesClose(t *testing.T) {
	m := metrics.NewWith(prometheus.NewRegistry(), "test")
	inner := &stubBroker{}
	broker := Instrument(inner, m)

	require.NoError(t, broker.Close())
	assert.True(t, inner.closed)
}

func TestInstrumentNilReturnsUnwrapped(t *testing.T) {
	inner := &stubBroker{}
	assert.Equal(t, Broker(inner), Instrument(inner, nil))
	assert.Nil(t, Instrument(nil, metrics.NewWith(prometheus.NewRegistry(), "test")))
}
