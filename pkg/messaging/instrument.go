package messaging

import (
	"context"

	"github.com/healthline/voice-agent/pkg/metrics"
)

// Instrument counts published and failed events around the wrapped broker.
// Either argument being nil returns the broker unwrapped.
func Instrument(next Broker, m *metrics.Metrics) Broker {
	if next == nil || m == nil {
		return next
	}
	return &instrumentedBroker{next: next, m: m}
}

type instrumentedBroker struct {
	next Broker
	m    *metrics.Metrics
}

func (b *instrumentedBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	err := b.next.Publish(ctx, channel, message)
	if err != nil {
		b.m.EventsFailed.Inc()
		return err
	}
	b.m.EventsPublished.Inc()
	return nil
}

func (b *instrumentedBroker) Close() error {
	return b.next.Close()
}
