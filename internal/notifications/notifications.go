// Package notifications delivers human-readable event messages to the
// user. Delivery is fire-and-forget: the ledger and the recurring
// processor do not depend on a notification reaching anyone.
package notifications

import (
	"context"

	"github.com/rs/zerolog/log"
)

// A Sink receives event messages. Implementations must not block the
// caller on delivery and must swallow delivery errors after logging them.
type Sink interface {
	Send(ctx context.Context, subject, body string)
}

// LogSink writes notifications to the application log. It is the default
// sink when no mail delivery is configured.
type LogSink struct{}

func (LogSink) Send(_ context.Context, subject, body string) {
	log.Info().Str("subject", subject).Msg(body)
}

// MultiSink fans one notification out to several sinks.
type MultiSink []Sink

func (m MultiSink) Send(ctx context.Context, subject, body string) {
	for _, sink := range m {
		sink.Send(ctx, subject, body)
	}
}
