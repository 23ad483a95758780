// Package alert fans detected trades out to the configured notification
// channels. Channels fail independently: one channel's error never blocks
// another channel or another trade. There is no retry: the ledger claim
// already happened at detection time, so a trade whose delivery fails on
// every channel stays undelivered rather than alerted twice.
package alert

import (
	"context"

	"go.uber.org/zap"

	"longshotwatch/internal/detector"
)

// Notifier is one outbound channel. Send reports delivery success for a
// single trade; errors are expected and isolated by the dispatcher.
type Notifier interface {
	Name() string
	Send(ctx context.Context, trade detector.DetectedTrade) error
}

type Dispatcher struct {
	Channels []Notifier
	Logger   *zap.Logger
}

// Dispatch attempts every channel for every trade and returns the number of
// trades delivered on at least one channel.
func (d *Dispatcher) Dispatch(ctx context.Context, trades []detector.DetectedTrade) int {
	if d == nil || len(trades) == 0 {
		return 0
	}
	delivered := 0
	for _, trade := range trades {
		ok := false
		for _, ch := range d.Channels {
			if err := ch.Send(ctx, trade); err != nil {
				d.logWarn("alert delivery failed",
					zap.String("channel", ch.Name()),
					zap.String("tx", trade.TransactionHash),
					zap.Error(err))
				continue
			}
			ok = true
			d.logInfo("alert delivered",
				zap.String("channel", ch.Name()),
				zap.String("tx", trade.TransactionHash))
		}
		if ok {
			delivered++
		}
	}
	return delivered
}

func (d *Dispatcher) logInfo(msg string, fields ...zap.Field) {
	if d.Logger != nil {
		d.Logger.Info(msg, fields...)
	}
}

func (d *Dispatcher) logWarn(msg string, fields ...zap.Field) {
	if d.Logger != nil {
		d.Logger.Warn(msg, fields...)
	}
}
