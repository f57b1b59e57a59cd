package middleware

import (
	"context"

	"farmstay/internal/app/commands"
	"farmstay/internal/app/outbox"
)

// OutboxFlush publishes buffered domain events after a command succeeds. It
// must wrap Transaction, not the other way around: flushing only starts once
// the inner middleware has committed, so a failed commit never leaks events.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			res, err := nextFn(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				return nil, err
			}
			return res, nil
		})
	}
}
