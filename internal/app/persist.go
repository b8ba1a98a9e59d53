package app

import (
	"context"
	"fmt"

	"github.com/Veraticus/pocket/internal/common"
)

// PersistError reports a write that failed after retrying. The change it
// describes is still applied in memory.
type PersistError struct {
	Err    error
	Target string
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s kept in memory but not saved: %v", e.Target, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Is makes every PersistError match common.ErrPersistFailed.
func (e *PersistError) Is(target error) bool {
	return target == common.ErrPersistFailed
}

func (c *Controller) saveRecords(ctx context.Context) error {
	records := c.records.Records()
	return c.write(ctx, "records", func(ctx context.Context) error {
		return c.persist.SaveRecords(ctx, records)
	})
}

func (c *Controller) saveSettings(ctx context.Context) error {
	settings := c.settings.Clone()
	return c.write(ctx, "settings", func(ctx context.Context) error {
		return c.persist.SaveSettings(ctx, settings)
	})
}

func (c *Controller) saveSnapshot(ctx context.Context) error {
	records := c.records.Records()
	settings := c.settings.Clone()
	return c.write(ctx, "ledger", func(ctx context.Context) error {
		return c.persist.SaveSnapshot(ctx, records, settings)
	})
}

func (c *Controller) write(ctx context.Context, target string, op func(context.Context) error) error {
	err := common.WithRetry(ctx, func() error {
		if err := op(ctx); err != nil {
			return &common.RetryableError{Err: err, Retryable: common.IsRetryable(err)}
		}
		return nil
	}, c.retry)
	if err == nil {
		return nil
	}

	common.LogError(err, "Failed to persist ledger", common.Fields{"target": target})
	return &PersistError{Target: target, Err: err}
}
