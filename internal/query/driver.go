package query

import (
	"context"

	"github.com/standardbeagle/extentix/internal/extent"
	"github.com/standardbeagle/extentix/internal/xerrors"
)

// DefaultBatchSize bounds how many extents each NextN batch inside Run
// pulls; Run checks ctx between batches (cooperative cancellation: the
// iterators themselves never poll ctx).
const DefaultBatchSize = 256

// Driver runs a compiled extent.List to completion (or to a caller-chosen
// limit), streaming results to a Sink and checking ctx between batches.
type Driver struct {
	list      extent.List
	batchSize int
}

// NewDriver wraps a compiled iterator tree for streaming execution.
func NewDriver(list extent.List) *Driver {
	return &Driver{list: list, batchSize: DefaultBatchSize}
}

// WithBatchSize overrides the batch size used between cancellation checks.
func (d *Driver) WithBatchSize(n int) *Driver {
	if n > 0 {
		d.batchSize = n
	}
	return d
}

// Sink receives matching extents as the driver walks the list. Returning
// false stops the run early (the caller has enough results), distinct
// from ctx cancellation (the caller gave up).
type Sink func(extent.Extent) bool

// Run streams every extent of the compiled list in [lo, hi] to sink, in
// increasing Start order, checking ctx for cancellation once per batch
// rather than once per extent.
func (d *Driver) Run(ctx context.Context, lo, hi int64, sink Sink) error {
	pos := lo
	for {
		select {
		case <-ctx.Done():
			return &xerrors.CanceledError{Op: "query.Run", Err: ctx.Err()}
		default:
		}
		batch := d.list.NextN(pos, hi, d.batchSize)
		if len(batch) == 0 {
			return nil
		}
		for _, e := range batch {
			if !sink(e) {
				return nil
			}
		}
		pos = batch[len(batch)-1].Start + 1
	}
}

// Collect runs the driver and returns up to limit matching extents (0
// means unbounded, bounded only by [lo,hi] and ctx cancellation).
func (d *Driver) Collect(ctx context.Context, lo, hi int64, limit int) ([]extent.Extent, error) {
	var out []extent.Extent
	err := d.Run(ctx, lo, hi, func(e extent.Extent) bool {
		out = append(out, e)
		return limit <= 0 || len(out) < limit
	})
	return out, err
}

// Count runs the driver purely for its result count, without retaining
// the matched extents.
func (d *Driver) Count(ctx context.Context, lo, hi int64) (int64, error) {
	var n int64
	err := d.Run(ctx, lo, hi, func(extent.Extent) bool {
		n++
		return true
	})
	return n, err
}
