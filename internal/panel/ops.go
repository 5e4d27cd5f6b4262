package panel

import (
	"context"
	"fmt"
	"time"

	"smartdir/internal/directory"
)

// MutationResult is what a mutation reports before the reload that always
// follows it.
type MutationResult struct {
	Op   string
	ID   string
	Took time.Duration
	Err  error
}

// Delete removes id. The caller reloads whatever the outcome.
func Delete(ctx context.Context, d Deleter, id string) MutationResult {
	start := time.Now()
	err := d.Delete(ctx, id)
	if err != nil {
		err = fmt.Errorf("delete %s: %w", id, err)
	}
	return MutationResult{Op: "delete", ID: id, Took: time.Since(start), Err: err}
}

// Clear removes every record. The caller reloads whatever the outcome.
func Clear(ctx context.Context, c Clearer) MutationResult {
	start := time.Now()
	err := c.Clear(ctx)
	if err != nil {
		err = fmt.Errorf("clear: %w", err)
	}
	return MutationResult{Op: "clear", Took: time.Since(start), Err: err}
}

// Save creates the draft when editingID is empty and updates editingID
// otherwise. Exactly one request is issued.
func Save[T directory.Record](ctx context.Context, s Saver[T], editingID string, draft T) MutationResult {
	start := time.Now()
	if editingID == "" {
		err := s.Create(ctx, draft)
		if err != nil {
			err = fmt.Errorf("create: %w", err)
		}
		return MutationResult{Op: "create", Took: time.Since(start), Err: err}
	}
	err := s.Update(ctx, editingID, draft)
	if err != nil {
		err = fmt.Errorf("update %s: %w", editingID, err)
	}
	return MutationResult{Op: "update", ID: editingID, Took: time.Since(start), Err: err}
}
