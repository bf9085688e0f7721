package scheduler

import "context"

// Store is the user's scheduled-task table. List returns a snapshot of all
// lines in their current order; a user with no table yet gets an empty
// snapshot, not an error. Replace swaps in the whole table as one write.
type Store interface {
	List(ctx context.Context) ([]string, error)
	Replace(ctx context.Context, lines []string) error
}
