package repositories

import "context"

// SequenceRepository hands out monotonically increasing numbers per scope.
type SequenceRepository interface {
	// NextValue atomically reserves and returns the next number for scope, starting at 1.
	NextValue(ctx context.Context, scope string) (int64, error)
}
