// Package sequences hands out monotonic counter values that are never
// reused, even after a failed unit of work.
package sequences

import "context"

// ServerID names the sequence behind generated server identifiers.
const ServerID = "server_id"

type Repository interface {
	Next(ctx context.Context, name string) (int64, error)
}
