// Package serverid produces the human readable server identifiers
// (SRV-<year>-<seq>) used by batch creation.
package serverid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/sequences"
)

const Prefix = "SRV"

// maxSkips bounds how many already taken identifiers Next steps over.
const maxSkips = 1000

// Format renders an identifier. seq is padded to at least three digits.
func Format(year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%03d", Prefix, year, seq)
}

// SerialLookup finds a server by its identifier.
type SerialLookup interface {
	GetBySerial(ctx context.Context, serverID string) (*models.Server, error)
}

// Generator draws values from the server_id sequence. The year part comes
// from Now; the counter is not reset when the year changes.
type Generator struct {
	Now func() time.Time
}

func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{Now: now}
}

// Next returns an identifier not yet used by any server. Sequence values
// whose identifier is taken (for example by a manually created server) are
// consumed and skipped.
func (g *Generator) Next(ctx context.Context, seq sequences.Repository, lookup SerialLookup) (string, error) {
	year := g.Now().UTC().Year()

	for range maxSkips {
		v, err := seq.Next(ctx, sequences.ServerID)
		if err != nil {
			return "", err
		}

		id := Format(year, v)
		_, err = lookup.GetBySerial(ctx, id)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return id, nil
		case err != nil:
			return "", err
		}
	}

	return "", fmt.Errorf("%w: no free server id after %d attempts", common.ErrorInternal, maxSkips)
}
