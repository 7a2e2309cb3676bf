package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
)

// sortNewestFirst orders by timestamp descending, then id descending.
func sortNewestFirst[V any](items []*V, key func(*V) (time.Time, int64)) {
	slices.SortFunc(items, func(a, b *V) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return cmp.Compare(ib, ia)
	})
}

type Notes struct{ ss *Session }

func cloneNote(n models.ServerNote) *models.ServerNote {
	n.CreatedBy = copyPtr(n.CreatedBy)
	n.UpdatedBy = copyPtr(n.UpdatedBy)
	n.UpdatedAt = copyPtr(n.UpdatedAt)
	return &n
}

func (r *Notes) Create(ctx context.Context, n *models.ServerNote) (*models.ServerNote, error) {
	defer r.ss.lock()()

	n.ID = r.ss.nextID("server_notes")
	put(r.ss, r.ss.s.notes, n.ID, *cloneNote(*n))
	return n, nil
}

func (r *Notes) GetByID(ctx context.Context, id int64) (*models.ServerNote, error) {
	defer r.ss.lock()()

	n, ok := r.ss.s.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneNote(n), nil
}

func (r *Notes) ListByServer(ctx context.Context, serverID int64, includeDeleted bool) ([]*models.ServerNote, error) {
	defer r.ss.lock()()

	out := collect(r.ss.s.notes, func(n models.ServerNote) bool {
		return n.ServerID == serverID && (includeDeleted || !n.IsDeleted)
	}, cloneNote)
	sortNewestFirst(out, func(n *models.ServerNote) (time.Time, int64) { return n.CreatedAt, n.ID })
	return out, nil
}

func (r *Notes) Update(ctx context.Context, n *models.ServerNote) error {
	defer r.ss.lock()()

	cur, ok := r.ss.s.notes[n.ID]
	if !ok {
		return common.ErrorNotFound
	}
	cur.Note = n.Note
	cur.UpdatedAt = copyPtr(n.UpdatedAt)
	cur.UpdatedBy = copyPtr(n.UpdatedBy)
	cur.IsDeleted = n.IsDeleted
	put(r.ss, r.ss.s.notes, cur.ID, cur)
	return nil
}

func (r *Notes) DeleteByServer(ctx context.Context, serverID int64) (int64, error) {
	defer r.ss.lock()()
	return removeWhere(r.ss, r.ss.s.notes, func(n models.ServerNote) bool { return n.ServerID == serverID }), nil
}

type Transfers struct{ ss *Session }

func cloneTransfer(t models.ServerTransfer) *models.ServerTransfer {
	t.FromLocationID = copyPtr(t.FromLocationID)
	t.TransferredBy = copyPtr(t.TransferredBy)
	return &t
}

func transferKey(t *models.ServerTransfer) (time.Time, int64) { return t.TransferDate, t.ID }

func (r *Transfers) Create(ctx context.Context, t *models.ServerTransfer) (*models.ServerTransfer, error) {
	defer r.ss.lock()()

	t.ID = r.ss.nextID("server_transfers")
	put(r.ss, r.ss.s.transfers, t.ID, *cloneTransfer(*t))
	return t, nil
}

func (r *Transfers) GetByID(ctx context.Context, id int64) (*models.ServerTransfer, error) {
	defer r.ss.lock()()

	t, ok := r.ss.s.transfers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneTransfer(t), nil
}

func (r *Transfers) ListByServer(ctx context.Context, serverID int64) ([]*models.ServerTransfer, error) {
	defer r.ss.lock()()

	out := collect(r.ss.s.transfers, func(t models.ServerTransfer) bool { return t.ServerID == serverID }, cloneTransfer)
	sortNewestFirst(out, transferKey)
	return out, nil
}

func (r *Transfers) List(ctx context.Context) ([]*models.ServerTransfer, error) {
	defer r.ss.lock()()

	out := collect(r.ss.s.transfers, nil, cloneTransfer)
	sortNewestFirst(out, transferKey)
	return out, nil
}

func (r *Transfers) DeleteByServer(ctx context.Context, serverID int64) (int64, error) {
	defer r.ss.lock()()
	return removeWhere(r.ss, r.ss.s.transfers, func(t models.ServerTransfer) bool { return t.ServerID == serverID }), nil
}

type Details struct{ ss *Session }

func cloneDetail(d models.ServerDetail) *models.ServerDetail { return &d }

func (r *Details) Create(ctx context.Context, d *models.ServerDetail) (*models.ServerDetail, error) {
	defer r.ss.lock()()

	d.ID = r.ss.nextID("server_details")
	put(r.ss, r.ss.s.details, d.ID, *d)
	return d, nil
}

func (r *Details) GetByID(ctx context.Context, id int64) (*models.ServerDetail, error) {
	defer r.ss.lock()()

	d, ok := r.ss.s.details[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneDetail(d), nil
}

func (r *Details) ListByServer(ctx context.Context, serverID int64) ([]*models.ServerDetail, error) {
	defer r.ss.lock()()
	return collect(r.ss.s.details, func(d models.ServerDetail) bool { return d.ServerID == serverID }, cloneDetail), nil
}

func (r *Details) Update(ctx context.Context, d *models.ServerDetail) error {
	defer r.ss.lock()()

	cur, ok := r.ss.s.details[d.ID]
	if !ok {
		return common.ErrorNotFound
	}
	cur.VMName = d.VMName
	cur.IPAddress = d.IPAddress
	cur.Username = d.Username
	cur.Password = d.Password
	cur.Notes = d.Notes
	cur.UpdatedAt = d.UpdatedAt
	put(r.ss, r.ss.s.details, cur.ID, cur)
	return nil
}

func (r *Details) Delete(ctx context.Context, id int64) (bool, error) {
	defer r.ss.lock()()
	return remove(r.ss, r.ss.s.details, id), nil
}

func (r *Details) DeleteByServer(ctx context.Context, serverID int64) (int64, error) {
	defer r.ss.lock()()
	return removeWhere(r.ss, r.ss.s.details, func(d models.ServerDetail) bool { return d.ServerID == serverID }), nil
}

type Activities struct{ ss *Session }

func cloneActivity(a models.Activity) *models.Activity {
	a.ServerID = copyPtr(a.ServerID)
	a.UserID = copyPtr(a.UserID)
	return &a
}

func activityKey(a *models.Activity) (time.Time, int64) { return a.CreatedAt, a.ID }

func (r *Activities) Create(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	defer r.ss.lock()()

	a.ID = r.ss.nextID("activities")
	put(r.ss, r.ss.s.activities, a.ID, *cloneActivity(*a))
	return a, nil
}

func (r *Activities) List(ctx context.Context, limit int) ([]*models.Activity, error) {
	defer r.ss.lock()()

	out := collect(r.ss.s.activities, nil, cloneActivity)
	sortNewestFirst(out, activityKey)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Activities) ListByServer(ctx context.Context, serverID int64) ([]*models.Activity, error) {
	defer r.ss.lock()()

	out := collect(r.ss.s.activities, func(a models.Activity) bool { return samePtr(a.ServerID, serverID) }, cloneActivity)
	sortNewestFirst(out, activityKey)
	return out, nil
}

// Sequences never roll back: a value handed out inside a failed unit of
// work stays consumed.
type Sequences struct{ ss *Session }

func (r *Sequences) Next(ctx context.Context, name string) (int64, error) {
	defer r.ss.lock()()

	r.ss.s.sequences[name]++
	return r.ss.s.sequences[name], nil
}
