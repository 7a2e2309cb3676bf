package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"github.com/dmitrijs2005/srvtrack/internal/server/models"
	"github.com/dmitrijs2005/srvtrack/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// managerFactory returns a fresh, migrated backend.
type managerFactory func(t *testing.T) repomanager.RepositoryManager

// stepClock advances one second on every reading so that ordering by
// timestamp is deterministic.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func int64p(v int64) *int64 { return &v }

func statusp(s models.ServerStatus) *models.ServerStatus { return &s }

func strp(s string) *string { return &s }

// runInventoryTests exercises the inventory rules against one backend. Every
// backend must pass the same suite.
func runInventoryTests(t *testing.T, name string, factory managerFactory) {
	t.Run(name, func(t *testing.T) {
		tests := []struct {
			name string
			fn   func(t *testing.T, inv *Inventory)
		}{
			{"CreateServer", testCreateServer},
			{"CreateServerUnknownLocation", testCreateServerUnknownLocation},
			{"UpdateServer", testUpdateServer},
			{"UpdateServerWithPolicy", testUpdateServerWithPolicy},
			{"DeleteServerCascades", testDeleteServerCascades},
			{"BatchCreatesDistinctIDs", testBatchCreatesDistinctIDs},
			{"BatchOverCapacity", testBatchOverCapacity},
			{"BatchUnknownReferences", testBatchUnknownReferences},
			{"BatchTooLarge", testBatchTooLarge},
			{"DellR740Scenario", testDellR740Scenario},
			{"FailedBatchConsumesIDs", testFailedBatchConsumesIDs},
			{"CapacityRoundTrip", testCapacityRoundTrip},
			{"Transfer", testTransfer},
			{"TransferRejections", testTransferRejections},
			{"Notes", testNotes},
			{"Details", testDetails},
			{"Stats", testStats},
			{"ActivityOrderingAndLimit", testActivityOrderingAndLimit},
			{"GenerateServerIDSkipsTaken", testGenerateServerIDSkipsTaken},
			{"LocationsAndModels", testLocationsAndModels},
			{"Users", testUsers},
			{"SeedDefaults", testSeedDefaults},
			{"ActivityFailureRollsBack", testActivityFailureRollsBack},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tt.fn(t, NewInventory(factory(t), WithClock(newStepClock().Now), WithMaxBatchSize(50)))
			})
		}
	})
}

func mustLocation(t *testing.T, inv *Inventory, name string, capacity int) *models.Location {
	t.Helper()
	l, err := inv.CreateLocation(context.Background(), LocationInput{Name: name, Type: models.LocationDepot, Capacity: capacity})
	require.NoError(t, err)
	return l
}

func mustModel(t *testing.T, inv *Inventory, name string) *models.ServerModel {
	t.Helper()
	m, err := inv.CreateServerModel(context.Background(), ServerModelInput{Name: name, Brand: "Dell", Specs: "2x Xeon, 256GB"})
	require.NoError(t, err)
	return m
}

func mustServer(t *testing.T, inv *Inventory, serverID string, loc *models.Location) *models.Server {
	t.Helper()
	in := CreateServerInput{ServerID: serverID, Model: "Dell R740", Status: models.StatusActive}
	if loc != nil {
		in.LocationID = int64p(loc.ID)
	}
	s, err := inv.CreateServer(context.Background(), in, int64p(1))
	require.NoError(t, err)
	return s
}

func activitiesOf(t *testing.T, inv *Inventory, typ models.ActivityType) []*models.Activity {
	t.Helper()
	all, err := inv.GetAllActivities(context.Background(), 0)
	require.NoError(t, err)
	var out []*models.Activity
	for _, a := range all {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

func testCreateServer(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	loc := mustLocation(t, inv, "Depot A", 10)

	s, err := inv.CreateServer(ctx, CreateServerInput{
		ServerID:   "SRV-2025-100",
		Model:      "Dell R740",
		LocationID: int64p(loc.ID),
		Status:     models.StatusPassive,
		IPAddress:  "10.0.0.1",
	}, int64p(7))
	require.NoError(t, err)
	assert.NotZero(t, s.ID)
	assert.True(t, s.CreatedAt.Equal(s.UpdatedAt))

	got, err := inv.GetServerBySerial(ctx, "SRV-2025-100")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, loc.ID, *got.LocationID)
	assert.Equal(t, "10.0.0.1", got.IPAddress)

	adds := activitiesOf(t, inv, models.ActivityAdd)
	require.Len(t, adds, 1)
	assert.Equal(t, s.ID, *adds[0].ServerID)
	assert.Equal(t, int64(7), *adds[0].UserID)
	assert.Contains(t, adds[0].Description, "SRV-2025-100")

	_, err = inv.CreateServer(ctx, CreateServerInput{ServerID: "SRV-2025-100", Status: models.StatusActive}, nil)
	assert.ErrorIs(t, err, common.ErrorDuplicateIdentifier)
	assert.Len(t, activitiesOf(t, inv, models.ActivityAdd), 1)

	_, err = inv.CreateServer(ctx, CreateServerInput{ServerID: "", Status: models.StatusActive}, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = inv.CreateServer(ctx, CreateServerInput{ServerID: "SRV-X", Status: "broken"}, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = inv.GetServer(ctx, 9999)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func testCreateServerUnknownLocation(t *testing.T, inv *Inventory) {
	_, err := inv.CreateServer(context.Background(), CreateServerInput{
		ServerID: "SRV-2025-001", Status: models.StatusActive, LocationID: int64p(404),
	}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := inv.ListServers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, activitiesOf(t, inv, models.ActivityAdd))
}

func testUpdateServer(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	s := mustServer(t, inv, "SRV-2025-001", nil)

	updated, err := inv.UpdateServer(ctx, s.ID, UpdateServerInput{Specs: strp("128GB")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "128GB", updated.Specs)
	assert.Equal(t, "SRV-2025-001", updated.ServerID)
	assert.True(t, updated.UpdatedAt.After(s.UpdatedAt))

	edits := activitiesOf(t, inv, models.ActivityEdit)
	require.Len(t, edits, 1)
	assert.Empty(t, activitiesOf(t, inv, models.ActivitySetup))

	_, err = inv.UpdateServer(ctx, s.ID, UpdateServerInput{Status: statusp(models.StatusSetup)}, int64p(3))
	require.NoError(t, err)
	setups := activitiesOf(t, inv, models.ActivitySetup)
	require.Len(t, setups, 1)
	assert.Contains(t, setups[0].Description, "active -> setup")

	// Same status is not a status change.
	_, err = inv.UpdateServer(ctx, s.ID, UpdateServerInput{Status: statusp(models.StatusSetup)}, nil)
	require.NoError(t, err)
	assert.Len(t, activitiesOf(t, inv, models.ActivitySetup), 1)
	assert.Len(t, activitiesOf(t, inv, models.ActivityEdit), 2)

	got, err := inv.GetServer(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSetup, got.Status)
	assert.Equal(t, "128GB", got.Specs)

	_, err = inv.UpdateServer(ctx, 9999, UpdateServerInput{Specs: strp("x")}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = inv.UpdateServer(ctx, s.ID, UpdateServerInput{LocationID: int64p(404)}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func testUpdateServerWithPolicy(t *testing.T, base *Inventory) {
	ctx := context.Background()
	inv := NewInventory(base.rm, WithClock(newStepClock().Now), WithTransitionPolicy(LifecycleTransitions))
	s := mustServer(t, inv, "SRV-2025-001", nil)

	_, err := inv.UpdateServer(ctx, s.ID, UpdateServerInput{Status: statusp(models.StatusField)}, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)

	got, err := inv.GetServer(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Empty(t, activitiesOf(t, inv, models.ActivitySetup))

	_, err = inv.UpdateServer(ctx, s.ID, UpdateServerInput{Status: statusp(models.StatusTransit)}, nil)
	assert.NoError(t, err)
}

func testDeleteServerCascades(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	a := mustLocation(t, inv, "Depot A", 10)
	b := mustLocation(t, inv, "Office B", 10)
	s := mustServer(t, inv, "SRV-2025-001", a)

	_, err := inv.AddServerNote(ctx, s.ID, NoteInput{Note: "fan noise"}, nil)
	require.NoError(t, err)
	_, err = inv.AddServerDetail(ctx, s.ID, DetailInput{VMName: "web-1", IPAddress: "10.0.0.9"}, nil)
	require.NoError(t, err)
	_, err = inv.CreateTransfer(ctx, TransferInput{ServerID: s.ID, ToLocationID: b.ID}, nil)
	require.NoError(t, err)

	ok, err := inv.DeleteServer(ctx, s.ID, int64p(2))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = inv.GetServer(ctx, s.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = inv.GetServerNotes(ctx, s.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	r := inv.repos()
	notes, err := r.Notes.ListByServer(ctx, s.ID, true)
	require.NoError(t, err)
	assert.Empty(t, notes)
	transfers, err := r.Transfers.ListByServer(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, transfers)
	details, err := r.Details.ListByServer(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, details)

	deletes := activitiesOf(t, inv, models.ActivityDelete)
	require.Len(t, deletes, 1)
	assert.Contains(t, deletes[0].Description, "SRV-2025-001")

	history, err := inv.GetServerActivities(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, history, 5) // add, note, setup (vm), transfer, delete

	ok, err = inv.DeleteServer(ctx, s.ID, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, activitiesOf(t, inv, models.ActivityDelete), 1)
}

func testBatchCreatesDistinctIDs(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	loc := mustLocation(t, inv, "Depot A", 20)
	model := mustModel(t, inv, "PowerEdge R650")

	created, err := inv.CreateBatchServers(ctx, BatchInput{ModelID: model.ID, LocationID: loc.ID, Quantity: 5, Status: models.StatusReady}, int64p(1))
	require.NoError(t, err)
	require.Len(t, created, 5)

	seen := map[string]bool{}
	for _, s := range created {
		assert.False(t, seen[s.ServerID], "duplicate id %s", s.ServerID)
		seen[s.ServerID] = true
		assert.True(t, strings.HasPrefix(s.ServerID, "SRV-2025-"))
		assert.Equal(t, model.Name, s.Model)
		assert.Equal(t, model.Specs, s.Specs)
		assert.Equal(t, loc.ID, *s.LocationID)
		assert.Equal(t, models.StatusReady, s.Status)
	}
	assert.Len(t, activitiesOf(t, inv, models.ActivityAdd), 5)

	byLoc, err := inv.GetServersByLocation(ctx, loc.ID)
	require.NoError(t, err)
	assert.Len(t, byLoc, 5)
}

func testBatchOverCapacity(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	loc := mustLocation(t, inv, "Small", 2)
	model := mustModel(t, inv, "R740")

	_, err := inv.CreateBatchServers(ctx, BatchInput{ModelID: model.ID, LocationID: loc.ID, Quantity: 3, Status: models.StatusPassive}, nil)
	assert.ErrorIs(t, err, common.ErrorCapacityExceeded)

	list, err := inv.ListServers(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, activitiesOf(t, inv, models.ActivityAdd))
}

func testBatchUnknownReferences(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	loc := mustLocation(t, inv, "Depot", 5)
	model := mustModel(t, inv, "R740")

	_, err := inv.CreateBatchServers(ctx, BatchInput{ModelID: 404, LocationID: loc.ID, Quantity: 1, Status: models.StatusPassive}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = inv.CreateBatchServers(ctx, BatchInput{ModelID: model.ID, LocationID: 404, Quantity: 1, Status: models.StatusPassive}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = inv.CreateBatchServers(ctx, BatchInput{ModelID: model.ID, LocationID: loc.ID, Quantity: 0, Status: models.StatusPassive}, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func testBatchTooLarge(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	loc := mustLocation(t, inv, "Huge", 1000)
	model := mustModel(t, inv, "R740")

	_, err := inv.CreateBatchServers(ctx, BatchInput{ModelID: model.ID, LocationID: loc.ID, Quantity: 51, Status: models.StatusPassive}, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func testDellR740Scenario(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	loc := mustLocation(t, inv, "Location A", 5)
	model := mustModel(t, inv, "Dell R740")

	created, err := inv.CreateBatchServers(ctx, BatchInput{ModelID: model.ID, LocationID: loc.ID, Quantity: 3, Status: models.StatusPassive}, nil)
	require.NoError(t, err)
	require.Len(t, created, 3)

	assert.Equal(t, "SRV-2025-001", created[0].ServerID)
	assert.Equal(t, "SRV-2025-002", created[1].ServerID)
	assert.Equal(t, "SRV-2025-003", created[2].ServerID)
	for _, s := range created {
		assert.Equal(t, models.StatusPassive, s.Status)
	}
	assert.Len(t, activitiesOf(t, inv, models.ActivityAdd), 3)
}

func testFailedBatchConsumesIDs(t *testing.T, good *Inventory) {
	ctx := context.Background()
	loc := mustLocation(t, good, "Depot", 10)
	model := mustModel(t, good, "R740")
	batch := BatchInput{ModelID: model.ID, LocationID: loc.ID, Quantity: 2, Status: models.StatusPassive}

	bad := NewInventory(failingActivities{good.rm}, WithClock(newStepClock().Now))
	_, err := bad.CreateBatchServers(ctx, batch, nil)
	require.ErrorIs(t, err, errActivityStore)

	list, err := good.ListServers(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	batch.Quantity = 1
	created, err := good.CreateBatchServers(ctx, batch, nil)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "SRV-2025-003", created[0].ServerID)

	// rejected batches reserve nothing
	batch.Quantity = 20
	_, err = good.CreateBatchServers(ctx, batch, nil)
	require.ErrorIs(t, err, common.ErrorCapacityExceeded)

	id, err := good.GenerateServerID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SRV-2025-004", id)
}

func testCapacityRoundTrip(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	a := mustLocation(t, inv, "A", 3)
	b := mustLocation(t, inv, "B", 10)
	model := mustModel(t, inv, "R740")
	batch := BatchInput{ModelID: model.ID, LocationID: a.ID, Quantity: 3, Status: models.StatusPassive}

	created, err := inv.CreateBatchServers(ctx, batch, nil)
	require.NoError(t, err)

	batch.Quantity = 1
	_, err = inv.CreateBatchServers(ctx, batch, nil)
	require.ErrorIs(t, err, common.ErrorCapacityExceeded)

	_, err = inv.CreateTransfer(ctx, TransferInput{ServerID: created[0].ID, ToLocationID: b.ID}, nil)
	require.NoError(t, err)

	again, err := inv.CreateBatchServers(ctx, batch, nil)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, "SRV-2025-004", again[0].ServerID)
}

func testTransfer(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	a := mustLocation(t, inv, "Depot A", 5)
	b := mustLocation(t, inv, "Office B", 5)
	s := mustServer(t, inv, "SRV-2025-001", a)

	tr, err := inv.CreateTransfer(ctx, TransferInput{ServerID: s.ID, ToLocationID: b.ID, Notes: "courier"}, int64p(4))
	require.NoError(t, err)
	assert.Equal(t, a.ID, *tr.FromLocationID)
	assert.Equal(t, b.ID, tr.ToLocationID)
	assert.Equal(t, int64(4), *tr.TransferredBy)

	got, err := inv.GetServer(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, *got.LocationID)
	assert.Equal(t, models.StatusTransit, got.Status)

	moves := activitiesOf(t, inv, models.ActivityTransfer)
	require.Len(t, moves, 1)
	assert.Contains(t, moves[0].Description, "Depot A")
	assert.Contains(t, moves[0].Description, "Office B")

	history, err := inv.GetServerTransfers(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "courier", history[0].Notes)

	// A server without a location moves from "unassigned".
	loose := mustServer(t, inv, "SRV-2025-002", nil)
	_, err = inv.CreateTransfer(ctx, TransferInput{ServerID: loose.ID, ToLocationID: a.ID}, nil)
	require.NoError(t, err)
	moves = activitiesOf(t, inv, models.ActivityTransfer)
	require.Len(t, moves, 2)
	assert.Contains(t, moves[0].Description, "from unassigned to Depot A")

	all, err := inv.ListTransfers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testTransferRejections(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	a := mustLocation(t, inv, "Depot A", 5)
	s := mustServer(t, inv, "SRV-2025-001", a)

	_, err := inv.CreateTransfer(ctx, TransferInput{ServerID: s.ID, ToLocationID: a.ID}, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = inv.CreateTransfer(ctx, TransferInput{ServerID: 9999, ToLocationID: a.ID}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = inv.CreateTransfer(ctx, TransferInput{ServerID: s.ID, ToLocationID: 9999}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.Empty(t, activitiesOf(t, inv, models.ActivityTransfer))
	got, err := inv.GetServer(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)
}

func testNotes(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	s := mustServer(t, inv, "SRV-2025-001", nil)
	other := mustServer(t, inv, "SRV-2025-002", nil)
	long := strings.Repeat("x", 45)

	first, err := inv.AddServerNote(ctx, s.ID, NoteInput{Note: "first"}, int64p(5))
	require.NoError(t, err)
	second, err := inv.AddServerNote(ctx, s.ID, NoteInput{Note: long}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), *first.CreatedBy)

	noteActs := activitiesOf(t, inv, models.ActivityNote)
	require.Len(t, noteActs, 2)
	assert.Contains(t, noteActs[0].Description, strings.Repeat("x", 27)+"...")
	assert.NotContains(t, noteActs[0].Description, strings.Repeat("x", 28))

	list, err := inv.GetServerNotes(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	updated, err := inv.UpdateServerNote(ctx, s.ID, first.ID, NoteInput{Note: "first, edited"}, int64p(6))
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, int64(6), *updated.UpdatedBy)
	assert.Len(t, activitiesOf(t, inv, models.ActivityNote), 3)

	_, err = inv.UpdateServerNote(ctx, other.ID, first.ID, NoteInput{Note: "hijack"}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	ok, err := inv.DeleteServerNote(ctx, other.ID, first.ID, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = inv.DeleteServerNote(ctx, s.ID, first.ID, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	deletes := activitiesOf(t, inv, models.ActivityDelete)
	require.Len(t, deletes, 1)
	assert.Contains(t, deletes[0].Description, "first, edited")

	list, err = inv.GetServerNotes(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	kept, err := inv.GetServerNote(ctx, s.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, kept.IsDeleted)

	ok, err = inv.DeleteServerNote(ctx, s.ID, first.ID, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = inv.UpdateServerNote(ctx, s.ID, first.ID, NoteInput{Note: "again"}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = inv.AddServerNote(ctx, 9999, NoteInput{Note: "orphan"}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = inv.AddServerNote(ctx, s.ID, NoteInput{}, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func testDetails(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	s := mustServer(t, inv, "SRV-2025-001", nil)
	other := mustServer(t, inv, "SRV-2025-002", nil)

	d, err := inv.AddServerDetail(ctx, s.ID, DetailInput{VMName: "db-1", IPAddress: "10.1.0.2", Username: "root"}, nil)
	require.NoError(t, err)

	setups := activitiesOf(t, inv, models.ActivitySetup)
	require.Len(t, setups, 1)
	assert.Contains(t, setups[0].Description, "db-1")
	assert.Contains(t, setups[0].Description, "10.1.0.2")

	updated, err := inv.UpdateServerDetail(ctx, s.ID, d.ID, UpdateDetailInput{IPAddress: strp("10.1.0.3")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "db-1", updated.VMName)
	assert.Equal(t, "10.1.0.3", updated.IPAddress)
	assert.Equal(t, "root", updated.Username)
	assert.Len(t, activitiesOf(t, inv, models.ActivitySetup), 2)

	_, err = inv.UpdateServerDetail(ctx, other.ID, d.ID, UpdateDetailInput{Notes: strp("x")}, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := inv.GetServerDetails(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "10.1.0.3", list[0].IPAddress)

	ok, err := inv.DeleteServerDetail(ctx, other.ID, d.ID, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = inv.DeleteServerDetail(ctx, s.ID, d.ID, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	deletes := activitiesOf(t, inv, models.ActivityDelete)
	require.Len(t, deletes, 1)
	assert.Contains(t, deletes[0].Description, "db-1")

	ok, err = inv.DeleteServerDetail(ctx, s.ID, d.ID, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testStats(t *testing.T, inv *Inventory) {
	ctx := context.Background()

	stats, err := inv.GetServerStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ServerStats{}, *stats)

	statuses := []models.ServerStatus{
		models.StatusActive, models.StatusActive, models.StatusTransit, models.StatusSetup,
		models.StatusPassive, models.StatusInactive, models.StatusShippable, models.StatusReady,
		models.StatusField,
	}
	for i, st := range statuses {
		_, err := inv.CreateServer(ctx, CreateServerInput{ServerID: fmt.Sprintf("SRV-2025-%03d", i+1), Status: st}, nil)
		require.NoError(t, err)
	}

	stats, err = inv.GetServerStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ServerStats{Total: 9, Active: 2, Transit: 1, Setup: 1, Passive: 2, Shippable: 2}, *stats)
	counted := stats.Active + stats.Transit + stats.Setup + stats.Passive + stats.Shippable
	assert.Equal(t, stats.Total-1, counted)
}

func testActivityOrderingAndLimit(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	for i := 1; i <= 4; i++ {
		mustServer(t, inv, fmt.Sprintf("SRV-2025-%03d", i), nil)
	}

	all, err := inv.GetAllActivities(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
		assert.Less(t, all[i].ID, all[i-1].ID)
	}
	assert.Contains(t, all[0].Description, "SRV-2025-004")

	limited, err := inv.GetAllActivities(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, all[0].ID, limited[0].ID)
	assert.Equal(t, all[1].ID, limited[1].ID)

	negative, err := inv.GetAllActivities(ctx, -1)
	require.NoError(t, err)
	assert.Len(t, negative, 4)
}

func testGenerateServerIDSkipsTaken(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	mustServer(t, inv, "SRV-2025-001", nil)
	mustServer(t, inv, "SRV-2025-002", nil)

	id, err := inv.GenerateServerID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SRV-2025-003", id)

	// The value is consumed even if the caller never uses it.
	id, err = inv.GenerateServerID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SRV-2025-004", id)
}

func testLocationsAndModels(t *testing.T, inv *Inventory) {
	ctx := context.Background()
	a := mustLocation(t, inv, "Depot A", 5)
	empty := mustLocation(t, inv, "Empty", 5)
	model := mustModel(t, inv, "R740")
	unused := mustModel(t, inv, "Unused")
	assert.True(t, a.IsActive)

	_, err := inv.CreateLocation(ctx, LocationInput{Name: "Depot A", Type: models.LocationOffice})
	assert.ErrorIs(t, err, common.ErrorDuplicateIdentifier)
	_, err = inv.CreateLocation(ctx, LocationInput{Name: "Bad", Type: "moon"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = inv.CreateBatchServers(ctx, BatchInput{ModelID: model.ID, LocationID: a.ID, Quantity: 2, Status: models.StatusPassive}, nil)
	require.NoError(t, err)

	summaries, err := inv.ListLocationSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Depot A", summaries[0].Name)
	assert.Equal(t, 2, summaries[0].ServerCount)
	assert.Equal(t, 0, summaries[1].ServerCount)

	_, err = inv.DeleteLocation(ctx, a.ID)
	assert.ErrorIs(t, err, common.ErrorReferentialConflict)
	ok, err := inv.DeleteLocation(ctx, empty.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = inv.DeleteLocation(ctx, empty.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	inactive := false
	l, err := inv.UpdateLocation(ctx, a.ID, LocationInput{Name: "Depot A1", Type: models.LocationDepot, Capacity: 8, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 8, l.Capacity)
	assert.False(t, l.IsActive)
	got, err := inv.GetLocation(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Depot A1", got.Name)

	_, err = inv.DeleteServerModel(ctx, model.ID)
	assert.ErrorIs(t, err, common.ErrorReferentialConflict)
	_, err = inv.UpdateServerModel(ctx, model.ID, ServerModelInput{Name: "R740xd"})
	assert.ErrorIs(t, err, common.ErrorReferentialConflict)
	m, err := inv.UpdateServerModel(ctx, model.ID, ServerModelInput{Name: "R740", Brand: "Dell EMC"})
	require.NoError(t, err)
	assert.Equal(t, "Dell EMC", m.Brand)

	ok, err = inv.DeleteServerModel(ctx, unused.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = inv.DeleteServerModel(ctx, unused.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := inv.ListServerModels(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = inv.GetServerModel(ctx, unused.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func testUsers(t *testing.T, inv *Inventory) {
	ctx := context.Background()

	u, err := inv.CreateUser(ctx, CreateUserInput{Username: "alice", Password: "correct-horse", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotContains(t, u.PasswordHash, "correct-horse")

	_, err = inv.CreateUser(ctx, CreateUserInput{Username: "alice", Password: "another-pass"})
	assert.ErrorIs(t, err, common.ErrorDuplicateIdentifier)
	_, err = inv.CreateUser(ctx, CreateUserInput{Username: "bob", Password: "short"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	byName, err := inv.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	admin := models.RoleAdmin
	updated, err := inv.UpdateUser(ctx, u.ID, UpdateUserInput{FullName: strp("Alice A."), Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", updated.FullName)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	err = inv.ChangePassword(ctx, u.ID, ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "new-password"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	require.NoError(t, inv.ChangePassword(ctx, u.ID, ChangePasswordInput{CurrentPassword: "correct-horse", NewPassword: "new-password"}))
	require.NoError(t, inv.ChangePassword(ctx, u.ID, ChangePasswordInput{CurrentPassword: "new-password", NewPassword: "third-password"}))

	_, err = inv.DeleteUser(ctx, u.ID, u.ID)
	assert.ErrorIs(t, err, common.ErrorValidation)
	ok, err := inv.DeleteUser(ctx, 999, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = inv.DeleteUser(ctx, 999, u.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = inv.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func testSeedDefaults(t *testing.T, inv *Inventory) {
	ctx := context.Background()

	admin, err := inv.SeedDefaults(ctx, "admin", "admin-password")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	again, err := inv.SeedDefaults(ctx, "admin2", "admin-password")
	require.NoError(t, err)
	assert.Nil(t, again)

	users, err := inv.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

// failingActivities makes every activity insert inside a unit of work fail.
type failingActivities struct {
	repomanager.RepositoryManager
}

type brokenActivityRepo struct{}

var errActivityStore = errors.New("activity store unavailable")

func (brokenActivityRepo) Create(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	return nil, errActivityStore
}

func (brokenActivityRepo) List(ctx context.Context, limit int) ([]*models.Activity, error) {
	return nil, nil
}

func (brokenActivityRepo) ListByServer(ctx context.Context, serverID int64) ([]*models.Activity, error) {
	return nil, nil
}

func (f failingActivities) WithTx(ctx context.Context, fn func(ctx context.Context, r *repomanager.Repositories) error) error {
	return f.RepositoryManager.WithTx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		broken := *r
		broken.Activities = brokenActivityRepo{}
		return fn(ctx, &broken)
	})
}

func testActivityFailureRollsBack(t *testing.T, good *Inventory) {
	ctx := context.Background()
	rm := good.rm
	loc := mustLocation(t, good, "Depot", 10)
	other := mustLocation(t, good, "Office", 10)
	model := mustModel(t, good, "R740")
	s := mustServer(t, good, "SRV-2025-500", loc)

	bad := NewInventory(failingActivities{rm}, WithClock(newStepClock().Now))

	_, err := bad.CreateServer(ctx, CreateServerInput{ServerID: "SRV-2025-501", Status: models.StatusActive}, nil)
	assert.ErrorIs(t, err, errActivityStore)
	_, err = bad.CreateBatchServers(ctx, BatchInput{ModelID: model.ID, LocationID: loc.ID, Quantity: 2, Status: models.StatusPassive}, nil)
	assert.ErrorIs(t, err, errActivityStore)
	_, err = bad.CreateTransfer(ctx, TransferInput{ServerID: s.ID, ToLocationID: other.ID}, nil)
	assert.ErrorIs(t, err, errActivityStore)
	_, err = bad.AddServerNote(ctx, s.ID, NoteInput{Note: "lost"}, nil)
	assert.ErrorIs(t, err, errActivityStore)
	_, err = bad.UpdateServer(ctx, s.ID, UpdateServerInput{Status: statusp(models.StatusField)}, nil)
	assert.ErrorIs(t, err, errActivityStore)
	_, err = bad.DeleteServer(ctx, s.ID, nil)
	assert.ErrorIs(t, err, errActivityStore)

	list, err := good.ListServers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, loc.ID, *list[0].LocationID)
	assert.Equal(t, models.StatusActive, list[0].Status)

	transfers, err := good.ListTransfers(ctx)
	require.NoError(t, err)
	assert.Empty(t, transfers)
	notes, err := good.GetServerNotes(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	acts, err := good.GetAllActivities(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, acts, 1)
}
