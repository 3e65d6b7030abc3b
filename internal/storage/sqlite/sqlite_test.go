package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFiringRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	evan := models.Member{ID: "evanw", Name: "Evan Wills", MakersMark: "ew", Pos: 0}
	georgie := models.Member{ID: "georgiep", Name: "Georgie Pike", Pos: 1}

	firing := &models.Firing{
		Date:     "2026-08-15",
		Type:     "Stoneware",
		Temp:     1280,
		Cost:     90,
		PackedBy: []models.Member{evan, georgie},
		PricedBy: []models.Member{georgie},
		Work: []models.Maker{
			{ID: "evanw", Member: evan, Pieces: []float64{10, 20}, Total: 30, AdjustedTotal: 45},
			{ID: "georgiep", Member: georgie, Pieces: []float64{30}, Total: 30, AdjustedTotal: 45},
		},
	}

	if err := store.CreateFiring(ctx, firing); err != nil {
		t.Fatalf("CreateFiring failed: %v", err)
	}
	if firing.ID == "" {
		t.Fatal("expected firing ID to be generated")
	}
	if firing.CreatedAt == 0 {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := store.GetFiring(ctx, firing.ID)
	if err != nil {
		t.Fatalf("GetFiring failed: %v", err)
	}

	if got.Date != "2026-08-15" || got.Type != "Stoneware" || got.Temp != 1280 || got.Cost != 90 {
		t.Errorf("firing metadata = %+v", got)
	}
	if len(got.PackedBy) != 2 || got.PackedBy[0].ID != "evanw" || got.PackedBy[1].ID != "georgiep" {
		t.Errorf("packedBy = %v", got.PackedBy)
	}
	if got.PackedBy[0].MakersMark != "ew" {
		t.Errorf("packedBy mark = %q, want ew", got.PackedBy[0].MakersMark)
	}
	if len(got.PricedBy) != 1 || got.PricedBy[0].ID != "georgiep" {
		t.Errorf("pricedBy = %v", got.PricedBy)
	}
	if len(got.Work) != 2 {
		t.Fatalf("work = %v", got.Work)
	}
	if got.Work[0].ID != "evanw" || got.Work[0].Total != 30 || got.Work[0].AdjustedTotal != 45 {
		t.Errorf("work[0] = %+v", got.Work[0])
	}
	if len(got.Work[0].Pieces) != 2 || got.Work[0].Pieces[0] != 10 || got.Work[0].Pieces[1] != 20 {
		t.Errorf("work[0] pieces = %v", got.Work[0].Pieces)
	}
	if got.Work[0].Member.Name != "Evan Wills" {
		t.Errorf("work[0] member snapshot = %+v", got.Work[0].Member)
	}
}

func TestGetFiringNotFound(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetFiring(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown firing id")
	}
}

func TestListFiringsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := &models.Firing{Date: "2026-08-01", Type: "Bisque", Temp: 1000, Cost: 85, CreatedAt: 100}
	newer := &models.Firing{Date: "2026-08-15", Type: "Raku", Temp: 1000, Cost: 60, CreatedAt: 200}

	if err := store.CreateFiring(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateFiring(ctx, newer); err != nil {
		t.Fatal(err)
	}

	firings, err := store.ListFirings(ctx)
	if err != nil {
		t.Fatalf("ListFirings failed: %v", err)
	}
	if len(firings) != 2 {
		t.Fatalf("ListFirings returned %d, want 2", len(firings))
	}
	if firings[0].ID != newer.ID {
		t.Errorf("firings[0] = %s, want the newer firing first", firings[0].ID)
	}
}

func TestMembersRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	roster := []models.Member{
		{ID: "evanw", Name: "Evan Wills", Pos: 0},
		{ID: "georgiep", Name: "Georgie Pike", MakersMark: "gp", Pos: 1},
	}

	if err := store.SaveMembers(ctx, roster); err != nil {
		t.Fatalf("SaveMembers failed: %v", err)
	}

	got, err := store.ListMembers(ctx)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "evanw" || got[1].MakersMark != "gp" {
		t.Errorf("ListMembers = %v", got)
	}

	// Saving again replaces rather than appends.
	if err := store.SaveMembers(ctx, roster[:1]); err != nil {
		t.Fatalf("SaveMembers (replace) failed: %v", err)
	}
	got, err = store.ListMembers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("roster after replace = %v", got)
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("evan@example.com", "Evan Wills", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "evan@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetUserByEmail = %+v", byEmail)
	}

	byID, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID == nil || byID.Email != "evan@example.com" {
		t.Errorf("GetUserByID = %+v", byID)
	}

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail (missing) failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}
}

func TestKVRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "firingCost")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected miss for unset key")
	}

	if err := store.Set(ctx, "firingCost", "85"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "firingCost", "90"); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}

	value, ok, err := store.Get(ctx, "firingCost")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || value != "90" {
		t.Errorf("Get = (%q, %v), want (\"90\", true)", value, ok)
	}
}
