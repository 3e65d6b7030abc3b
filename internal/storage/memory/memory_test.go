package memory

import (
	"context"
	"testing"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
)

func TestKVRoundTrip(t *testing.T) {
	kv := NewKV()
	ctx := context.Background()

	if _, ok, _ := kv.Get(ctx, "firingCost"); ok {
		t.Error("expected miss for unset key")
	}

	if err := kv.Set(ctx, "firingCost", "85"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set(ctx, "firingCost", "90"); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}

	value, ok, err := kv.Get(ctx, "firingCost")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || value != "90" {
		t.Errorf("Get = (%q, %v), want (\"90\", true)", value, ok)
	}
}

func TestStoreFirings(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	older := &models.Firing{Date: "2026-08-01", Type: "Bisque", Temp: 1000, Cost: 85, CreatedAt: 100}
	newer := &models.Firing{Date: "2026-08-15", Type: "Raku", Temp: 1000, Cost: 60, CreatedAt: 200}

	if err := store.CreateFiring(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateFiring(ctx, newer); err != nil {
		t.Fatal(err)
	}
	if older.ID == "" || newer.ID == "" {
		t.Fatal("expected generated firing IDs")
	}

	got, err := store.GetFiring(ctx, older.ID)
	if err != nil {
		t.Fatalf("GetFiring failed: %v", err)
	}
	if got.Date != "2026-08-01" {
		t.Errorf("GetFiring = %+v", got)
	}

	if _, err := store.GetFiring(ctx, "missing"); err == nil {
		t.Error("expected error for unknown firing id")
	}

	firings, err := store.ListFirings(ctx)
	if err != nil {
		t.Fatalf("ListFirings failed: %v", err)
	}
	if len(firings) != 2 || firings[0].ID != newer.ID {
		t.Errorf("ListFirings order = %v", firings)
	}
}

func TestStoreMembers(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	roster := []models.Member{
		{ID: "evanw", Name: "Evan Wills", Pos: 0},
		{ID: "georgiep", Name: "Georgie Pike", Pos: 1},
	}
	if err := store.SaveMembers(ctx, roster); err != nil {
		t.Fatalf("SaveMembers failed: %v", err)
	}

	got, err := store.ListMembers(ctx)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "evanw" {
		t.Errorf("ListMembers = %v", got)
	}

	// Saving replaces, and the stored roster is insulated from later
	// edits to the caller's slice.
	roster[0].Name = "Someone Else"
	got, _ = store.ListMembers(ctx)
	if got[0].Name != "Evan Wills" {
		t.Error("stored roster aliases the caller's slice")
	}
}

func TestStoreUsers(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	user := models.NewUser("evan@example.com", "Evan Wills", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	dup := models.NewUser("evan@example.com", "Imposter", "hash2")
	if err := store.CreateUser(ctx, dup); err == nil {
		t.Error("expected error for duplicate email")
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
	if err != nil || missing != nil {
		t.Errorf("GetUserByEmail (missing) = %+v, %v", missing, err)
	}
}
