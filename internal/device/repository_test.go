package device

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"devinv/internal/model"
)

func strconvID(id int) string {
	return strconv.Itoa(id)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "devinv.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&model.Device{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return gdb
}

func closeTestDB(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB handle: %v", err)
	}
	sqlDB.Close()
}

func seedDevice(t *testing.T, repo *Repository, name, ip string) *model.Device {
	t.Helper()
	d := &model.Device{
		Name:      name,
		IPAddress: ip,
		Type:      model.DeviceTypeRouter,
		Location:  "rack1",
		Status:    model.DeviceStatusOffline,
	}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("Failed to seed device %s: %v", name, err)
	}
	return d
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created := seedDevice(t, repo, "r1", "10.0.0.1")
	if created.ID == 0 {
		t.Fatal("Expected store-assigned id")
	}

	found, err := repo.FindByIdentifier(ctx, strconvID(created.ID))
	if err != nil {
		t.Fatalf("FindByIdentifier failed: %v", err)
	}
	if found.Name != "r1" || found.IPAddress != "10.0.0.1" ||
		found.Type != model.DeviceTypeRouter || found.Location != "rack1" ||
		found.Status != model.DeviceStatusOffline {
		t.Errorf("Round-trip mismatch: %+v", found)
	}
	if found.CreatedAt.IsZero() || found.UpdatedAt.IsZero() {
		t.Error("Expected store-assigned timestamps")
	}
}

func TestRepository_CreateDuplicateIP(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	seedDevice(t, repo, "r1", "10.0.0.1")

	dup := &model.Device{
		Name:      "r2",
		IPAddress: "10.0.0.1",
		Type:      model.DeviceTypeSwitch,
		Location:  "rack2",
		Status:    model.DeviceStatusOffline,
	}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrDuplicateIP) {
		t.Fatalf("Expected ErrDuplicateIP, got %v", err)
	}

	// No partial write
	devices, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(devices) != 1 {
		t.Errorf("Expected 1 device after rejected duplicate, got %d", len(devices))
	}
}

func TestRepository_ListSortedByName(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	seedDevice(t, repo, "zeta", "10.0.0.3")
	seedDevice(t, repo, "alpha", "10.0.0.1")
	seedDevice(t, repo, "mike", "10.0.0.2")

	devices, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(devices) != 3 {
		t.Fatalf("Expected 3 devices, got %d", len(devices))
	}
	for i, want := range []string{"alpha", "mike", "zeta"} {
		if devices[i].Name != want {
			t.Errorf("Expected device %d to be %s, got %s", i, want, devices[i].Name)
		}
	}
}

func TestRepository_List_Empty(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	devices, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("Expected empty list, got %d devices", len(devices))
	}
}

func TestRepository_FindByIdentifier_NotFound(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	// Malformed identifier is a miss, not an error
	if _, err := repo.FindByIdentifier(ctx, "not-a-number"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for malformed id, got %v", err)
	}

	if _, err := repo.FindByIdentifier(ctx, "9999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing id, got %v", err)
	}
}

func TestRepository_Update(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	d := seedDevice(t, repo, "r1", "10.0.0.1")
	seedDevice(t, repo, "r2", "10.0.0.2")

	// Keeping the current IP succeeds
	updated, err := repo.Update(ctx, strconvID(d.ID), DeviceInput{
		Name: "r1-renamed", IPAddress: "10.0.0.1", Type: "switch", Location: "rack9", Status: "online",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "r1-renamed" || updated.Type != model.DeviceTypeSwitch ||
		updated.Status != model.DeviceStatusOnline {
		t.Errorf("Update not applied: %+v", updated)
	}

	// Moving to another device's IP fails
	_, err = repo.Update(ctx, strconvID(d.ID), DeviceInput{
		Name: "r1", IPAddress: "10.0.0.2", Type: "router", Location: "rack1", Status: "offline",
	})
	if !errors.Is(err, ErrDuplicateIP) {
		t.Errorf("Expected ErrDuplicateIP, got %v", err)
	}

	// Missing record fails
	_, err = repo.Update(ctx, "9999", DeviceInput{
		Name: "x", IPAddress: "10.0.0.9", Type: "router", Location: "rack1", Status: "offline",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	d := seedDevice(t, repo, "r1", "10.0.0.1")

	if err := repo.UpdateStatus(ctx, d.ID, model.DeviceStatusOnline); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	found, err := repo.FindByIdentifier(ctx, strconvID(d.ID))
	if err != nil {
		t.Fatalf("FindByIdentifier failed: %v", err)
	}
	if found.Status != model.DeviceStatusOnline {
		t.Errorf("Expected status online, got %s", found.Status)
	}
	if found.UpdatedAt.Before(found.CreatedAt) {
		t.Error("Expected updated_at to be refreshed")
	}
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	d := seedDevice(t, repo, "r1", "10.0.0.1")

	id, err := repo.Delete(ctx, strconvID(d.ID))
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if id != d.ID {
		t.Errorf("Expected resolved id %d, got %d", d.ID, id)
	}

	if _, err := repo.FindByIdentifier(ctx, strconvID(d.ID)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	if _, err := repo.Delete(ctx, strconvID(d.ID)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	if _, err := repo.Delete(ctx, "bogus"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestRepository_Ping(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	if err := repo.Ping(ctx, time.Second); err != nil {
		t.Fatalf("Expected ping to succeed, got %v", err)
	}

	closeTestDB(t, gdb)

	if err := repo.Ping(ctx, time.Second); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable after close, got %v", err)
	}
}
