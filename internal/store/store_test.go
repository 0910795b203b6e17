package store

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/salahapp/salat-bootstrap/internal/store/migrations"
)

func TestEmbeddedMigrations_UpDownPairs(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		t.Fatalf("reading embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no migrations embedded")
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %q in migrations", name)
		}
	}

	for base := range ups {
		if !downs[base] {
			t.Errorf("migration %q has no down counterpart", base)
		}
	}
	for base := range downs {
		if !ups[base] {
			t.Errorf("migration %q has no up counterpart", base)
		}
	}
}

func TestEmbeddedMigrations_ValidSource(t *testing.T) {
	// iofs validates file naming and version ordering at open time.
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		t.Fatalf("iofs.New: %v", err)
	}

	first, err := src.First()
	if err != nil {
		t.Fatalf("First(): %v", err)
	}
	if first != 1 {
		t.Errorf("first migration version = %d, want 1", first)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close(): %v", err)
	}
}

func TestEmbeddedMigrations_SchemaTables(t *testing.T) {
	data, err := fs.ReadFile(migrations.FS, "000001_initial_schema.up.sql")
	if err != nil {
		t.Fatalf("reading initial schema: %v", err)
	}

	sql := string(data)
	for _, table := range []string{"prayer_times_cache", "monthly_times_cache", "calibration_log"} {
		if !strings.Contains(sql, table) {
			t.Errorf("initial schema missing table %q", table)
		}
	}
	// Re-runnable on a database created by an earlier deployment.
	if !strings.Contains(sql, "IF NOT EXISTS") {
		t.Error("initial schema is not guarded with IF NOT EXISTS")
	}
}
