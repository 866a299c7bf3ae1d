package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMigrations_SortedByVersion(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "010_later.sql", "SELECT 10;")
	writeMigration(t, dir, "001_core.sql", "SELECT 1;")
	writeMigration(t, dir, "002_indexes.sql", "SELECT 2;")

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	wantVersions := []int{1, 2, 10}
	for i, mig := range migrations {
		if mig.Version != wantVersions[i] {
			t.Errorf("position %d: expected version %d, got %d", i, wantVersions[i], mig.Version)
		}
	}
	if migrations[0].SQL != "SELECT 1;" {
		t.Errorf("expected file contents to be loaded, got %q", migrations[0].SQL)
	}
}

func TestLoadMigrations_SkipsNonMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_core.sql", "SELECT 1;")
	writeMigration(t, dir, "README.md", "docs")
	writeMigration(t, dir, "notes.sql", "SELECT 0;")
	writeMigration(t, dir, "abc_bad.sql", "SELECT 0;")

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migrations) != 1 {
		t.Fatalf("expected only the numbered sql file, got %d", len(migrations))
	}
	if migrations[0].Name != "001_core.sql" {
		t.Errorf("expected 001_core.sql, got %s", migrations[0].Name)
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	m := NewMigrator(nil, filepath.Join(t.TempDir(), "nope"))
	if _, err := m.LoadMigrations(); err == nil {
		t.Error("expected error for missing directory")
	}
}
