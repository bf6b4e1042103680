package snapshots

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadManifestDefaultsOnMissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()
	m, err := readManifest(filepath.Join(dir, manifestFile), 7)
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if m.Version != 1 || m.Retention.Days != 7 || m.Days.Dates == nil {
		t.Fatalf("unexpected default manifest %+v", m)
	}

	if err := os.WriteFile(filepath.Join(dir, manifestFile), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadManifest(dir); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestWriteManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := defaultManifest(3)
	m.Days.Dates = []string{"2024-01-01"}
	if err := writeManifest(dir, m); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Days.Dates) != 1 || got.GeneratedAt.IsZero() {
		t.Fatalf("unexpected manifest %+v", got)
	}
}
