package snapshots

import (
	"os"
	"path/filepath"
	"time"
)

const manifestFile = "manifest.json"

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Retention   Retention `json:"retention"`
	Days        DaysMeta  `json:"days"`
}

type Retention struct {
	Days int `json:"days"`
}

type DaysMeta struct {
	Dates       []string  `json:"dates"`
	LastWritten time.Time `json:"lastWritten"`
}

func defaultManifest(retentionDays int) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Retention:   Retention{Days: retentionDays},
		Days:        DaysMeta{Dates: []string{}},
	}
}

// ReadManifest loads the manifest under basePath.
func ReadManifest(basePath string) (Manifest, error) {
	return readManifest(filepath.Join(basePath, manifestFile), 0)
}

func readManifest(path string, retentionDays int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retentionDays), err
	}
	defer f.Close()
	var m Manifest
	if err := jsonAPI.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retentionDays), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	return writeAtomic(filepath.Join(basePath, manifestFile), m)
}

func writeAtomic(path string, payload any) error {
	data, err := jsonAPI.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
