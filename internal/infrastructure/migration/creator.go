package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MigrationFile describes a created up/down migration pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// CreateMigration writes a skeleton up/down pair named
// <version>_<name>.{up,down}.sql. The version is a second-resolution
// timestamp so files sort in creation order; the directory is created
// if it does not exist yet.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := time.Now().Format("20060102150405")
	base := filepath.Join(migrationsDir, version+"_"+sanitizeName(name))

	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		UpPath:      base + ".up.sql",
		DownPath:    base + ".down.sql",
	}

	up := migrationHeader(name, description) +
		"-- Write your UP migration SQL here\n"
	down := migrationHeader(name+" (Rollback)", "Rollback for "+description) +
		"-- Write your DOWN migration SQL here\n"

	if err := os.WriteFile(mf.UpPath, []byte(up), 0644); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}
	if err := os.WriteFile(mf.DownPath, []byte(down), 0644); err != nil {
		// A lone up file would half-apply; keep the pair atomic.
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}

	return mf, nil
}

func migrationHeader(name, description string) string {
	return fmt.Sprintf("-- Migration: %s\n-- Description: %s\n\n", name, description)
}

// sanitizeName lower-cases a migration name and squeezes separators
// into single underscores; anything else is dropped.
func sanitizeName(name string) string {
	var b []byte
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b = append(b, byte(r))
		case r == ' ' || r == '-' || r == '_':
			if n := len(b); n > 0 && b[n-1] != '_' {
				b = append(b, '_')
			}
		}
	}
	return strings.TrimSuffix(string(b), "_")
}

// ListMigrations returns the base names of the migration pairs in the
// directory, one entry per up file, in lexical (version) order. A
// missing directory reads as no migrations.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		migrations = append(migrations, strings.TrimSuffix(entry.Name(), ".up.sql"))
	}
	return migrations, nil
}
