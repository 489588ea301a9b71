package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// Both halves start as an empty transaction so a forgotten body is a no-op.
var skeletons = template.Must(template.New("migration").Parse(`
{{- define "up" -}}
-- Migration: {{.Name}}
-- Created: {{.Timestamp}}
-- Description: {{.Description}}

BEGIN;

COMMIT;
{{end}}
{{- define "down" -}}
-- Migration: {{.Name}} (Rollback)
-- Created: {{.Timestamp}}

BEGIN;

COMMIT;
{{end}}`))

// versionWidth matches the zero padded prefix of 000001_init_schema
const versionWidth = 6

var (
	unsafeNameChars = regexp.MustCompile(`[^a-z0-9 _-]+`)
	nameSeparators  = regexp.MustCompile(`[ _-]+`)
)

// MigrationFile describes a freshly written up/down pair.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down pair numbered after the highest
// existing migration in dir. Existing files are never overwritten.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	next, err := NextVersion(dir)
	if err != nil {
		return nil, err
	}
	version := fmt.Sprintf("%0*d", versionWidth, next)
	stem := filepath.Join(dir, version+"_"+slug)

	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		UpPath:      stem + ".up.sql",
		DownPath:    stem + ".down.sql",
	}
	if err := writeSkeleton(mf.UpPath, "up", mf); err != nil {
		return nil, err
	}
	if err := writeSkeleton(mf.DownPath, "down", mf); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, err
	}
	return mf, nil
}

// NextVersion returns one past the highest numeric prefix in dir.
func NextVersion(dir string) (uint64, error) {
	names, err := ListMigrations(dir)
	if err != nil {
		return 0, err
	}
	var highest uint64
	for _, name := range names {
		prefix, _, _ := strings.Cut(name, "_")
		if v, err := strconv.ParseUint(prefix, 10, 64); err == nil {
			highest = max(highest, v)
		}
	}
	return highest + 1, nil
}

func writeSkeleton(path, half string, mf *MigrationFile) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s migration: %w", half, err)
	}
	defer f.Close()

	if err := skeletons.ExecuteTemplate(f, half, mf); err != nil {
		return fmt.Errorf("render %s migration: %w", half, err)
	}
	return nil
}

// sanitizeName turns a free-form name into a lowercase snake_case slug.
// Punctuation is dropped; spaces, dashes and underscore runs collapse to one
// underscore.
func sanitizeName(name string) string {
	slug := unsafeNameChars.ReplaceAllString(strings.ToLower(name), "")
	slug = nameSeparators.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}

// ListMigrations returns the base names of the up migrations in dir, in
// version order. A missing directory has no migrations.
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok && base != "" {
			names = append(names, base)
		}
	}
	slices.Sort(names)
	return names, nil
}

// FindMigrationsPath walks up from dir, at most six levels, looking for a
// migrations directory holding at least one up migration.
func FindMigrationsPath(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	for range 6 {
		candidate := filepath.Join(dir, "migrations")
		if names, err := ListMigrations(candidate); err == nil && len(names) > 0 {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
