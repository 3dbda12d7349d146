package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Migrate applies migrations and optional seed files. It creates a
// `schema_migrations` table to track applied migrations and applies any SQL
// files in the embedded migrations dir that have not yet been recorded. Seed
// files are applied idempotently via INSERT OR REPLACE.
func Migrate(ctx context.Context, d *DB, migrationFS embed.FS, seedFS embed.FS) error {
	// ensure migrations table exists
	if _, err := d.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	migDir := "migrations"

	entries, err := fs.ReadDir(migrationFS, migDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	// collect .sql files and sort
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(strings.ToLower(name), ".sql") {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	for _, fname := range files {
		// use filename (without extension) as migration version key
		version := strings.TrimSuffix(fname, path.Ext(fname))

		var count int
		row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration applied count: %w", err)
		}
		if count > 0 {
			// already applied
			continue
		}

		p := path.Join(migDir, fname)
		b, err := fs.ReadFile(migrationFS, p)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fname, err)
		}
		if _, err := d.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("exec migration %s: %w", fname, err)
		}

		if _, err := d.Exec(ctx, `INSERT INTO schema_migrations (version, applied) VALUES (?, strftime('%s','now'))`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", fname, err)
		}
	}

	return seed(ctx, d, seedFS)
}

// seed loads the default prompt templates and JSON schemas used by the AI
// engine. Missing seed files are skipped so partial builds keep working.
func seed(ctx context.Context, d *DB, seedFS embed.FS) error {
	schemas := map[string]string{
		"roadmap-v1": "schema_roadmap_v1.json",
		"resume-v1":  "schema_resume_v1.json",
	}
	for version, fname := range schemas {
		b, err := fs.ReadFile(seedFS, path.Join("seed", fname))
		if err != nil {
			continue
		}
		if _, err := d.Exec(ctx, `INSERT OR REPLACE INTO ai_schemas (version, description, schema_json, created, updated) VALUES (?, ?, ?, strftime('%s','now'), strftime('%s','now'))`, version, "default "+version+" schema", string(b)); err != nil {
			return fmt.Errorf("seed schema %s: %w", version, err)
		}
	}

	templates := map[string]string{
		"roadmap": "template_roadmap_v1.txt",
		"resume":  "template_resume_v1.txt",
	}
	for name, fname := range templates {
		b, err := fs.ReadFile(seedFS, path.Join("seed", fname))
		if err != nil {
			continue
		}
		schemaVer := name + "-v1"
		if _, err := d.Exec(ctx, `INSERT OR REPLACE INTO ai_templates (name, version, template_text, schema_version, metadata, created, updated) VALUES (?, 'v1', ?, ?, ?, strftime('%s','now'), strftime('%s','now'))`, name, string(b), schemaVer, `{"owner":"system"}`); err != nil {
			return fmt.Errorf("seed template %s: %w", name, err)
		}
	}

	return nil
}
