// Package sqlite keeps catalog snapshots in a SQLite database. The server
// never writes to it; it is filled by the export command and read at startup
// when configured as the catalog source.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Zachkp/portfolio/internal/catalog"
	_ "modernc.org/sqlite"
)

const (
	kindTag        = "tag"
	kindTechnology = "technology"
	kindImage      = "image"
)

// DB is a catalog snapshot database.
type DB struct {
	sqlDB *sql.DB
}

// Open opens the database at path and applies the embedded migrations.
func Open(ctx context.Context, path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	d := &DB{sqlDB: sqlDB}
	if err := d.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return d, nil
}

// Close closes the database handle.
func (d *DB) Close() error {
	if d == nil || d.sqlDB == nil {
		return nil
	}
	return d.sqlDB.Close()
}

// SaveCatalog replaces the stored catalog with data in one transaction.
// data is validated first; an invalid catalog leaves the database unchanged.
func (d *DB) SaveCatalog(ctx context.Context, data catalog.Data) (err error) {
	if _, err := catalog.New(data); err != nil {
		return err
	}

	tx, err := d.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"project_values", "projects", "categories"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, c := range data.Categories {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO categories (id, position, name, icon) VALUES (?, ?, ?, ?)`,
			c.ID, i, c.Name, c.Icon,
		); err != nil {
			return fmt.Errorf("insert category %q: %w", c.ID, err)
		}
	}

	for i, p := range data.Projects {
		if err = insertProject(ctx, tx, i, p); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func insertProject(ctx context.Context, tx *sql.Tx, position int, p catalog.Project) error {
	specs, err := json.Marshal(nonNil(p.Specs))
	if err != nil {
		return fmt.Errorf("encode specs of %q: %w", p.ID, err)
	}
	timeline, err := json.Marshal(nonNil(p.Timeline))
	if err != nil {
		return fmt.Errorf("encode timeline of %q: %w", p.ID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO projects (
		   id, position, title, short_description, full_description, category,
		   thumbnail, detail_page, date, status, github_link, live_demo,
		   featured, specs, timeline
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, position, p.Title, p.ShortDescription, p.FullDescription, p.Category,
		p.Thumbnail, p.DetailPage, p.Date, string(p.Status), p.GithubLink, p.LiveDemo,
		p.Featured, string(specs), string(timeline),
	); err != nil {
		return fmt.Errorf("insert project %q: %w", p.ID, err)
	}

	lists := []struct {
		kind   string
		values []string
	}{
		{kindTag, p.Tags},
		{kindTechnology, p.Technologies},
		{kindImage, p.Images},
	}
	for _, l := range lists {
		for i, v := range l.values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO project_values (project_id, kind, position, value) VALUES (?, ?, ?, ?)`,
				p.ID, l.kind, i, v,
			); err != nil {
				return fmt.Errorf("insert %s of %q: %w", l.kind, p.ID, err)
			}
		}
	}
	return nil
}

// LoadCatalog reads the stored catalog in its saved order.
func (d *DB) LoadCatalog(ctx context.Context) (catalog.Data, error) {
	var data catalog.Data

	rows, err := d.sqlDB.QueryContext(ctx, `SELECT id, name, icon FROM categories ORDER BY position`)
	if err != nil {
		return catalog.Data{}, fmt.Errorf("query categories: %w", err)
	}
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon); err != nil {
			_ = rows.Close()
			return catalog.Data{}, fmt.Errorf("scan category: %w", err)
		}
		data.Categories = append(data.Categories, c)
	}
	if err := closeRows(rows); err != nil {
		return catalog.Data{}, fmt.Errorf("read categories: %w", err)
	}

	rows, err = d.sqlDB.QueryContext(ctx, `SELECT
		   id, title, short_description, full_description, category, thumbnail,
		   detail_page, date, status, github_link, live_demo, featured, specs, timeline
		 FROM projects ORDER BY position`)
	if err != nil {
		return catalog.Data{}, fmt.Errorf("query projects: %w", err)
	}
	index := make(map[string]int)
	for rows.Next() {
		var (
			p               catalog.Project
			status          string
			specs, timeline string
		)
		if err := rows.Scan(
			&p.ID, &p.Title, &p.ShortDescription, &p.FullDescription, &p.Category, &p.Thumbnail,
			&p.DetailPage, &p.Date, &status, &p.GithubLink, &p.LiveDemo, &p.Featured, &specs, &timeline,
		); err != nil {
			_ = rows.Close()
			return catalog.Data{}, fmt.Errorf("scan project: %w", err)
		}
		p.Status = catalog.Status(status)
		if err := json.Unmarshal([]byte(specs), &p.Specs); err != nil {
			_ = rows.Close()
			return catalog.Data{}, fmt.Errorf("decode specs of %q: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(timeline), &p.Timeline); err != nil {
			_ = rows.Close()
			return catalog.Data{}, fmt.Errorf("decode timeline of %q: %w", p.ID, err)
		}
		index[p.ID] = len(data.Projects)
		data.Projects = append(data.Projects, p)
	}
	if err := closeRows(rows); err != nil {
		return catalog.Data{}, fmt.Errorf("read projects: %w", err)
	}

	rows, err = d.sqlDB.QueryContext(ctx,
		`SELECT project_id, kind, value FROM project_values ORDER BY project_id, kind, position`)
	if err != nil {
		return catalog.Data{}, fmt.Errorf("query project values: %w", err)
	}
	for rows.Next() {
		var id, kind, value string
		if err := rows.Scan(&id, &kind, &value); err != nil {
			_ = rows.Close()
			return catalog.Data{}, fmt.Errorf("scan project value: %w", err)
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		p := &data.Projects[i]
		switch kind {
		case kindTag:
			p.Tags = append(p.Tags, value)
		case kindTechnology:
			p.Technologies = append(p.Technologies, value)
		case kindImage:
			p.Images = append(p.Images, value)
		}
	}
	if err := closeRows(rows); err != nil {
		return catalog.Data{}, fmt.Errorf("read project values: %w", err)
	}
	return data, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
