// CLAUDE:SUMMARY SQLite catalog store: replace-all writes in one transaction, ordered reads back into definitions, updated_at fingerprint.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/autolex/pkg/lexicon"
)

func init() {
	Register(sqliteSource{})
}

// Rows keep catalog order through their seq column; ids are not unique so
// that duplicate definitions still reach the loader and get reported.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS brands (
		seq                INTEGER PRIMARY KEY,
		id                 TEXT NOT NULL,
		name_en            TEXT NOT NULL DEFAULT '',
		name_th            TEXT NOT NULL DEFAULT '',
		name_lo            TEXT NOT NULL DEFAULT '',
		synonyms           TEXT NOT NULL DEFAULT '[]',
		category_overrides TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS models (
		seq       INTEGER PRIMARY KEY,
		brand_seq INTEGER NOT NULL,
		id        TEXT NOT NULL,
		brand_id  TEXT NOT NULL DEFAULT '',
		name_en   TEXT NOT NULL DEFAULT '',
		name_th   TEXT NOT NULL DEFAULT '',
		name_lo   TEXT NOT NULL DEFAULT '',
		synonyms  TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS model_categories (
		model_seq   INTEGER NOT NULL,
		position    INTEGER NOT NULL,
		category_id TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		seq     INTEGER PRIMARY KEY,
		id      TEXT NOT NULL,
		name_en TEXT NOT NULL DEFAULT '',
		name_th TEXT NOT NULL DEFAULT '',
		name_lo TEXT NOT NULL DEFAULT '',
		aliases TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS category_aliases (
		seq        INTEGER PRIMARY KEY,
		term       TEXT NOT NULL,
		categories TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS idioms (
		seq        INTEGER PRIMARY KEY,
		display    TEXT NOT NULL,
		search_key TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS catalog_meta (
		key   TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`,
}

// DB is a catalog stored in SQLite.
type DB struct {
	db *sql.DB
}

// OpenDB opens (or creates) the SQLite catalog at path and ensures the
// schema exists.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	for _, ddl := range schema {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create catalog schema: %w", err)
		}
	}
	return &DB{db: db}, nil
}

// Close closes the SQLite connection.
func (s *DB) Close() error {
	return s.db.Close()
}

// Write replaces the whole catalog with defs and bumps updated_at.
func (s *DB) Write(ctx context.Context, defs *lexicon.Definitions) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog write: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"brands", "models", "model_categories", "categories", "category_aliases", "idioms"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, c := range defs.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name_en, name_th, name_lo, aliases) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Names.EN, c.Names.TH, c.Names.LO, encodeList(c.Aliases),
		); err != nil {
			return fmt.Errorf("insert category %s: %w", c.ID, err)
		}
	}
	for _, a := range defs.CategoryAliases {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO category_aliases (term, categories) VALUES (?, ?)`,
			a.Term, encodeList(a.Categories),
		); err != nil {
			return fmt.Errorf("insert category alias %s: %w", a.Term, err)
		}
	}
	for _, b := range defs.Brands {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO brands (id, name_en, name_th, name_lo, synonyms, category_overrides) VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID, b.Names.EN, b.Names.TH, b.Names.LO, encodeList(b.Synonyms), encodeList(b.CategoryOverrides),
		)
		if err != nil {
			return fmt.Errorf("insert brand %s: %w", b.ID, err)
		}
		brandSeq, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("brand %s seq: %w", b.ID, err)
		}
		for _, m := range b.Models {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO models (brand_seq, id, brand_id, name_en, name_th, name_lo, synonyms) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				brandSeq, m.ID, m.BrandID, m.Names.EN, m.Names.TH, m.Names.LO, encodeList(m.Synonyms),
			)
			if err != nil {
				return fmt.Errorf("insert model %s/%s: %w", b.ID, m.ID, err)
			}
			modelSeq, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("model %s/%s seq: %w", b.ID, m.ID, err)
			}
			for i, cat := range m.Categories {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO model_categories (model_seq, position, category_id) VALUES (?, ?, ?)`,
					modelSeq, i, cat,
				); err != nil {
					return fmt.Errorf("tag model %s/%s: %w", b.ID, m.ID, err)
				}
			}
		}
	}
	for _, idiom := range defs.Idioms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO idioms (display, search_key) VALUES (?, ?)`,
			idiom.Display, idiom.SearchKey,
		); err != nil {
			return fmt.Errorf("insert idiom %s: %w", idiom.Display, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (key, value) VALUES ('updated_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().UnixNano(),
	); err != nil {
		return fmt.Errorf("stamp catalog: %w", err)
	}
	return tx.Commit()
}

// UpdatedAt returns the updated_at stamp, 0 for a catalog never written.
func (s *DB) UpdatedAt(ctx context.Context) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM catalog_meta WHERE key = 'updated_at'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read updated_at: %w", err)
	}
	return v, nil
}

// ReadDefinitions loads the catalog in stored order.
func (s *DB) ReadDefinitions(ctx context.Context) (*lexicon.Definitions, error) {
	var defs lexicon.Definitions

	rows, err := s.db.QueryContext(ctx, `SELECT id, name_en, name_th, name_lo, aliases FROM categories ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	for rows.Next() {
		var c lexicon.Category
		var aliases string
		if err := rows.Scan(&c.ID, &c.Names.EN, &c.Names.TH, &c.Names.LO, &aliases); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if c.Aliases, err = decodeList(aliases); err != nil {
			rows.Close()
			return nil, fmt.Errorf("category %s aliases: %w", c.ID, err)
		}
		defs.Categories = append(defs.Categories, c)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT term, categories FROM category_aliases ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list category aliases: %w", err)
	}
	for rows.Next() {
		var a lexicon.CategoryAlias
		var cats string
		if err := rows.Scan(&a.Term, &cats); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan category alias: %w", err)
		}
		if a.Categories, err = decodeList(cats); err != nil {
			rows.Close()
			return nil, fmt.Errorf("category alias %s: %w", a.Term, err)
		}
		defs.CategoryAliases = append(defs.CategoryAliases, a)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	tags, err := s.modelCategories(ctx)
	if err != nil {
		return nil, err
	}
	models, err := s.models(ctx, tags)
	if err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT seq, id, name_en, name_th, name_lo, synonyms, category_overrides FROM brands ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	for rows.Next() {
		var b lexicon.Brand
		var seq int64
		var synonyms, overrides string
		if err := rows.Scan(&seq, &b.ID, &b.Names.EN, &b.Names.TH, &b.Names.LO, &synonyms, &overrides); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		if b.Synonyms, err = decodeList(synonyms); err != nil {
			rows.Close()
			return nil, fmt.Errorf("brand %s synonyms: %w", b.ID, err)
		}
		if b.CategoryOverrides, err = decodeList(overrides); err != nil {
			rows.Close()
			return nil, fmt.Errorf("brand %s overrides: %w", b.ID, err)
		}
		b.Models = models[seq]
		defs.Brands = append(defs.Brands, b)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT display, search_key FROM idioms ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list idioms: %w", err)
	}
	for rows.Next() {
		var idiom lexicon.Idiom
		if err := rows.Scan(&idiom.Display, &idiom.SearchKey); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan idiom: %w", err)
		}
		defs.Idioms = append(defs.Idioms, idiom)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	return &defs, nil
}

// models returns the models of every brand keyed by brand seq.
func (s *DB) models(ctx context.Context, tags map[int64][]string) (map[int64][]lexicon.Model, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, brand_seq, id, brand_id, name_en, name_th, name_lo, synonyms FROM models ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]lexicon.Model)
	for rows.Next() {
		var m lexicon.Model
		var seq, brandSeq int64
		var synonyms string
		if err := rows.Scan(&seq, &brandSeq, &m.ID, &m.BrandID, &m.Names.EN, &m.Names.TH, &m.Names.LO, &synonyms); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		if m.Synonyms, err = decodeList(synonyms); err != nil {
			return nil, fmt.Errorf("model %s synonyms: %w", m.ID, err)
		}
		m.Categories = tags[seq]
		out[brandSeq] = append(out[brandSeq], m)
	}
	return out, rows.Err()
}

func (s *DB) modelCategories(ctx context.Context) (map[int64][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT model_seq, category_id FROM model_categories ORDER BY model_seq, position`)
	if err != nil {
		return nil, fmt.Errorf("list model categories: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var seq int64
		var cat string
		if err := rows.Scan(&seq, &cat); err != nil {
			return nil, fmt.Errorf("scan model category: %w", err)
		}
		out[seq] = append(out[seq], cat)
	}
	return out, rows.Err()
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate catalog rows: %w", err)
	}
	return rows.Close()
}

func encodeList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(list)
	return string(data)
}

func decodeList(s string) ([]string, error) {
	var list []string
	if s == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list, nil
}

// sqliteSource serves "sqlite:" URIs. The database must already exist.
type sqliteSource struct{}

func (sqliteSource) Scheme() string { return "sqlite" }

func (sqliteSource) Read(ctx context.Context, location string) (*lexicon.Definitions, error) {
	db, err := openExisting(location)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.ReadDefinitions(ctx)
}

func (sqliteSource) Fingerprint(ctx context.Context, location string) (string, error) {
	db, err := openExisting(location)
	if err != nil {
		return "", err
	}
	defer db.Close()
	v, err := db.UpdatedAt(ctx)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}

func (sqliteSource) Write(ctx context.Context, location string, defs *lexicon.Definitions) error {
	db, err := OpenDB(location)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Write(ctx, defs)
}

func openExisting(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog db %s: %w", path, err)
	}
	return OpenDB(path)
}
