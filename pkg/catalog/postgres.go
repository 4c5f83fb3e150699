package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

// pgUndefinedTable is the PostgreSQL error code raised when the
// product_catalog table has not been created yet.
const pgUndefinedTable = "42P01"

const catalogSchemaSQL = `
CREATE TABLE IF NOT EXISTS product_catalog (
    id BIGSERIAL PRIMARY KEY,
    brand TEXT NOT NULL DEFAULT '',
    model TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    part_number TEXT NOT NULL DEFAULT '',
    height_u DOUBLE PRECISION NOT NULL DEFAULT 1,
    watts DOUBLE PRECISION NOT NULL DEFAULT 0,
    btu DOUBLE PRECISION NOT NULL DEFAULT 0,
    weight DOUBLE PRECISION NOT NULL DEFAULT 0,
    subsystem TEXT NOT NULL DEFAULT 'AV',
    is_rack_mountable BOOLEAN NOT NULL DEFAULT TRUE,
    category TEXT NOT NULL DEFAULT '',
    connections TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (brand, model)
);
CREATE INDEX IF NOT EXISTS idx_product_catalog_model ON product_catalog (model);
CREATE INDEX IF NOT EXISTS idx_product_catalog_part_number ON product_catalog (part_number);
`

const loadProductsSQL = `
SELECT brand, model, name, part_number, height_u, watts, btu, weight,
       subsystem, connections
FROM product_catalog
WHERE is_rack_mountable
`

const upsertProductSQL = `
INSERT INTO product_catalog
    (brand, model, name, part_number, height_u, watts, btu, weight,
     subsystem, is_rack_mountable, category, connections, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (brand, model) DO UPDATE SET
    name = EXCLUDED.name,
    part_number = EXCLUDED.part_number,
    height_u = EXCLUDED.height_u,
    watts = EXCLUDED.watts,
    btu = EXCLUDED.btu,
    weight = EXCLUDED.weight,
    subsystem = EXCLUDED.subsystem,
    is_rack_mountable = EXCLUDED.is_rack_mountable,
    category = EXCLUDED.category,
    connections = EXCLUDED.connections,
    notes = EXCLUDED.notes,
    updated_at = NOW()
`

// PostgresSource resolves specs from a shared PostgreSQL product
// catalog (the product_catalog table). Like [MongoSource], it reads all
// rack-mountable rows into an in-memory index on first lookup and
// answers from there, with fuzzy model-number matching.
type PostgresSource struct {
	pool *pgxpool.Pool

	loadOnce sync.Once
	loadErr  error
	ix       *specIndex
}

// NewPostgresSource connects to the catalog database. The table is not
// read until the first lookup.
func NewPostgresSource(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

// Name identifies the source as "postgres".
func (s *PostgresSource) Name() string { return "postgres" }

// Close releases the connection pool.
func (s *PostgresSource) Close() { s.pool.Close() }

// EnsureSchema creates the product_catalog table and its indexes if
// they do not exist.
func (s *PostgresSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, catalogSchemaSQL); err != nil {
		return fmt.Errorf("create product_catalog: %w", err)
	}
	return nil
}

// Lookup resolves q against the in-memory index, loading the catalog on
// first use.
func (s *PostgresSource) Lookup(ctx context.Context, q Query) (*Spec, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	spec := s.ix.lookup(q.ModelNumber())
	if spec == nil || spec.Units <= 0 {
		return nil, ErrNotFound
	}
	cp := *spec
	return &cp, nil
}

// Import creates the schema if needed and upserts entries keyed by
// brand and model.
func (s *PostgresSource) Import(ctx context.Context, entries []Entry) (int, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	written := 0
	for _, e := range entries {
		if e.Model == "" {
			continue
		}
		units := e.Spec.Units
		if units <= 0 {
			units = 1
		}
		subsystem := e.Spec.Subsystem
		if subsystem == "" {
			subsystem = "AV"
		}
		_, err := s.pool.Exec(ctx, upsertProductSQL,
			e.Brand, e.Model, e.Name, e.PartNumber,
			units, e.Spec.Watts, e.Spec.BTU, e.Spec.Weight,
			subsystem, e.Spec.RackMountable, e.Category, e.Spec.Connections, e.Notes,
		)
		if err != nil {
			return written, fmt.Errorf("import %s %s: %w", e.Brand, e.Model, err)
		}
		written++
	}
	return written, nil
}

func (s *PostgresSource) load(ctx context.Context) error {
	s.loadOnce.Do(func() {
		ix := newSpecIndex()
		rows, err := s.pool.Query(ctx, loadProductsSQL)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
				s.loadErr = fmt.Errorf("product_catalog table missing, run a catalog import first: %w", err)
				return
			}
			s.loadErr = fmt.Errorf("load product catalog: %w", err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				brand, model, name, partNumber string
				heightU, watts, btu, weight    float64
				subsystem, connections         string
			)
			if err := rows.Scan(&brand, &model, &name, &partNumber,
				&heightU, &watts, &btu, &weight, &subsystem, &connections); err != nil {
				s.loadErr = fmt.Errorf("scan product: %w", err)
				return
			}
			if heightU <= 0 {
				heightU = 1
			}
			if subsystem == "" {
				subsystem = "AV"
			}
			ix.add(brand, model, partNumber, &Spec{
				Units:         heightU,
				Weight:        weight,
				BTU:           btu,
				Watts:         watts,
				Subsystem:     subsystem,
				RackMountable: true,
				Connections:   connections,
				Source:        "postgres",
			})
		}
		if err := rows.Err(); err != nil {
			s.loadErr = fmt.Errorf("load product catalog: %w", err)
			return
		}
		s.ix = ix
	})
	return s.loadErr
}

var (
	_ Source   = (*PostgresSource)(nil)
	_ Importer = (*PostgresSource)(nil)
)
