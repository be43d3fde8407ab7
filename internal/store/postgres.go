package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/exopop/internal/config"
	"github.com/JonMunkholm/exopop/internal/core"
	"github.com/JonMunkholm/exopop/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDatabaseNotConfigured means publishing was requested without a database URL.
var ErrDatabaseNotConfigured = errors.New("database not configured")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS exopop_snapshots (
	id           uuid PRIMARY KEY,
	source       text NOT NULL,
	loaded_at    timestamptz NOT NULL,
	row_count    integer NOT NULL,
	published_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS exopop_planets (
	snapshot_id            uuid NOT NULL REFERENCES exopop_snapshots (id) ON DELETE CASCADE,
	position               integer NOT NULL,
	name                   text NOT NULL,
	period                 double precision,
	transit_epoch          double precision,
	transit_duration       double precision,
	teff                   double precision,
	stellar_radius         double precision,
	stellar_mass           double precision,
	j_mag                  double precision,
	planet_radius          double precision,
	planet_radius_upper    double precision,
	planet_radius_lower    double precision,
	a_over_r               double precision,
	rv_semiamplitude       double precision,
	planet_mass            double precision,
	planet_mass_upper      double precision,
	planet_mass_lower      double precision,
	radius_ratio           double precision,
	ra                     double precision,
	dec                    double precision,
	b                      double precision,
	stellar_distance       double precision,
	stellar_distance_upper double precision,
	stellar_distance_lower double precision,
	discoverer             text,
	PRIMARY KEY (snapshot_id, position)
);

CREATE TABLE IF NOT EXISTS exopop_subset_members (
	snapshot_id uuid NOT NULL REFERENCES exopop_snapshots (id) ON DELETE CASCADE,
	subset_key  text NOT NULL,
	position    integer NOT NULL,
	PRIMARY KEY (snapshot_id, subset_key, position)
);
`

var planetColumns = []string{
	"snapshot_id", "position", "name",
	"period", "transit_epoch", "transit_duration",
	"teff", "stellar_radius", "stellar_mass", "j_mag",
	"planet_radius", "planet_radius_upper", "planet_radius_lower",
	"a_over_r", "rv_semiamplitude",
	"planet_mass", "planet_mass_upper", "planet_mass_lower",
	"radius_ratio", "ra", "dec", "b",
	"stellar_distance", "stellar_distance_upper", "stellar_distance_lower",
	"discoverer",
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	if !cfg.Enabled() {
		return nil, ErrDatabaseNotConfigured
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// Postgres publishes snapshots and subset memberships.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a publisher on an open pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the publishing tables if they do not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PublishSnapshot writes a master table in one transaction.
// Publishing the same snapshot twice fails with a duplicate key error.
func (p *Postgres) PublishSnapshot(ctx context.Context, t *core.MasterTable) error {
	logger := logging.WithFields(ctx, "snapshot", t.ID)

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	_, err = tx.Exec(ctx,
		`INSERT INTO exopop_snapshots (id, source, loaded_at, row_count) VALUES ($1, $2, $3, $4)`,
		pgUUID(t), t.Source, t.LoadedAt, t.Len(),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	rows := planetCopyRows(t)
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"exopop_planets"}, planetColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy planets: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	logger.Info("snapshot published", "rows", n)
	return nil
}

// PublishSubset records which snapshot rows belong to a subset, replacing
// any earlier membership of the same subset. The subset's snapshot must
// already be published.
func (p *Postgres) PublishSubset(ctx context.Context, master *core.MasterTable, s *core.Subset) error {
	if s.Table.ID != master.ID {
		return fmt.Errorf("subset %s belongs to snapshot %s, not %s", s.Info.Key, s.Table.ID, master.ID)
	}

	positions, err := memberPositions(master, s.Table)
	if err != nil {
		return fmt.Errorf("subset %s: %w", s.Info.Key, err)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	id := pgUUID(master)
	_, err = tx.Exec(ctx,
		`DELETE FROM exopop_subset_members WHERE snapshot_id = $1 AND subset_key = $2`,
		id, s.Info.Key,
	)
	if err != nil {
		return fmt.Errorf("clear subset %s: %w", s.Info.Key, err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"exopop_subset_members"},
		[]string{"snapshot_id", "subset_key", "position"},
		pgx.CopyFromSlice(len(positions), func(i int) ([]any, error) {
			return []any{id, s.Info.Key, positions[i]}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy subset %s: %w", s.Info.Key, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	logging.WithFields(ctx, "snapshot", master.ID, "subset", s.Info.Key).
		Info("subset published", "rows", len(positions))
	return nil
}

func pgUUID(t *core.MasterTable) pgtype.UUID {
	return pgtype.UUID{Bytes: t.ID, Valid: true}
}

// planetCopyRows renders a table in planetColumns order.
func planetCopyRows(t *core.MasterTable) [][]any {
	id := pgUUID(t)
	hasDiscoverer := t.HasColumn(core.ColDiscoverer)

	rows := make([][]any, len(t.Planets))
	for i, pl := range t.Planets {
		f := core.ToPgFloat8
		discoverer := pgtype.Text{String: pl.Discoverer, Valid: hasDiscoverer}
		rows[i] = []any{
			id, i, pl.Name,
			f(pl.Period), f(pl.TransitEpoch), f(pl.TransitDuration),
			f(pl.Teff), f(pl.StellarRadius), f(pl.StellarMass), f(pl.J),
			f(pl.PlanetRadius), f(pl.PlanetRadiusUpper), f(pl.PlanetRadiusLower),
			f(pl.AOverR), f(pl.RVSemiamplitude),
			f(pl.PlanetMass), f(pl.PlanetMassUpper), f(pl.PlanetMassLower),
			f(pl.RadiusRatio), pl.RA, pl.Dec, f(pl.B),
			f(pl.StellarDistance), f(pl.StellarDistanceUpper), f(pl.StellarDistanceLower),
			discoverer,
		}
	}
	return rows
}

// memberPositions maps each subset row to its row position in master.
// Both tables are in name order, so one forward scan suffices.
func memberPositions(master, subset *core.MasterTable) ([]int32, error) {
	positions := make([]int32, 0, subset.Len())
	j := 0
	for i := range subset.Planets {
		name := subset.Planets[i].Name
		for j < master.Len() && master.Planets[j].Name != name {
			j++
		}
		if j == master.Len() {
			return nil, fmt.Errorf("row %q not found in snapshot", name)
		}
		positions = append(positions, int32(j))
		j++
	}
	return positions, nil
}
