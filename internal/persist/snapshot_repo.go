package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kestrelgame/kestrel/internal/core/ecs"
)

// SnapshotRow is one live entity at snapshot time.
type SnapshotRow struct {
	Index      uint32
	Version    uint32
	Components []int32
}

// SnapshotHeader describes one saved snapshot.
type SnapshotHeader struct {
	ID        int64
	Tick      uint64
	Alive     int
	ForCount  uint32
	CreatedAt time.Time
}

// RowsFromRecords converts World.Snapshot output into storable rows.
func RowsFromRecords(records []ecs.EntityRecord) []SnapshotRow {
	rows := make([]SnapshotRow, len(records))
	for i, rec := range records {
		comps := make([]int32, len(rec.Components))
		for j, c := range rec.Components {
			comps[j] = int32(c)
		}
		rows[i] = SnapshotRow{Index: rec.ID.Index(), Version: rec.ID.Version(), Components: comps}
	}
	return rows
}

type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Save writes the header and every row in one transaction and returns the
// new snapshot id.
func (r *SnapshotRepo) Save(ctx context.Context, tick uint64, forCount uint32, rows []SnapshotRow) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("snapshot begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO world_snapshots (tick, alive, for_count) VALUES ($1, $2, $3) RETURNING id`,
		int64(tick), len(rows), int64(forCount),
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("snapshot insert: %w", err)
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"snapshot_entities"},
		[]string{"snapshot_id", "entity_index", "version", "components"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			row := rows[i]
			return []any{id, int64(row.Index), int64(row.Version), row.Components}, nil
		}),
	); err != nil {
		return 0, fmt.Errorf("snapshot copy entities: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("snapshot commit: %w", err)
	}
	return id, nil
}

// Latest loads the most recent snapshot. It returns nil, nil, nil when none exist.
func (r *SnapshotRepo) Latest(ctx context.Context) (*SnapshotHeader, []SnapshotRow, error) {
	var h SnapshotHeader
	var tick, forCount int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, tick, alive, for_count, created_at FROM world_snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&h.ID, &tick, &h.Alive, &forCount, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot latest: %w", err)
	}
	h.Tick = uint64(tick)
	h.ForCount = uint32(forCount)

	rows, err := r.db.Pool.Query(ctx,
		`SELECT entity_index, version, components FROM snapshot_entities
		 WHERE snapshot_id = $1 ORDER BY entity_index`, h.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot entities: %w", err)
	}
	defer rows.Close()

	var out []SnapshotRow
	for rows.Next() {
		var idx, version int64
		var row SnapshotRow
		if err := rows.Scan(&idx, &version, &row.Components); err != nil {
			return nil, nil, fmt.Errorf("scan snapshot entity: %w", err)
		}
		row.Index = uint32(idx)
		row.Version = uint32(version)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("snapshot entities: %w", err)
	}
	return &h, out, nil
}

// Prune deletes all but the newest keep snapshots.
func (r *SnapshotRepo) Prune(ctx context.Context, keep int) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`DELETE FROM world_snapshots WHERE id NOT IN
		 (SELECT id FROM world_snapshots ORDER BY id DESC LIMIT $1)`, keep)
	if err != nil {
		return 0, fmt.Errorf("snapshot prune: %w", err)
	}
	return tag.RowsAffected(), nil
}
