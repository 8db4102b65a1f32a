package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository persists workspace graphs as JSON snapshots. Snapshots
// are append-only; Latest returns the most recent one.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

func (r *SnapshotRepository) Save(ctx context.Context, workspaceID string, graphJSON []byte) error {
	query := `
		INSERT INTO workspace_snapshots (id, workspace_id, graph, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		uuid.New(),
		workspaceID,
		graphJSON,
		time.Now().UTC(),
	)
	return err
}

// Latest returns the newest snapshot for the workspace, or nil when none
// exists.
func (r *SnapshotRepository) Latest(ctx context.Context, workspaceID string) ([]byte, error) {
	query := `
		SELECT graph FROM workspace_snapshots
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var graphJSON []byte
	err := r.pool.QueryRow(ctx, query, workspaceID).Scan(&graphJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return graphJSON, nil
}

func (r *SnapshotRepository) DeleteByWorkspace(ctx context.Context, workspaceID string) error {
	query := `DELETE FROM workspace_snapshots WHERE workspace_id = $1`
	_, err := r.pool.Exec(ctx, query, workspaceID)
	return err
}
