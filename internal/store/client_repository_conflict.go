package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

// conflictColumns is the canonical column order shared by every conflict
// query in this file.
var conflictColumns = []string{
	"id",
	"entity_id",
	"account_id",
	"project_id",
	"entity_type",
	"field",
	"type",
	"local_data",
	"local_timestamp",
	"local_version",
	"server_data",
	"server_timestamp",
	"server_version",
	"resolution",
	"resolved_at",
}

type conflictRepository struct {
	*DB
	logger  *logger.Logger
	builder sq.StatementBuilderType
}

func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	return &conflictRepository{
		DB:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *conflictRepository) Save(ctx context.Context, c models.Conflict) error {
	log := logger.FromContext(ctx)

	localData, err := json.Marshal(c.Local.Data)
	if err != nil {
		return fmt.Errorf("%w: encode local conflict data: %w", ErrDurableWrite, err)
	}
	serverData, err := json.Marshal(c.Server.Data)
	if err != nil {
		return fmt.Errorf("%w: encode server conflict data: %w", ErrDurableWrite, err)
	}

	query, args, err := r.builder.
		Insert("conflicts").
		Columns(conflictColumns...).
		Values(
			c.ID,
			c.EntityID,
			c.AccountID,
			c.ProjectID,
			c.EntityType,
			c.Field,
			c.Type,
			string(localData),
			c.Local.Timestamp,
			c.Local.Version,
			string(serverData),
			c.Server.Timestamp,
			c.Server.Version,
			c.Resolution,
			c.ResolvedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			local_data = excluded.local_data,
			local_timestamp = excluded.local_timestamp,
			local_version = excluded.local_version,
			server_data = excluded.server_data,
			server_timestamp = excluded.server_timestamp,
			server_version = excluded.server_version`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Save").
			Str("conflict_id", c.ID).
			Str("entity_id", c.EntityID).
			Msg("failed to save conflict")
		return fmt.Errorf("%w: save conflict (id=%s): %w", ErrDurableWrite, c.ID, err)
	}

	return nil
}

func (r *conflictRepository) ListByAccount(ctx context.Context, accountID int64, unresolvedOnly bool) ([]models.Conflict, error) {
	q := r.builder.
		Select(conflictColumns...).
		From("conflicts").
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("entity_id", "field")

	if unresolvedOnly {
		q = q.Where(sq.Eq{"resolution": nil})
	}

	return r.queryConflicts(ctx, q)
}

func (r *conflictRepository) ListByEntity(ctx context.Context, entityID string) ([]models.Conflict, error) {
	q := r.builder.
		Select(conflictColumns...).
		From("conflicts").
		Where(sq.Eq{"entity_id": entityID}).
		OrderBy("field")

	return r.queryConflicts(ctx, q)
}

func (r *conflictRepository) MarkResolved(ctx context.Context, id, resolution string) error {
	query, args, err := r.builder.
		Update("conflicts").
		Set("resolution", resolution).
		Set("resolved_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: mark conflict resolved (id=%s): %w", ErrExecutingStatement, id, err)
	}
	if affected, raErr := res.RowsAffected(); raErr == nil && affected == 0 {
		return fmt.Errorf("mark conflict resolved (id=%s): %w", id, ErrConflictNotFound)
	}

	return nil
}

// DeleteByEntity removes every conflict row for the entity in one statement,
// so a resolved entity never retains a partial set of stale conflicts.
func (r *conflictRepository) DeleteByEntity(ctx context.Context, entityID string) error {
	query, args, err := r.builder.
		Delete("conflicts").
		Where(sq.Eq{"entity_id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: delete conflicts (entity_id=%s): %w", ErrExecutingStatement, entityID, err)
	}

	return nil
}

func (r *conflictRepository) queryConflicts(ctx context.Context, q sq.SelectBuilder) ([]models.Conflict, error) {
	log := logger.FromContext(ctx)

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.queryConflicts").
			Msg("failed to query conflicts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var conflicts []models.Conflict
	for rows.Next() {
		var (
			c          models.Conflict
			localData  sql.NullString
			serverData sql.NullString
			resolution sql.NullString
			resolvedAt sql.NullTime
		)
		if err = rows.Scan(
			&c.ID,
			&c.EntityID,
			&c.AccountID,
			&c.ProjectID,
			&c.EntityType,
			&c.Field,
			&c.Type,
			&localData,
			&c.Local.Timestamp,
			&c.Local.Version,
			&serverData,
			&c.Server.Timestamp,
			&c.Server.Version,
			&resolution,
			&resolvedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		if localData.Valid {
			if err = json.Unmarshal([]byte(localData.String), &c.Local.Data); err != nil {
				return nil, fmt.Errorf("decode local conflict data: %w", err)
			}
		}
		if serverData.Valid {
			if err = json.Unmarshal([]byte(serverData.String), &c.Server.Data); err != nil {
				return nil, fmt.Errorf("decode server conflict data: %w", err)
			}
		}
		if resolution.Valid {
			c.Resolution = &resolution.String
		}
		if resolvedAt.Valid {
			c.ResolvedAt = &resolvedAt.Time
		}

		conflicts = append(conflicts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return conflicts, nil
}
