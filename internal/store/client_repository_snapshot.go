package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

type snapshotRepository struct {
	*DB
	logger *logger.Logger
}

func NewSnapshotRepository(db *DB, logger *logger.Logger) SnapshotRepository {
	return &snapshotRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *snapshotRepository) Save(ctx context.Context, snap models.EntitySnapshot) error {
	log := logger.FromContext(ctx)

	fields, err := json.Marshal(snap.Fields)
	if err != nil {
		return fmt.Errorf("%w: encode snapshot fields: %w", ErrDurableWrite, err)
	}

	var syncedFields any
	if snap.SyncedFields != nil {
		encoded, mErr := json.Marshal(snap.SyncedFields)
		if mErr != nil {
			return fmt.Errorf("%w: encode synced fields: %w", ErrDurableWrite, mErr)
		}
		syncedFields = string(encoded)
	}

	var syncedAt any
	if !snap.LastSyncedAt.IsZero() {
		syncedAt = snap.LastSyncedAt
	}

	res, err := r.DB.ExecContext(ctx, saveSnapshot,
		snap.EntityType,
		snap.EntityID,
		snap.AccountID,
		snap.ProjectID,
		string(fields),
		syncedFields,
		snap.Version,
		snap.LastUpdated,
		syncedAt,
		snap.Stale,
	)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.Save").
			Str("entity_id", snap.EntityID).
			Msg("failed to execute upsert for snapshot")
		return fmt.Errorf("%w: save snapshot (entity_id=%s): %w", ErrDurableWrite, snap.EntityID, err)
	}

	// Zero affected rows means the version-checked upsert refused to go
	// backwards over a concurrent newer write.
	if affected, raErr := res.RowsAffected(); raErr == nil && affected == 0 {
		return fmt.Errorf("save snapshot (entity_id=%s): %w", snap.EntityID, ErrVersionCheckFailed)
	}

	return nil
}

func (r *snapshotRepository) Get(ctx context.Context, entityType, entityID string) (models.EntitySnapshot, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getSnapshot, entityType, entityID)
	snap, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EntitySnapshot{}, ErrSnapshotNotFound
		}
		log.Err(err).
			Str("func", "snapshotRepository.Get").
			Str("entity_id", entityID).
			Msg("failed to scan snapshot row")
		return models.EntitySnapshot{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return snap, nil
}

func (r *snapshotRepository) GetByAccount(ctx context.Context, accountID int64) ([]models.EntitySnapshot, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getSnapshotsByAccount, accountID)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.GetByAccount").
			Int64("account_id", accountID).
			Msg("failed to query snapshots")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var snaps []models.EntitySnapshot
	for rows.Next() {
		snap, scanErr := scanSnapshot(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		snaps = append(snaps, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return snaps, nil
}

func (r *snapshotRepository) Delete(ctx context.Context, entityType, entityID string) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, deleteSnapshot, entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.Delete").
			Str("entity_id", entityID).
			Msg("failed to delete snapshot")
		return fmt.Errorf("%w: delete snapshot (entity_id=%s): %w", ErrDurableWrite, entityID, err)
	}

	return nil
}

func (r *snapshotRepository) MarkSynced(ctx context.Context, entityType, entityID string, version int64) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, markSnapshotSynced, version, time.Now().UTC(), entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.MarkSynced").
			Str("entity_id", entityID).
			Msg("failed to mark snapshot synced")
		return fmt.Errorf("%w: mark snapshot synced (entity_id=%s): %w", ErrDurableWrite, entityID, err)
	}

	if affected, raErr := res.RowsAffected(); raErr == nil && affected == 0 {
		return fmt.Errorf("mark snapshot synced (entity_id=%s): %w", entityID, ErrSnapshotNotFound)
	}

	return nil
}

func (r *snapshotRepository) MarkStale(ctx context.Context, entityType, entityID string) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, markSnapshotStale, entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.MarkStale").
			Str("entity_id", entityID).
			Msg("failed to mark snapshot stale")
		return fmt.Errorf("%w: mark snapshot stale (entity_id=%s): %w", ErrDurableWrite, entityID, err)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(s scanner) (models.EntitySnapshot, error) {
	var (
		snap         models.EntitySnapshot
		fields       string
		syncedFields sql.NullString
		syncedAt     sql.NullTime
	)

	err := s.Scan(
		&snap.EntityType,
		&snap.EntityID,
		&snap.AccountID,
		&snap.ProjectID,
		&fields,
		&syncedFields,
		&snap.Version,
		&snap.LastUpdated,
		&syncedAt,
		&snap.Stale,
	)
	if err != nil {
		return models.EntitySnapshot{}, err
	}

	if err = json.Unmarshal([]byte(fields), &snap.Fields); err != nil {
		return models.EntitySnapshot{}, fmt.Errorf("decode snapshot fields: %w", err)
	}
	if syncedFields.Valid {
		if err = json.Unmarshal([]byte(syncedFields.String), &snap.SyncedFields); err != nil {
			return models.EntitySnapshot{}, fmt.Errorf("decode synced fields: %w", err)
		}
	}
	if syncedAt.Valid {
		snap.LastSyncedAt = syncedAt.Time
	}

	return snap, nil
}
