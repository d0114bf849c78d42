package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-sync-ledger/internal/logger"
	"github.com/MKhiriev/go-sync-ledger/models"
)

type operationRepository struct {
	*DB
	logger *logger.Logger
}

func NewOperationRepository(db *DB, logger *logger.Logger) OperationRepository {
	return &operationRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *operationRepository) Append(ctx context.Context, op models.Operation) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(op.Payload)
	if err != nil {
		return fmt.Errorf("%w: encode operation payload: %w", ErrDurableWrite, err)
	}

	_, err = r.DB.ExecContext(ctx, appendOperation,
		op.ID,
		op.AccountID,
		op.EntityType,
		op.EntityID,
		op.OpType,
		string(payload),
		op.CreatedAt,
		op.Attempts,
		op.Status,
	)
	if err != nil {
		log.Err(err).
			Str("func", "operationRepository.Append").
			Str("operation_id", op.ID).
			Str("entity_id", op.EntityID).
			Msg("failed to append operation")
		return fmt.Errorf("%w: append operation (id=%s): %w", ErrDurableWrite, op.ID, err)
	}

	return nil
}

func (r *operationRepository) ListPending(ctx context.Context, accountID int64) ([]models.Operation, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listPendingOperations, accountID)
	if err != nil {
		log.Err(err).
			Str("func", "operationRepository.ListPending").
			Int64("account_id", accountID).
			Msg("failed to query pending operations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var ops []models.Operation
	for rows.Next() {
		var (
			op      models.Operation
			payload string
		)
		if err = rows.Scan(
			&op.ID,
			&op.AccountID,
			&op.EntityType,
			&op.EntityID,
			&op.OpType,
			&payload,
			&op.CreatedAt,
			&op.Attempts,
			&op.Status,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err = json.Unmarshal([]byte(payload), &op.Payload); err != nil {
			return nil, fmt.Errorf("decode operation payload: %w", err)
		}
		ops = append(ops, op)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ops, nil
}

func (r *operationRepository) IncrementAttempts(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, incrementOperationAttempts, id)
	if err != nil {
		return fmt.Errorf("%w: increment attempts (id=%s): %w", ErrExecutingStatement, id, err)
	}
	return nil
}

func (r *operationRepository) SetStatus(ctx context.Context, id, status string) error {
	_, err := r.DB.ExecContext(ctx, setOperationStatus, status, id)
	if err != nil {
		return fmt.Errorf("%w: set status (id=%s): %w", ErrExecutingStatement, id, err)
	}
	return nil
}

// Remove is idempotent: deleting an id that is already gone succeeds.
func (r *operationRepository) Remove(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, removeOperation, id)
	if err != nil {
		return fmt.Errorf("%w: remove operation (id=%s): %w", ErrExecutingStatement, id, err)
	}
	return nil
}

func (r *operationRepository) CountPending(ctx context.Context, accountID int64) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, countPendingOperations, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: count pending operations: %w", ErrExecutingQuery, err)
	}
	return count, nil
}
