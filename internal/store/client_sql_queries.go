// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	saveSnapshot = `
		INSERT INTO snapshots (
			entity_type,
			entity_id,
			account_id,
			project_id,
			fields,
			synced_fields,
			version,
			last_updated,
			last_synced_at,
			stale
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			fields         = excluded.fields,
			synced_fields  = excluded.synced_fields,
			version        = excluded.version,
			last_updated   = excluded.last_updated,
			last_synced_at = excluded.last_synced_at,
			stale          = excluded.stale
		WHERE snapshots.version <= excluded.version;`

	getSnapshot = `
		SELECT
			entity_type,
			entity_id,
			account_id,
			project_id,
			fields,
			synced_fields,
			version,
			last_updated,
			last_synced_at,
			stale
		FROM snapshots
		WHERE entity_type = $1 AND entity_id = $2;`

	getSnapshotsByAccount = `
		SELECT
			entity_type,
			entity_id,
			account_id,
			project_id,
			fields,
			synced_fields,
			version,
			last_updated,
			last_synced_at,
			stale
		FROM snapshots
		WHERE account_id = $1;`

	getSnapshotVersion = `
		SELECT version FROM snapshots
		WHERE entity_type = $1 AND entity_id = $2;`

	deleteSnapshot = `
		DELETE FROM snapshots
		WHERE entity_type = $1 AND entity_id = $2;`

	markSnapshotSynced = `
		UPDATE snapshots SET
			version        = $1,
			last_synced_at = $2,
			synced_fields  = fields,
			stale          = FALSE
		WHERE entity_type = $3 AND entity_id = $4 AND version <= $1;`

	markSnapshotStale = `
		UPDATE snapshots SET stale = TRUE
		WHERE entity_type = $1 AND entity_id = $2;`

	appendOperation = `
		INSERT INTO operations (
			id,
			account_id,
			entity_type,
			entity_id,
			op_type,
			payload,
			created_at,
			attempts,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	listPendingOperations = `
		SELECT
			id,
			account_id,
			entity_type,
			entity_id,
			op_type,
			payload,
			created_at,
			attempts,
			status
		FROM operations
		WHERE account_id = $1 AND status != 'failed'
		ORDER BY created_at ASC, id ASC;`

	incrementOperationAttempts = `
		UPDATE operations SET attempts = attempts + 1
		WHERE id = $1;`

	setOperationStatus = `
		UPDATE operations SET status = $1
		WHERE id = $2;`

	removeOperation = `
		DELETE FROM operations
		WHERE id = $1;`

	countPendingOperations = `
		SELECT COUNT(*) FROM operations
		WHERE account_id = $1 AND status != 'failed';`
)
