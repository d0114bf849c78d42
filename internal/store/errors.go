package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrDurableWrite is returned (wrapped) when the local store rejects a
	// write. The triggering user action must fail synchronously and any
	// optimistic in-memory state must be rolled back; no dependent
	// operation may be enqueued after this error.
	ErrDurableWrite = errors.New("durable write failed")

	// ErrSnapshotNotFound is returned when a query or update targets an
	// entity snapshot that does not exist in the local store.
	ErrSnapshotNotFound = errors.New("entity snapshot not found")

	// ErrOperationNotFound is returned when an operation lookup by id
	// produces no row. Remove is exempt: removing a missing operation is
	// not an error.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrConflictNotFound is returned when a conflict lookup by id
	// produces no row.
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrVersionCheckFailed is returned when a version-checked snapshot
	// write observes a newer version already stored, meaning another
	// instance sharing the database has written concurrently.
	ErrVersionCheckFailed = errors.New("snapshot version check failed")

	// ErrEntityNotFound is returned by the server-side repository when an
	// entity row does not exist.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrEntityVersionConflict is returned by the server-side repository
	// when an optimistic-locking check fails: the base version supplied by
	// the client no longer matches the stored version.
	ErrEntityVersionConflict = errors.New("entity version conflict occurred")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
