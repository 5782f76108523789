package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// BlobRepository is the table-oriented key/value store behind every report.
// Table names are validated against the allowlist before interpolation; the
// payload is opaque JSON text as far as this layer is concerned.
type BlobRepository struct {
	db *sqlx.DB
}

func NewBlobRepository(db *sqlx.DB) *BlobRepository {
	return &BlobRepository{db}
}

// ErrUnknownTable is returned before any statement runs when the table is not
// on the allowlist.
var ErrUnknownTable = errors.New("unknown blob table")

// ErrBusy is returned once the transient-failure retries are exhausted.
var ErrBusy = errors.New("storage busy, retries exhausted")

func validTable(table string) error {
	if _, ok := constants.KnownTables[table]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return nil
}

// isTransient reports whether the error is a lock/serialization condition
// worth retrying at the statement level.
func isTransient(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case "55P03", "40001", "40P01": // lock_not_available, serialization_failure, deadlock_detected
		return true
	}
	return false
}

// withRetry runs fn, retrying transient failures a fixed number of times with
// a fixed delay. Retrying happens here, per statement, never around a whole
// report computation.
func withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt <= constants.StorageBusyRetries; attempt++ {
		err = fn()
		if err == nil || !isTransient(err) {
			return err
		}
		time.Sleep(constants.StorageBusyDelayMsec * time.Millisecond)
	}
	return fmt.Errorf("%w: %v", ErrBusy, err)
}

// ScanTable returns every row of the table ordered by creation time.
func (r *BlobRepository) ScanTable(ctx context.Context, table string) ([]entities.Row, error) {
	if err := validTable(table); err != nil {
		return nil, err
	}

	var rows []entities.Row
	err := withRetry(func() error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, fmt.Sprintf(constants.ScanTableQuery, table))
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID fetches a single row. A missing row returns (nil, nil).
func (r *BlobRepository) GetByID(ctx context.Context, table, id string) (*entities.Row, error) {
	if err := validTable(table); err != nil {
		return nil, err
	}

	var row entities.Row
	err := withRetry(func() error {
		return r.db.GetContext(ctx, &row, fmt.Sprintf(constants.GetRecordByIDQuery, table), id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Insert writes a row, upserting on id so re-ingesting an export is safe.
func (r *BlobRepository) Insert(ctx context.Context, table, id string, payload []byte) error {
	if err := validTable(table); err != nil {
		return err
	}
	return withRetry(func() error {
		_, err := r.db.ExecContext(ctx, fmt.Sprintf(constants.InsertRecordQuery, table), id, payload)
		return err
	})
}

// Update replaces the payload of an existing row.
func (r *BlobRepository) Update(ctx context.Context, table, id string, payload []byte) error {
	if err := validTable(table); err != nil {
		return err
	}
	return withRetry(func() error {
		res, err := r.db.ExecContext(ctx, fmt.Sprintf(constants.UpdateRecordQuery, table), id, payload)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// Delete removes a row outright. Rows are never soft-deleted.
func (r *BlobRepository) Delete(ctx context.Context, table, id string) error {
	if err := validTable(table); err != nil {
		return err
	}
	return withRetry(func() error {
		_, err := r.db.ExecContext(ctx, fmt.Sprintf(constants.DeleteRecordQuery, table), id)
		return err
	})
}

// DeleteByDate removes every row whose payload Date field equals the given
// canonical date. Used by the replace-for-date schedule update.
func (r *BlobRepository) DeleteByDate(ctx context.Context, table, date string) error {
	if err := validTable(table); err != nil {
		return err
	}
	return withRetry(func() error {
		_, err := r.db.ExecContext(ctx, fmt.Sprintf(constants.DeleteByDateQuery, table), date)
		return err
	})
}
