// Package pgstore implements the repositories on PostgreSQL through GORM.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// New returns a Store backed by db. Closing the store closes db.
func New(db *gorm.DB) *repository.Store {
	return &repository.Store{
		Users:            &userRepo{db: db},
		Categories:       &categoryRepo{db: db},
		Products:         &productRepo{db: db},
		Bookings:         &bookingRepo{db: db},
		ReportedProducts: &reportedProductRepo{db: db},
		Payments:         &paymentRepo{db: db},
		Lifecycle:        &lifecycle{db: db},
	}
}

type lifecycle struct {
	db *gorm.DB
}

func (l *lifecycle) Ping(ctx context.Context) error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (l *lifecycle) Close(_ context.Context) error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

// created wraps a Create failure, surfacing unique-key collisions as
// repository.ErrDuplicate whatever the dialect.
func created(db *gorm.DB, err error, what string) error {
	if translator, ok := db.Dialector.(gorm.ErrorTranslator); ok && !errors.Is(err, gorm.ErrDuplicatedKey) {
		err = translator.Translate(err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("failed to create %s: %w", what, repository.ErrDuplicate)
	}
	return fmt.Errorf("failed to create %s: %w", what, err)
}

// onConflict builds an ON CONFLICT clause on the unique column key. The
// columns are overwritten from the proposed row only when one of them
// differs, so a no-op upsert reports zero affected rows. Without columns
// the conflicting insert is dropped. touched columns are rewritten along
// with an update but never trigger one.
func onConflict(table, key string, columns []string, touched ...string) clause.OnConflict {
	conflict := clause.OnConflict{Columns: []clause.Column{{Name: key}}}
	if len(columns) == 0 {
		conflict.DoNothing = true
		return conflict
	}

	changed := make([]string, len(columns))
	for i, col := range columns {
		changed[i] = fmt.Sprintf("%s.%s <> excluded.%s", table, col, col)
	}
	conflict.DoUpdates = clause.AssignmentColumns(append(append([]string{}, columns...), touched...))
	conflict.Where = clause.Where{Exprs: []clause.Expression{
		clause.Expr{SQL: "(" + strings.Join(changed, " OR ") + ")"},
	}}
	return conflict
}

// upserted reports an ON CONFLICT insert. proposedID is the key the insert
// carried and storedID the key found under the unique column afterwards;
// they match only when this call inserted the row.
func upserted(res *gorm.DB, proposedID, storedID string) *repository.UpdateResult {
	if proposedID == storedID {
		return &repository.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: storedID}
	}
	return &repository.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  1,
		ModifiedCount: res.RowsAffected,
	}
}

func updated(res *gorm.DB, what string) (*repository.UpdateResult, error) {
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update %s: %w", what, res.Error)
	}
	return &repository.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.RowsAffected,
		ModifiedCount: res.RowsAffected,
	}, nil
}

func deleted(res *gorm.DB, what string) (*repository.DeleteResult, error) {
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", what, res.Error)
	}
	return &repository.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}
