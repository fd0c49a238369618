// Package ledger maintains the per-period spending accumulators of
// budgets.
//
// The ledger is the only writer of Budget.Spent. Manual transaction CRUD,
// receipt imports and the recurring processor all express their changes as
// signed deltas through ApplyDelta, which keeps the accumulator
// commutative: the final value does not depend on the order in which
// deltas arrive.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finwall/backend/internal/metrics"
	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/notifications"
	"github.com/finwall/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger applies spending deltas to budgets and reports threshold events
// to the notification sink.
type Ledger struct {
	sink notifications.Sink
}

// New returns a ledger reporting to the given sink.
func New(sink notifications.Sink) *Ledger {
	if sink == nil {
		sink = notifications.LogSink{}
	}

	return &Ledger{sink: sink}
}

// ApplyDelta adds a signed amount to the active budget of a category whose
// period contains now.
//
// Uncategorized or unbudgeted spending is allowed: when no budget matches,
// the call is a no-op, not an error. Malformed input is logged as an
// anomaly and ignored, a bad record must never abort a processing pass.
//
// The accumulator is updated read-modify-write against the persisted row
// inside one database transaction, never against a stale in-memory copy.
func (l *Ledger) ApplyDelta(ctx context.Context, db *gorm.DB, categoryID, ownerID uuid.UUID, delta decimal.Decimal, now time.Time) error {
	return l.apply(ctx, db, categoryID, ownerID, delta, now, false)
}

// RemoveSpending reverts an amount from the matching budget, clamping the
// accumulator at zero. This is the path for transaction deletions, where
// the original delta may predate the current period instance.
func (l *Ledger) RemoveSpending(ctx context.Context, db *gorm.DB, categoryID, ownerID uuid.UUID, amount decimal.Decimal, now time.Time) error {
	return l.apply(ctx, db, categoryID, ownerID, amount.Neg(), now, true)
}

func (l *Ledger) apply(ctx context.Context, db *gorm.DB, categoryID, ownerID uuid.UUID, delta decimal.Decimal, now time.Time, clamp bool) error {
	if categoryID == uuid.Nil {
		log.Warn().Msg("ledger: delta without category, ignoring")
		return nil
	}

	if delta.IsZero() {
		return nil
	}

	day := types.DateOf(now)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		err := tx.
			Where("category_id = ? AND owner_id = ? AND active = ? AND start_date <= ? AND end_date >= ?",
				categoryID, ownerID, true, day, day).
			First(&budget).Error
		if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			// Unbudgeted spending
			log.Debug().Stringer("category", categoryID).Msg("ledger: no active budget for category, delta not recorded")
			return nil
		}
		if err != nil {
			return err
		}

		budget.Spent = budget.Spent.Add(delta)
		if clamp && budget.Spent.IsNegative() {
			budget.Spent = decimal.Zero
		}

		err = tx.Model(&models.Budget{}).Where("id = ?", budget.ID).Update("spent", budget.Spent).Error
		if err != nil {
			return err
		}

		if delta.IsPositive() {
			l.checkThresholds(ctx, tx, budget)
		}

		return nil
	})
}

// checkThresholds evaluates the derived exceed and warning predicates
// after a spending increase and notifies the sink. Failures here are never
// surfaced, notification delivery is fire-and-forget.
func (l *Ledger) checkThresholds(ctx context.Context, tx *gorm.DB, budget models.Budget) {
	name := budget.CategoryID.String()

	var category models.Category
	if err := tx.First(&category, "id = ?", budget.CategoryID).Error; err == nil {
		name = category.Name
	}

	if budget.OverBudget() {
		metrics.BudgetsExceeded.Inc()
		l.sink.Send(ctx,
			"Budget exceeded",
			fmt.Sprintf("You exceeded your budget for %s by %s.", name, budget.Spent.Sub(budget.Amount)),
		)
		return
	}

	if budget.InWarningBand() {
		l.sink.Send(ctx,
			"Budget almost used up",
			fmt.Sprintf("You have used %s%% of your budget for %s.", budget.Utilization().Mul(decimal.NewFromInt(100)).Round(0), name),
		)
	}
}

// RolloverExpired replaces every active budget whose period has ended with
// a fresh instance for the same category, amount and period starting now.
// The old instance is deactivated with its accumulator frozen.
//
// The method is idempotent within one day: a second run finds no expired
// active budgets anymore, and the creation guard skips categories that
// already have an active budget covering now. It returns the number of
// budgets rolled over.
func (l *Ledger) RolloverExpired(ctx context.Context, db *gorm.DB, now time.Time) (int, error) {
	day := types.DateOf(now)

	var expired []models.Budget
	err := db.WithContext(ctx).
		Where("active = ? AND end_date < ?", true, day).
		Find(&expired).Error
	if err != nil {
		return 0, err
	}

	rolled := 0
	for _, budget := range expired {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			err := tx.Model(&models.Budget{}).Where("id = ?", budget.ID).Update("active", false).Error
			if err != nil {
				return err
			}

			// Guard against creating a second instance when another
			// active budget already covers today for this category.
			var count int64
			err = tx.Model(&models.Budget{}).
				Where("category_id = ? AND owner_id = ? AND active = ? AND start_date <= ? AND end_date >= ?",
					budget.CategoryID, budget.OwnerID, true, day, day).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return nil
			}

			fresh := models.Budget{
				CategoryID: budget.CategoryID,
				OwnerID:    budget.OwnerID,
				Amount:     budget.Amount,
				Period:     budget.Period,
				StartDate:  day,
				Spent:      decimal.Zero,
				Active:     true,
				Note:       budget.Note,
			}

			return tx.Create(&fresh).Error
		})
		if err != nil {
			// Other budgets still get their rollover
			log.Error().Err(err).Stringer("budget", budget.ID).Msg("ledger: budget rollover failed")
			continue
		}

		metrics.BudgetsRolledOver.Inc()
		rolled++
	}

	return rolled, nil
}
