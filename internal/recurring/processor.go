// Package recurring turns due schedules into transactions.
//
// One Run is one pass: it snapshots now once, rolls over expired budgets,
// collects every schedule whose due predicate holds and processes them
// sequentially. Generating the transaction, recording the delta on the
// budget ledger and advancing the schedule happen in a single database
// transaction per schedule, so a crash can never leave a generated
// transaction without an advanced schedule. A duplicate submission for an
// occurrence is rejected by the unique (schedule, occurrence) index and
// handled by advancing the schedule without creating a second transaction.
package recurring

import (
	"context"
	"errors"
	"time"

	"github.com/finwall/backend/internal/ledger"
	"github.com/finwall/backend/internal/metrics"
	"github.com/finwall/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Processor generates transactions for due recurring schedules.
type Processor struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

// NewProcessor returns a processor working on the given database.
func NewProcessor(db *gorm.DB, l *ledger.Ledger) *Processor {
	return &Processor{db: db, ledger: l}
}

// Result summarizes one processing pass.
type Result struct {
	Due        int `json:"due"`        // Schedules that were due in this pass
	Generated  int `json:"generated"`  // Transactions created
	Deduped    int `json:"deduped"`    // Occurrences that already had a transaction
	Failed     int `json:"failed"`     // Schedules whose processing failed, retried next pass
	RolledOver int `json:"rolledOver"` // Budgets replaced by a fresh period instance
}

// Run executes one processing pass.
//
// All due and expiry checks in the pass use the same now snapshot, the
// date changing mid-pass cannot split a pass. Errors in one schedule's
// processing do not abort the rest, the failed schedule is simply not
// advanced and retried on the next pass. The pass stops between schedules
// when the context is cancelled, already processed schedules stay
// processed.
func (p *Processor) Run(ctx context.Context, now time.Time) (Result, error) {
	var result Result

	// Budgets must reflect the current period before any spending is
	// recorded against them.
	rolled, err := p.ledger.RolloverExpired(ctx, p.db, now)
	if err != nil {
		return result, err
	}
	result.RolledOver = rolled

	var schedules []models.RecurringSchedule
	err = p.db.WithContext(ctx).Where("active = ?", true).Find(&schedules).Error
	if err != nil {
		return result, err
	}

	for _, schedule := range schedules {
		if err := ctx.Err(); err != nil {
			// Cancellation between iterations: remaining due schedules
			// are picked up by the next pass.
			return result, err
		}

		if !schedule.ShouldGenerate(now) {
			continue
		}
		result.Due++

		deduped, err := p.processOne(ctx, schedule, now)
		if err != nil {
			metrics.GenerationFailures.Inc()
			result.Failed++
			log.Error().Err(err).
				Stringer("schedule", schedule.ID).
				Stringer("occurrence", schedule.NextOccurrence).
				Msg("recurring: schedule processing failed, will retry next pass")
			continue
		}

		if deduped {
			result.Deduped++
		} else {
			metrics.TransactionsGenerated.Inc()
			result.Generated++
		}
	}

	return result, nil
}

// processOne fulfills the current occurrence of one schedule. It reports
// whether the occurrence had already been fulfilled by an earlier,
// interrupted pass.
func (p *Processor) processOne(ctx context.Context, schedule models.RecurringSchedule, now time.Time) (deduped bool, err error) {
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		err := tx.First(&category, "id = ?", schedule.CategoryID).Error
		if err != nil {
			return err
		}

		transaction := schedule.NewTransaction(category)
		err = tx.Create(&transaction).Error
		if errors.Is(err, models.ErrOccurrenceAlreadyExists) {
			// An earlier pass saved the transaction but did not get to
			// advance the schedule. Just advance now.
			deduped = true
		} else if err != nil {
			return err
		}

		if !deduped && !category.IsIncome {
			// The delta is recorded against the budget containing the
			// occurrence date, which is also the transaction date. A late
			// pass must not charge a past occurrence to the current period.
			err = p.ledger.ApplyDelta(ctx, tx, schedule.CategoryID, schedule.OwnerID, schedule.Amount, transaction.Date)
			if err != nil {
				return err
			}
		}

		schedule.Advance(now)

		return tx.Model(&schedule).
			Updates(map[string]interface{}{
				"next_occurrence": schedule.NextOccurrence,
				"total_generated": schedule.TotalGenerated,
				"last_generated":  schedule.LastGenerated,
			}).Error
	})

	return deduped, err
}
