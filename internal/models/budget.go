package models

import (
	"time"

	"github.com/finwall/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WarningThreshold is the utilization ratio from which a budget is
// considered close to its limit.
var WarningThreshold = decimal.NewFromFloat(0.8)

// Budget is a spending limit for one category over one period.
//
// Spent is the period accumulator. It is owned by the ledger package: every
// writer (manual transaction CRUD, receipt import, recurring processing)
// must go through ledger.ApplyDelta, nothing else may write the field.
type Budget struct {
	DefaultModel
	CategoryID uuid.UUID       `json:"categoryId"` // Category the budget limits
	Category   Category        `json:"-"`
	OwnerID    uuid.UUID       `json:"ownerId"`                                  // Owner of the budget
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`         // The spending limit
	Period     types.Period    `json:"period" example:"MONTH"`                   // Period type the budget covers
	StartDate  types.Date      `json:"startDate" example:"2024-03-01T00:00:00Z"` // First day of the period
	EndDate    types.Date      `json:"endDate" example:"2024-04-01T00:00:00Z"`   // Last day of the period, derived from StartDate and Period
	Spent      decimal.Decimal `json:"spent" gorm:"type:DECIMAL(20,8)"`          // Amount spent within the period
	Active     bool            `json:"active" example:"true"`                    // Is this the current budget instance for the category?
	Note       string          `json:"note" default:""`                          // Notes about the budget
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	if !b.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if b.CategoryID == uuid.Nil {
		return ErrCategoryRequired
	}

	if !b.Period.Valid() {
		return ErrPeriodInvalid
	}

	if b.StartDate.IsZero() {
		b.StartDate = types.DateOf(time.Now())
	}

	// The period end is computed exactly once. Rollover creates a new
	// instance instead of moving the dates.
	if b.EndDate.IsZero() {
		b.EndDate = b.Period.End(b.StartDate)
	}

	if b.EndDate.Before(b.StartDate) {
		return ErrEndDateBeforeStart
	}

	return nil
}

// Contains reports whether the time instant falls into the budget period.
func (b Budget) Contains(t time.Time) bool {
	day := types.DateOf(t)
	return !day.Before(b.StartDate) && !day.After(b.EndDate)
}

// Expired reports whether the budget period lies entirely in the past.
func (b Budget) Expired(now time.Time) bool {
	return types.DateOf(now).After(b.EndDate)
}

// OverBudget reports whether more than the limit has been spent.
// Spending exactly the limit is not over budget.
func (b Budget) OverBudget() bool {
	return b.Spent.GreaterThan(b.Amount)
}

// Utilization returns Spent divided by Amount. A budget with a zero limit
// reports zero utilization, such budgets are rejected on creation anyway.
func (b Budget) Utilization() decimal.Decimal {
	if b.Amount.IsZero() {
		return decimal.Zero
	}

	return b.Spent.Div(b.Amount)
}

// InWarningBand reports whether utilization is at least the warning
// threshold but the budget is not yet exceeded. Both predicates are derived
// on read, never stored.
func (b Budget) InWarningBand() bool {
	utilization := b.Utilization()
	return utilization.GreaterThanOrEqual(WarningThreshold) && utilization.LessThan(decimal.NewFromInt(1))
}
