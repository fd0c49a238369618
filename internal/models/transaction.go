package models

import (
	"strings"
	"time"

	"github.com/finwall/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single income or expense entry.
//
// Transactions generated from a recurring schedule carry the schedule ID
// and the occurrence date as provenance. The unique index over both
// columns is what makes the recurring processor idempotent: re-submitting
// the same occurrence fails with ErrOccurrenceAlreadyExists instead of
// creating a duplicate.
type Transaction struct {
	DefaultModel
	Title          string          `json:"title" example:"Rent March"`       // Short description
	Note           string          `json:"note" default:""`                  // Longer notes
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"` // Amount, always positive
	Date           time.Time       `json:"date"`                             // Day the transaction happened
	CategoryID     uuid.UUID       `json:"categoryId"`                       // Category of the transaction
	Category       Category        `json:"-"`
	WalletID       uuid.UUID       `json:"walletId"` // Wallet the transaction belongs to
	Wallet         Wallet          `json:"-"`
	OwnerID        uuid.UUID       `json:"ownerId"`                                                  // Owner of the transaction
	IsIncome       bool            `json:"isIncome" example:"false"`                                 // Derived from the category type at creation
	ScheduleID     *uuid.UUID      `json:"scheduleId" gorm:"uniqueIndex:transaction_occurrence"`     // Originating recurring schedule, if any
	OccurrenceDate *types.Date     `json:"occurrenceDate" gorm:"uniqueIndex:transaction_occurrence"` // The schedule occurrence this transaction fulfills
	ImportHash     string          `json:"importHash" example:""`                                    // SHA256 over the receipt text, used for duplicate detection on import
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - validates the amount
//   - sets the timezone for the Date to UTC
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Title = strings.TrimSpace(t.Title)
	t.Note = strings.TrimSpace(t.Note)
	t.ImportHash = strings.TrimSpace(t.ImportHash)

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if t.CategoryID == uuid.Nil {
		return ErrCategoryRequired
	}

	// The wallet is a hard foreign key, a missing one must be rejected
	// here and not surface as a constraint error
	if t.WalletID == uuid.Nil {
		return ErrWalletRequired
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return
}
