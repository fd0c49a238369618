package models

import (
	"strings"
	"time"

	"github.com/finwall/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ScheduleStatus is the lazily evaluated state of a recurring schedule.
// There are no timers, the state is derived from the dates whenever a
// schedule is inspected.
type ScheduleStatus string

const (
	ScheduleStatusPending  ScheduleStatus = "PENDING"  // now is before the start date
	ScheduleStatusWaiting  ScheduleStatus = "WAITING"  // active, between occurrences
	ScheduleStatusDue      ScheduleStatus = "DUE"      // the next occurrence has arrived
	ScheduleStatusExpired  ScheduleStatus = "EXPIRED"  // the end date has passed, terminal
	ScheduleStatusInactive ScheduleStatus = "INACTIVE" // deactivated by the user, reversible
)

// RecurringSchedule is a stored recurring obligation: "pay amount X for
// category Y every period Z".
//
// NextOccurrence is always at or after StartDate and is only moved forward
// by Advance, exactly once per generated transaction.
type RecurringSchedule struct {
	DefaultModel
	Title          string          `json:"title" example:"Rent"`             // Short description
	Note           string          `json:"note" default:""`                  // Longer notes
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"` // Amount per occurrence, always positive
	CategoryID     uuid.UUID       `json:"categoryId"`                       // Category for generated transactions
	Category       Category        `json:"-"`
	WalletID       uuid.UUID       `json:"walletId"` // Wallet for generated transactions
	Wallet         Wallet          `json:"-"`
	OwnerID        uuid.UUID       `json:"ownerId"`                                  // Owner of the schedule
	Frequency      types.Frequency `json:"frequency" example:"MONTHLY"`              // How often a transaction is generated
	StartDate      types.Date      `json:"startDate" example:"2024-01-31T00:00:00Z"` // First possible occurrence
	EndDate        *types.Date     `json:"endDate"`                                  // After this date no occurrence is generated anymore
	NextOccurrence types.Date      `json:"nextOccurrence"`                           // The next date a transaction is due
	Active         bool            `json:"active" example:"true"`                    // Inactive schedules never generate
	TotalGenerated uint            `json:"totalGenerated" example:"12"`              // Number of transactions generated so far
	LastGenerated  *types.Date     `json:"lastGenerated"`                            // Day of the last generation
}

func (s *RecurringSchedule) BeforeSave(_ *gorm.DB) error {
	s.Title = strings.TrimSpace(s.Title)
	s.Note = strings.TrimSpace(s.Note)

	if !s.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if s.CategoryID == uuid.Nil {
		return ErrCategoryRequired
	}

	// The wallet is a hard foreign key, a missing one must be rejected
	// here and not surface as a constraint error
	if s.WalletID == uuid.Nil {
		return ErrWalletRequired
	}

	if s.StartDate.IsZero() {
		return ErrStartDateRequired
	}

	if !s.Frequency.Valid() {
		return ErrFrequencyInvalid
	}

	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return ErrEndDateBeforeStart
	}

	// NextOccurrence must never be before StartDate
	if s.NextOccurrence.IsZero() || s.NextOccurrence.Before(s.StartDate) {
		s.NextOccurrence = s.StartDate
	}

	return nil
}

// Expired reports whether the schedule's end date has passed. Expired is
// terminal: such schedules are permanently excluded from due evaluation.
func (s RecurringSchedule) Expired(now time.Time) bool {
	return s.EndDate != nil && types.DateOf(now).After(*s.EndDate)
}

// ShouldGenerate is the single authoritative due predicate. It reports
// whether a transaction is due: the schedule is active, not expired, and
// both the start date and the next occurrence have been reached.
//
// Callers must not reimplement these date comparisons.
func (s RecurringSchedule) ShouldGenerate(now time.Time) bool {
	if !s.Active || s.Expired(now) {
		return false
	}

	today := types.DateOf(now)
	return !today.Before(s.StartDate) && !today.Before(s.NextOccurrence)
}

// Status derives the schedule state for the given time.
func (s RecurringSchedule) Status(now time.Time) ScheduleStatus {
	if !s.Active {
		return ScheduleStatusInactive
	}

	if s.Expired(now) {
		return ScheduleStatusExpired
	}

	today := types.DateOf(now)
	if today.Before(s.StartDate) {
		return ScheduleStatusPending
	}

	if s.ShouldGenerate(now) {
		return ScheduleStatusDue
	}

	return ScheduleStatusWaiting
}

// Advance moves the schedule past the occurrence that was just fulfilled:
// the next occurrence is computed with exact calendar arithmetic, the
// generation counter increments by one and the generation day is recorded.
//
// Advance only mutates the receiver, persisting is the caller's concern so
// that generation and advancement can share one database transaction.
func (s *RecurringSchedule) Advance(now time.Time) {
	s.NextOccurrence = s.Frequency.NextDate(s.NextOccurrence)
	s.TotalGenerated++

	today := types.DateOf(now)
	s.LastGenerated = &today
}

// NewTransaction builds the transaction fulfilling the schedule's current
// occurrence. The transaction is dated at the occurrence, not at the time
// of processing, the two differ when the processor runs late.
func (s RecurringSchedule) NewTransaction(category Category) Transaction {
	occurrence := s.NextOccurrence

	return Transaction{
		Title:          s.Title,
		Note:           s.Note,
		Amount:         s.Amount,
		Date:           occurrence.Time(),
		CategoryID:     s.CategoryID,
		WalletID:       s.WalletID,
		OwnerID:        s.OwnerID,
		IsIncome:       category.IsIncome,
		ScheduleID:     &s.ID,
		OccurrenceDate: &occurrence,
	}
}
