package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet is the account a transaction is paid from or into.
type Wallet struct {
	DefaultModel
	Name     string    `json:"name" gorm:"uniqueIndex:wallet_owner_name" example:"Checking"` // Name of the wallet
	OwnerID  uuid.UUID `json:"ownerId" gorm:"uniqueIndex:wallet_owner_name"`                 // Owner of the wallet
	Note     string    `json:"note" default:""`                                              // Notes about the wallet
	Archived bool      `json:"archived" example:"false" default:"false"`                     // Is the wallet archived?
}

func (w *Wallet) BeforeSave(_ *gorm.DB) error {
	w.Name = strings.TrimSpace(w.Name)
	w.Note = strings.TrimSpace(w.Note)

	return nil
}

// Balance returns the sum of all income transactions minus all expense
// transactions for the wallet.
func (w Wallet) Balance(db *gorm.DB) (decimal.Decimal, error) {
	var income, expense decimal.NullDecimal

	err := db.Table("transactions").
		Where("wallet_id = ? AND is_income = ? AND deleted_at IS NULL", w.ID, true).
		Select("SUM(amount)").
		Row().
		Scan(&income)
	if err != nil {
		return decimal.Zero, err
	}

	err = db.Table("transactions").
		Where("wallet_id = ? AND is_income = ? AND deleted_at IS NULL", w.ID, false).
		Select("SUM(amount)").
		Row().
		Scan(&expense)
	if err != nil {
		return decimal.Zero, err
	}

	return income.Decimal.Sub(expense.Decimal), nil
}
