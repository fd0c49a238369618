package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule maps merchant names from imported receipts to categories.
// Match is a glob pattern, rules are evaluated in ascending priority order
// and the first match wins.
type MatchRule struct {
	DefaultModel
	Priority   uint      `json:"priority" example:"1"`  // Lower priorities are evaluated first
	Match      string    `json:"match" example:"REWE*"` // Glob pattern matched against the merchant name
	CategoryID uuid.UUID `json:"categoryId"`            // Category to assign on match
	Category   Category  `json:"-"`
	OwnerID    uuid.UUID `json:"ownerId"` // Owner of the rule
}

func (m *MatchRule) BeforeSave(_ *gorm.DB) error {
	m.Match = strings.TrimSpace(m.Match)

	if m.Match == "" {
		return ErrMatchRulePatternNotValid
	}

	if m.CategoryID == uuid.Nil {
		return ErrCategoryRequired
	}

	return nil
}
