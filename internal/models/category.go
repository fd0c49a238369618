package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category classifies transactions and carries the income/expense
// distinction: a transaction for an income category never consumes budget.
type Category struct {
	DefaultModel
	Name     string    `json:"name" gorm:"uniqueIndex:category_owner_name" example:"Groceries"` // Name of the category
	OwnerID  uuid.UUID `json:"ownerId" gorm:"uniqueIndex:category_owner_name"`                  // Owner of the category
	Note     string    `json:"note" example:"Everything edible" default:""`                     // Notes about the category
	Icon     string    `json:"icon" example:"shopping-cart" default:""`                         // Icon name for clients
	Color    string    `json:"color" example:"#4caf50" default:""`                              // Display color for clients
	IsIncome bool      `json:"isIncome" example:"false" default:"false"`                        // Do transactions in this category represent income?
	Archived bool      `json:"archived" example:"true" default:"false"`                         // Is the category archived?
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

// defaultCategories is the consistently seeded category set available to
// every owner.
var defaultCategories = []Category{
	{Name: "Salary", Icon: "banknote", Color: "#2e7d32", IsIncome: true},
	{Name: "Groceries", Icon: "shopping-cart", Color: "#4caf50"},
	{Name: "Housing", Icon: "home", Color: "#795548"},
	{Name: "Transport", Icon: "bus", Color: "#607d8b"},
	{Name: "Utilities", Icon: "plug", Color: "#ff9800"},
	{Name: "Health", Icon: "heart-pulse", Color: "#e53935"},
	{Name: "Entertainment", Icon: "clapperboard", Color: "#9c27b0"},
	{Name: "Other", Icon: "tag", Color: "#9e9e9e"},
}

// SeedCategories creates the default category set for an owner. Existing
// categories with the same name are kept untouched, so calling this on
// every application start is safe.
func SeedCategories(db *gorm.DB, ownerID uuid.UUID) error {
	for _, category := range defaultCategories {
		category.OwnerID = ownerID

		err := db.Where(&Category{Name: category.Name, OwnerID: ownerID}).FirstOrCreate(&category).Error
		if err != nil {
			return err
		}
	}

	return nil
}
