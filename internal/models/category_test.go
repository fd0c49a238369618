package models_test

import (
	"github.com/finwall/backend/internal/models"
	"github.com/google/uuid"
)

func (suite *TestSuiteEnv) TestCategoryTrimsWhitespace() {
	category := suite.createTestCategory(models.Category{Name: "  Groceries\t", Note: " everything edible "})

	suite.Assert().Equal("Groceries", category.Name)
	suite.Assert().Equal("everything edible", category.Note)
}

func (suite *TestSuiteEnv) TestCategoryNameUniquePerOwner() {
	owner := uuid.New()
	suite.createTestCategory(models.Category{Name: "Groceries", OwnerID: owner})

	duplicate := models.Category{Name: "Groceries", OwnerID: owner}
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)

	// The same name is fine for another owner
	other := models.Category{Name: "Groceries", OwnerID: uuid.New()}
	err = models.DB.Create(&other).Error
	suite.Assert().Nil(err)
}

func (suite *TestSuiteEnv) TestSeedCategoriesIdempotent() {
	owner := uuid.New()

	err := models.SeedCategories(models.DB, owner)
	suite.Assert().Nil(err)

	var count int64
	err = models.DB.Model(&models.Category{}).Where("owner_id = ?", owner).Count(&count).Error
	suite.Assert().Nil(err)
	suite.Assert().Greater(count, int64(0))

	// Seeding again does not create duplicates
	err = models.SeedCategories(models.DB, owner)
	suite.Assert().Nil(err)

	var countAfter int64
	err = models.DB.Model(&models.Category{}).Where("owner_id = ?", owner).Count(&countAfter).Error
	suite.Assert().Nil(err)
	suite.Assert().Equal(count, countAfter)

	// Income categories are part of the default set
	var income int64
	err = models.DB.Model(&models.Category{}).Where("owner_id = ? AND is_income = ?", owner, true).Count(&income).Error
	suite.Assert().Nil(err)
	suite.Assert().Greater(income, int64(0))
}
