package models_test

import (
	"time"

	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteEnv) TestBudgetValidation() {
	category := suite.createTestCategory(models.Category{})

	tests := []struct {
		name     string
		budget   models.Budget
		expected error
	}{
		{
			"amount zero",
			models.Budget{CategoryID: category.ID, Period: types.PeriodMonth},
			models.ErrAmountNotPositive,
		},
		{
			"no category",
			models.Budget{Amount: decimal.NewFromInt(100), Period: types.PeriodMonth},
			models.ErrCategoryRequired,
		},
		{
			"bad period",
			models.Budget{CategoryID: category.ID, Amount: decimal.NewFromInt(100), Period: "FORTNIGHT"},
			models.ErrPeriodInvalid,
		},
	}

	for _, tt := range tests {
		err := models.DB.Create(&tt.budget).Error
		suite.Assert().ErrorIs(err, tt.expected, "test case %q", tt.name)
	}
}

func (suite *TestSuiteEnv) TestBudgetEndDateDerived() {
	category := suite.createTestCategory(models.Category{})

	tests := []struct {
		period   types.Period
		start    types.Date
		expected string
	}{
		{types.PeriodWeek, types.NewDate(2024, 3, 1), "2024-03-08"},
		{types.PeriodMonth, types.NewDate(2024, 3, 1), "2024-04-01"},
		{types.PeriodMonth, types.NewDate(2024, 1, 31), "2024-02-29"},
		{types.PeriodQuarter, types.NewDate(2024, 1, 1), "2024-04-01"},
		{types.PeriodYear, types.NewDate(2024, 2, 29), "2025-02-28"},
	}

	for _, tt := range tests {
		budget := models.Budget{
			CategoryID: category.ID,
			Amount:     decimal.NewFromInt(100),
			Period:     tt.period,
			StartDate:  tt.start,
			Active:     true,
		}

		err := models.DB.Create(&budget).Error
		suite.Assert().Nil(err)
		suite.Assert().Equal(tt.expected, budget.EndDate.String(), "%s budget starting %s", tt.period, tt.start)
	}
}

func (suite *TestSuiteEnv) TestBudgetStartDateDefaultsToToday() {
	category := suite.createTestCategory(models.Category{})

	budget := models.Budget{
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(100),
		Period:     types.PeriodMonth,
	}

	err := models.DB.Create(&budget).Error
	suite.Assert().Nil(err)
	suite.Assert().Equal(types.DateOf(time.Now()).String(), budget.StartDate.String())
}

func (suite *TestSuiteEnv) TestBudgetContains() {
	budget := models.Budget{
		StartDate: types.NewDate(2024, 3, 1),
		EndDate:   types.NewDate(2024, 4, 1),
	}

	suite.Assert().False(budget.Contains(time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)))
	suite.Assert().True(budget.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	suite.Assert().True(budget.Contains(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)))
	suite.Assert().True(budget.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	suite.Assert().False(budget.Contains(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)))
}

func (suite *TestSuiteEnv) TestBudgetThresholds() {
	tests := []struct {
		name        string
		spent       decimal.Decimal
		overBudget  bool
		warningBand bool
	}{
		{"nothing spent", decimal.Zero, false, false},
		{"below warning", decimal.NewFromInt(79), false, false},
		{"at warning threshold", decimal.NewFromInt(80), false, true},
		{"just below limit", decimal.NewFromFloat(99.99), false, true},
		{"exactly at limit", decimal.NewFromInt(100), false, false},
		{"just over limit", decimal.NewFromFloat(100.01), true, false},
		{"far over limit", decimal.NewFromInt(250), true, false},
	}

	for _, tt := range tests {
		budget := models.Budget{
			CategoryID: uuid.New(),
			Amount:     decimal.NewFromInt(100),
			Spent:      tt.spent,
		}

		suite.Assert().Equal(tt.overBudget, budget.OverBudget(), "OverBudget, test case %q", tt.name)
		suite.Assert().Equal(tt.warningBand, budget.InWarningBand(), "InWarningBand, test case %q", tt.name)
	}
}

func (suite *TestSuiteEnv) TestBudgetExpired() {
	budget := models.Budget{
		StartDate: types.NewDate(2024, 3, 1),
		EndDate:   types.NewDate(2024, 4, 1),
	}

	suite.Assert().False(budget.Expired(time.Date(2024, 4, 1, 23, 0, 0, 0, time.UTC)))
	suite.Assert().True(budget.Expired(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)))
}
