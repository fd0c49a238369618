package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/finwall/backend/internal/controllers/v1"
	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteEnv) TestCreateBudgetDerivesEndDate() {
	category := suite.createTestCategory(models.Category{})

	recorder := suite.request(http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(400),
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})
	suite.assertHTTPStatus(&recorder, http.StatusCreated)

	var response v1.BudgetResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().True(response.Data.EndDate.Equal(types.NewDate(2024, 4, 1)), "end date is %s", response.Data.EndDate)
	suite.Assert().True(response.Data.Spent.IsZero())
}

func (suite *TestSuiteEnv) TestCreateBudgetDuplicateActive() {
	category := suite.createTestCategory(models.Category{})
	suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	recorder := suite.request(http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(200),
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 15),
		Active:     true,
	})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteEnv) TestCreateBudgetInactiveDuplicateAllowed() {
	category := suite.createTestCategory(models.Category{})
	suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	// An inactive instance of the same period is fine, that is exactly
	// what rollover leaves behind.
	recorder := suite.request(http.MethodPost, "/v1/budgets", v1.BudgetEditable{
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(200),
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     false,
	})
	suite.assertHTTPStatus(&recorder, http.StatusCreated)
}

func (suite *TestSuiteEnv) TestGetBudgetDerivedPredicates() {
	category := suite.createTestCategory(models.Category{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(100),
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	err := models.DB.Model(&budget).Update("spent", decimal.NewFromInt(85)).Error
	suite.Assert().Nil(err)

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), nil)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.BudgetResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().True(response.Data.InWarningBand)
	suite.Assert().False(response.Data.OverBudget)
	suite.Assert().True(response.Data.Utilization.Equal(decimal.NewFromFloat(0.85)), "utilization is %s", response.Data.Utilization)
}

func (suite *TestSuiteEnv) TestUpdateBudgetIgnoresImmutableFields() {
	category := suite.createTestCategory(models.Category{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", budget.ID), map[string]any{
		"period":    "YEAR",
		"startDate": "2020-01-01",
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var updated models.Budget
	err := models.DB.First(&updated, budget.ID).Error
	suite.Assert().Nil(err)
	suite.Assert().Equal(types.PeriodMonth, updated.Period)
	suite.Assert().True(updated.StartDate.Equal(types.NewDate(2024, 3, 1)))
}

func (suite *TestSuiteEnv) TestUpdateBudgetAmount() {
	category := suite.createTestCategory(models.Category{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", budget.ID), map[string]any{
		"amount": "650",
		"note":   "raised rent",
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var updated models.Budget
	err := models.DB.First(&updated, budget.ID).Error
	suite.Assert().Nil(err)
	suite.Assert().True(updated.Amount.Equal(decimal.NewFromInt(650)))
	suite.Assert().Equal("raised rent", updated.Note)
}

func (suite *TestSuiteEnv) TestUpdateBudgetAmountNotPositive() {
	category := suite.createTestCategory(models.Category{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/budgets/%s", budget.ID), map[string]any{
		"amount": "0",
	})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteEnv) TestGetBudgetsFilterActive() {
	category := suite.createTestCategory(models.Category{})
	suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 2, 1),
		Active:     false,
	})
	suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	recorder := suite.request(http.MethodGet, "/v1/budgets?active=true", nil)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.BudgetListResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Len(response.Data, 1)
	suite.Assert().True(response.Data[0].Active)
}

func (suite *TestSuiteEnv) TestDeleteBudget() {
	category := suite.createTestCategory(models.Category{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
	})

	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/budgets/%s", budget.ID), nil)
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/budgets/%s", budget.ID), nil)
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}
