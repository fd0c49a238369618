package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/finwall/backend/internal/controllers/v1"
	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteEnv) march() time.Time {
	return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (suite *TestSuiteEnv) budgetSpent(id interface{}) decimal.Decimal {
	var budget models.Budget
	err := models.DB.First(&budget, id).Error
	suite.Assert().Nil(err)

	return budget.Spent
}

func (suite *TestSuiteEnv) TestCreateTransactionRecordsSpending() {
	category := suite.createTestCategory(models.Category{})
	wallet := suite.createTestWallet(models.Wallet{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Title:      "Groceries",
		Amount:     decimal.NewFromInt(50),
		Date:       suite.march(),
		CategoryID: category.ID,
		WalletID:   wallet.ID,
	})
	suite.assertHTTPStatus(&recorder, http.StatusCreated)

	var response v1.TransactionResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().False(response.Data.IsIncome)

	suite.Assert().True(suite.budgetSpent(budget.ID).Equal(decimal.NewFromInt(50)))
}

func (suite *TestSuiteEnv) TestCreateIncomeTransactionSkipsBudget() {
	category := suite.createTestCategory(models.Category{IsIncome: true})
	wallet := suite.createTestWallet(models.Wallet{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Title:      "Salary",
		Amount:     decimal.NewFromInt(3000),
		Date:       suite.march(),
		CategoryID: category.ID,
		WalletID:   wallet.ID,
	})
	suite.assertHTTPStatus(&recorder, http.StatusCreated)

	var response v1.TransactionResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().True(response.Data.IsIncome)

	suite.Assert().True(suite.budgetSpent(budget.ID).IsZero())
}

func (suite *TestSuiteEnv) TestCreateTransactionUnknownCategory() {
	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Title:      "Mystery",
		Amount:     decimal.NewFromInt(50),
		CategoryID: uuid.New(),
	})
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}

func (suite *TestSuiteEnv) TestCreateTransactionWithoutWallet() {
	category := suite.createTestCategory(models.Category{})

	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Title:      "Orphan",
		Amount:     decimal.NewFromInt(50),
		Date:       suite.march(),
		CategoryID: category.ID,
	})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Equal(models.ErrWalletRequired.Error(), response.Error)
}

func (suite *TestSuiteEnv) TestUpdateTransactionMovesSpending() {
	category := suite.createTestCategory(models.Category{})
	wallet := suite.createTestWallet(models.Wallet{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Title:      "Groceries",
		Amount:     decimal.NewFromInt(50),
		Date:       suite.march(),
		CategoryID: category.ID,
		WalletID:   wallet.ID,
	})
	suite.assertHTTPStatus(&recorder, http.StatusCreated)

	var response v1.TransactionResponse
	suite.decodeResponse(&recorder, &response)

	// Changing the amount reverts the old delta and applies the new one
	recorder = suite.request(http.MethodPatch, "/v1/transactions/"+response.Data.ID.String(), map[string]any{"amount": "80"})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	suite.Assert().True(suite.budgetSpent(budget.ID).Equal(decimal.NewFromInt(80)), "spent is %s", suite.budgetSpent(budget.ID))
}

func (suite *TestSuiteEnv) TestDeleteTransactionRemovesSpending() {
	category := suite.createTestCategory(models.Category{})
	wallet := suite.createTestWallet(models.Wallet{})
	budget := suite.createTestBudget(models.Budget{
		CategoryID: category.ID,
		Period:     types.PeriodMonth,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	})

	recorder := suite.request(http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Title:      "Groceries",
		Amount:     decimal.NewFromInt(50),
		Date:       suite.march(),
		CategoryID: category.ID,
		WalletID:   wallet.ID,
	})
	suite.assertHTTPStatus(&recorder, http.StatusCreated)

	var response v1.TransactionResponse
	suite.decodeResponse(&recorder, &response)

	recorder = suite.request(http.MethodDelete, "/v1/transactions/"+response.Data.ID.String(), nil)
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)

	suite.Assert().True(suite.budgetSpent(budget.ID).IsZero())
}

func (suite *TestSuiteEnv) TestGetTransactionsFiltered() {
	category := suite.createTestCategory(models.Category{})
	other := suite.createTestCategory(models.Category{})
	wallet := suite.createTestWallet(models.Wallet{})

	for _, c := range []models.Category{category, other} {
		transaction := models.Transaction{
			Amount:     decimal.NewFromInt(10),
			CategoryID: c.ID,
			WalletID:   wallet.ID,
			Date:       suite.march(),
		}
		err := models.DB.Create(&transaction).Error
		suite.Assert().Nil(err)
	}

	recorder := suite.request(http.MethodGet, "/v1/transactions?category="+category.ID.String(), nil)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.TransactionListResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Len(response.Data, 1)
	suite.Assert().Equal(category.ID, response.Data[0].CategoryID)

	// Date range filters
	recorder = suite.request(http.MethodGet, "/v1/transactions?from=2024-03-01&to=2024-03-31", nil)
	suite.assertHTTPStatus(&recorder, http.StatusOK)
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Len(response.Data, 2)

	recorder = suite.request(http.MethodGet, "/v1/transactions?from=2024-04-01", nil)
	suite.assertHTTPStatus(&recorder, http.StatusOK)
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Len(response.Data, 0)
}
