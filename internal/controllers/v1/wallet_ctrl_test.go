package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/finwall/backend/internal/controllers/v1"
	"github.com/finwall/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteEnv) TestCreateWallet() {
	recorder := suite.request(http.MethodPost, "/v1/wallets", v1.WalletEditable{
		Name: "Checking",
	})
	suite.assertHTTPStatus(&recorder, http.StatusCreated)

	var response v1.WalletResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Equal("Checking", response.Data.Name)
	suite.Assert().True(response.Data.Balance.IsZero())
}

func (suite *TestSuiteEnv) TestCreateWalletDuplicateName() {
	suite.createTestWallet(models.Wallet{Name: "Checking"})

	recorder := suite.request(http.MethodPost, "/v1/wallets", v1.WalletEditable{
		Name: "Checking",
	})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteEnv) TestGetWalletBalance() {
	income := suite.createTestCategory(models.Category{IsIncome: true})
	expense := suite.createTestCategory(models.Category{})
	wallet := suite.createTestWallet(models.Wallet{})

	for _, transaction := range []models.Transaction{
		{Title: "Salary", Amount: decimal.NewFromInt(3000), IsIncome: true, CategoryID: income.ID, WalletID: wallet.ID, Date: time.Now()},
		{Title: "Groceries", Amount: decimal.NewFromFloat(79.50), CategoryID: expense.ID, WalletID: wallet.ID, Date: time.Now()},
	} {
		err := models.DB.Create(&transaction).Error
		suite.Assert().Nil(err)
	}

	recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/wallets/%s", wallet.ID), nil)
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.WalletResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().True(response.Data.Balance.Equal(decimal.NewFromFloat(2920.50)), "balance is %s", response.Data.Balance)
}

func (suite *TestSuiteEnv) TestUpdateWalletArchive() {
	wallet := suite.createTestWallet(models.Wallet{})

	recorder := suite.request(http.MethodPatch, fmt.Sprintf("/v1/wallets/%s", wallet.ID), map[string]any{
		"archived": true,
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var updated models.Wallet
	err := models.DB.First(&updated, wallet.ID).Error
	suite.Assert().Nil(err)
	suite.Assert().True(updated.Archived)
	suite.Assert().Equal(wallet.Name, updated.Name)
}

func (suite *TestSuiteEnv) TestDeleteWallet() {
	wallet := suite.createTestWallet(models.Wallet{})

	recorder := suite.request(http.MethodDelete, fmt.Sprintf("/v1/wallets/%s", wallet.ID), nil)
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/wallets/%s", wallet.ID), nil)
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}
