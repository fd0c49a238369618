package models_test

import (
	"github.com/finwall/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteEnv) TestWalletNameUniquePerOwner() {
	owner := uuid.New()
	suite.createTestWallet(models.Wallet{Name: "Checking", OwnerID: owner})

	duplicate := models.Wallet{Name: "Checking", OwnerID: owner}
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrWalletNameNotUnique)

	other := models.Wallet{Name: "Checking", OwnerID: uuid.New()}
	err = models.DB.Create(&other).Error
	suite.Assert().Nil(err)
}

func (suite *TestSuiteEnv) TestWalletBalance() {
	wallet := suite.createTestWallet(models.Wallet{})
	income := suite.createTestCategory(models.Category{Name: "Salary", IsIncome: true})
	expense := suite.createTestCategory(models.Category{Name: "Groceries"})

	transactions := []models.Transaction{
		{Amount: decimal.NewFromInt(3000), CategoryID: income.ID, WalletID: wallet.ID, IsIncome: true},
		{Amount: decimal.NewFromInt(120), CategoryID: expense.ID, WalletID: wallet.ID},
		{Amount: decimal.NewFromFloat(79.5), CategoryID: expense.ID, WalletID: wallet.ID},
	}
	for i := range transactions {
		err := models.DB.Create(&transactions[i]).Error
		suite.Assert().Nil(err)
	}

	balance, err := wallet.Balance(models.DB)
	suite.Assert().Nil(err)
	suite.Assert().True(balance.Equal(decimal.NewFromFloat(2800.5)), "balance is %s", balance)

	// Soft deleted transactions do not count
	err = models.DB.Delete(&transactions[1]).Error
	suite.Assert().Nil(err)

	balance, err = wallet.Balance(models.DB)
	suite.Assert().Nil(err)
	suite.Assert().True(balance.Equal(decimal.NewFromFloat(2920.5)), "balance is %s", balance)
}

func (suite *TestSuiteEnv) TestWalletBalanceEmpty() {
	wallet := suite.createTestWallet(models.Wallet{})

	balance, err := wallet.Balance(models.DB)
	suite.Assert().Nil(err)
	suite.Assert().True(balance.IsZero())
}
