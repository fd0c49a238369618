package v1_test

import (
	"encoding/csv"
	"net/http"
	"strings"
	"time"

	"github.com/finwall/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteEnv) TestExportTransactionsCSV() {
	category := suite.createTestCategory(models.Category{Name: "Groceries"})
	wallet := suite.createTestWallet(models.Wallet{})

	for _, transaction := range []models.Transaction{
		{Title: "Supermarket", Amount: decimal.NewFromFloat(23.67), CategoryID: category.ID, WalletID: wallet.ID, Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{Title: "Bakery", Amount: decimal.NewFromFloat(4.20), CategoryID: category.ID, WalletID: wallet.ID, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{Title: "Outside range", Amount: decimal.NewFromInt(99), CategoryID: category.ID, WalletID: wallet.ID, Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
	} {
		err := models.DB.Create(&transaction).Error
		suite.Assert().Nil(err)
	}

	recorder := suite.request(http.MethodGet, "/v1/export/csv?from=2024-03-01&to=2024-03-31", nil)
	suite.assertHTTPStatus(&recorder, http.StatusOK)
	suite.Assert().Equal("text/csv", recorder.Header().Get("Content-Type"))
	suite.Assert().Contains(recorder.Header().Get("Content-Disposition"), "attachment")

	records, err := csv.NewReader(strings.NewReader(recorder.Body.String())).ReadAll()
	suite.Require().Nil(err)
	suite.Require().Len(records, 3, "expected a header and two rows")

	suite.Assert().Equal("Date", records[0][0])

	// Newest first
	suite.Assert().Equal("Bakery", records[1][1])
	suite.Assert().Equal("Supermarket", records[2][1])
	suite.Assert().Equal("Groceries", records[2][2])
}

func (suite *TestSuiteEnv) TestExportTransactionsCSVRangeRequired() {
	recorder := suite.request(http.MethodGet, "/v1/export/csv?from=2024-03-01", nil)
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)

	recorder = suite.request(http.MethodGet, "/v1/export/csv", nil)
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}
