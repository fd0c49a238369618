package v1_test

import (
	"net/http"

	v1 "github.com/finwall/backend/internal/controllers/v1"
	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteEnv) TestPreviewReceipt() {
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})

	rule := models.MatchRule{
		Priority:   1,
		Match:      "REWE*",
		CategoryID: groceries.ID,
	}
	err := models.DB.Create(&rule).Error
	suite.Assert().Nil(err)

	recorder := suite.request(http.MethodPost, "/v1/receipts", v1.ReceiptPreviewRequest{
		Text: "REWE Markt GmbH\nMilch 1,19\nBrot 2,49\nSumme 23,67\n02.03.2024",
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.ReceiptPreviewResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Equal("REWE Markt GmbH", response.Data.Merchant)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromFloat(23.67)), "amount is %s", response.Data.Amount)
	suite.Assert().True(response.Data.Date.Equal(types.NewDate(2024, 3, 2)))
	suite.Assert().NotNil(response.Data.CategoryID)
	suite.Assert().Equal(groceries.ID, *response.Data.CategoryID)
	suite.Assert().NotEmpty(response.Data.ImportHash)

	// Nothing is persisted by a preview
	var count int64
	err = models.DB.Model(&models.Transaction{}).Count(&count).Error
	suite.Assert().Nil(err)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteEnv) TestPreviewReceiptNoRuleMatches() {
	recorder := suite.request(http.MethodPost, "/v1/receipts", v1.ReceiptPreviewRequest{
		Text: "Some Shop\nTotal 12.00",
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.ReceiptPreviewResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Nil(response.Data.CategoryID)
	suite.Assert().Nil(response.Data.MatchRuleID)
}

func (suite *TestSuiteEnv) TestPreviewReceiptEmptyText() {
	recorder := suite.request(http.MethodPost, "/v1/receipts", v1.ReceiptPreviewRequest{})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteEnv) TestPreviewReceiptNoAmount() {
	recorder := suite.request(http.MethodPost, "/v1/receipts", v1.ReceiptPreviewRequest{
		Text: "Parkhaus Mitte\nDanke und auf Wiedersehen",
	})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}
