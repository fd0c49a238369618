package v1_test

import (
	"net/http"

	v1 "github.com/finwall/backend/internal/controllers/v1"
	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteEnv) TestProcessRecurring() {
	category := suite.createTestCategory(models.Category{})
	wallet := suite.createTestWallet(models.Wallet{})

	schedule := models.RecurringSchedule{
		Title:      "Netflix",
		Amount:     decimal.NewFromInt(13),
		CategoryID: category.ID,
		WalletID:   wallet.ID,
		Frequency:  types.FrequencyMonthly,
		StartDate:  types.NewDate(2024, 3, 1),
		Active:     true,
	}
	err := models.DB.Create(&schedule).Error
	suite.Assert().Nil(err)

	recorder := suite.request(http.MethodPost, "/v1/recurring/process", v1.RecurringProcessRequest{
		ProcessDate: "2024-03-01",
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.RecurringProcessResponse
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Equal(1, response.Data.Due)
	suite.Assert().Equal(1, response.Data.Generated)

	var transaction models.Transaction
	err = models.DB.Where("schedule_id = ?", schedule.ID).First(&transaction).Error
	suite.Assert().Nil(err)
	suite.Assert().Equal("Netflix", transaction.Title)

	// A second pass for the same date changes nothing
	recorder = suite.request(http.MethodPost, "/v1/recurring/process", v1.RecurringProcessRequest{
		ProcessDate: "2024-03-01",
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	suite.decodeResponse(&recorder, &response)
	suite.Assert().Equal(0, response.Data.Generated)
}

func (suite *TestSuiteEnv) TestProcessRecurringInvalidDate() {
	recorder := suite.request(http.MethodPost, "/v1/recurring/process", v1.RecurringProcessRequest{
		ProcessDate: "not-a-date",
	})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}
