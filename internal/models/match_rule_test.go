package models_test

import (
	"github.com/finwall/backend/internal/models"
)

func (suite *TestSuiteEnv) TestMatchRuleValidation() {
	category := suite.createTestCategory(models.Category{})

	rule := models.MatchRule{Match: "   ", CategoryID: category.ID}
	err := models.DB.Create(&rule).Error
	suite.Assert().ErrorIs(err, models.ErrMatchRulePatternNotValid)

	rule = models.MatchRule{Match: "REWE*"}
	err = models.DB.Create(&rule).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryRequired)

	rule = models.MatchRule{Match: " REWE* ", CategoryID: category.ID}
	err = models.DB.Create(&rule).Error
	suite.Assert().Nil(err)
	suite.Assert().Equal("REWE*", rule.Match)
}
