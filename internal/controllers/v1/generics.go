package v1

import (
	"github.com/finwall/backend/internal/httputil"
	"github.com/finwall/backend/internal/ledger"
	"github.com/finwall/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// ledgerInstance is the budget ledger used by all handlers that record
// spending. It is the single writer of Budget.Spent.
var ledgerInstance = ledger.New(nil)

// Configure sets the ledger used by the handlers. Called once at startup.
func Configure(l *ledger.Ledger) {
	ledgerInstance = l
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R models.Budget | models.Category | models.Wallet | models.Transaction | models.RecurringSchedule | models.MatchRule](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
