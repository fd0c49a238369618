package v1

import (
	"net/http"
	"time"

	"github.com/finwall/backend/internal/httputil"
	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/recurring"
	"github.com/finwall/backend/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterRecurringRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/process", httputil.OptionsPost)
	r.POST("/process", ProcessRecurring)
}

// RecurringProcessRequest allows overriding the processing date, mainly
// for catching up after downtime and for testing. When empty, today is used.
type RecurringProcessRequest struct {
	ProcessDate string `json:"processDate" example:"2024-03-01"`
}

type RecurringProcessResponse struct {
	Data *recurring.Result `json:"data"`
}

// @Summary		Process due schedules
// @Description	Rolls over expired budgets, then generates one transaction for every schedule whose next occurrence is due. Running it twice for the same date is a no-op.
// @Tags			Recurring
// @Produce		json
// @Success		200		{object}	RecurringProcessResponse
// @Failure		400		{object}	httpError
// @Param			request	body		RecurringProcessRequest	false	"Options"
// @Router			/v1/recurring/process [post]
func ProcessRecurring(c *gin.Context) {
	now := time.Now()

	if c.Request.ContentLength > 0 {
		var request RecurringProcessRequest
		if err := httputil.BindData(c, &request); err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		if request.ProcessDate != "" {
			parsed, err := types.ParseDate(request.ProcessDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
				return
			}
			now = parsed.Time()
		}
	}

	processor := recurring.NewProcessor(models.DB, ledgerInstance)
	result, err := processor.Run(c.Request.Context(), now)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, RecurringProcessResponse{Data: &result})
}
