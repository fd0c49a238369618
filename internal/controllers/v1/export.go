package v1

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/finwall/backend/internal/httputil"
	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/types"
	"github.com/gin-gonic/gin"
)

func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/csv", httputil.OptionsGet)
	r.GET("/csv", ExportTransactionsCSV)
}

type ExportQuery struct {
	From types.Date `form:"from"` // First day of the export range
	To   types.Date `form:"to"`   // Last day of the export range
}

// @Summary		Export transactions
// @Description	Exports all transactions in the date range as CSV, newest first.
// @Tags			Export
// @Produce		text/csv
// @Success		200
// @Failure		400	{object}	httpError
// @Param			from	query	string	true	"First day of the export range"
// @Param			to		query	string	true	"Last day of the export range"
// @Router			/v1/export/csv [get]
func ExportTransactionsCSV(c *gin.Context) {
	var query ExportQuery
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if query.From.IsZero() || query.To.IsZero() {
		c.JSON(http.StatusBadRequest, httpError{Error: errExportRangeNotSet.Error()})
		return
	}

	var transactions []models.Transaction
	err := models.DB.
		Preload("Category").
		Where("date >= ? AND date < ?", query.From.Time(), query.To.AddDays(1).Time()).
		Order("date DESC").
		Find(&transactions).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", query.From, query.To)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write([]string{"Date", "Title", "Category", "Amount", "Type", "Note"})

	for _, transaction := range transactions {
		kind := "expense"
		if transaction.IsIncome {
			kind = "income"
		}

		_ = writer.Write([]string{
			types.DateOf(transaction.Date).String(),
			transaction.Title,
			transaction.Category.Name,
			transaction.Amount.String(),
			kind,
			transaction.Note,
		})
	}

	writer.Flush()
}
