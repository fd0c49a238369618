package v1

import (
	"net/http"
	"time"

	"github.com/finwall/backend/internal/httputil"
	"github.com/finwall/backend/internal/importer"
	"github.com/finwall/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterReceiptRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", PreviewReceipt)
}

// ReceiptPreviewRequest contains the raw text of a scanned receipt.
type ReceiptPreviewRequest struct {
	Text string `json:"text" example:"REWE Markt\nSumme 23,67\n2024-03-02"`
}

type ReceiptPreviewResponse struct {
	Data *importer.TransactionPreview `json:"data"`
}

// @Summary		Preview receipt import
// @Description	Parses raw receipt text into a transaction preview. Match rules are applied by priority to suggest a category. Nothing is persisted, the client creates the transaction from the preview.
// @Tags			Receipts
// @Produce		json
// @Success		200		{object}	ReceiptPreviewResponse
// @Failure		400		{object}	httpError
// @Param			receipt	body		ReceiptPreviewRequest	true	"Receipt text"
// @Router			/v1/receipts [post]
func PreviewReceipt(c *gin.Context) {
	var request ReceiptPreviewRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if request.Text == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errReceiptTextEmpty.Error()})
		return
	}

	preview, err := importer.Parse(request.Text, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var rules []models.MatchRule
	err = models.DB.Order("priority ASC").Find(&rules).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	importer.Match(&preview, rules)

	c.JSON(http.StatusOK, ReceiptPreviewResponse{Data: &preview})
}
