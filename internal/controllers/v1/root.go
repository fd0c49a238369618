package v1

import (
	"net/http"

	"github.com/finwall/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetRoot)
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets"`
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`
	Export       string `json:"export" example:"https://example.com/api/v1/export/csv"`
	MatchRules   string `json:"matchRules" example:"https://example.com/api/v1/match-rules"`
	Receipts     string `json:"receipts" example:"https://example.com/api/v1/receipts"`
	Recurring    string `json:"recurring" example:"https://example.com/api/v1/recurring/process"`
	Schedules    string `json:"schedules" example:"https://example.com/api/v1/schedules"`
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"`
	Wallets      string `json:"wallets" example:"https://example.com/api/v1/wallets"`
}

// @Summary		v1 API
// @Description	Returns the links for v1 of the API
// @Tags			v1
// @Success		200	{object}	RootResponse
// @Router			/v1 [get]
func GetRoot(c *gin.Context) {
	url := httputil.RequestPathV1(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Budgets:      url + "/budgets",
			Categories:   url + "/categories",
			Export:       url + "/export/csv",
			MatchRules:   url + "/match-rules",
			Receipts:     url + "/receipts",
			Recurring:    url + "/recurring/process",
			Schedules:    url + "/schedules",
			Transactions: url + "/transactions",
			Wallets:      url + "/wallets",
		},
	})
}
