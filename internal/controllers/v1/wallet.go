package v1

import (
	"net/http"

	"github.com/finwall/backend/internal/httputil"
	"github.com/finwall/backend/internal/models"
	fw_uuid "github.com/finwall/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func RegisterWalletRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsWallets)
		r.GET("", GetWallets)
		r.POST("", CreateWallet)
	}
	{
		r.OPTIONS("/:id", OptionsWalletDetail)
		r.GET("/:id", GetWallet)
		r.PATCH("/:id", UpdateWallet)
		r.DELETE("/:id", DeleteWallet)
	}
}

// WalletEditable represents all user configurable parameters of a wallet
type WalletEditable struct {
	Name     string    `json:"name" example:"Checking"`
	OwnerID  uuid.UUID `json:"ownerId"`
	Note     string    `json:"note" default:""`
	Archived bool      `json:"archived" example:"false" default:"false"`
}

func (editable WalletEditable) model() models.Wallet {
	return models.Wallet{
		Name:     editable.Name,
		OwnerID:  editable.OwnerID,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

// Wallet is a wallet with its computed balance.
type Wallet struct {
	models.Wallet
	Balance decimal.Decimal `json:"balance" example:"180.47"` // Sum of income minus expenses in this wallet
}

type WalletResponse struct {
	Data *Wallet `json:"data"`
}

type WalletListResponse struct {
	Data []Wallet `json:"data"`
}

func newWallet(model models.Wallet) (Wallet, error) {
	balance, err := model.Balance(models.DB)
	if err != nil {
		return Wallet{}, err
	}

	return Wallet{Wallet: model, Balance: balance}, nil
}

// @Summary		Allowed HTTP verbs
// @Tags			Wallets
// @Success		204
// @Router			/v1/wallets [options]
func OptionsWallets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Tags			Wallets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/wallets/{id} [options]
func OptionsWalletDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Wallet{})
}

// @Summary		Create wallet
// @Tags			Wallets
// @Produce		json
// @Success		201		{object}	WalletResponse
// @Failure		400		{object}	httpError
// @Param			wallet	body		WalletEditable	true	"Wallet"
// @Router			/v1/wallets [post]
func CreateWallet(c *gin.Context) {
	var editable WalletEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	wallet := editable.model()
	err = models.DB.Create(&wallet).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, WalletResponse{Data: &Wallet{Wallet: wallet}})
}

// @Summary		List wallets
// @Tags			Wallets
// @Produce		json
// @Success		200	{object}	WalletListResponse
// @Failure		400	{object}	httpError
// @Router			/v1/wallets [get]
// @Param			owner	query	string	false	"Filter by owner ID"
func GetWallets(c *gin.Context) {
	var filter struct {
		Owner fw_uuid.UUID `form:"owner"`
	}
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Model(&models.Wallet{})
	if filter.Owner.UUID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.Owner.UUID)
	}

	var wallets []models.Wallet
	err := query.Order("name ASC").Find(&wallets).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	response := WalletListResponse{Data: make([]Wallet, 0, len(wallets))}
	for _, model := range wallets {
		wallet, err := newWallet(model)
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}
		response.Data = append(response.Data, wallet)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary		Get wallet
// @Tags			Wallets
// @Produce		json
// @Success		200	{object}	WalletResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/wallets/{id} [get]
func GetWallet(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var model models.Wallet
	err := models.DB.First(&model, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	wallet, err := newWallet(model)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, WalletResponse{Data: &wallet})
}

// @Summary		Update wallet
// @Tags			Wallets
// @Produce		json
// @Success		200		{object}	WalletResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		string			true	"ID formatted as string"
// @Param			wallet	body		WalletEditable	true	"Wallet"
// @Router			/v1/wallets/{id} [patch]
func UpdateWallet(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var model models.Wallet
	err := models.DB.First(&model, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, WalletEditable{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable WalletEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&model).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, WalletResponse{Data: &Wallet{Wallet: model}})
}

// @Summary		Delete wallet
// @Tags			Wallets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/wallets/{id} [delete]
func DeleteWallet(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var model models.Wallet
	err := models.DB.First(&model, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&model).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
