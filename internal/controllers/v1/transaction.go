package v1

import (
	"net/http"
	"time"

	"github.com/finwall/backend/internal/httputil"
	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/types"
	fw_uuid "github.com/finwall/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransactions)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// TransactionEditable represents all user configurable parameters of a transaction.
type TransactionEditable struct {
	Title      string          `json:"title" example:"Groceries"`
	Note       string          `json:"note" default:""`
	Amount     decimal.Decimal `json:"amount" example:"14.57"`
	Date       time.Time       `json:"date" example:"2024-03-02T00:00:00Z"`
	CategoryID uuid.UUID       `json:"categoryId"`
	WalletID   uuid.UUID       `json:"walletId"`
	OwnerID    uuid.UUID       `json:"ownerId"`
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Title:      editable.Title,
		Note:       editable.Note,
		Amount:     editable.Amount,
		Date:       editable.Date,
		CategoryID: editable.CategoryID,
		WalletID:   editable.WalletID,
		OwnerID:    editable.OwnerID,
	}
}

type TransactionResponse struct {
	Data *models.Transaction `json:"data"`
}

type TransactionListResponse struct {
	Data []models.Transaction `json:"data"`
}

type TransactionQueryFilter struct {
	Owner    fw_uuid.UUID `form:"owner"`    // By owner ID
	Category fw_uuid.UUID `form:"category"` // By category ID
	Wallet   fw_uuid.UUID `form:"wallet"`   // By wallet ID
	Schedule fw_uuid.UUID `form:"schedule"` // Only occurrences of this schedule
	From     types.Date   `form:"from"`     // Transactions on or after this date
	To       types.Date   `form:"to"`       // Transactions on or before this date
}

// @Summary		Allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{})
}

// @Summary		Create transaction
// @Description	Creates a new transaction. Expense transactions count against the budget active for their category on their date.
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transaction := editable.model()

	var category models.Category
	err = models.DB.First(&category, transaction.CategoryID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}
	transaction.IsIncome = category.IsIncome

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		if transaction.IsIncome {
			return nil
		}

		return ledgerInstance.ApplyDelta(c.Request.Context(), tx,
			transaction.CategoryID, transaction.OwnerID,
			transaction.Amount, transaction.Date)
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// @Summary		List transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	httpError
// @Router			/v1/transactions [get]
// @Param			owner		query	string	false	"Filter by owner ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			wallet		query	string	false	"Filter by wallet ID"
// @Param			schedule	query	string	false	"Only occurrences of this schedule"
// @Param			from		query	string	false	"Transactions on or after this date"
// @Param			to			query	string	false	"Transactions on or before this date"
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Model(&models.Transaction{})
	if filter.Owner.UUID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.Owner.UUID)
	}
	if filter.Category.UUID != uuid.Nil {
		query = query.Where("category_id = ?", filter.Category.UUID)
	}
	if filter.Wallet.UUID != uuid.Nil {
		query = query.Where("wallet_id = ?", filter.Wallet.UUID)
	}
	if filter.Schedule.UUID != uuid.Nil {
		query = query.Where("schedule_id = ?", filter.Schedule.UUID)
	}
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From.Time())
	}
	if !filter.To.IsZero() {
		query = query.Where("date < ?", filter.To.AddDays(1).Time())
	}

	var transactions []models.Transaction
	err := query.Order("date DESC").Find(&transactions).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// @Summary		Get transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	err := models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// @Summary		Update transaction
// @Description	Updates a transaction. The previous budget effect is reverted and the new one applied, as two separate ledger operations.
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string				true	"ID formatted as string"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	err := models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Capture the previous budget effect before anything changes
	previous := transaction

	// Fill the fields that are not part of the request from the existing
	// transaction so the model hooks validate the effective state
	updated := editable.model()
	updated.DefaultModel = transaction.DefaultModel
	if updated.CategoryID == uuid.Nil {
		updated.CategoryID = transaction.CategoryID
	}
	if updated.WalletID == uuid.Nil {
		updated.WalletID = transaction.WalletID
	}
	if updated.OwnerID == uuid.Nil {
		updated.OwnerID = transaction.OwnerID
	}
	if updated.Amount.IsZero() {
		updated.Amount = transaction.Amount
	}
	if updated.Date.IsZero() {
		updated.Date = transaction.Date
	}

	var category models.Category
	err = models.DB.First(&category, updated.CategoryID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields = append(updateFields, "IsIncome")
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		updated.IsIncome = category.IsIncome
		if err := tx.Model(&transaction).Select("", updateFields...).Updates(updated).Error; err != nil {
			return err
		}

		if err := tx.First(&transaction, uri.ID).Error; err != nil {
			return err
		}

		// Revert the previous effect, then apply the new one. These are
		// two independent ledger operations: the old and new dates can
		// fall into different budget periods.
		if !previous.IsIncome {
			err := ledgerInstance.ApplyDelta(c.Request.Context(), tx,
				previous.CategoryID, previous.OwnerID,
				previous.Amount.Neg(), previous.Date)
			if err != nil {
				return err
			}
		}

		if !transaction.IsIncome {
			err := ledgerInstance.ApplyDelta(c.Request.Context(), tx,
				transaction.CategoryID, transaction.OwnerID,
				transaction.Amount, transaction.Date)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction. Its budget effect is removed, the spent amount never drops below zero.
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	err := models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&transaction).Error; err != nil {
			return err
		}

		if transaction.IsIncome {
			return nil
		}

		return ledgerInstance.RemoveSpending(c.Request.Context(), tx,
			transaction.CategoryID, transaction.OwnerID,
			transaction.Amount, transaction.Date)
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
