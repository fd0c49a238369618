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
	"golang.org/x/exp/slices"
)

func RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsBudgets)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// BudgetEditable represents all user configurable parameters of a budget.
//
// The spent accumulator is deliberately absent: it is owned by the ledger
// and cannot be written through the API.
type BudgetEditable struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	OwnerID    uuid.UUID       `json:"ownerId"`
	Amount     decimal.Decimal `json:"amount" example:"400"`
	Period     types.Period    `json:"period" example:"MONTH"`
	StartDate  types.Date      `json:"startDate" example:"2024-03-01T00:00:00Z"`
	Active     bool            `json:"active" example:"true" default:"true"`
	Note       string          `json:"note" default:""`
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		CategoryID: editable.CategoryID,
		OwnerID:    editable.OwnerID,
		Amount:     editable.Amount,
		Period:     editable.Period,
		StartDate:  editable.StartDate,
		Active:     editable.Active,
		Note:       editable.Note,
	}
}

// Budget is a budget with its derived threshold predicates. Both are
// recomputed on every read, never stored.
type Budget struct {
	models.Budget
	OverBudget    bool            `json:"overBudget" example:"false"`   // Has more than the limit been spent?
	InWarningBand bool            `json:"inWarningBand" example:"true"` // Is spending at 80% of the limit or more?
	Utilization   decimal.Decimal `json:"utilization" example:"0.95"`   // Spent divided by the limit
}

func newBudget(model models.Budget) Budget {
	return Budget{
		Budget:        model,
		OverBudget:    model.OverBudget(),
		InWarningBand: model.InWarningBand(),
		Utilization:   model.Utilization(),
	}
}

type BudgetResponse struct {
	Data *Budget `json:"data"`
}

type BudgetListResponse struct {
	Data []Budget `json:"data"`
}

type BudgetQueryFilter struct {
	Owner    fw_uuid.UUID `form:"owner"`    // By owner ID
	Category fw_uuid.UUID `form:"category"` // By category ID
	Active   bool         `form:"active"`   // Active budgets only
	Current  bool         `form:"current"`  // Only budgets whose period contains today
}

// @Summary		Allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Budget{})
}

// @Summary		Create budget
// @Description	Creates a new budget. The period end date is computed from the start date and the period type.
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	httpError
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func CreateBudget(c *gin.Context) {
	var editable BudgetEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	budget := editable.model()

	// Exactly one active budget may cover a category at any time
	if budget.Active {
		var count int64
		day := budget.StartDate
		if day.IsZero() {
			day = types.DateOf(time.Now())
		}

		err = models.DB.Model(&models.Budget{}).
			Where("category_id = ? AND owner_id = ? AND active = ? AND start_date <= ? AND end_date >= ?",
				budget.CategoryID, budget.OwnerID, true, day, day).
			Count(&count).Error
		if err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}

		if count > 0 {
			c.JSON(http.StatusBadRequest, httpError{Error: "there already is an active budget for this category and period"})
			return
		}
	}

	err = models.DB.Create(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: &Budget{Budget: budget}})
}

// @Summary		List budgets
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	httpError
// @Router			/v1/budgets [get]
// @Param			owner		query	string	false	"Filter by owner ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			active		query	bool	false	"Active budgets only"
// @Param			current		query	bool	false	"Only budgets whose period contains today"
func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Model(&models.Budget{})
	if filter.Owner.UUID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.Owner.UUID)
	}
	if filter.Category.UUID != uuid.Nil {
		query = query.Where("category_id = ?", filter.Category.UUID)
	}
	if filter.Active {
		query = query.Where("active = ?", true)
	}
	if filter.Current {
		day := types.DateOf(time.Now())
		query = query.Where("start_date <= ? AND end_date >= ?", day, day)
	}

	var budgets []models.Budget
	err := query.Order("start_date DESC").Find(&budgets).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	response := BudgetListResponse{Data: make([]Budget, 0, len(budgets))}
	for _, model := range budgets {
		response.Data = append(response.Data, newBudget(model))
	}

	c.JSON(http.StatusOK, response)
}

// @Summary		Get budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var model models.Budget
	err := models.DB.First(&model, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	budget := newBudget(model)
	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// @Summary		Update budget
// @Description	Updates the limit, note or active flag of a budget. Period and dates are immutable, the spent accumulator can only be changed by transactions.
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		string			true	"ID formatted as string"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var model models.Budget
	err := models.DB.First(&model, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// The period definition of an existing budget cannot change, its end
	// date was computed once at creation
	allowed := make([]any, 0, len(updateFields))
	for _, field := range updateFields {
		if field == "Amount" || field == "Note" || field == "Active" {
			allowed = append(allowed, field)
		}
	}
	if len(allowed) == 0 {
		budget := newBudget(model)
		c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
		return
	}

	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if slices.Contains(allowed, any("Amount")) && !editable.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, httpError{Error: models.ErrAmountNotPositive.Error()})
		return
	}

	err = models.DB.Model(&model).Select("", allowed...).Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	budget := newBudget(model)
	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// @Summary		Delete budget
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var model models.Budget
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
