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
)

func RegisterScheduleRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSchedules)
		r.GET("", GetSchedules)
		r.POST("", CreateSchedule)
	}
	{
		r.OPTIONS("/:id", OptionsScheduleDetail)
		r.GET("/:id", GetSchedule)
		r.PATCH("/:id", UpdateSchedule)
		r.DELETE("/:id", DeleteSchedule)
	}
	{
		r.OPTIONS("/:id/toggle", httputil.OptionsPost)
		r.POST("/:id/toggle", ToggleSchedule)
	}
}

// ScheduleEditable represents all user configurable parameters of a
// recurring schedule.
type ScheduleEditable struct {
	Title      string          `json:"title" example:"Rent"`
	Note       string          `json:"note" default:""`
	Amount     decimal.Decimal `json:"amount" example:"950"`
	CategoryID uuid.UUID       `json:"categoryId"`
	WalletID   uuid.UUID       `json:"walletId"`
	OwnerID    uuid.UUID       `json:"ownerId"`
	Frequency  types.Frequency `json:"frequency" example:"MONTHLY"`
	StartDate  types.Date      `json:"startDate" example:"2024-03-01T00:00:00Z"`
	EndDate    *types.Date     `json:"endDate"`
	Active     bool            `json:"active" example:"true" default:"true"`
}

func (editable ScheduleEditable) model() models.RecurringSchedule {
	return models.RecurringSchedule{
		Title:      editable.Title,
		Note:       editable.Note,
		Amount:     editable.Amount,
		CategoryID: editable.CategoryID,
		WalletID:   editable.WalletID,
		OwnerID:    editable.OwnerID,
		Frequency:  editable.Frequency,
		StartDate:  editable.StartDate,
		EndDate:    editable.EndDate,
		Active:     editable.Active,
	}
}

// Schedule is a recurring schedule with its current lifecycle status.
// The status is always derived from the dates and the active flag,
// it is not stored.
type Schedule struct {
	models.RecurringSchedule
	Status models.ScheduleStatus `json:"status" example:"WAITING"`
}

func newSchedule(model models.RecurringSchedule) Schedule {
	return Schedule{
		RecurringSchedule: model,
		Status:            model.Status(time.Now()),
	}
}

type ScheduleResponse struct {
	Data *Schedule `json:"data"`
}

type ScheduleListResponse struct {
	Data []Schedule `json:"data"`
}

type ScheduleQueryFilter struct {
	Owner    fw_uuid.UUID `form:"owner"`    // By owner ID
	Category fw_uuid.UUID `form:"category"` // By category ID
	Wallet   fw_uuid.UUID `form:"wallet"`   // By wallet ID
	Active   bool         `form:"active"`   // Active schedules only
	Due      bool         `form:"due"`      // Only schedules that would generate now
}

// @Summary		Allowed HTTP verbs
// @Tags			Schedules
// @Success		204
// @Router			/v1/schedules [options]
func OptionsSchedules(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Tags			Schedules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/schedules/{id} [options]
func OptionsScheduleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RecurringSchedule{})
}

// @Summary		Create schedule
// @Description	Creates a new recurring schedule. The first occurrence is generated on or after the start date.
// @Tags			Schedules
// @Produce		json
// @Success		201			{object}	ScheduleResponse
// @Failure		400			{object}	httpError
// @Param			schedule	body		ScheduleEditable	true	"Schedule"
// @Router			/v1/schedules [post]
func CreateSchedule(c *gin.Context) {
	var editable ScheduleEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	schedule := editable.model()
	err = models.DB.Create(&schedule).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	response := newSchedule(schedule)
	c.JSON(http.StatusCreated, ScheduleResponse{Data: &response})
}

// @Summary		List schedules
// @Tags			Schedules
// @Produce		json
// @Success		200	{object}	ScheduleListResponse
// @Failure		400	{object}	httpError
// @Router			/v1/schedules [get]
// @Param			owner		query	string	false	"Filter by owner ID"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			wallet		query	string	false	"Filter by wallet ID"
// @Param			active		query	bool	false	"Active schedules only"
// @Param			due			query	bool	false	"Only schedules that would generate now"
func GetSchedules(c *gin.Context) {
	var filter ScheduleQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Model(&models.RecurringSchedule{})
	if filter.Owner.UUID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.Owner.UUID)
	}
	if filter.Category.UUID != uuid.Nil {
		query = query.Where("category_id = ?", filter.Category.UUID)
	}
	if filter.Wallet.UUID != uuid.Nil {
		query = query.Where("wallet_id = ?", filter.Wallet.UUID)
	}
	if filter.Active {
		query = query.Where("active = ?", true)
	}

	var schedules []models.RecurringSchedule
	err := query.Order("next_occurrence ASC").Find(&schedules).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	now := time.Now()
	response := ScheduleListResponse{Data: make([]Schedule, 0, len(schedules))}
	for _, model := range schedules {
		if filter.Due && !model.ShouldGenerate(now) {
			continue
		}
		response.Data = append(response.Data, newSchedule(model))
	}

	c.JSON(http.StatusOK, response)
}

// @Summary		Get schedule
// @Tags			Schedules
// @Produce		json
// @Success		200	{object}	ScheduleResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/schedules/{id} [get]
func GetSchedule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var model models.RecurringSchedule
	err := models.DB.First(&model, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	response := newSchedule(model)
	c.JSON(http.StatusOK, ScheduleResponse{Data: &response})
}

// @Summary		Update schedule
// @Tags			Schedules
// @Produce		json
// @Success		200			{object}	ScheduleResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string				true	"ID formatted as string"
// @Param			schedule	body		ScheduleEditable	true	"Schedule"
// @Router			/v1/schedules/{id} [patch]
func UpdateSchedule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var model models.RecurringSchedule
	err := models.DB.First(&model, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ScheduleEditable{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable ScheduleEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updated := editable.model()
	updated.DefaultModel = model.DefaultModel
	updated.NextOccurrence = model.NextOccurrence
	if updated.CategoryID == uuid.Nil {
		updated.CategoryID = model.CategoryID
	}
	if updated.WalletID == uuid.Nil {
		updated.WalletID = model.WalletID
	}
	if updated.OwnerID == uuid.Nil {
		updated.OwnerID = model.OwnerID
	}
	if updated.Amount.IsZero() {
		updated.Amount = model.Amount
	}
	if updated.Frequency == "" {
		updated.Frequency = model.Frequency
	}
	if updated.StartDate.IsZero() {
		updated.StartDate = model.StartDate
	}

	// Moving the start date forward must drag the next occurrence along,
	// it is never allowed to lag behind the start
	if updated.NextOccurrence.Before(updated.StartDate) {
		updated.NextOccurrence = updated.StartDate
		updateFields = append(updateFields, "NextOccurrence")
	}

	err = models.DB.Model(&model).Select("", updateFields...).Updates(updated).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&model, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	response := newSchedule(model)
	c.JSON(http.StatusOK, ScheduleResponse{Data: &response})
}

// @Summary		Toggle schedule
// @Description	Flips a schedule between active and inactive. An inactive schedule never generates transactions, reactivating it resumes at the stored next occurrence.
// @Tags			Schedules
// @Produce		json
// @Success		200	{object}	ScheduleResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/schedules/{id}/toggle [post]
func ToggleSchedule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var model models.RecurringSchedule
	err := models.DB.First(&model, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&model).Update("active", !model.Active).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	response := newSchedule(model)
	c.JSON(http.StatusOK, ScheduleResponse{Data: &response})
}

// @Summary		Delete schedule
// @Description	Deletes a schedule. Transactions it generated are kept.
// @Tags			Schedules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/schedules/{id} [delete]
func DeleteSchedule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var model models.RecurringSchedule
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
