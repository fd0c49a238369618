package v1

import (
	"net/http"

	"github.com/finwall/backend/internal/httputil"
	"github.com/finwall/backend/internal/models"
	fw_uuid "github.com/finwall/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterMatchRuleRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMatchRules)
		r.GET("", GetMatchRules)
		r.POST("", CreateMatchRule)
	}
	{
		r.OPTIONS("/:id", OptionsMatchRuleDetail)
		r.GET("/:id", GetMatchRule)
		r.PATCH("/:id", UpdateMatchRule)
		r.DELETE("/:id", DeleteMatchRule)
	}
}

// MatchRuleEditable represents all user configurable parameters of a match rule.
type MatchRuleEditable struct {
	Priority   uint      `json:"priority" example:"1"`
	Match      string    `json:"match" example:"REWE*"`
	CategoryID uuid.UUID `json:"categoryId"`
	OwnerID    uuid.UUID `json:"ownerId"`
}

func (editable MatchRuleEditable) model() models.MatchRule {
	return models.MatchRule{
		Priority:   editable.Priority,
		Match:      editable.Match,
		CategoryID: editable.CategoryID,
		OwnerID:    editable.OwnerID,
	}
}

type MatchRuleResponse struct {
	Data *models.MatchRule `json:"data"`
}

type MatchRuleListResponse struct {
	Data []models.MatchRule `json:"data"`
}

type MatchRuleQueryFilter struct {
	Owner fw_uuid.UUID `form:"owner"` // By owner ID
	Match string       `form:"match"` // By match pattern
}

// @Summary		Allowed HTTP verbs
// @Tags			MatchRules
// @Success		204
// @Router			/v1/match-rules [options]
func OptionsMatchRules(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Tags			MatchRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/match-rules/{id} [options]
func OptionsMatchRuleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.MatchRule{})
}

// @Summary		Create match rule
// @Description	Creates a new rule assigning imported transactions matching a glob pattern to a category.
// @Tags			MatchRules
// @Produce		json
// @Success		201			{object}	MatchRuleResponse
// @Failure		400			{object}	httpError
// @Param			matchRule	body		MatchRuleEditable	true	"Match rule"
// @Router			/v1/match-rules [post]
func CreateMatchRule(c *gin.Context) {
	var editable MatchRuleEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	rule := editable.model()
	err = models.DB.Create(&rule).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, MatchRuleResponse{Data: &rule})
}

// @Summary		List match rules
// @Tags			MatchRules
// @Produce		json
// @Success		200	{object}	MatchRuleListResponse
// @Failure		400	{object}	httpError
// @Router			/v1/match-rules [get]
// @Param			owner	query	string	false	"Filter by owner ID"
// @Param			match	query	string	false	"Filter by match pattern"
func GetMatchRules(c *gin.Context) {
	var filter MatchRuleQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Model(&models.MatchRule{})
	if filter.Owner.UUID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.Owner.UUID)
	}
	if filter.Match != "" {
		query = query.Where("match = ?", filter.Match)
	}

	var rules []models.MatchRule
	err := query.Order("priority ASC").Find(&rules).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MatchRuleListResponse{Data: rules})
}

// @Summary		Get match rule
// @Tags			MatchRules
// @Produce		json
// @Success		200	{object}	MatchRuleResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/match-rules/{id} [get]
func GetMatchRule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var rule models.MatchRule
	err := models.DB.First(&rule, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MatchRuleResponse{Data: &rule})
}

// @Summary		Update match rule
// @Tags			MatchRules
// @Produce		json
// @Success		200			{object}	MatchRuleResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string				true	"ID formatted as string"
// @Param			matchRule	body		MatchRuleEditable	true	"Match rule"
// @Router			/v1/match-rules/{id} [patch]
func UpdateMatchRule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var rule models.MatchRule
	err := models.DB.First(&rule, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MatchRuleEditable{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable MatchRuleEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updated := editable.model()
	updated.DefaultModel = rule.DefaultModel
	if updated.Match == "" {
		updated.Match = rule.Match
	}
	if updated.CategoryID == uuid.Nil {
		updated.CategoryID = rule.CategoryID
	}

	err = models.DB.Model(&rule).Select("", updateFields...).Updates(updated).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MatchRuleResponse{Data: &rule})
}

// @Summary		Delete match rule
// @Tags			MatchRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/match-rules/{id} [delete]
func DeleteMatchRule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var rule models.MatchRule
	err := models.DB.First(&rule, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&rule).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
