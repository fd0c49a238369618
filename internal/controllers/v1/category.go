package v1

import (
	"net/http"

	"github.com/finwall/backend/internal/httputil"
	"github.com/finwall/backend/internal/models"
	fw_uuid "github.com/finwall/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCategories)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// CategoryEditable represents all user configurable parameters of a category
type CategoryEditable struct {
	Name     string    `json:"name" example:"Groceries"`
	OwnerID  uuid.UUID `json:"ownerId"`
	Note     string    `json:"note" example:"Everything edible" default:""`
	Icon     string    `json:"icon" example:"shopping-cart" default:""`
	Color    string    `json:"color" example:"#4caf50" default:""`
	IsIncome bool      `json:"isIncome" example:"false" default:"false"`
	Archived bool      `json:"archived" example:"false" default:"false"`
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:     editable.Name,
		OwnerID:  editable.OwnerID,
		Note:     editable.Note,
		Icon:     editable.Icon,
		Color:    editable.Color,
		IsIncome: editable.IsIncome,
		Archived: editable.Archived,
	}
}

type CategoryResponse struct {
	Data *models.Category `json:"data"`
}

type CategoryListResponse struct {
	Data []models.Category `json:"data"`
}

type CategoryQueryFilter struct {
	Owner    fw_uuid.UUID `form:"owner"`    // By owner ID
	IsIncome bool         `form:"isIncome"` // Income categories only
	Archived bool         `form:"archived"` // Archived categories only
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategories(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Category{})
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	httpError
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	category := editable.model()
	err = models.DB.Create(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: &category})
}

// @Summary		List categories
// @Description	Returns a list of categories
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		400	{object}	httpError
// @Router			/v1/categories [get]
// @Param			owner		query	string	false	"Filter by owner ID"
// @Param			isIncome	query	bool	false	"Income categories only"
// @Param			archived	query	bool	false	"Archived categories only"
func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Model(&models.Category{})
	if filter.Owner.UUID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.Owner.UUID)
	}
	if filter.IsIncome {
		query = query.Where("is_income = ?", true)
	}
	if filter.Archived {
		query = query.Where("archived = ?", true)
	}

	var categories []models.Category
	err := query.Order("name ASC").Find(&categories).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var category models.Category
	err := models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// @Summary		Update category
// @Description	Updates an existing category
// @Tags			Categories
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string				true	"ID formatted as string"
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var category models.Category
	err := models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Model(&category).Select("", updateFields...).Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// @Summary		Delete category
// @Description	Deletes a category
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var category models.Category
	err := models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
