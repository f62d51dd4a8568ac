package httpapi

import (
	"net/http"

	"report-backend/taxonomy"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandlers struct {
	taxonomy *taxonomy.Service
}

func NewTaxonomyHandlers(taxonomyService *taxonomy.Service) *TaxonomyHandlers {
	return &TaxonomyHandlers{taxonomy: taxonomyService}
}

func (h *TaxonomyHandlers) ListCategories(c *gin.Context) {
	categories, err := h.taxonomy.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *TaxonomyHandlers) GetCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	category, err := h.taxonomy.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, category)
}

type createCategoryBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (h *TaxonomyHandlers) CreateCategory(c *gin.Context) {
	var body createCategoryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	category, err := h.taxonomy.CreateCategory(
		c.Request.Context(),
		body.Name,
		body.Description,
		body.Color,
	)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, category)
}

type updateCategoryBody struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	Color       Optional[string] `json:"color"`
}

func (h *TaxonomyHandlers) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body updateCategoryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	category, err := h.taxonomy.UpdateCategory(c.Request.Context(), id, taxonomy.CategoryPatch{
		Name:        body.Name.Ptr(),
		Description: body.Description.Ptr(),
		Color:       body.Color.Ptr(),
	})
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *TaxonomyHandlers) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.taxonomy.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
}

func (h *TaxonomyHandlers) ListTags(c *gin.Context) {
	tags, err := h.taxonomy.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, tags)
}

func (h *TaxonomyHandlers) GetTag(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	tag, err := h.taxonomy.GetTag(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, tag)
}

type tagBody struct {
	Name Optional[string] `json:"name"`
}

func (h *TaxonomyHandlers) CreateTag(c *gin.Context) {
	var body tagBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	tag, err := h.taxonomy.CreateTag(c.Request.Context(), body.Name.Value)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, tag)
}

func (h *TaxonomyHandlers) UpdateTag(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body tagBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	tag, err := h.taxonomy.UpdateTag(c.Request.Context(), id, body.Name.Ptr())
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, tag)
}

func (h *TaxonomyHandlers) DeleteTag(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.taxonomy.DeleteTag(c.Request.Context(), id); err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tag deleted successfully"})
}
