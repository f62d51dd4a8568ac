package httpapi

import (
	"net/http"

	"report-backend/testimonial"

	"github.com/gin-gonic/gin"
)

type TestimonialHandlers struct {
	testimonials *testimonial.Service
}

func NewTestimonialHandlers(testimonials *testimonial.Service) *TestimonialHandlers {
	return &TestimonialHandlers{testimonials: testimonials}
}

func (h *TestimonialHandlers) List(c *gin.Context) {
	testimonials, err := h.testimonials.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, testimonials)
}

func (h *TestimonialHandlers) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	item, err := h.testimonials.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, item)
}

type createTestimonialBody struct {
	Quote     string `json:"quote"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Rating    *int   `json:"rating"`
	Status    string `json:"status"`
	Order     *int   `json:"order"`
	AvatarURL string `json:"avatarUrl"`
}

func (h *TestimonialHandlers) Create(c *gin.Context) {
	var body createTestimonialBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	item, err := h.testimonials.Create(c.Request.Context(), testimonial.CreateRequest{
		Quote:     body.Quote,
		Author:    body.Author,
		Title:     body.Title,
		Company:   body.Company,
		Rating:    body.Rating,
		Status:    body.Status,
		Order:     body.Order,
		AvatarURL: body.AvatarURL,
	})
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, item)
}

type updateTestimonialBody struct {
	Quote     *string `json:"quote"`
	Author    *string `json:"author"`
	Title     *string `json:"title"`
	Company   *string `json:"company"`
	Rating    *int    `json:"rating"`
	Status    *string `json:"status"`
	Order     *int    `json:"order"`
	AvatarURL *string `json:"avatarUrl"`
}

func (h *TestimonialHandlers) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body updateTestimonialBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	item, err := h.testimonials.Update(c.Request.Context(), id, testimonial.UpdateRequest{
		Quote:     body.Quote,
		Author:    body.Author,
		Title:     body.Title,
		Company:   body.Company,
		Rating:    body.Rating,
		Status:    body.Status,
		Order:     body.Order,
		AvatarURL: body.AvatarURL,
	})
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *TestimonialHandlers) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.testimonials.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "testimonial deleted successfully"})
}
