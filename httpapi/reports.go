package httpapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"report-backend/orm"
	"report-backend/report"

	"github.com/gin-gonic/gin"
)

// ReportHandlers exposes the report lifecycle and query engine over HTTP.
// All parsing and status mapping happens here; the services only see
// typed arguments.
type ReportHandlers struct {
	reports *report.Service
}

func NewReportHandlers(reports *report.Service) *ReportHandlers {
	return &ReportHandlers{reports: reports}
}

// reportView is the wire shape of a report: the stored fields plus the
// resolved featured image.
type reportView struct {
	orm.Report
	FeaturedImageURL string `json:"featuredImage,omitempty"`
}

func viewOf(r *orm.Report) reportView {
	return reportView{
		Report:           *r,
		FeaturedImageURL: report.ResolveFeaturedImage(r),
	}
}

func viewsOf(reports []orm.Report) []reportView {
	views := make([]reportView, 0, len(reports))
	for i := range reports {
		views = append(views, viewOf(&reports[i]))
	}

	return views
}

func listOptionsFromQuery(c *gin.Context) report.ListOptions {
	opts := report.ListOptions{
		Page:      intQuery(c, "page", 0),
		PageSize:  intQuery(c, "pageSize", 0),
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	if id, ok := uint64Query(c, "categoryId"); ok {
		opts.CategoryID = &id
	}
	if id, ok := uint64Query(c, "authorId"); ok {
		opts.AuthorID = &id
	}
	opts.TagIDs = uint64ListQuery(c, "tagIds")

	// Date-only bounds are inclusive: from at start of day, to at end
	// of day.
	if t, ok := dateQuery(c, "dateFrom"); ok {
		opts.DateFrom = &t
	}
	if t, ok := dateQuery(c, "dateTo"); ok {
		end := endOfDay(t)
		opts.DateTo = &end
	}

	return opts
}

func (h *ReportHandlers) List(c *gin.Context) {
	page, err := h.reports.List(c.Request.Context(), listOptionsFromQuery(c))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports":    viewsOf(page.Reports),
		"total":      page.Total,
		"page":       page.PageNum,
		"pageSize":   page.PageSize,
		"totalPages": page.TotalPages,
	})
}

func (h *ReportHandlers) ListMine(c *gin.Context) {
	page, err := h.reports.ListMine(
		c.Request.Context(),
		callerIdentity(c),
		listOptionsFromQuery(c),
	)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports":    viewsOf(page.Reports),
		"total":      page.Total,
		"page":       page.PageNum,
		"pageSize":   page.PageSize,
		"totalPages": page.TotalPages,
	})
}

func (h *ReportHandlers) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	r, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, viewOf(r))
}

func (h *ReportHandlers) GetBySlug(c *gin.Context) {
	r, err := h.reports.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, viewOf(r))
}

func (h *ReportHandlers) Latest(c *gin.Context) {
	reports, err := h.reports.LatestPublished(
		c.Request.Context(),
		intQuery(c, "limit", 0),
	)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, viewsOf(reports))
}

type createReportBody struct {
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	Status          string   `json:"status"`
	CategoryID      *uint64  `json:"categoryId"`
	TagIDs          []uint64 `json:"tagIds"`
	FeaturedImage   string   `json:"featuredImage"`
	FeaturedImageID *uint64  `json:"featuredImageId"`
}

func (h *ReportHandlers) Create(c *gin.Context) {
	var body createReportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	r, err := h.reports.Create(c.Request.Context(), report.CreateRequest{
		Title:           body.Title,
		Excerpt:         body.Excerpt,
		Content:         body.Content,
		Status:          body.Status,
		CategoryID:      body.CategoryID,
		TagIDs:          body.TagIDs,
		FeaturedImage:   body.FeaturedImage,
		FeaturedImageID: body.FeaturedImageID,
	}, callerIdentity(c))
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, viewOf(r))
}

type updateReportBody struct {
	Title           *string  `json:"title"`
	Excerpt         *string  `json:"excerpt"`
	Content         *string  `json:"content"`
	Status          *string  `json:"status"`
	CategoryID      *uint64  `json:"categoryId"`
	TagIDs          []uint64 `json:"tagIds"`
	FeaturedImage   *string  `json:"featuredImage"`
	FeaturedImageID *uint64  `json:"featuredImageId"`
}

func (h *ReportHandlers) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var body updateReportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

		return
	}

	r, err := h.reports.Update(c.Request.Context(), id, report.UpdateRequest{
		Title:           body.Title,
		Excerpt:         body.Excerpt,
		Content:         body.Content,
		Status:          body.Status,
		CategoryID:      body.CategoryID,
		TagIDs:          body.TagIDs,
		FeaturedImage:   body.FeaturedImage,
		FeaturedImageID: body.FeaturedImageID,
	})
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, viewOf(r))
}

func (h *ReportHandlers) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.reports.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report deleted successfully"})
}

func (h *ReportHandlers) Publish(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	r, err := h.reports.Publish(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, viewOf(r))
}

func (h *ReportHandlers) Archive(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	r, err := h.reports.Archive(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, viewOf(r))
}

func (h *ReportHandlers) IncrementView(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.reports.IncrementView(c.Request.Context(), id); err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "view count incremented"})
}

func (h *ReportHandlers) UploadImage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required"})

		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)

		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)

		return
	}

	image, err := h.reports.AttachImage(
		c.Request.Context(),
		id,
		content,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Filename,
		c.PostForm("alt"),
		c.PostForm("caption"),
	)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"image":   image,
		"message": "image uploaded successfully",
	})
}

func (h *ReportHandlers) DeleteImage(c *gin.Context) {
	reportID, ok := idParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := idParam(c, "imageId")
	if !ok {
		return
	}

	if err := h.reports.DetachImage(c.Request.Context(), reportID, imageID); err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted successfully"})
}

type reorderImageBody struct {
	Order *int `json:"order"`
}

func (h *ReportHandlers) ReorderImage(c *gin.Context) {
	reportID, ok := idParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := idParam(c, "imageId")
	if !ok {
		return
	}

	var body reorderImageBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Order == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "order is required"})

		return
	}

	image, err := h.reports.ReorderImage(
		c.Request.Context(),
		reportID,
		imageID,
		*body.Order,
	)
	if err != nil {
		respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, image)
}

func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid " + name})

		return 0, false
	}

	return id, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}

	return value
}

func uint64Query(c *gin.Context, name string) (uint64, bool) {
	value, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// uint64ListQuery accepts both repeated parameters and comma-separated
// values; unparsable entries are skipped.
func uint64ListQuery(c *gin.Context, name string) []uint64 {
	var ids []uint64
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
	}

	return ids
}

// endOfDay pushes a date-only value to the last instant of that day so
// the <= comparison downstream keeps the whole day in range.
func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Nanosecond)
}

func dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
