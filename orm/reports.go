package orm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportFilters holds the optional, conjunctive predicates of a report
// query. Nil / empty members are skipped entirely.
type ReportFilters struct {
	Status     *Status
	CategoryID *uint64
	AuthorID   *uint64
	Search     string
	TagIDs     []uint64
	DateFrom   *time.Time
	DateTo     *time.Time
}

// reportSortColumns whitelists the sortable fields; anything else falls
// back to created_at.
var reportSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"publishedAt": "published_at",
	"title":       "title",
	"viewCount":   "view_count",
}

func reportSortColumn(sortBy string) string {
	if col, ok := reportSortColumns[sortBy]; ok {
		return col
	}

	return "created_at"
}

func (db *DB) CreateReport(ctx context.Context, report *Report) error {
	if report == nil {
		return &ValidationError{Reason: "nil report"}
	}

	return wrapErrorWithDetails(
		db.dbGorm.WithContext(ctx).Omit("Tags", "Images", "Author", "Category").Create(report).Error,
		"create report",
		fmt.Sprintf("slug=%q", report.Slug),
	)
}

func (db *DB) GetReportByID(ctx context.Context, id uint64) (*Report, error) {
	report, err := gorm.G[Report](db.dbGorm).
		Preload("Author", nil).
		Preload("Category", nil).
		Preload("Tags", nil).
		Preload("Images", nil).
		Where("id = ?", id).
		First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get report by id",
			fmt.Sprintf("id=%d", id),
		)
	}

	return &report, nil
}

func (db *DB) GetReportBySlug(ctx context.Context, slug string) (*Report, error) {
	report, err := gorm.G[Report](db.dbGorm).
		Preload("Author", nil).
		Preload("Category", nil).
		Preload("Tags", nil).
		Preload("Images", nil).
		Where("slug = ?", slug).
		First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get report by slug",
			fmt.Sprintf("slug=%q", slug),
		)
	}

	return &report, nil
}

func (db *DB) ReportExistsBySlug(ctx context.Context, slug string) (bool, error) {
	count, err := gorm.G[Report](db.dbGorm).
		Where("slug = ?", slug).
		Count(ctx, "*")
	if err != nil {
		return false, wrapErrorWithDetails(
			err,
			"check report slug exists",
			fmt.Sprintf("slug=%q", slug),
		)
	}

	return count > 0, nil
}

// SaveReport persists scalar report fields. Tag membership is managed
// separately through ReplaceReportTags.
func (db *DB) SaveReport(ctx context.Context, report *Report) error {
	if report == nil {
		return &ValidationError{Reason: "nil report"}
	}

	return wrapErrorWithDetails(
		db.dbGorm.WithContext(ctx).Omit(clause.Associations).Save(report).Error,
		"save report",
		fmt.Sprintf("id=%d, slug=%q", report.ID, report.Slug),
	)
}

// ReplaceReportTags swaps the full tag set of a report, including
// clearing it when tags is empty.
func (db *DB) ReplaceReportTags(ctx context.Context, report *Report, tags []Tag) error {
	if report == nil {
		return &ValidationError{Reason: "nil report"}
	}

	err := db.dbGorm.WithContext(ctx).Model(report).Association("Tags").Replace(tags)
	if err != nil {
		return wrapErrorWithDetails(
			err,
			"replace report tags",
			fmt.Sprintf("id=%d, tags=%d", report.ID, len(tags)),
		)
	}

	report.Tags = tags

	return nil
}

// DeleteReport removes the report row; owned images and tag join rows go
// with it via the FK constraints.
func (db *DB) DeleteReport(ctx context.Context, id uint64) error {
	result := db.dbGorm.WithContext(ctx).Select(clause.Associations).Delete(&Report{ID: id})
	if result.Error != nil {
		return wrapErrorWithDetails(
			result.Error,
			"delete report",
			fmt.Sprintf("id=%d", id),
		)
	}

	if result.RowsAffected == 0 {
		return &NotFoundError{Search: fmt.Sprintf("delete report (id=%d)", id)}
	}

	return nil
}

// FindReportsWithFilters composes the conjunctive filter set into one
// paginated query and returns the page plus the unpaginated total.
// Results are distinct even when several requested tags match the same
// report.
func (db *DB) FindReportsWithFilters(
	ctx context.Context,
	filters ReportFilters,
	offset, limit int,
	sortBy string,
	sortDesc bool,
) ([]Report, int64, error) {
	buildQuery := func() *gorm.DB {
		tx := db.dbGorm.WithContext(ctx).Model(&Report{})

		if filters.Status != nil {
			tx = tx.Where("reports.status = ?", *filters.Status)
		}
		if filters.CategoryID != nil {
			tx = tx.Where("reports.category_id = ?", *filters.CategoryID)
		}
		if filters.AuthorID != nil {
			tx = tx.Where("reports.author_id = ?", *filters.AuthorID)
		}
		if filters.Search != "" {
			pattern := "%" + strings.ToLower(filters.Search) + "%"
			tx = tx.Where(
				"LOWER(reports.title) LIKE ? OR LOWER(reports.excerpt) LIKE ?",
				pattern,
				pattern,
			)
		}
		if len(filters.TagIDs) > 0 {
			tx = tx.
				Joins("JOIN report_tags ON report_tags.report_id = reports.id").
				Where("report_tags.tag_id IN ?", filters.TagIDs)
		}
		if filters.DateFrom != nil {
			tx = tx.Where("reports.created_at >= ?", *filters.DateFrom)
		}
		if filters.DateTo != nil {
			tx = tx.Where("reports.created_at <= ?", *filters.DateTo)
		}

		return tx
	}

	var total int64
	countQuery := buildQuery()
	if len(filters.TagIDs) > 0 {
		countQuery = countQuery.Distinct("reports.id")
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, wrapErrorWithDetails(
			err,
			"count reports with filters",
			fmt.Sprintf("filters=%+v", filters),
		)
	}

	direction := "ASC"
	if sortDesc {
		direction = "DESC"
	}
	order := fmt.Sprintf("reports.%s %s", reportSortColumn(sortBy), direction)

	tx := buildQuery()
	if len(filters.TagIDs) > 0 {
		tx = tx.Distinct("reports.*")
	}

	var reports []Report
	err := tx.
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Preload("Images").
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, wrapErrorWithDetails(
			err,
			"find reports with filters",
			fmt.Sprintf("filters=%+v", filters),
		)
	}

	return reports, total, nil
}

// LatestPublishedReports returns the newest published reports by publish
// time.
func (db *DB) LatestPublishedReports(ctx context.Context, limit int) ([]Report, error) {
	var reports []Report
	err := db.dbGorm.WithContext(ctx).
		Model(&Report{}).
		Where("status = ?", StatusPublished).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Preload("Images").
		Order("published_at DESC").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"latest published reports",
			fmt.Sprintf("limit=%d", limit),
		)
	}

	return reports, nil
}
