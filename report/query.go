package report

import (
	"math"
	"strings"
	"time"

	"report-backend/orm"
)

const (
	defaultPageSize    = 10
	defaultSortBy      = "createdAt"
	defaultLatestLimit = 5
)

// ListOptions carries the optional filters and pagination of a report
// query. All filters are conjunctive; zero values mean "no filter".
type ListOptions struct {
	Page     int
	PageSize int

	Search     string
	Status     string
	CategoryID *uint64
	AuthorID   *uint64
	TagIDs     []uint64
	DateFrom   *time.Time
	DateTo     *time.Time

	SortBy    string
	SortOrder string
}

// normalized applies the query defaults: page 0, page size 10, sorted by
// creation time descending. Any sort order other than "asc" (case
// insensitive) means descending.
func (o ListOptions) normalized() ListOptions {
	if o.Page < 0 {
		o.Page = 0
	}
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if o.SortBy == "" {
		o.SortBy = defaultSortBy
	}

	return o
}

func (o ListOptions) sortDesc() bool {
	return !strings.EqualFold(o.SortOrder, "asc")
}

// filters translates the options into store predicates. An unparseable
// status string is ignored rather than rejected, and an empty tag set
// means "no tag filter".
func (o ListOptions) filters() orm.ReportFilters {
	f := orm.ReportFilters{
		CategoryID: o.CategoryID,
		AuthorID:   o.AuthorID,
		Search:     o.Search,
		DateFrom:   o.DateFrom,
		DateTo:     o.DateTo,
	}

	if o.Status != "" {
		if status, ok := orm.ParseStatus(o.Status); ok {
			f.Status = &status
		}
	}
	if len(o.TagIDs) > 0 {
		f.TagIDs = o.TagIDs
	}

	return f
}

// Page is one page of a filtered report query.
type Page struct {
	Reports    []orm.Report `json:"reports"`
	Total      int64        `json:"total"`
	PageNum    int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}

func totalPages(total int64, pageSize int) int {
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
