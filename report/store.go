package report

import (
	"context"

	"report-backend/orm"
)

// Store is the persistence collaborator of the report core. orm.DB
// satisfies it; tests substitute fakes.
type Store interface {
	CreateReport(ctx context.Context, report *orm.Report) error
	GetReportByID(ctx context.Context, id uint64) (*orm.Report, error)
	GetReportBySlug(ctx context.Context, slug string) (*orm.Report, error)
	ReportExistsBySlug(ctx context.Context, slug string) (bool, error)
	SaveReport(ctx context.Context, report *orm.Report) error
	ReplaceReportTags(ctx context.Context, report *orm.Report, tags []orm.Tag) error
	DeleteReport(ctx context.Context, id uint64) error
	FindReportsWithFilters(
		ctx context.Context,
		filters orm.ReportFilters,
		offset, limit int,
		sortBy string,
		sortDesc bool,
	) ([]orm.Report, int64, error)
	LatestPublishedReports(ctx context.Context, limit int) ([]orm.Report, error)

	CreateImage(ctx context.Context, image *orm.ReportImage) error
	GetImageByID(ctx context.Context, id uint64) (*orm.ReportImage, error)
	CountImagesByReport(ctx context.Context, reportID uint64) (int, error)
	SaveImage(ctx context.Context, image *orm.ReportImage) error
	DeleteImage(ctx context.Context, id uint64) error

	GetCategoryByID(ctx context.Context, id uint64) (*orm.Category, error)
	GetTagsByIDs(ctx context.Context, ids []uint64) ([]orm.Tag, error)

	GetUserByID(ctx context.Context, id uint64) (*orm.User, error)
}

// Identity is the resolved caller handed in by the transport layer. The
// core never reads ambient security state.
type Identity struct {
	UserID uint64
	Role   orm.Role
}
