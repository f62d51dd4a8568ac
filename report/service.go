package report

import (
	"context"
	"fmt"
	"time"

	"report-backend/orm"
	"report-backend/storage"

	"github.com/rs/zerolog/log"
)

const maxExcerptLen = 500

// Service owns the report lifecycle: slug allocation, the
// draft/published/archived state machine with its publishedAt side
// effect, filtered queries and the owned image collection.
type Service struct {
	store Store
	blobs storage.Storage

	// publicBaseURL prefixes stored filenames when building image URLs.
	publicBaseURL string
}

func NewService(store Store, blobs storage.Storage, publicBaseURL string) *Service {
	return &Service{
		store:         store,
		blobs:         blobs,
		publicBaseURL: publicBaseURL,
	}
}

// CreateRequest carries the fields of a new report.
type CreateRequest struct {
	Title           string
	Excerpt         string
	Content         string
	Status          string
	CategoryID      *uint64
	TagIDs          []uint64
	FeaturedImage   string
	FeaturedImageID *uint64
}

// UpdateRequest is a partial update: nil fields leave the current value
// untouched. A non-nil TagIDs replaces the whole tag set, including
// clearing it via an empty slice.
type UpdateRequest struct {
	Title           *string
	Excerpt         *string
	Content         *string
	Status          *string
	CategoryID      *uint64
	TagIDs          []uint64
	FeaturedImage   *string
	FeaturedImageID *uint64
}

// parseStatusOrDraft coerces unrecognized or empty status strings to
// Draft rather than rejecting them.
func parseStatusOrDraft(s string) orm.Status {
	if status, ok := orm.ParseStatus(s); ok {
		return status
	}

	return orm.StatusDraft
}

// Create builds a new report authored by the caller. The slug is derived
// from the title; a referenced category or tag that does not exist fails
// the whole call.
func (s *Service) Create(
	ctx context.Context,
	req CreateRequest,
	author Identity,
) (*orm.Report, error) {
	if len(req.Excerpt) > maxExcerptLen {
		return nil, &orm.ValidationError{
			Reason: fmt.Sprintf("excerpt exceeds %d characters", maxExcerptLen),
		}
	}

	user, err := s.store.GetUserByID(ctx, author.UserID)
	if err != nil {
		return nil, err
	}

	slug, err := GenerateSlug(req.Title, func(candidate string) (bool, error) {
		return s.store.ReportExistsBySlug(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	report := &orm.Report{
		Title:           req.Title,
		Slug:            slug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		Status:          parseStatusOrDraft(req.Status),
		AuthorID:        user.ID,
		Author:          *user,
		FeaturedImage:   req.FeaturedImage,
		FeaturedImageID: req.FeaturedImageID,
		ViewCount:       0,
	}

	if req.CategoryID != nil {
		category, err := s.store.GetCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		report.CategoryID = &category.ID
		report.Category = category
	}

	var tags []orm.Tag
	if len(req.TagIDs) > 0 {
		tags, err = s.resolveTags(ctx, req.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	if report.Status == orm.StatusPublished {
		now := time.Now()
		report.PublishedAt = &now
	}

	if err := s.store.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		if err := s.store.ReplaceReportTags(ctx, report, tags); err != nil {
			return nil, err
		}
	}

	log.Info().
		Uint64("id", report.ID).
		Str("slug", report.Slug).
		Str("status", string(report.Status)).
		Msg("report created")

	return report, nil
}

// Update applies a partial update. Renaming the title regenerates the
// slug unconditionally, re-running the uniqueness probe. Transitioning
// into Published stamps publishedAt only if the report was not already
// published, so repeated edits never clobber the original publish time.
func (s *Service) Update(
	ctx context.Context,
	id uint64,
	req UpdateRequest,
) (*orm.Report, error) {
	report, err := s.store.GetReportByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Excerpt != nil && len(*req.Excerpt) > maxExcerptLen {
		return nil, &orm.ValidationError{
			Reason: fmt.Sprintf("excerpt exceeds %d characters", maxExcerptLen),
		}
	}

	if req.Title != nil {
		report.Title = *req.Title
		slug, err := GenerateSlug(*req.Title, func(candidate string) (bool, error) {
			return s.store.ReportExistsBySlug(ctx, candidate)
		})
		if err != nil {
			return nil, err
		}
		report.Slug = slug
	}

	if req.Excerpt != nil {
		report.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		report.Content = *req.Content
	}

	if req.Status != nil {
		newStatus := parseStatusOrDraft(*req.Status)
		if newStatus == orm.StatusPublished && report.Status != orm.StatusPublished {
			now := time.Now()
			report.PublishedAt = &now
		}
		report.Status = newStatus
	}

	if req.CategoryID != nil {
		category, err := s.store.GetCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		report.CategoryID = &category.ID
		report.Category = category
	}

	if req.TagIDs != nil {
		tags, err := s.resolveTags(ctx, req.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.store.ReplaceReportTags(ctx, report, tags); err != nil {
			return nil, err
		}
	}

	if req.FeaturedImage != nil {
		report.FeaturedImage = *req.FeaturedImage
	}
	if req.FeaturedImageID != nil {
		report.FeaturedImageID = req.FeaturedImageID
	}

	if err := s.store.SaveReport(ctx, report); err != nil {
		return nil, err
	}

	log.Info().
		Uint64("id", report.ID).
		Str("slug", report.Slug).
		Str("status", string(report.Status)).
		Msg("report updated")

	return report, nil
}

// Delete soft-deletes the report's image folder (best effort) and then
// removes the record; owned image rows go with it.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	if _, err := s.store.GetReportByID(ctx, id); err != nil {
		return err
	}

	s.softDeleteFolder(id)

	if err := s.store.DeleteReport(ctx, id); err != nil {
		return err
	}

	log.Info().Uint64("id", id).Msg("report deleted")

	return nil
}

// Publish transitions the report into Published with the publishedAt
// rule of Update.
func (s *Service) Publish(ctx context.Context, id uint64) (*orm.Report, error) {
	status := string(orm.StatusPublished)

	return s.Update(ctx, id, UpdateRequest{Status: &status})
}

// Archive transitions the report into Archived. publishedAt is left
// untouched.
func (s *Service) Archive(ctx context.Context, id uint64) (*orm.Report, error) {
	status := string(orm.StatusArchived)

	return s.Update(ctx, id, UpdateRequest{Status: &status})
}

// IncrementView bumps the view counter. Read-modify-write without
// locking: concurrent increments may lose updates, which is accepted.
func (s *Service) IncrementView(ctx context.Context, id uint64) error {
	report, err := s.store.GetReportByID(ctx, id)
	if err != nil {
		return err
	}

	report.ViewCount++

	return s.store.SaveReport(ctx, report)
}

func (s *Service) Get(ctx context.Context, id uint64) (*orm.Report, error) {
	return s.store.GetReportByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*orm.Report, error) {
	return s.store.GetReportBySlug(ctx, slug)
}

// List runs a filtered, paginated query.
func (s *Service) List(ctx context.Context, opts ListOptions) (*Page, error) {
	opts = opts.normalized()

	reports, total, err := s.store.FindReportsWithFilters(
		ctx,
		opts.filters(),
		opts.Page*opts.PageSize,
		opts.PageSize,
		opts.SortBy,
		opts.sortDesc(),
	)
	if err != nil {
		return nil, err
	}

	return &Page{
		Reports:    reports,
		Total:      total,
		PageNum:    opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: totalPages(total, opts.PageSize),
	}, nil
}

// ListMine scopes a query to the caller: admins get the unrestricted
// result set, everyone else only their own reports.
func (s *Service) ListMine(
	ctx context.Context,
	identity Identity,
	opts ListOptions,
) (*Page, error) {
	authorID, err := s.effectiveAuthorID(ctx, identity)
	if err != nil {
		return nil, err
	}
	opts.AuthorID = authorID

	return s.List(ctx, opts)
}

// LatestPublished returns the newest published reports by publish time.
func (s *Service) LatestPublished(ctx context.Context, limit int) ([]orm.Report, error) {
	if limit <= 0 {
		limit = defaultLatestLimit
	}

	return s.store.LatestPublishedReports(ctx, limit)
}

// resolveTags loads the referenced tags and fails with NotFound when any
// id is unknown.
func (s *Service) resolveTags(ctx context.Context, ids []uint64) ([]orm.Tag, error) {
	unique := make([]uint64, 0, len(ids))
	seen := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	tags, err := s.store.GetTagsByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	if len(tags) != len(unique) {
		found := make(map[uint64]bool, len(tags))
		for _, tag := range tags {
			found[tag.ID] = true
		}
		for _, id := range unique {
			if !found[id] {
				return nil, &orm.NotFoundError{
					Search: fmt.Sprintf("tag (id=%d)", id),
				}
			}
		}
	}

	return tags, nil
}
