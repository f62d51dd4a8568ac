package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"report-backend/orm"
)

// fakeStore is an in-memory Store for exercising the service without a
// database. It mirrors the store contracts the service relies on:
// NotFound on missing rows, Conflict on duplicate slugs.
type fakeStore struct {
	reports    map[uint64]*orm.Report
	images     map[uint64]*orm.ReportImage
	categories map[uint64]*orm.Category
	tags       map[uint64]*orm.Tag
	users      map[uint64]*orm.User

	nextReportID uint64
	nextImageID  uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reports:    map[uint64]*orm.Report{},
		images:     map[uint64]*orm.ReportImage{},
		categories: map[uint64]*orm.Category{},
		tags:       map[uint64]*orm.Tag{},
		users:      map[uint64]*orm.User{},
	}
}

func (f *fakeStore) addUser(id uint64, role orm.Role) *orm.User {
	user := &orm.User{ID: id, Name: fmt.Sprintf("user-%d", id), Role: role}
	f.users[id] = user

	return user
}

func (f *fakeStore) CreateReport(_ context.Context, report *orm.Report) error {
	for _, existing := range f.reports {
		if existing.Slug == report.Slug {
			return &orm.ConflictError{Conflict: "slug " + report.Slug}
		}
	}

	f.nextReportID++
	report.ID = f.nextReportID
	f.reports[report.ID] = report

	return nil
}

func (f *fakeStore) GetReportByID(_ context.Context, id uint64) (*orm.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, &orm.NotFoundError{Search: fmt.Sprintf("report (id=%d)", id)}
	}

	report.Images = f.imagesOf(id)

	return report, nil
}

func (f *fakeStore) GetReportBySlug(_ context.Context, slug string) (*orm.Report, error) {
	for _, report := range f.reports {
		if report.Slug == slug {
			report.Images = f.imagesOf(report.ID)

			return report, nil
		}
	}

	return nil, &orm.NotFoundError{Search: "report (slug=" + slug + ")"}
}

func (f *fakeStore) ReportExistsBySlug(_ context.Context, slug string) (bool, error) {
	for _, report := range f.reports {
		if report.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) SaveReport(_ context.Context, report *orm.Report) error {
	if _, ok := f.reports[report.ID]; !ok {
		return &orm.NotFoundError{Search: fmt.Sprintf("report (id=%d)", report.ID)}
	}
	f.reports[report.ID] = report

	return nil
}

func (f *fakeStore) ReplaceReportTags(
	_ context.Context,
	report *orm.Report,
	tags []orm.Tag,
) error {
	report.Tags = tags

	return nil
}

func (f *fakeStore) DeleteReport(_ context.Context, id uint64) error {
	if _, ok := f.reports[id]; !ok {
		return &orm.NotFoundError{Search: fmt.Sprintf("report (id=%d)", id)}
	}
	delete(f.reports, id)
	for imageID, image := range f.images {
		if image.ReportID == id {
			delete(f.images, imageID)
		}
	}

	return nil
}

func (f *fakeStore) FindReportsWithFilters(
	_ context.Context,
	filters orm.ReportFilters,
	offset, limit int,
	_ string,
	_ bool,
) ([]orm.Report, int64, error) {
	var matched []orm.Report
	for _, report := range f.reports {
		if filters.Status != nil && report.Status != *filters.Status {
			continue
		}
		if filters.AuthorID != nil && report.AuthorID != *filters.AuthorID {
			continue
		}
		if filters.CategoryID != nil &&
			(report.CategoryID == nil || *report.CategoryID != *filters.CategoryID) {
			continue
		}
		if filters.Search != "" {
			needle := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(report.Title), needle) &&
				!strings.Contains(strings.ToLower(report.Excerpt), needle) {
				continue
			}
		}
		// Any requested tag matches, and a report carrying several of
		// them still appears once.
		if len(filters.TagIDs) > 0 && !hasAnyTag(report.Tags, filters.TagIDs) {
			continue
		}
		if filters.DateFrom != nil && report.CreatedAt.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && report.CreatedAt.After(*filters.DateTo) {
			continue
		}
		matched = append(matched, *report)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, total, nil
}

func hasAnyTag(tags []orm.Tag, wanted []uint64) bool {
	for _, tag := range tags {
		for _, id := range wanted {
			if tag.ID == id {
				return true
			}
		}
	}

	return false
}

func (f *fakeStore) LatestPublishedReports(
	_ context.Context,
	limit int,
) ([]orm.Report, error) {
	var published []orm.Report
	for _, report := range f.reports {
		if report.Status == orm.StatusPublished {
			published = append(published, *report)
		}
	}
	sort.Slice(published, func(i, j int) bool {
		a, b := published[i].PublishedAt, published[j].PublishedAt
		if a == nil || b == nil {
			return b == nil
		}

		return a.After(*b)
	})
	if limit < len(published) {
		published = published[:limit]
	}

	return published, nil
}

func (f *fakeStore) CreateImage(_ context.Context, image *orm.ReportImage) error {
	f.nextImageID++
	image.ID = f.nextImageID
	f.images[image.ID] = image

	return nil
}

func (f *fakeStore) GetImageByID(_ context.Context, id uint64) (*orm.ReportImage, error) {
	image, ok := f.images[id]
	if !ok {
		return nil, &orm.NotFoundError{Search: fmt.Sprintf("image (id=%d)", id)}
	}

	return image, nil
}

func (f *fakeStore) CountImagesByReport(_ context.Context, reportID uint64) (int, error) {
	return len(f.imagesOf(reportID)), nil
}

func (f *fakeStore) SaveImage(_ context.Context, image *orm.ReportImage) error {
	if _, ok := f.images[image.ID]; !ok {
		return &orm.NotFoundError{Search: fmt.Sprintf("image (id=%d)", image.ID)}
	}
	f.images[image.ID] = image

	return nil
}

func (f *fakeStore) DeleteImage(_ context.Context, id uint64) error {
	if _, ok := f.images[id]; !ok {
		return &orm.NotFoundError{Search: fmt.Sprintf("image (id=%d)", id)}
	}
	delete(f.images, id)

	return nil
}

func (f *fakeStore) GetCategoryByID(_ context.Context, id uint64) (*orm.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, &orm.NotFoundError{Search: fmt.Sprintf("category (id=%d)", id)}
	}

	return category, nil
}

func (f *fakeStore) GetTagsByIDs(_ context.Context, ids []uint64) ([]orm.Tag, error) {
	var tags []orm.Tag
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok {
			tags = append(tags, *tag)
		}
	}

	return tags, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id uint64) (*orm.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, &orm.NotFoundError{Search: fmt.Sprintf("user (id=%d)", id)}
	}

	return user, nil
}

func (f *fakeStore) imagesOf(reportID uint64) []orm.ReportImage {
	var images []orm.ReportImage
	for _, image := range f.images {
		if image.ReportID == reportID {
			images = append(images, *image)
		}
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].DisplayOrder < images[j].DisplayOrder
	})

	return images
}

// fakeBlobs records storage calls and can be told to fail.
type fakeBlobs struct {
	stored   map[string][]byte
	deleted  []string
	moved    [][2]string
	storeErr error
	delErr   error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{stored: map[string][]byte{}}
}

func (f *fakeBlobs) Store(path string, content []byte) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored[path] = content

	return nil
}

func (f *fakeBlobs) Delete(path string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, path)

	return nil
}

func (f *fakeBlobs) MoveDir(src, dst string) error {
	f.moved = append(f.moved, [2]string{src, dst})

	return nil
}
