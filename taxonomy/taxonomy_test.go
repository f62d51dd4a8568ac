package taxonomy

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"report-backend/orm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	categories map[uint64]*orm.Category
	tags       map[uint64]*orm.Tag
	nextID     uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories: map[uint64]*orm.Category{},
		tags:       map[uint64]*orm.Tag{},
	}
}

func (f *fakeStore) GetCategoryByID(_ context.Context, id uint64) (*orm.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, &orm.NotFoundError{Search: fmt.Sprintf("category (id=%d)", id)}
	}

	return category, nil
}

func (f *fakeStore) ListCategories(_ context.Context) ([]orm.Category, error) {
	var categories []orm.Category
	for _, category := range f.categories {
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

func (f *fakeStore) CategoryExistsByName(_ context.Context, name string) (bool, error) {
	for _, category := range f.categories {
		if category.Name == name {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) CategoryExistsBySlug(_ context.Context, slug string) (bool, error) {
	for _, category := range f.categories {
		if category.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) CreateCategory(_ context.Context, category *orm.Category) error {
	f.nextID++
	category.ID = f.nextID
	f.categories[category.ID] = category

	return nil
}

func (f *fakeStore) SaveCategory(_ context.Context, category *orm.Category) error {
	f.categories[category.ID] = category

	return nil
}

func (f *fakeStore) DeleteCategory(_ context.Context, id uint64) error {
	if _, ok := f.categories[id]; !ok {
		return &orm.NotFoundError{Search: fmt.Sprintf("category (id=%d)", id)}
	}
	delete(f.categories, id)

	return nil
}

func (f *fakeStore) GetTagByID(_ context.Context, id uint64) (*orm.Tag, error) {
	tag, ok := f.tags[id]
	if !ok {
		return nil, &orm.NotFoundError{Search: fmt.Sprintf("tag (id=%d)", id)}
	}

	return tag, nil
}

func (f *fakeStore) ListTags(_ context.Context) ([]orm.Tag, error) {
	var tags []orm.Tag
	for _, tag := range f.tags {
		tags = append(tags, *tag)
	}

	return tags, nil
}

func (f *fakeStore) TagExistsByName(_ context.Context, name string) (bool, error) {
	for _, tag := range f.tags {
		if tag.Name == name {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) TagExistsBySlug(_ context.Context, slug string) (bool, error) {
	for _, tag := range f.tags {
		if tag.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) CreateTag(_ context.Context, tag *orm.Tag) error {
	f.nextID++
	tag.ID = f.nextID
	f.tags[tag.ID] = tag

	return nil
}

func (f *fakeStore) SaveTag(_ context.Context, tag *orm.Tag) error {
	f.tags[tag.ID] = tag

	return nil
}

func (f *fakeStore) DeleteTag(_ context.Context, id uint64) error {
	if _, ok := f.tags[id]; !ok {
		return &orm.NotFoundError{Search: fmt.Sprintf("tag (id=%d)", id)}
	}
	delete(f.tags, id)

	return nil
}

func TestCreateCategory(t *testing.T) {
	service := NewService(newFakeStore())

	category, err := service.CreateCategory(
		context.Background(), "Incident Reports", "postmortems", "#ff0000",
	)
	require.NoError(t, err)
	assert.Equal(t, "incident-reports", category.Slug)
	assert.Equal(t, "#ff0000", category.Color)
}

func TestCreateCategoryValidation(t *testing.T) {
	service := NewService(newFakeStore())

	_, err := service.CreateCategory(context.Background(), "", "", "")
	var validation *orm.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	service := NewService(newFakeStore())

	_, err := service.CreateCategory(context.Background(), "News", "", "")
	require.NoError(t, err)

	_, err = service.CreateCategory(context.Background(), "News", "", "")
	var conflict *orm.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCreateCategorySlugCollision(t *testing.T) {
	service := NewService(newFakeStore())

	// Different names may still collapse to the same slug.
	first, err := service.CreateCategory(context.Background(), "News!", "", "")
	require.NoError(t, err)
	assert.Equal(t, "news", first.Slug)

	second, err := service.CreateCategory(context.Background(), "News?", "", "")
	require.NoError(t, err)
	assert.Equal(t, "news-1", second.Slug)
}

func TestUpdateCategoryPatch(t *testing.T) {
	service := NewService(newFakeStore())

	category, err := service.CreateCategory(
		context.Background(), "Old Name", "old description", "#111111",
	)
	require.NoError(t, err)

	newName := "New Name"
	updated, err := service.UpdateCategory(context.Background(), category.ID, CategoryPatch{
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new-name", updated.Slug)
	// Untouched fields survive the patch.
	assert.Equal(t, "old description", updated.Description)

	empty := ""
	cleared, err := service.UpdateCategory(context.Background(), category.ID, CategoryPatch{
		Description: &empty,
	})
	require.NoError(t, err)
	assert.Empty(t, cleared.Description)
}

func TestDeleteCategoryMissing(t *testing.T) {
	service := NewService(newFakeStore())

	err := service.DeleteCategory(context.Background(), 42)
	var notFound *orm.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCreateTag(t *testing.T) {
	service := NewService(newFakeStore())

	tag, err := service.CreateTag(context.Background(), "Kubernetes Ops")
	require.NoError(t, err)
	assert.Equal(t, "kubernetes-ops", tag.Slug)
}

func TestCreateTagDuplicateName(t *testing.T) {
	service := NewService(newFakeStore())

	_, err := service.CreateTag(context.Background(), "go")
	require.NoError(t, err)

	_, err = service.CreateTag(context.Background(), "go")
	var conflict *orm.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUpdateTagRenames(t *testing.T) {
	service := NewService(newFakeStore())

	tag, err := service.CreateTag(context.Background(), "old tag")
	require.NoError(t, err)

	newName := "new tag"
	updated, err := service.UpdateTag(context.Background(), tag.ID, &newName)
	require.NoError(t, err)
	assert.Equal(t, "new tag", updated.Name)
	assert.Equal(t, "new-tag", updated.Slug)

	// A nil name leaves the tag untouched.
	unchanged, err := service.UpdateTag(context.Background(), tag.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "new tag", unchanged.Name)
}
