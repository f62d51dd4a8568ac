package report

import (
	"testing"

	"report-backend/orm"

	"github.com/stretchr/testify/assert"
)

func TestListOptionsNormalized(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := ListOptions{}.normalized()
		assert.Equal(t, 0, opts.Page)
		assert.Equal(t, 10, opts.PageSize)
		assert.Equal(t, "createdAt", opts.SortBy)
	})

	t.Run("negative page clamps to zero", func(t *testing.T) {
		opts := ListOptions{Page: -3}.normalized()
		assert.Equal(t, 0, opts.Page)
	})

	t.Run("non-positive page size falls back", func(t *testing.T) {
		opts := ListOptions{PageSize: -1}.normalized()
		assert.Equal(t, 10, opts.PageSize)
	})

	t.Run("explicit values survive", func(t *testing.T) {
		opts := ListOptions{Page: 2, PageSize: 25, SortBy: "title"}.normalized()
		assert.Equal(t, 2, opts.Page)
		assert.Equal(t, 25, opts.PageSize)
		assert.Equal(t, "title", opts.SortBy)
	})
}

func TestListOptionsSortDesc(t *testing.T) {
	assert.True(t, ListOptions{}.sortDesc())
	assert.True(t, ListOptions{SortOrder: "desc"}.sortDesc())
	assert.True(t, ListOptions{SortOrder: "garbage"}.sortDesc())
	assert.False(t, ListOptions{SortOrder: "asc"}.sortDesc())
	assert.False(t, ListOptions{SortOrder: "ASC"}.sortDesc())
}

func TestListOptionsFilters(t *testing.T) {
	t.Run("status parsed case-insensitively", func(t *testing.T) {
		f := ListOptions{Status: "published"}.filters()
		if assert.NotNil(t, f.Status) {
			assert.Equal(t, orm.StatusPublished, *f.Status)
		}
	})

	t.Run("unparseable status ignored", func(t *testing.T) {
		f := ListOptions{Status: "bogus"}.filters()
		assert.Nil(t, f.Status)
	})

	t.Run("empty tag list means no filter", func(t *testing.T) {
		f := ListOptions{TagIDs: []uint64{}}.filters()
		assert.Nil(t, f.TagIDs)
	})

	t.Run("passthrough fields", func(t *testing.T) {
		categoryID := uint64(3)
		opts := ListOptions{
			Search:     "outage",
			CategoryID: &categoryID,
			TagIDs:     []uint64{1, 2},
		}
		f := opts.filters()
		assert.Equal(t, "outage", f.Search)
		assert.Equal(t, &categoryID, f.CategoryID)
		assert.Equal(t, []uint64{1, 2}, f.TagIDs)
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(1, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
}
