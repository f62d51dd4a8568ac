package orm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseStatus(t *testing.T) {
	for _, input := range []string{"draft", "DRAFT", "Draft"} {
		status, ok := ParseStatus(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, StatusDraft, status)
	}

	status, ok := ParseStatus("published")
	require.True(t, ok)
	assert.Equal(t, StatusPublished, status)

	status, ok = ParseStatus("archived")
	require.True(t, ok)
	assert.Equal(t, StatusArchived, status)

	for _, input := range []string{"", "deleted", "publish"} {
		_, ok := ParseStatus(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("admin")
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	role, ok = ParseRole("Reporter")
	require.True(t, ok)
	assert.Equal(t, RoleReporter, role)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)
}

func TestWrapErrorWithDetails(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, wrapErrorWithDetails(nil, "op", "details"))
	})

	t.Run("record not found", func(t *testing.T) {
		err := wrapErrorWithDetails(gorm.ErrRecordNotFound, "get report", "id=1")
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Search, "get report")
	})

	t.Run("duplicated key", func(t *testing.T) {
		err := wrapErrorWithDetails(gorm.ErrDuplicatedKey, "create report", "slug=x")
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("other errors wrap as database error", func(t *testing.T) {
		inner := errors.New("connection reset")
		err := wrapErrorWithDetails(inner, "save report", "id=1")
		var dbErr *DatabaseError
		require.ErrorAs(t, err, &dbErr)
		assert.ErrorIs(t, err, inner)
	})
}
