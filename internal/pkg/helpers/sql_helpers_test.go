package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, NullIfEmpty(""))
	assert.Nil(t, NullIfEmpty("   "))

	got := NullIfEmpty("  hello  ")
	require.NotNil(t, got)
	assert.Equal(t, "hello", *got)
}

func TestNullIfEmptyPtr(t *testing.T) {
	assert.Nil(t, NullIfEmptyPtr(nil))

	empty := ""
	assert.Nil(t, NullIfEmptyPtr(&empty))

	value := "x"
	got := NullIfEmptyPtr(&value)
	require.NotNil(t, got)
	assert.Equal(t, "x", *got)
}

func TestStringOrEmpty(t *testing.T) {
	assert.Equal(t, "", StringOrEmpty(nil))

	value := "y"
	assert.Equal(t, "y", StringOrEmpty(&value))
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 20)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(3, 10)
	assert.Equal(t, uint64(20), offset)
	assert.Equal(t, 10, limit)

	// Out-of-range sizes fall back to the default
	_, limit = CalculateOffsetLimit(1, 0)
	assert.Equal(t, DefaultPageSize, limit)
	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)

	// Pages below one clamp to the first page
	offset, _ = CalculateOffsetLimit(0, 10)
	assert.Equal(t, uint64(0), offset)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 20, info.PageSize)
	assert.Equal(t, int64(45), info.TotalItems)

	// An empty result set still reports one page
	info = NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, info.TotalPages)

	// Requesting past the end clamps the current page
	info = NewPaginationInfo(10, 5, 20)
	assert.Equal(t, 1, info.CurrentPage)
}
