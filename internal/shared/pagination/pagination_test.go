package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ElevenItemsAcrossThreePages(t *testing.T) {
	p1 := New([]int{1, 2, 3, 4, 5}, 1, DefaultPageSize, 11)
	assert.Equal(t, 3, p1.TotalPages)
	assert.True(t, p1.HasNext)
	assert.False(t, p1.HasPrevious)
	assert.True(t, p1.IsPaginated)

	p3 := New([]int{11}, 3, DefaultPageSize, 11)
	assert.False(t, p3.HasNext)
	assert.True(t, p3.HasPrevious)
}

func TestNew_EmptyAndExactFit(t *testing.T) {
	empty := New[int](nil, 1, DefaultPageSize, 0)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.IsPaginated)
	assert.False(t, empty.HasNext)

	five := New([]int{1, 2, 3, 4, 5}, 1, DefaultPageSize, 5)
	assert.False(t, five.IsPaginated)
	assert.Equal(t, 1, five.TotalPages)
}

func TestNew_OutOfRangePage(t *testing.T) {
	p := New[int](nil, 9, DefaultPageSize, 7)
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrevious)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 5))
	assert.Equal(t, 10, Offset(3, 5))
	assert.Equal(t, 0, Offset(0, 5))

	// tràn int -> offset lớn nhất, không bao giờ âm
	assert.Equal(t, math.MaxInt, Offset(3689348814741910324, 5))
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt, 5))
	assert.Equal(t, (math.MaxInt/5)*5, Offset(math.MaxInt/5+1, 5))
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage("")
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	page, err = ParsePage("3")
	require.NoError(t, err)
	assert.Equal(t, 3, page)

	for _, raw := range []string{"0", "-1", "abc", "1.5"} {
		_, err := ParsePage(raw)
		assert.ErrorIs(t, err, ErrInvalidPage, raw)
	}
}

func TestParseLimit(t *testing.T) {
	limit, err := ParseLimit("", 20, 100)
	require.NoError(t, err)
	assert.Equal(t, 20, limit)

	limit, err = ParseLimit("500", 20, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, limit)

	_, err = ParseLimit("zero", 20, 100)
	assert.Error(t, err)
}
