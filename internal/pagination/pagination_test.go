package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampTreatsLowPagesAsFirst(t *testing.T) {
	p := New(10)

	assert.Equal(t, 1, p.Clamp(0))
	assert.Equal(t, 1, p.Clamp(-3))
	assert.Equal(t, 1, p.Clamp(1))
	assert.Equal(t, 7, p.Clamp(7))
}

func TestWindow(t *testing.T) {
	p := New(4)

	offset, limit := p.Window(1)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 4, limit)

	offset, limit = p.Window(3)
	assert.Equal(t, 8, offset)
	assert.Equal(t, 4, limit)

	// Below-range pages fall back to the first window.
	offset, _ = p.Window(-1)
	assert.Equal(t, 0, offset)
}

func TestDescribeSinglePage(t *testing.T) {
	p := New(10)

	info := p.Describe(1, 7)
	assert.False(t, info.HasPrev)
	assert.False(t, info.HasNext)
	assert.Equal(t, 7, info.Total)
}

func TestDescribeLastPageHasNoNext(t *testing.T) {
	p := New(4)

	// 10 items at 4 per page: page 3 holds the remainder.
	info := p.Describe(3, 10)
	assert.True(t, info.HasPrev)
	assert.False(t, info.HasNext)
	assert.Equal(t, 2, info.PrevPage)
}

func TestDescribeMiddlePage(t *testing.T) {
	p := New(4)

	info := p.Describe(2, 10)
	assert.True(t, info.HasPrev)
	assert.True(t, info.HasNext)
	assert.Equal(t, 1, info.PrevPage)
	assert.Equal(t, 3, info.NextPage)
}

func TestDescribeEmptyCollection(t *testing.T) {
	p := New(4)

	info := p.Describe(1, 0)
	assert.False(t, info.HasPrev)
	assert.False(t, info.HasNext)

	// A page past the end of an empty collection still advertises nothing.
	info = p.Describe(5, 0)
	assert.False(t, info.HasPrev)
	assert.False(t, info.HasNext)
}

func TestDescribePastTheEndStillPointsBack(t *testing.T) {
	p := New(4)

	// Page 4 of 10 items is empty, but page 3 is not.
	info := p.Describe(4, 10)
	assert.True(t, info.HasPrev)
	assert.False(t, info.HasNext)
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "brien", NormalizeQuery("  BRIEN "))
	assert.Equal(t, "", NormalizeQuery("   "))
	assert.Equal(t, "o'brien", NormalizeQuery("O'Brien"))
}
