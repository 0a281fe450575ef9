package paginate

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNumPages(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 1},
		{1, 1},
		{5, 1},
		{6, 2},
		{10, 2},
		{11, 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, New(tt.count).NumPages(), "count=%d", tt.count)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"2", 2},
		{"3", 3},
		{"4", 3},
		{"999", 3},
		{"0", 1},
		{"-7", 1},
		{"abc", 1},
		{"last", 3},
		{" 2 ", 2},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseNumber(tt.raw, 3), "raw=%q", tt.raw)
	}
}

func TestPage_IsPaginatedBoundary(t *testing.T) {
	require.False(t, New(0).Page("").IsPaginated)
	require.False(t, New(DefaultPerPage).Page("").IsPaginated)
	require.True(t, New(DefaultPerPage+1).Page("").IsPaginated)
}

func TestPage_Metadata(t *testing.T) {
	p := New(11).Page("2")
	require.Equal(t, 2, p.Number)
	require.Equal(t, 3, p.NumPages)
	require.Equal(t, 5, p.Offset)
	require.Equal(t, 5, p.Limit)
	require.True(t, p.HasNext)
	require.True(t, p.HasPrevious)
	require.Equal(t, 3, p.NextNumber())
	require.Equal(t, 1, p.PreviousNumber())
	require.Equal(t, []int{1, 2, 3}, p.Numbers())
	require.Equal(t, 6, p.StartIndex())
	require.Equal(t, 10, p.EndIndex())

	last := New(11).Page("last")
	require.Equal(t, 3, last.Number)
	require.Equal(t, 1, last.Limit)
	require.False(t, last.HasNext)
	require.Equal(t, 3, last.NextNumber())
}

func TestPage_OutOfRangeClamps(t *testing.T) {
	p := New(7).Page("42")
	require.Equal(t, 2, p.Number)
	require.Equal(t, 5, p.Offset)
	require.Equal(t, 2, p.Limit)

	empty := New(0).Page("3")
	require.Equal(t, 1, empty.Number)
	require.Equal(t, 0, empty.Limit)
	require.False(t, empty.HasNext)
	require.False(t, empty.HasPrevious)
	require.Equal(t, 0, empty.StartIndex())
}

// TestPage_RoundTrip verifies that concatenating every page reproduces the
// collection in order with no duplicates and no omissions.
func TestPage_RoundTrip(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		items := rapid.SliceOfDistinct(rapid.IntRange(0, 10_000), rapid.ID[int]).Draw(r, "items")
		perPage := rapid.IntRange(1, 12).Draw(r, "perPage")

		p := Paginator{PerPage: perPage, Count: len(items)}
		var joined []int
		for n := 1; n <= p.NumPages(); n++ {
			page := p.Page(strconv.Itoa(n))
			joined = append(joined, items[page.Offset:page.Offset+page.Limit]...)
		}

		if len(items) == 0 {
			require.Empty(r, joined)
			return
		}
		require.Equal(r, items, joined)
	})
}
