package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page, total := Page(items, 0, 3)
	require.Equal(t, []int{1, 2, 3}, page)
	require.Equal(t, 3, total)

	page, _ = Page(items, 2, 3)
	require.Equal(t, []int{7}, page)

	page, total = Page(items, 3, 3)
	require.Empty(t, page)
	require.Equal(t, 3, total)

	page, _ = Page(items, -1, 3)
	require.Empty(t, page)

	page, total = Page([]int{}, 0, 3)
	require.Empty(t, page)
	require.Zero(t, total)

	// non-positive page size falls back to the default
	page, _ = Page(items, 0, 0)
	require.Equal(t, items, page)
}

func TestFilter(t *testing.T) {
	odd := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 1 })
	require.Equal(t, []int{1, 3}, odd)
}

func TestContainsFold(t *testing.T) {
	require.True(t, ContainsFold("", "anything"))
	require.True(t, ContainsFold("gin", "Engineering"))
	require.True(t, ContainsFold("ACME", "big acme corp"))
	require.False(t, ContainsFold("zurich", "Berlin", "Remote"))
	require.True(t, ContainsFold("remote", "Berlin", "Remote"))
}
