package recordsort

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intCmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func TestSortEmptyAndSingleton(t *testing.T) {
	empty := []int{}
	Sort(empty, intCmp)
	assert.Empty(t, empty)

	single := []int{42}
	Sort(single, intCmp)
	assert.Equal(t, []int{42}, single)
}

func TestSortSmallSlice(t *testing.T) {
	data := []int{5, 3, 4, 1, 2}
	Sort(data, intCmp)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, data)
}

// TestSortTriggersIntrosortPartitioning exercises the > 12 element path
// (partition/recurse) rather than just insertionSort's base case.
func TestSortTriggersIntrosortPartitioning(t *testing.T) {
	data := make([]int, 200)
	for i := range data {
		data[i] = 199 - i
	}
	Sort(data, intCmp)
	for i := range data {
		assert.Equal(t, i, data[i])
	}
}

func TestSortAlreadySorted(t *testing.T) {
	data := make([]int, 50)
	for i := range data {
		data[i] = i
	}
	Sort(data, intCmp)
	for i := range data {
		assert.Equal(t, i, data[i])
	}
}

func TestSortAllEqual(t *testing.T) {
	data := make([]int, 30)
	for i := range data {
		data[i] = 7
	}
	Sort(data, intCmp)
	for _, v := range data {
		assert.Equal(t, 7, v)
	}
}

func TestSortRandomMatchesStandardLibrary(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	data := make([]int, 500)
	for i := range data {
		data[i] = r.Intn(1000)
	}
	want := append([]int(nil), data...)
	sort.Ints(want)

	Sort(data, intCmp)
	assert.Equal(t, want, data)
}

type pair struct {
	key, value string
}

func TestSortGenericStruct(t *testing.T) {
	data := []pair{
		{"b", "2"}, {"a", "1"}, {"a", "0"},
	}
	Sort(data, func(a, b pair) int {
		if a.key != b.key {
			return compareStrings(a.key, b.key)
		}
		return compareStrings(a.value, b.value)
	})
	assert.Equal(t, []pair{{"a", "0"}, {"a", "1"}, {"b", "2"}}, data)
}

func compareStrings(a, b string) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
