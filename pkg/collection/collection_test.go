package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	out := Map([]int{1, 2, 3}, func(n int) int { return n * 2 })
	assert.Equal(t, []int{2, 4, 6}, out)
}

func TestFilter(t *testing.T) {
	out := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, out)
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b", "c"}, func(s string) bool { return s == "b" })
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = First([]string{"a"}, func(s string) bool { return s == "z" })
	assert.False(t, ok)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, Unique([]string{}))
}

func TestUniqueBy(t *testing.T) {
	type item struct{ Cat string }
	items := []item{{"Birthday"}, {"Anniversary"}, {"Birthday"}}
	out := UniqueBy(items, func(i item) string { return i.Cat })
	assert.Len(t, out, 2)
}

func TestChunk(t *testing.T) {
	chunks := Chunk([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunks)
}

func TestReduceAndSum(t *testing.T) {
	total := Reduce([]int{1, 2, 3}, 0, func(acc, n int) int { return acc + n })
	assert.Equal(t, 6, total)
	assert.Equal(t, 6.5, Sum([]float64{1.5, 2, 3}, func(v float64) float64 { return v }))
}

func TestTake(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Take([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1, 2, 3}, Take([]int{1, 2, 3}, 10))
}

func TestKeyBy(t *testing.T) {
	type item struct {
		ID   string
		Name string
	}
	m := KeyBy([]item{{"1", "a"}, {"2", "b"}}, func(i item) string { return i.ID })
	assert.Equal(t, "b", m["2"].Name)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]int{1, 2, 3}, func(n int) bool { return n == 2 }))
	assert.False(t, Contains([]int{1, 2, 3}, func(n int) bool { return n == 9 }))
}
