package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontier_OrdersByFThenInsertion(t *testing.T) {
	var fr frontier[string]
	fr.push(2, "a", "a")
	fr.push(1, "b", "b")
	fr.push(1, "c", "c")
	fr.push(0.5, "d", "d")
	fr.push(1, "e", "e")

	var got []string
	for fr.Len() > 0 {
		got = append(got, fr.pop().key)
	}
	assert.Equal(t, []string{"d", "b", "c", "e", "a"}, got)
}

func TestBuildPath(t *testing.T) {
	parent := map[string]string{"b": "a", "c": "b"}
	states := map[string]int{"a": 1, "b": 2, "c": 3}

	assert.Equal(t, []int{1, 2, 3}, buildPath(parent, states, "c"))
	assert.Equal(t, []int{1}, buildPath(parent, states, "a"))
}
