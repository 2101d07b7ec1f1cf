package feature

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_AddAndAt(t *testing.T) {
	set := NewSet(2)
	require.Equal(t, 0, set.Len())

	set.Add(Feature{Type: 1, Arg1: 2, Arg2: 3}, 0.5)
	set.Add(Feature{Type: 1, Arg1: 2, Arg2: 3}, 1.5)
	require.Equal(t, 2, set.Len())

	e := set.At(1)
	require.Equal(t, Feature{Type: 1, Arg1: 2, Arg2: 3}, e.Feature)
	require.Equal(t, float32(1.5), e.Value)
}

func TestSet_SortIsStable(t *testing.T) {
	set := NewSet(4)
	set.Add(Feature{Type: 2}, 20)
	set.Add(Feature{Type: 1, Arg1: 5}, 11)
	set.Add(Feature{Type: 1, Arg1: 5}, 12)
	set.Add(Feature{Type: 1, Arg1: 3}, 10)

	set.Sort()

	require.Equal(t, float32(10), set.At(0).Value)
	require.Equal(t, float32(11), set.At(1).Value)
	require.Equal(t, float32(12), set.At(2).Value)
	require.Equal(t, float32(20), set.At(3).Value)
}

func TestSet_AllStopsEarly(t *testing.T) {
	set := NewSet(3)
	set.Add(Feature{Arg1: 0}, 0)
	set.Add(Feature{Arg1: 1}, 1)
	set.Add(Feature{Arg1: 2}, 2)

	var seen int
	for range set.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	require.Equal(t, 2, seen)
}
