package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameID_Deterministic(t *testing.T) {
	id1 := NameID("height")
	id2 := NameID("height")
	require.Equal(t, id1, id2)
}

func TestNameID_Distinct(t *testing.T) {
	require.NotEqual(t, NameID("height"), NameID("weight"))
	require.NotEqual(t, NameID(""), NameID(" "))
}
