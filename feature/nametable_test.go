package feature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/featspace/internal/pool"
	"github.com/arloliu/featspace/store"
)

func TestNameTable_InternIsIdempotent(t *testing.T) {
	tab := NewNameTable()

	a, err := tab.Intern("alpha")
	require.NoError(t, err)
	b, err := tab.Intern("beta")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	again, err := tab.Intern("alpha")
	require.NoError(t, err)
	require.Equal(t, a, again)
	require.Equal(t, 2, tab.Len())

	name, err := tab.Name(b)
	require.NoError(t, err)
	require.Equal(t, "beta", name)

	_, err = tab.Name(99)
	require.Error(t, err)
}

func TestNameTable_Lookup(t *testing.T) {
	tab := NewNameTable()
	idx, err := tab.Intern("alpha")
	require.NoError(t, err)

	got, ok := tab.Lookup("alpha")
	require.True(t, ok)
	require.Equal(t, idx, got)

	_, ok = tab.Lookup("missing")
	require.False(t, ok)
	require.Equal(t, 1, tab.Len(), "Lookup must not intern")
}

func TestNameTable_Freeze(t *testing.T) {
	tab := NewNameTable()
	idx, err := tab.Intern("alpha")
	require.NoError(t, err)

	tab.Freeze()
	require.True(t, tab.Frozen())

	again, err := tab.Intern("alpha")
	require.NoError(t, err, "known names keep resolving after freeze")
	require.Equal(t, idx, again)

	_, err = tab.Intern("beta")
	require.ErrorIs(t, err, ErrFrozen)
	require.Equal(t, 1, tab.Len())
}

func TestNameTable_MakeCopyIsIndependent(t *testing.T) {
	tab := NewNameTable()
	_, err := tab.Intern("alpha")
	require.NoError(t, err)
	tab.Freeze()

	cp := tab.MakeCopy()
	require.False(t, cp.Frozen())

	_, err = cp.Intern("beta")
	require.NoError(t, err)
	require.Equal(t, 2, cp.Len())
	require.Equal(t, 1, tab.Len())
}

func TestNameTable_SerializeRoundTrip(t *testing.T) {
	tab := NewNameTable()
	for _, name := range []string{"alpha", "beta", "gamma"} {
		_, err := tab.Intern(name)
		require.NoError(t, err)
	}
	tab.Freeze()

	buf := pool.GetStoreBuffer()
	defer pool.PutStoreBuffer(buf)

	w, err := store.NewWriter(buf)
	require.NoError(t, err)
	require.NoError(t, tab.Serialize(w))

	r, err := store.NewReader(buf.Bytes())
	require.NoError(t, err)

	got := NewNameTable()
	require.NoError(t, got.Reconstitute(r))
	require.Equal(t, 3, got.Len())
	require.True(t, got.Frozen())

	idx, ok := got.Lookup("beta")
	require.True(t, ok)
	name, err := got.Name(idx)
	require.NoError(t, err)
	require.Equal(t, "beta", name)
}
