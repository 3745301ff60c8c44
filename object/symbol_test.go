package object

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSymbolInternsEqualContent(t *testing.T) {
	a := NewSymbol([]byte("topic.alpha"))
	b := NewSymbol([]byte("topic.alpha"))
	defer a.Release()
	defer b.Release()

	require.Same(t, a, b)
	require.Equal(t, int64(2), a.RefCount())
	require.Equal(t, a.SymbolID(), b.SymbolID())
}

func TestSymbolReleaseRemovesFromInternTableAtZero(t *testing.T) {
	a := NewSymbol([]byte("topic.beta"))
	a.Release()

	c := NewSymbol([]byte("topic.beta"))
	defer c.Release()
	require.Equal(t, int64(1), c.RefCount())
}

func TestSymbolEquals(t *testing.T) {
	a := NewSymbol([]byte("x"))
	b := NewSymbol([]byte("y"))
	defer a.Release()
	defer b.Release()

	require.True(t, a.Equals(a))
	require.False(t, a.Equals(b))
	require.False(t, a.Equals(nil))
}

func TestSymbolDupIncrementsRefCount(t *testing.T) {
	a := NewSymbol([]byte("topic.gamma"))
	defer a.Release()

	dup := a.Dup()
	defer dup.Release()

	require.Equal(t, int64(2), a.RefCount())
	require.Same(t, a, dup)
}

func TestNullSymbolIsStable(t *testing.T) {
	require.Same(t, Null(), Null())
}
