package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyphersynth/synth/pkg/idl"
)

func TestInitialSketchIsMatchReturn(t *testing.T) {
	s := Initial()
	assert.Equal(t, Sketch{idl.KindMatch, idl.KindReturn}, s)
	assert.NoError(t, s.Validate())
}

func TestExpandAddsRequireBeforeReturn(t *testing.T) {
	addRequire, addLeadingMatch := Initial().Expand()

	assert.Equal(t, Sketch{idl.KindMatch, idl.KindRequire, idl.KindReturn}, addRequire)
	assert.NoError(t, addRequire.Validate())

	assert.Equal(t, Sketch{idl.KindMatch, idl.KindMatch, idl.KindReturn}, addLeadingMatch)
	assert.NoError(t, addLeadingMatch.Validate())
}

func TestValidateRejectsMissingHeadOrTail(t *testing.T) {
	require.ErrorIs(t, Sketch{idl.KindReturn}.Validate(), ErrMalformed)
	require.ErrorIs(t, Sketch{idl.KindMatch, idl.KindMatch}.Validate(), ErrMalformed)
	require.ErrorIs(t, Sketch{idl.KindMatch, idl.KindRequire, idl.KindMatch}.Validate(), ErrMalformed)
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	assert.Equal(t, 1, q.Len())

	first, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, Initial(), first)

	_, ok = q.Pop()
	assert.False(t, ok)

	addRequire, addLeadingMatch := first.Expand()
	q.Push(addRequire)
	q.Push(addLeadingMatch)
	assert.Equal(t, 2, q.Len())

	next, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, addRequire, next)
}
