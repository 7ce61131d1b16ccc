package ucs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLen_ASCII(t *testing.T) {
	require.Equal(t, 5, Len[uint8]("hello"))
	require.Equal(t, 5, Len[uint16]("hello"))
	require.Equal(t, 5, Len[uint32]("hello"))
}

func TestLen_SurrogatePairCountsAsTwoUTF16Units(t *testing.T) {
	emoji := "😀" // U+1F600, outside the BMP
	require.Equal(t, 2, Len[uint16](emoji))
	require.Equal(t, 1, Len[uint32](emoji))
	require.Equal(t, len(emoji), Len[uint8](emoji))
}

func TestSlice_UTF16Units(t *testing.T) {
	s := "hello"
	require.Equal(t, "ell", Slice[uint16](s, 1, 4))
}

func TestSlice_OutOfRangeClamps(t *testing.T) {
	s := "hi"
	require.Equal(t, "hi", Slice[uint16](s, 0, 100))
	require.Equal(t, "", Slice[uint16](s, 5, 1))
}

func TestByteOffset_ClampsToStringBounds(t *testing.T) {
	s := "hello"
	require.Equal(t, 0, ByteOffset[uint16](s, -3))
	require.Equal(t, len(s), ByteOffset[uint16](s, 999))
}

func TestInsert_AtUnitPosition(t *testing.T) {
	got := Insert[uint16]("helo", 2, "l")
	require.Equal(t, "hello", got)
}

func TestGraphemeBoundaries_CombiningMark(t *testing.T) {
	// "e" + combining acute accent forms a single grapheme cluster.
	s := "é"
	bs := GraphemeBoundaries[uint16](s)
	require.Equal(t, []int{0, Len[uint16](s)}, bs)
}

func TestStepForwardBackward_TraverseGraphemes(t *testing.T) {
	s := "ab"
	require.Equal(t, 1, StepForward[uint16](s, 0))
	require.Equal(t, 2, StepForward[uint16](s, 1))
	require.Equal(t, 2, StepForward[uint16](s, 2))

	require.Equal(t, 1, StepBackward[uint16](s, 2))
	require.Equal(t, 0, StepBackward[uint16](s, 1))
	require.Equal(t, 0, StepBackward[uint16](s, 0))
}
