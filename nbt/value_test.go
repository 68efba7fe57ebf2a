package nbt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/pkg/types"
)

func TestValue_Kinds(t *testing.T) {
	tests := []struct {
		v    Value
		want types.Kind
	}{
		{Byte(0), types.KindByte},
		{Short(0), types.KindShort},
		{Int(0), types.KindInt},
		{Long(0), types.KindLong},
		{Float(0), types.KindFloat},
		{Double(0), types.KindDouble},
		{String(""), types.KindString},
		{ByteArray(nil), types.KindByteArray},
		{IntArray(nil), types.KindIntArray},
		{LongArray(nil), types.KindLongArray},
		{&List{}, types.KindList},
		{NewCompound(), types.KindCompound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.Kind(), "%T", tt.v)
		assert.Equal(t, tt.want, KindOf(tt.v))
		assert.Equal(t, tt.want, KindOf(Zero(tt.want)))
	}
	assert.Equal(t, types.KindNone, KindOf(nil))
	assert.Nil(t, Zero(types.KindNone))
}

func TestCoerce(t *testing.T) {
	v, ok := Coerce(Double(3.9), types.KindInt)
	require.True(t, ok)
	require.Equal(t, Int(3), v)

	v, ok = Coerce(Double(-3.9), types.KindLong)
	require.True(t, ok)
	require.Equal(t, Long(-3), v)

	v, ok = Coerce(Int(300), types.KindByte)
	require.True(t, ok)
	require.Equal(t, Byte(44), v, "narrowing wraps")

	v, ok = Coerce(Byte(-1), types.KindDouble)
	require.True(t, ok)
	require.Equal(t, Double(-1), v)

	_, ok = Coerce(String("5"), types.KindInt)
	require.False(t, ok)
	_, ok = Coerce(Int(5), types.KindString)
	require.False(t, ok)
	_, ok = Coerce(nil, types.KindInt)
	require.False(t, ok)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Int(1), Int(1)))
	assert.False(t, Equal(Int(1), Long(1)), "kinds differ")
	assert.False(t, Equal(Int(1), nil))
	assert.True(t, Equal(nil, nil))

	nan := Double(math.NaN())
	assert.True(t, Equal(nan, nan))
	assert.False(t, Equal(Double(0), Double(math.Copysign(0, -1))))

	assert.True(t, Equal(ByteArray{1, 2}, ByteArray{1, 2}))
	assert.False(t, Equal(IntArray{1, 2}, IntArray{2, 1}))
	assert.True(t, Equal(NewList(types.KindInt), NewList(types.KindString)))
	assert.False(t, Equal(NewListOf(Int(1)), NewListOf(Long(1))))

	a := NewCompound(Entry{Name: "a", Value: Int(1)}, Entry{Name: "b", Value: Int(2)})
	b := NewCompound(Entry{Name: "b", Value: Int(2)}, Entry{Name: "a", Value: Int(1)})
	assert.False(t, Equal(a, b), "compounds compare in order")
	assert.True(t, Equal(a, a.Clone()))
}

func TestClone_Deep(t *testing.T) {
	arr := IntArray{1, 2}
	c := NewCompound(
		Entry{Name: "arr", Value: arr},
		Entry{Name: "list", Value: NewListOf(NewCompound(Entry{Name: "x", Value: Int(1)}))},
	)
	cp := Clone(c).(*Compound)

	arr[0] = 99
	inner, _ := Lookup[*List](c, "list")
	first, _ := inner.Get(0)
	first.(*Compound).Set("x", Int(2))

	got, _ := Lookup[IntArray](cp, "arr")
	require.Equal(t, IntArray{1, 2}, got)

	cpList, _ := Lookup[*List](cp, "list")
	cpFirst, _ := cpList.Get(0)
	x, _ := Lookup[Int](cpFirst.(*Compound), "x")
	require.Equal(t, Int(1), x)
}

func TestBool(t *testing.T) {
	assert.Equal(t, Byte(1), Bool(true))
	assert.Equal(t, Byte(0), Bool(false))
}
