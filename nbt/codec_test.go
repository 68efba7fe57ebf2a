package nbt

import (
	"bytes"
	"encoding/hex"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nbtkit/pkg/types"
)

// hexBytes decodes a space-separated hex dump.
func hexBytes(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

const heroTree = "0A 00 00 " +
	"03 00 02 68 70 00 00 00 14 " +
	"08 00 04 6E 61 6D 65 00 04 48 65 72 6F " +
	"00"

func heroCompound() *Tree {
	return NewTree(NewCompound(
		Entry{Name: "hp", Value: Int(20)},
		Entry{Name: "name", Value: String("Hero")},
	), "")
}

func TestLoad_Compound(t *testing.T) {
	tree, err := Load(hexBytes(t, heroTree))
	require.NoError(t, err)
	require.Equal(t, "", tree.Name)
	require.Equal(t, types.KindCompound, tree.Kind())
	require.Equal(t, 2, tree.Len())

	root, ok := tree.Compound()
	require.True(t, ok)
	require.Equal(t, []string{"hp", "name"}, root.Names())

	hp, ok := tree.Key("hp").Int()
	require.True(t, ok)
	require.Equal(t, int32(20), hp)

	name, ok := tree.Key("name").Text()
	require.True(t, ok)
	require.Equal(t, "Hero", name)

	require.True(t, tree.Equal(heroCompound()))
}

func TestDump_Compound(t *testing.T) {
	out, err := Dump(heroCompound())
	require.NoError(t, err)
	require.Equal(t, hexBytes(t, heroTree), out)
}

func TestDump_EmptyListNameless(t *testing.T) {
	opts := types.EncodeOptions{NamelessRoot: true}
	out, err := DumpWithOptions(NewTree(&List{}, ""), opts)
	require.NoError(t, err)
	require.Equal(t, []byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x00}, out)

	tree, err := LoadWithOptions(out, types.DecodeOptions{NamelessRoot: true})
	require.NoError(t, err)
	l, ok := tree.Accessor().List()
	require.True(t, ok)
	require.Equal(t, 0, l.Len())
	require.Equal(t, types.KindNone, l.ElemKind())
}

func TestLoad_TruncatedPrefixes(t *testing.T) {
	data := hexBytes(t, heroTree)
	for n := 0; n < len(data); n++ {
		tree, err := Load(data[:n])
		require.ErrorIs(t, err, types.ErrTruncated, "prefix of %d bytes", n)
		require.Nil(t, tree, "prefix of %d bytes", n)

		kind, ok := types.KindOf(err)
		require.True(t, ok)
		require.Equal(t, types.ErrKindTruncated, kind)
	}
}

func TestLoad_InvalidKinds(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "root none",
			data: "00",
		},
		{
			name: "root unknown",
			data: "0D 00 00",
		},
		{
			name: "entry unknown",
			data: "0A 00 00 0D 00 01 61 00",
		},
		{
			name: "list element unknown",
			data: "09 00 00 0D 00 00 00 00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Load(hexBytes(t, tt.data))
			require.ErrorIs(t, err, types.ErrInvalidKind)
			require.Nil(t, tree)
		})
	}
}

func TestLoad_Counts(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		limits types.Limits
		want   error
	}{
		{
			name:   "int array count over default limit",
			data:   "0B 00 00 7F FF FF FF",
			limits: types.DefaultLimits(),
			want:   types.ErrLimit,
		},
		{
			name:   "int array count past end",
			data:   "0B 00 00 7F FF FF FF",
			limits: types.RelaxedLimits(),
			want:   types.ErrTruncated,
		},
		{
			name:   "negative byte array count",
			data:   "07 00 00 FF FF FF FF",
			limits: types.DefaultLimits(),
			want:   types.ErrTruncated,
		},
		{
			name:   "list of compounds past end",
			data:   "09 00 00 0A 7F FF FF FF 00",
			limits: types.RelaxedLimits(),
			want:   types.ErrTruncated,
		},
		{
			name:   "negative list count",
			data:   "09 00 00 01 80 00 00 00",
			limits: types.DefaultLimits(),
			want:   types.ErrTruncated,
		},
		{
			name:   "compound entry limit",
			data:   "0A 00 00 01 00 01 61 05 01 00 01 62 06 00",
			limits: types.Limits{MaxCompoundEntries: 1},
			want:   types.ErrLimit,
		},
		{
			name:   "list length limit",
			data:   "09 00 00 01 00 00 00 03 01 02 03",
			limits: types.Limits{MaxListLen: 2},
			want:   types.ErrLimit,
		},
		{
			name:   "input size limit",
			data:   "01 00 00 05",
			limits: types.Limits{MaxInputSize: 3},
			want:   types.ErrLimit,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := LoadWithOptions(hexBytes(t, tt.data), types.DecodeOptions{Limits: tt.limits})
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, tree)
		})
	}
}

func TestLoad_IntArrayElements(t *testing.T) {
	tree, err := Load(hexBytes(t, "0B 00 00 00 00 00 02 00 00 00 01 FF FF FF FF"))
	require.NoError(t, err)
	ints, ok := tree.Accessor().Ints()
	require.True(t, ok)
	require.Equal(t, []int32{1, -1}, ints)
}

func TestLoad_ListOfCompounds(t *testing.T) {
	data := hexBytes(t, "0A 00 00 "+
		"09 00 05 69 74 65 6D 73 0A 00 00 00 02 "+
		"01 00 05 43 6F 75 6E 74 03 00 "+
		"01 00 05 43 6F 75 6E 74 07 00 "+
		"00")
	tree, err := Load(data)
	require.NoError(t, err)

	items := tree.Key("items")
	require.Equal(t, types.KindList, items.Kind())
	require.Equal(t, 2, items.Len())
	require.Equal(t, int8(3), items.Index(0).Key("Count").ByteOr(-1))
	require.Equal(t, int8(7), items.Index(1).Key("Count").ByteOr(-1))

	out, err := Dump(tree)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

// nestedLists returns a tree of depth levels of single-element lists.
func nestedLists(depth int) []byte {
	b := []byte{0x09, 0x00, 0x00}
	for i := 0; i < depth-1; i++ {
		b = append(b, 0x09, 0x00, 0x00, 0x00, 0x01)
	}
	return append(b, 0x00, 0x00, 0x00, 0x00, 0x00)
}

func TestLoad_DepthGuard(t *testing.T) {
	tree, err := Load(nestedLists(types.MaxDepthPractical))
	require.NoError(t, err)
	require.Equal(t, types.KindList, tree.Kind())

	tree, err = Load(nestedLists(types.MaxDepthPractical + 1))
	require.ErrorIs(t, err, types.ErrTooDeep)
	require.Nil(t, tree)

	_, err = LoadWithOptions(nestedLists(types.MaxDepthPractical+1), types.DecodeOptions{Limits: types.RelaxedLimits()})
	require.NoError(t, err)

	_, err = LoadWithOptions(nestedLists(types.MaxDepthShallow+1), types.DecodeOptions{Limits: types.StrictLimits()})
	require.ErrorIs(t, err, types.ErrTooDeep)
}

func TestDump_DepthGuard(t *testing.T) {
	tree, err := LoadWithOptions(nestedLists(600), types.DecodeOptions{Limits: types.RelaxedLimits()})
	require.NoError(t, err)

	_, err = Dump(tree)
	require.ErrorIs(t, err, types.ErrTooDeep)

	out, err := DumpWithOptions(tree, types.EncodeOptions{Limits: types.RelaxedLimits()})
	require.NoError(t, err)
	require.Equal(t, nestedLists(600), out)
}

func TestDump_CycleFailsClosed(t *testing.T) {
	c := NewCompound()
	c.Set("self", c)
	_, err := Dump(NewTree(c, ""))
	require.ErrorIs(t, err, types.ErrTooDeep)
}

func TestLoad_Duplicates(t *testing.T) {
	data := hexBytes(t, "0A 00 00 01 00 01 61 05 01 00 01 61 07 00")
	tree, err := Load(data)
	require.NoError(t, err)
	require.Equal(t, 2, tree.Len())
	require.Equal(t, int8(5), tree.Key("a").ByteOr(0))

	root, _ := tree.Compound()
	require.Equal(t, []string{"a"}, root.Duplicates())

	out, err := Dump(tree)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestLoad_TrailingData(t *testing.T) {
	data := append(hexBytes(t, heroTree), 0xFF, 0xFF)

	tree, err := Load(data)
	require.NoError(t, err)
	require.True(t, tree.Equal(heroCompound()))

	tree, err = LoadWithOptions(data, types.DecodeOptions{RejectTrailing: true})
	require.ErrorIs(t, err, types.ErrTrailingData)
	require.Nil(t, tree)
}

func TestLoad_DoesNotAliasInput(t *testing.T) {
	data := hexBytes(t, "07 00 00 00 00 00 02 0A 0B")
	tree, err := Load(data)
	require.NoError(t, err)
	data[7] = 0xFF
	b, _ := tree.Accessor().Bytes()
	require.Equal(t, []byte{0x0A, 0x0B}, b)
}

func allKinds() *Tree {
	inner := NewCompound(Entry{Name: "deep", Value: NewListOf(Long(1), Long(-1))})
	return NewTree(NewCompound(
		Entry{Name: "byte", Value: Byte(-1)},
		Entry{Name: "short", Value: Short(-300)},
		Entry{Name: "int", Value: Int(math.MinInt32)},
		Entry{Name: "long", Value: Long(math.MaxInt64)},
		Entry{Name: "float", Value: Float(1.5)},
		Entry{Name: "double", Value: Double(3.9)},
		Entry{Name: "string", Value: String("héllo")},
		Entry{Name: "bytes", Value: ByteArray{0, 1, 255}},
		Entry{Name: "ints", Value: IntArray{1, -2, 3}},
		Entry{Name: "longs", Value: LongArray{math.MinInt64, 0}},
		Entry{Name: "strings", Value: NewListOf(String("a"), String(""))},
		Entry{Name: "lists", Value: NewListOf(NewListOf(Byte(1)), NewListOf(Byte(2), Byte(3)))},
		Entry{Name: "compounds", Value: NewListOf(inner, NewCompound())},
		Entry{Name: "nested", Value: inner.Clone()},
	), "Level")
}

func TestRoundTrip_AllKinds(t *testing.T) {
	want := allKinds()
	data, err := Dump(want)
	require.NoError(t, err)

	got, err := Load(data)
	require.NoError(t, err)
	require.True(t, want.Equal(got))
	require.Equal(t, "Level", got.Name)

	again, err := Dump(got)
	require.NoError(t, err)
	require.Equal(t, data, again)
}

func TestRoundTrip_NaNBits(t *testing.T) {
	nan32 := Float(math.Float32frombits(0x7FC00001))
	nan64 := Double(math.Float64frombits(0x7FF8000000000001))
	tree := NewTree(NewCompound(Entry{Name: "f", Value: nan32}, Entry{Name: "d", Value: nan64}), "")

	data, err := Dump(tree)
	require.NoError(t, err)
	got, err := Load(data)
	require.NoError(t, err)

	f, _ := Lookup[Float](mustCompound(t, got), "f")
	d, _ := Lookup[Double](mustCompound(t, got), "d")
	require.Equal(t, uint32(0x7FC00001), math.Float32bits(float32(f)))
	require.Equal(t, uint64(0x7FF8000000000001), math.Float64bits(float64(d)))
	require.True(t, tree.Equal(got))
}

func mustCompound(t *testing.T, tree *Tree) *Compound {
	t.Helper()
	c, ok := tree.Compound()
	require.True(t, ok)
	return c
}

func TestDump_EmptyTypedList(t *testing.T) {
	tree := NewTree(NewList(types.KindInt), "")
	data, err := Dump(tree)
	require.NoError(t, err)
	require.Equal(t, hexBytes(t, "09 00 00 03 00 00 00 00"), data)

	got, err := Load(data)
	require.NoError(t, err)
	l, _ := got.Accessor().List()
	require.Equal(t, types.KindNone, l.ElemKind())
	require.True(t, tree.Equal(got))
}

func TestDump_Errors(t *testing.T) {
	tests := []struct {
		name string
		tree *Tree
		want error
	}{
		{
			name: "nil tree",
			tree: nil,
			want: types.ErrInvalidKind,
		},
		{
			name: "nil root",
			tree: &Tree{},
			want: types.ErrInvalidKind,
		},
		{
			name: "nil entry",
			tree: NewTree(NewCompound(Entry{Name: "x"}), ""),
			want: types.ErrInvalidKind,
		},
		{
			name: "long string",
			tree: NewTree(String(strings.Repeat("a", 1<<16)), ""),
			want: types.ErrStringTooLong,
		},
		{
			name: "long name",
			tree: NewTree(Int(1), strings.Repeat("n", 1<<16)),
			want: types.ErrStringTooLong,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Dump(tt.tree)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, out)
		})
	}
}

func TestAppendTree_RollsBackOnError(t *testing.T) {
	prefix := []byte{0xCA, 0xFE}
	bad := NewTree(NewCompound(
		Entry{Name: "ok", Value: Int(1)},
		Entry{Name: "bad", Value: String(strings.Repeat("a", 1<<16))},
	), "")

	out, err := AppendTree(prefix, bad, types.EncodeOptions{})
	require.ErrorIs(t, err, types.ErrStringTooLong)
	require.Equal(t, []byte{0xCA, 0xFE}, out)

	out, err = AppendTree(prefix, heroCompound(), types.EncodeOptions{})
	require.NoError(t, err)
	require.Equal(t, append([]byte{0xCA, 0xFE}, hexBytes(t, heroTree)...), out)
}

func TestReadWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, heroCompound(), types.EncodeOptions{}))
	require.Equal(t, hexBytes(t, heroTree), buf.Bytes())

	tree, err := Read(&buf, types.DecodeOptions{})
	require.NoError(t, err)
	require.True(t, tree.Equal(heroCompound()))

	_, err = Read(bytes.NewReader(hexBytes(t, heroTree)), types.DecodeOptions{Limits: types.Limits{MaxInputSize: 8}})
	require.ErrorIs(t, err, types.ErrLimit)
}

func TestTree_BinaryMarshaler(t *testing.T) {
	data, err := heroCompound().MarshalBinary()
	require.NoError(t, err)

	var tree Tree
	require.NoError(t, tree.UnmarshalBinary(data))
	require.True(t, tree.Equal(heroCompound()))

	before := tree
	require.Error(t, tree.UnmarshalBinary(data[:4]))
	require.Equal(t, before, tree)
}

func BenchmarkLoad(b *testing.B) {
	data, err := Dump(allKinds())
	require.NoError(b, err)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Load(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDump(b *testing.B) {
	tree := allKinds()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Dump(tree); err != nil {
			b.Fatal(err)
		}
	}
}
