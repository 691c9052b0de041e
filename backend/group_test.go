package backend

import (
	"io"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type stubParser struct {
	typ string
}

func (p *stubParser) Type() string { return p.typ }

func (p *stubParser) Load(_ io.Reader, _ any) error { return nil }

func (p *stubParser) Dump(_ io.Writer, _ any) error { return nil }

func stub(typ string, priority int, exts ...string) Descriptor {
	return Describe(typ, exts, priority, func() Parser { return &stubParser{typ: typ} })
}

// countingDescriptor records how often its key methods are called.
type countingDescriptor struct {
	Descriptor

	typeCalls int
	extCalls  int
}

func (d *countingDescriptor) Type() string {
	d.typeCalls++

	return d.Descriptor.Type()
}

func (d *countingDescriptor) Extensions() []string {
	d.extCalls++

	return d.Descriptor.Extensions()
}

func TestGroupByType_SortsByPriority(t *testing.T) {
	t.Parallel()

	low := stub("json", 10, "json")
	high := stub("json", 20, "json")
	yml := stub("yaml", 5, "yaml", "yml")

	index := GroupByType([]Descriptor{high, yml, low})

	assert.Equal(t, []string{"json", "yaml"}, index.Keys())
	assert.Equal(t, []Descriptor{low, high}, index.Group("json"))

	best, ok := index.Best("json")
	require.True(t, ok)
	assert.Same(t, high, best)
}

func TestGroupByType_EqualPriorityKeepsRegistrationOrder(t *testing.T) {
	t.Parallel()

	first := stub("ini", 0, "ini")
	second := stub("ini", 0, "ini")

	index := GroupByType([]Descriptor{first, second})

	assert.Equal(t, []Descriptor{first, second}, index.Group("ini"))

	best, ok := index.Best("ini")
	require.True(t, ok)
	assert.Same(t, second, best)
}

func TestGroupByExtension_DescriptorUnderEveryExtension(t *testing.T) {
	t.Parallel()

	yml := stub("yaml", 30, "yaml", "yml")
	other := stub("yaml2", 10, "yml")

	index := GroupByExtension([]Descriptor{yml, other})

	assert.Equal(t, []string{"yaml", "yml"}, index.Keys())
	assert.Equal(t, []Descriptor{yml}, index.Group("yaml"))
	assert.Equal(t, []Descriptor{other, yml}, index.Group("yml"))
}

func TestGroupByExtension_DuplicateExtensionRecordedOnce(t *testing.T) {
	t.Parallel()

	desc := stub("json", 0, "json", "json")

	index := GroupByExtension([]Descriptor{desc})

	assert.Len(t, index.Group("json"), 1)
}

func TestGroup_KeyMethodsCalledOnce(t *testing.T) {
	t.Parallel()

	desc := &countingDescriptor{Descriptor: stub("toml", 0, "toml")}

	GroupByType([]Descriptor{desc})
	GroupByExtension([]Descriptor{desc})

	assert.Equal(t, 1, desc.typeCalls)
	assert.Equal(t, 1, desc.extCalls)
}

func TestIndex_Missing(t *testing.T) {
	t.Parallel()

	index := GroupByType(nil)

	_, ok := index.Best("json")
	assert.False(t, ok)
	assert.Empty(t, index.Group("json"))
	assert.Zero(t, index.Len())
}

func TestIndex_ReturnsCopies(t *testing.T) {
	t.Parallel()

	desc := stub("json", 0, "json")
	index := GroupByType([]Descriptor{desc})

	keys := index.Keys()
	keys[0] = "mutated"

	group := index.Group("json")
	group[0] = nil

	assert.Equal(t, []string{"json"}, index.Keys())
	assert.Same(t, desc, index.Group("json")[0])
}

func TestDescribe_CopiesExtensions(t *testing.T) {
	t.Parallel()

	exts := []string{"json"}
	desc := Describe("json", exts, 1, func() Parser { return &stubParser{typ: "json"} })

	exts[0] = "changed"
	desc.Extensions()[0] = "changed again"

	assert.Equal(t, []string{"json"}, desc.Extensions())
	assert.Equal(t, "json", desc.Type())
	assert.Equal(t, 1, desc.Priority())
	assert.Equal(t, "json", desc.New().Type())
}

func TestStatic_YieldsDescriptors(t *testing.T) {
	t.Parallel()

	desc := stub("json", 0, "json")
	src := Static(desc)

	descs, err := src.Descriptors()
	require.NoError(t, err)
	assert.Equal(t, []Descriptor{desc}, descs)

	descs[0] = nil

	again, err := src.Descriptors()
	require.NoError(t, err)
	assert.Equal(t, []Descriptor{desc}, again)
}

func TestConcat(t *testing.T) {
	t.Parallel()

	first := stub("json", 0, "json")
	second := stub("yaml", 0, "yaml")

	descs, err := Concat(Static(first), Static(), Static(second)).Descriptors()
	require.NoError(t, err)
	assert.Equal(t, []Descriptor{first, second}, descs)

	failing := SourceFunc(func() ([]Descriptor, error) { return nil, ErrEmptyData })

	_, err = Concat(Static(first), failing).Descriptors()
	require.ErrorIs(t, err, ErrEmptyData)
}

func drawDescriptors(rt *rapid.T) []Descriptor {
	count := rapid.IntRange(1, 20).Draw(rt, "count")
	descs := make([]Descriptor, 0, count)

	for range count {
		typ := rapid.SampledFrom([]string{"json", "yaml", "toml", "ini"}).Draw(rt, "type")
		priority := rapid.IntRange(-5, 5).Draw(rt, "priority")
		exts := rapid.SliceOfNDistinct(
			rapid.SampledFrom([]string{"json", "yaml", "yml", "toml", "ini", "conf"}),
			1, 3, rapid.ID[string],
		).Draw(rt, "extensions")

		descs = append(descs, stub(typ, priority, exts...))
	}

	return descs
}

func TestGroupByType_Partition(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		descs := drawDescriptors(rt)
		index := GroupByType(descs)

		total := 0

		for _, key := range index.Keys() {
			group := index.Group(key)
			require.NotEmpty(rt, group)

			for i, desc := range group {
				assert.Equal(rt, key, desc.Type())

				if i > 0 {
					assert.LessOrEqual(rt, group[i-1].Priority(), desc.Priority())
				}
			}

			total += len(group)
		}

		assert.Equal(rt, len(descs), total)
		assert.True(rt, slices.IsSorted(index.Keys()))
	})
}

func TestGroupByExtension_Partition(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		descs := drawDescriptors(rt)
		index := GroupByExtension(descs)

		want := 0
		for _, desc := range descs {
			want += len(desc.Extensions())
		}

		total := 0

		for _, key := range index.Keys() {
			group := index.Group(key)
			require.NotEmpty(rt, group)

			for i, desc := range group {
				assert.Contains(rt, desc.Extensions(), key)

				if i > 0 {
					prev := group[i-1]
					assert.LessOrEqual(rt, prev.Priority(), desc.Priority())

					if prev.Priority() == desc.Priority() {
						assert.Less(rt, slices.Index(descs, prev), slices.Index(descs, desc))
					}
				}
			}

			total += len(group)
		}

		assert.Equal(rt, want, total)
	})
}
