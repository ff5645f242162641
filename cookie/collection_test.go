package cookie

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroups_Order(t *testing.T) {
	g := NewGroups()
	g.Add(".z.com", New(".z.com", "a", "1"))
	g.Add(".a.com", New(".a.com", "b", "2"))
	g.Add(".z.com", New(".z.com", "c", "3"))

	assert.Equal(t, []string{".z.com", ".a.com"}, g.Domains())
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 3, g.Count())

	names := make([]string, 0, 3)
	for _, c := range g.Flatten() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"a", "c", "b"}, names)
}

func TestGroups_SetAndDelete(t *testing.T) {
	g := NewGroups()
	g.Add("one", New("one", "a", "1"))
	g.Add("two", New("two", "b", "2"))
	g.Add("three", New("three", "c", "3"))

	g.Set("two", nil)
	cookies, ok := g.Get("two")
	assert.True(t, ok)
	assert.Empty(t, cookies)
	assert.Equal(t, []string{"one", "two", "three"}, g.Domains())

	g.Delete("two")
	g.Delete("missing")
	assert.Equal(t, []string{"one", "three"}, g.Domains())
	_, ok = g.Get("two")
	assert.False(t, ok)
}

func TestGroups_JSONKeepsOrder(t *testing.T) {
	src := `{"b.com":[{"name":"x","value":"1","domain":"b.com"}],"a.com":[{"name":"y","value":"2","domain":"a.com"}]}`

	g := NewGroups()
	require.NoError(t, json.Unmarshal([]byte(src), g))
	assert.Equal(t, []string{"b.com", "a.com"}, g.Domains())

	out, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestGroups_UnmarshalRejectsArray(t *testing.T) {
	g := NewGroups()
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), g))
}

func TestCollection_Shapes(t *testing.T) {
	flat := NewFlat([]Cookie{New("a", "n", "v")})
	assert.False(t, flat.IsGrouped())
	assert.Nil(t, flat.Groups())
	assert.Equal(t, 1, flat.Len())

	g := NewGroups()
	g.Add("a", New("a", "n", "v"), New("a", "m", "w"))
	grouped := NewGrouped(g)
	assert.True(t, grouped.IsGrouped())
	assert.Nil(t, grouped.Flat())
	assert.Equal(t, 2, grouped.Len())
	assert.Len(t, grouped.All(), 2)
}

func TestCollection_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(NewFlat(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))

	out, err = json.Marshal(NewGrouped(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestGroupByDomain(t *testing.T) {
	cookies := []Cookie{
		New(".b.com", "1", "v"),
		New(".a.com", "2", "v"),
		New(".b.com", "3", "v"),
		New("", "4", "v"),
	}

	g := GroupByDomain(cookies)
	assert.Equal(t, []string{".b.com", ".a.com", ""}, g.Domains())

	b, _ := g.Get(".b.com")
	require.Len(t, b, 2)
	assert.Equal(t, "1", b[0].Name)
	assert.Equal(t, "3", b[1].Name)
}
