package cookie

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookie_Expiration(t *testing.T) {
	session := New(".x.com", "a", "b")
	assert.True(t, session.IsSession())
	assert.False(t, session.ExpiredAt(1e12))
	assert.True(t, session.ExpiryTime().IsZero())

	zero := session.Expires(0)
	assert.True(t, zero.IsSession(), "zero expiration counts as none")

	past := session.Expires(999)
	assert.False(t, past.IsSession())
	assert.True(t, past.ExpiredAt(1000))
	assert.True(t, past.ExpiredAt(999))
	assert.False(t, past.ExpiredAt(998))
	assert.Equal(t, int64(999), past.ExpiryTime().Unix())

	// Expires copies, the original stays a session cookie
	assert.Nil(t, session.ExpirationDate)
}

func TestCookie_EffectivePath(t *testing.T) {
	assert.Equal(t, "/", New("x", "a", "b").EffectivePath())

	c := New("x", "a", "b")
	c.Path = "/api"
	assert.Equal(t, "/api", c.EffectivePath())
}

func TestCookie_UnmarshalJSON_TypedFields(t *testing.T) {
	var c Cookie
	err := json.Unmarshal([]byte(`{"domain":".x.com","name":"a","value":"b","path":"/p","secure":true,"httpOnly":true,"expirationDate":1700000000.5}`), &c)
	require.NoError(t, err)

	assert.True(t, c.Decoded())
	assert.Equal(t, ".x.com", c.Domain)
	assert.Equal(t, "a", c.Name)
	assert.Equal(t, "b", c.Value)
	assert.Equal(t, "/p", c.Path)
	assert.True(t, c.Secure)
	assert.True(t, c.HTTPOnly)
	require.NotNil(t, c.ExpirationDate)
	assert.Equal(t, 1700000000.5, *c.ExpirationDate)
}

func TestCookie_UnmarshalJSON_WrongTypesKept(t *testing.T) {
	var c Cookie
	require.NoError(t, json.Unmarshal([]byte(`{"name":42,"secure":"yes","expirationDate":null}`), &c))

	assert.Empty(t, c.Name)
	assert.False(t, c.Secure)
	assert.Nil(t, c.ExpirationDate)

	v, ok := c.Field("name")
	assert.True(t, ok)
	assert.Equal(t, float64(42), v)

	v, ok = c.Field("secure")
	assert.True(t, ok)
	assert.Equal(t, "yes", v)

	v, ok = c.Field("expirationDate")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = c.Field("domain")
	assert.False(t, ok)
}

func TestCookie_UnmarshalJSON_NonObject(t *testing.T) {
	var c Cookie
	require.NoError(t, json.Unmarshal([]byte(`"just a string"`), &c))

	assert.True(t, c.Decoded())
	_, ok := c.Field("name")
	assert.False(t, ok)

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"just a string"`, string(out))
}

func TestCookie_MarshalJSON_Verbatim(t *testing.T) {
	src := `{"name":"a","value":"b","domain":"c","extra":{"kept":true}}`

	var c Cookie
	require.NoError(t, json.Unmarshal([]byte(src), &c))

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestCookie_ExpiresDetachesSource(t *testing.T) {
	var c Cookie
	require.NoError(t, json.Unmarshal([]byte(`{"name":"a","value":"b","domain":"c","secure":true}`), &c))
	require.True(t, c.Decoded())

	updated := c.Expires(42)
	assert.False(t, updated.Decoded())
	assert.True(t, c.Decoded(), "the original is untouched")

	out, err := json.Marshal(updated)
	require.NoError(t, err)
	assert.JSONEq(t, `{"domain":"c","name":"a","value":"b","secure":true,"httpOnly":false,"expirationDate":42}`, string(out))
}

func TestCookie_MarshalJSON_Typed(t *testing.T) {
	out, err := json.Marshal(New(".x.com", "a", "b").Expires(10))
	require.NoError(t, err)
	assert.JSONEq(t, `{"domain":".x.com","name":"a","value":"b","secure":false,"httpOnly":false,"expirationDate":10}`, string(out))
}

func TestCookie_FieldTyped(t *testing.T) {
	c := New("d", "n", "v")

	v, ok := c.Field("domain")
	assert.True(t, ok)
	assert.Equal(t, "d", v)

	_, ok = c.Field("path")
	assert.False(t, ok)

	_, ok = c.Field("expirationDate")
	assert.False(t, ok)

	v, ok = c.Field("secure")
	assert.True(t, ok)
	assert.Equal(t, false, v)

	_, ok = c.Field("unknown")
	assert.False(t, ok)
}

func TestFingerprint(t *testing.T) {
	a := New(".x.com", "a", "1")
	b := New(".x.com", "a", "2")
	b.Path = "/"
	c := New(".x.com", "a", "3")
	c.Path = "/other"

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "value and default path do not change identity")
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(t, New("ab", "c", "").Fingerprint(), New("a", "bc", "").Fingerprint())
}

func TestDuplicates(t *testing.T) {
	cookies := []Cookie{
		New(".x.com", "a", "1"),
		New(".y.com", "a", "1"),
		New(".x.com", "a", "2"),
		New(".x.com", "a", "3"),
	}

	dupes := Duplicates(cookies)
	assert.Len(t, dupes, 2)
	assert.Contains(t, dupes, 2)
	assert.Contains(t, dupes, 3)
	assert.Len(t, cookies, 4, "input is never deduplicated")
}

func TestInterner(t *testing.T) {
	in := NewInterner()

	a := in.Intern(".example.com")
	b := in.Intern(string([]byte(".example.com")))
	assert.Equal(t, a, b)
	assert.Equal(t, "", in.Intern(""))
	assert.Equal(t, 1, in.Size())
}

func TestInterner_Concurrent(t *testing.T) {
	in := NewInterner()
	domains := []string{".a.com", ".b.com", ".c.com", ".d.com"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				in.Intern(domains[j%len(domains)])
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(domains), in.Size())
}

func TestInterner_SizeWhileInterning(t *testing.T) {
	in := NewInterner()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for j := 0; j < 500; j++ {
			in.Intern(string(rune('a'+j%26)) + ".example.com")
		}
	}()
	go func() {
		defer wg.Done()
		for j := 0; j < 500; j++ {
			assert.LessOrEqual(t, in.Size(), 26)
		}
	}()
	wg.Wait()

	assert.Equal(t, 26, in.Size())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		value    any
		expected bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"0", true},
		{float64(0), false},
		{float64(-1), true},
		{map[string]any{}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Truthy(tt.value), "%#v", tt.value)
	}
}

func TestCookie_LooseReads(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		httpOnly  bool
		expires   float64
		hasExpiry bool
	}{
		{"typed", `{"httpOnly":true,"expirationDate":1000.5}`, true, 1000.5, true},
		{"number flag", `{"httpOnly":1,"expirationDate":"1000"}`, true, 1000, true},
		{"empty string flag", `{"httpOnly":"","expirationDate":""}`, false, 0, false},
		{"non numeric expiry", `{"expirationDate":"soon"}`, false, 0, false},
		{"true expiry", `{"expirationDate":true}`, false, 1, true},
		{"zero expiry", `{"expirationDate":0}`, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cookie
			require.NoError(t, json.Unmarshal([]byte(tt.src), &c))

			assert.Equal(t, tt.httpOnly, c.LooseFlag("httpOnly"))
			exp, ok := c.LooseExpiration()
			assert.Equal(t, tt.hasExpiry, ok)
			assert.Equal(t, tt.expires, exp)
		})
	}

	typed := New("d", "n", "v").Expires(7)
	typed.Secure = true
	assert.True(t, typed.LooseFlag("secure"))
	exp, ok := typed.LooseExpiration()
	assert.True(t, ok)
	assert.Equal(t, float64(7), exp)
}
