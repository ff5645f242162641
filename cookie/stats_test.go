package cookie

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	secure := New(".a.com", "s", "1").Expires(2000)
	secure.Secure = true
	httpOnly := New(".a.com", "h", "2").Expires(500)
	httpOnly.HTTPOnly = true

	cookies := []Cookie{
		secure,
		httpOnly,
		New(".b.com", "session", "3"),
		New(".a.com", "s", "again").Expires(2000),
	}

	s := Summarize(cookies, time.Unix(1000, 0))
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Secure)
	assert.Equal(t, 1, s.HTTPOnly)
	assert.Equal(t, 1, s.Session)
	assert.Equal(t, 1, s.Expired)
	assert.Equal(t, 3, s.Active)
	assert.Equal(t, 2, s.Domains)
	assert.Equal(t, 1, s.Duplicates)

	require.NotNil(t, s.Earliest)
	require.NotNil(t, s.Latest)
	assert.Equal(t, int64(500), s.Earliest.Unix())
	assert.Equal(t, int64(2000), s.Latest.Unix())

	assert.Equal(t, []DomainCount{{".a.com", 3}, {".b.com", 1}}, s.TopDomains(5))
	assert.Len(t, s.TopDomains(1), 1)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, time.Unix(0, 0))
	assert.Zero(t, s.Total)
	assert.Nil(t, s.Earliest)
	assert.Empty(t, s.TopDomains(3))
}
