package codec

import (
	"strings"
	"testing"

	"github.com/pb33f/biscuit/cookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 {
	return &v
}

func TestParse_CSVScenario(t *testing.T) {
	text := "domain,flag,path,secure,expiration,name,value\n\".x.com\",FALSE,\"/\",TRUE,1000,\"a\",\"b\"\n"

	cookies, err := Parse(text, CSV)
	require.NoError(t, err)
	require.Len(t, cookies, 1)

	assert.Equal(t, cookie.Cookie{
		Domain:         ".x.com",
		HTTPOnly:       false,
		Path:           "/",
		Secure:         true,
		ExpirationDate: float(1000),
		Name:           "a",
		Value:          "b",
	}, cookies[0])
}

func TestParse_CSVTooFewLines(t *testing.T) {
	for _, text := range []string{"", "\n\n", CSVHeader + "\n", "  \n" + CSVHeader + "\n   \n"} {
		_, err := Parse(text, CSV)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", text)
	}
}

func TestParse_CSVShortRowsDropped(t *testing.T) {
	text := CSVHeader + "\n" +
		`".x.com",FALSE,"/",TRUE,1000,"a"` + "\n" +
		`".y.com",true,"/p",false,abc,"n","v",extra` + "\n"

	cookies, err := Parse(text, CSV)
	require.NoError(t, err)
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, ".y.com", c.Domain)
	assert.True(t, c.HTTPOnly, "flag match is case-insensitive")
	assert.False(t, c.Secure)
	assert.Nil(t, c.ExpirationDate, "non-numeric expiration is a session cookie")
	assert.Equal(t, "v", c.Value)
}

func TestParse_CSVOnlyShortRows(t *testing.T) {
	cookies, err := Parse(CSVHeader+"\na,b,c,d,e,f\n", CSV)
	require.NoError(t, err)
	assert.Empty(t, cookies)
}

func TestParse_CSVTrimsAndStripsQuotes(t *testing.T) {
	text := CSVHeader + "\r\n" + ` " x.com" , TRUE , "/" , TRUE , 12.9 , "n" , "v"` + "\r\n"

	cookies, err := Parse(text, CSV)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, " x.com", cookies[0].Domain)
	assert.Equal(t, "v", cookies[0].Value)
	assert.Equal(t, float(12), cookies[0].ExpirationDate)
}

func TestParse_Netscape(t *testing.T) {
	text := "# Netscape HTTP Cookie File\n" +
		"# comment\n" +
		"\n" +
		".x.com\tTRUE\t/\tfalse\t2000\tsid\tabc\n" +
		".short.com\tTRUE\t/\tFALSE\t0\tonly6\n" +
		"plain.com\tFALSE\t/docs\tTRUE\t0\tn\tv\r\n"

	cookies, err := Parse(text, Netscape)
	require.NoError(t, err)
	require.Len(t, cookies, 2)

	assert.Equal(t, ".x.com", cookies[0].Domain)
	assert.True(t, cookies[0].HTTPOnly)
	assert.False(t, cookies[0].Secure)
	assert.Equal(t, float(2000), cookies[0].ExpirationDate)
	assert.Equal(t, "sid", cookies[0].Name)

	assert.Equal(t, "/docs", cookies[1].Path)
	assert.True(t, cookies[1].Secure)
	assert.Nil(t, cookies[1].ExpirationDate)
	assert.Equal(t, "v", cookies[1].Value)
}

func TestParse_NetscapeEmpty(t *testing.T) {
	cookies, err := Parse(NetscapeHeader, Netscape)
	require.NoError(t, err)
	assert.NotNil(t, cookies)
	assert.Empty(t, cookies)
}

func TestParse_JSONArray(t *testing.T) {
	cookies, err := Parse(`[{"name":"a","value":"b","domain":"c"},{"name":"d","value":"e","domain":"f","secure":true}]`, JSON)
	require.NoError(t, err)
	require.Len(t, cookies, 2)
	assert.Equal(t, "a", cookies[0].Name)
	assert.True(t, cookies[1].Secure)
}

func TestParse_JSONObjectFlattensInKeyOrder(t *testing.T) {
	text := `{
		"z.com": [{"name":"1"},{"name":"2"}],
		"a.com": [{"name":"3"}],
		"single": {"name":"4"}
	}`

	cookies, err := Parse(text, JSON)
	require.NoError(t, err)

	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"1", "2", "3", "4"}, names)
}

func TestParse_JSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"syntax", `[{"name":`},
		{"empty", ``},
		{"number", `42`},
		{"string", `"cookies"`},
		{"null", `null`},
		{"trailing", `[] []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, JSON)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestParse_XMLUnsupported(t *testing.T) {
	_, err := Parse("<cookies></cookies>", XML)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse("", Format("yaml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseExpiration(t *testing.T) {
	tests := []struct {
		in       string
		expected *float64
	}{
		{"1000", float(1000)},
		{"1000.7", float(1000)},
		{"12abc", float(12)},
		{"-5", float(-5)},
		{"+7", float(7)},
		{"0", nil},
		{"", nil},
		{"abc", nil},
		{"-", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseExpiration(tt.in))
		})
	}
}

func TestRoundTrip_CSVAndNetscape(t *testing.T) {
	records := []cookie.Cookie{
		cookie.New(".x.com", "a", "b").Expires(1700000000.75),
		{Domain: "y.org", Name: "sid", Value: "v=1;x", Path: "/api", Secure: true, HTTPOnly: true},
		{Domain: ".z.net", Name: "n", Value: "with space", Path: "/", Secure: true},
	}

	for _, format := range []Format{CSV, Netscape} {
		t.Run(format.String(), func(t *testing.T) {
			out := Serialize(cookie.NewFlat(records), format, false)
			parsed, err := Parse(out.Text, format)
			require.NoError(t, err)
			require.Len(t, parsed, len(records))

			for i, original := range records {
				got := parsed[i]
				assert.Equal(t, original.Domain, got.Domain)
				assert.Equal(t, original.HTTPOnly, got.HTTPOnly)
				assert.Equal(t, original.EffectivePath(), got.Path)
				assert.Equal(t, original.Secure, got.Secure)
				assert.Equal(t, original.Name, got.Name)
				assert.Equal(t, original.Value, got.Value)

				exp, ok := original.Expiration()
				if ok {
					require.NotNil(t, got.ExpirationDate)
					assert.Equal(t, float64(int64(exp)), *got.ExpirationDate)
				} else {
					assert.Nil(t, got.ExpirationDate)
				}
			}
		})
	}
}

func TestRoundTrip_JSON(t *testing.T) {
	text := `[{"domain":".x.com","name":"a","value":"b","weird":[1,2]}]`
	parsed, err := Parse(text, JSON)
	require.NoError(t, err)

	data, err := Serialize(cookie.NewFlat(parsed), JSON, false).Bytes()
	require.NoError(t, err)
	assert.JSONEq(t, text, string(data))
	assert.True(t, strings.Contains(string(data), "weird"))
}
