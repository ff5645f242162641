package cookiegen

import (
	"strings"
	"testing"
	"time"

	"github.com/pb33f/biscuit/codec"
	"github.com/pb33f/biscuit/cookie"
	"github.com/pb33f/biscuit/filter"
	"github.com/pb33f/biscuit/validate"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reference = time.Unix(1_700_000_000, 0)

func generate(t *testing.T, opts GenerateOptions) *GenerateResult {
	t.Helper()
	if opts.Now.IsZero() {
		opts.Now = reference
	}
	result, err := Generate(afero.NewMemMapFs(), opts)
	require.NoError(t, err)
	return result
}

func TestLoadDictionary_Fallback(t *testing.T) {
	dict, err := LoadDictionary(afero.NewMemMapFs(), "/missing/words")
	require.NoError(t, err)
	assert.Equal(t, len(fallbackWords), dict.Size())
}

func TestLoadDictionary_FiltersWords(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/words", []byte("ok\nApple\nbanana's\n  cherry  \nsupercalifragilistic\n"), 0644))

	dict, err := LoadDictionary(fs, "/words")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "cherry"}, dict.words)
}

func TestLoadDictionary_NoWords(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/words", []byte("a\nb\n"), 0644))

	_, err := LoadDictionary(fs, "/words")
	assert.Error(t, err)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(t, GenerateOptions{Count: 50, Seed: 42})
	b := generate(t, GenerateOptions{Count: 50, Seed: 42})

	require.Len(t, a.Cookies, 50)
	assert.Equal(t, a.Cookies, b.Cookies)
}

func TestGenerate_AllValid(t *testing.T) {
	result := generate(t, GenerateOptions{Count: 100, Seed: 7})

	report := validate.Cookies(cookie.NewFlat(result.Cookies), codec.JSON)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Len(t, report.ValidCookies, 100)
}

func TestGenerate_MixesExpirationStates(t *testing.T) {
	result := generate(t, GenerateOptions{Count: 200, Seed: 3})

	expired, _ := filter.ApplyAt(result.Cookies, filter.Criteria{ShowExpired: true}, reference)
	active, _ := filter.ApplyAt(result.Cookies, filter.Criteria{ShowActive: true}, reference)

	assert.NotEmpty(t, expired)
	assert.NotEmpty(t, active)
	assert.Equal(t, len(result.Cookies), len(expired)+len(active))
}

func TestGenerate_InjectTerms(t *testing.T) {
	result := generate(t, GenerateOptions{
		Count:        30,
		Seed:         11,
		InjectTerms:  []string{"needle"},
		InjectFields: []InjectionField{NameField},
	})

	require.Len(t, result.InjectedTerms, 1)
	inj := result.InjectedTerms[0]
	assert.Equal(t, NameField, inj.Field)
	assert.True(t, strings.HasSuffix(result.Cookies[inj.CookieIndex].Name, "_needle"))

	c := filter.DefaultCriteria()
	c.SearchTerm = "NEEDLE"
	found, err := filter.ApplyAt(result.Cookies, c, reference)
	require.NoError(t, err)
	assert.NotEmpty(t, found)
}

func TestGenerate_ZeroCount(t *testing.T) {
	result := generate(t, GenerateOptions{Count: 0, Seed: 1, InjectTerms: []string{"x"}})
	assert.Empty(t, result.Cookies)
	assert.Empty(t, result.InjectedTerms)
}

func TestRoundTrip_GeneratedCSVAndNetscape(t *testing.T) {
	result := generate(t, GenerateOptions{Count: 150, Seed: 99})

	for _, format := range []codec.Format{codec.CSV, codec.Netscape} {
		t.Run(format.String(), func(t *testing.T) {
			for _, grouped := range []bool{false, true} {
				collection := cookie.NewFlat(result.Cookies)
				expected := result.Cookies
				if grouped {
					groups := cookie.GroupByDomain(result.Cookies)
					collection = cookie.NewGrouped(groups)
					expected = groups.Flatten()
				}

				parsed, err := codec.Parse(codec.Serialize(collection, format, grouped).Text, format)
				require.NoError(t, err)
				require.Len(t, parsed, len(expected))

				for i, original := range expected {
					assert.Equal(t, original.Domain, parsed[i].Domain)
					assert.Equal(t, original.Name, parsed[i].Name)
					assert.Equal(t, original.Value, parsed[i].Value)
					assert.Equal(t, original.EffectivePath(), parsed[i].Path)
					assert.Equal(t, original.Secure, parsed[i].Secure)
					assert.Equal(t, original.HTTPOnly, parsed[i].HTTPOnly)

					if exp, ok := original.Expiration(); ok {
						require.NotNil(t, parsed[i].ExpirationDate)
						assert.Equal(t, float64(int64(exp)), *parsed[i].ExpirationDate)
					} else {
						assert.Nil(t, parsed[i].ExpirationDate)
					}
				}
			}
		})
	}
}

func TestGenerateToFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	result, err := GenerateToFile(fs, "/out/cookies.txt", codec.Netscape, false, GenerateOptions{Count: 5, Seed: 5, Now: reference})
	require.NoError(t, err)
	assert.Equal(t, "/out/cookies.txt", result.FilePath)

	data, err := afero.ReadFile(fs, "/out/cookies.txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Netscape HTTP Cookie File\n"))

	parsed, err := codec.Parse(string(data), codec.Netscape)
	require.NoError(t, err)
	assert.Len(t, parsed, 5)
}

func TestGenerateToFile_GroupedJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	result, err := GenerateToFile(fs, "/cookies.json", codec.JSON, true, GenerateOptions{Count: 12, Seed: 8, Now: reference})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/cookies.json")
	require.NoError(t, err)

	parsed, err := codec.Parse(string(data), codec.JSON)
	require.NoError(t, err)
	assert.Len(t, parsed, len(result.Cookies))
}
