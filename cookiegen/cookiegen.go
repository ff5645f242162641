package cookiegen

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/pb33f/biscuit/codec"
	"github.com/pb33f/biscuit/cookie"
	"github.com/spf13/afero"
)

// InjectionField defines where a search term is planted
type InjectionField int

const (
	NameField InjectionField = iota
	DomainField
	ValueField
)

// String returns the string representation of the injection field
func (f InjectionField) String() string {
	switch f {
	case NameField:
		return "name"
	case DomainField:
		return "domain"
	case ValueField:
		return "value"
	default:
		return "unknown"
	}
}

// InjectedTerm records a term that was planted and where
type InjectedTerm struct {
	Term        string         // the injected word
	Field       InjectionField // which attribute holds it
	CookieIndex int            // position of the cookie in the generated sequence
}

// GenerateOptions configures cookie generation
type GenerateOptions struct {
	Count          int              // number of cookies to generate
	Domains        int              // number of distinct domains (default: Count/4, at least 1)
	InjectTerms    []string         // terms to plant for testing search
	InjectFields   []InjectionField // where to plant (if empty, use all)
	DictionaryPath string           // path to word dictionary (default: /usr/share/dict/words)
	Seed           int64            // random seed for reproducibility (0 = use time)
	Now            time.Time        // reference time for expirations (zero = time.Now)
	ExpiredRatio   float64          // share of cookies already expired (default: 0.2)
	SessionRatio   float64          // share of session cookies (default: 0.3)
}

// DefaultGenerateOptions provides sensible defaults
var DefaultGenerateOptions = GenerateOptions{
	Count:          20,
	DictionaryPath: DefaultDictionaryPath,
	ExpiredRatio:   0.2,
	SessionRatio:   0.3,
}

// GenerateResult contains the generated cookies and injection metadata
type GenerateResult struct {
	Cookies       []cookie.Cookie
	InjectedTerms []InjectedTerm
	FilePath      string // set when written to disk
}

var tlds = []string{"com", "org", "net", "io", "dev", "co.uk"}

// Generate creates random cookies spread over a set of domains.
func Generate(fs afero.Fs, opts GenerateOptions) (*GenerateResult, error) {
	opts = withDefaults(opts)

	// create local rng (avoid mutating global rand)
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	dict, err := LoadDictionary(fs, opts.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	domains := make([]string, opts.Domains)
	for i := range domains {
		host := fmt.Sprintf("%s.%s", dict.RandomWord(rng), tlds[rng.Intn(len(tlds))])
		if rng.Intn(2) == 0 {
			host = "." + host
		}
		domains[i] = host
	}

	nowSeconds := opts.Now.Unix()
	cookies := make([]cookie.Cookie, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		c := cookie.Cookie{
			Domain:   domains[rng.Intn(len(domains))],
			Name:     fmt.Sprintf("%s_%s", dict.RandomWord(rng), dict.RandomWord(rng)),
			Value:    fmt.Sprintf("%s%d", dict.RandomWord(rng), rng.Intn(100000)),
			Path:     randomPath(dict, rng),
			Secure:   rng.Intn(2) == 0,
			HTTPOnly: rng.Intn(3) == 0,
		}

		roll := rng.Float64()
		switch {
		case roll < opts.SessionRatio:
			// session cookie
		case roll < opts.SessionRatio+opts.ExpiredRatio:
			c = c.Expires(float64(nowSeconds - int64(rng.Intn(30*24*3600)) - 1))
		default:
			c = c.Expires(float64(nowSeconds+int64(rng.Intn(365*24*3600))+1) + rng.Float64())
		}

		cookies = append(cookies, c)
	}

	injected := injectTerms(cookies, opts.InjectTerms, opts.InjectFields, rng)

	return &GenerateResult{
		Cookies:       cookies,
		InjectedTerms: injected,
	}, nil
}

// GenerateToFile generates cookies and writes them to path in the given format.
func GenerateToFile(fs afero.Fs, path string, format codec.Format, grouped bool, opts GenerateOptions) (*GenerateResult, error) {
	result, err := Generate(fs, opts)
	if err != nil {
		return nil, err
	}

	collection := cookie.NewFlat(result.Cookies)
	if grouped {
		collection = cookie.NewGrouped(cookie.GroupByDomain(result.Cookies))
	}

	data, err := codec.Serialize(collection, format, grouped).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize cookies: %w", err)
	}

	// ensure directory exists
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write cookies: %w", err)
	}

	result.FilePath = path
	return result, nil
}

func withDefaults(opts GenerateOptions) GenerateOptions {
	if opts.DictionaryPath == "" {
		opts.DictionaryPath = DefaultGenerateOptions.DictionaryPath
	}
	if opts.Count < 0 {
		opts.Count = 0
	}
	if opts.Domains <= 0 {
		opts.Domains = opts.Count / 4
		if opts.Domains < 1 {
			opts.Domains = 1
		}
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.ExpiredRatio == 0 && opts.SessionRatio == 0 {
		opts.ExpiredRatio = DefaultGenerateOptions.ExpiredRatio
		opts.SessionRatio = DefaultGenerateOptions.SessionRatio
	}
	return opts
}

func randomPath(dict *Dictionary, rng *rand.Rand) string {
	if rng.Intn(3) > 0 {
		return "/"
	}
	return "/" + dict.RandomWord(rng)
}

// injectTerms distributes terms randomly across cookies
func injectTerms(cookies []cookie.Cookie, terms []string, fields []InjectionField, rng *rand.Rand) []InjectedTerm {
	if len(terms) == 0 || len(cookies) == 0 {
		return nil
	}

	injected := make([]InjectedTerm, 0, len(terms))
	for _, term := range terms {
		index := rng.Intn(len(cookies))
		field := randomField(fields, rng)

		c := &cookies[index]
		switch field {
		case NameField:
			c.Name = c.Name + "_" + term
		case DomainField:
			c.Domain = term + "." + trimDot(c.Domain)
		case ValueField:
			c.Value = c.Value + term
		}

		injected = append(injected, InjectedTerm{
			Term:        term,
			Field:       field,
			CookieIndex: index,
		})
	}
	return injected
}

// randomField selects a random field from the provided list
// if list is empty, selects from all fields
func randomField(fields []InjectionField, rng *rand.Rand) InjectionField {
	if len(fields) == 0 {
		return InjectionField(rng.Intn(3))
	}
	return fields[rng.Intn(len(fields))]
}

func trimDot(domain string) string {
	if len(domain) > 0 && domain[0] == '.' {
		return domain[1:]
	}
	return domain
}
