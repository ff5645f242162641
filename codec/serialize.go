package codec

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pb33f/biscuit/cookie"
)

const (
	// CSVHeader is the first line of every CSV export.
	CSVHeader = "domain,flag,path,secure,expiration,name,value"

	// XMLDeclaration opens every XML export.
	XMLDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

	// NetscapeHeader precedes the rows of every Netscape export.
	NetscapeHeader = "# Netscape HTTP Cookie File\n" +
		"# http://curl.haxx.se/rfc/cookie_spec.html\n" +
		"# This file was generated by Cookie Export Tool\n\n"

	xmlIndent = "  "
)

// Output is a serialized collection, published under Key. JSON output carries
// the input collection untouched in Cookies, every other format carries Text.
type Output struct {
	Format  Format
	Key     string
	Text    string
	Cookies cookie.Collection
}

// Bytes returns the output as file content.
func (o Output) Bytes() ([]byte, error) {
	if o.Format == JSON {
		return json.MarshalIndent(o.Cookies, "", "  ")
	}
	return []byte(o.Text), nil
}

// MarshalJSON writes the output as a single member object keyed by Key.
func (o Output) MarshalJSON() ([]byte, error) {
	if o.Format == JSON {
		return json.Marshal(map[string]cookie.Collection{o.Key: o.Cookies})
	}
	return json.Marshal(map[string]string{o.Key: o.Text})
}

// Serialize converts a collection into the requested format. grouped selects
// whether the collection is read as a grouping by domain or as a flat sequence;
// a collection of the other shape contributes no rows. Unknown formats fall
// back to JSON, which returns the collection as given. Flags and expirations
// of records decoded from JSON are read by truthiness, so `"httpOnly": 1` writes
// TRUE and `"expirationDate": "1000"` writes 1000.
func Serialize(cookies cookie.Collection, format Format, grouped bool) Output {
	switch format {
	case CSV:
		return Output{Format: CSV, Key: CSV.Key(), Text: toCSV(cookies, grouped)}
	case XML:
		return Output{Format: XML, Key: XML.Key(), Text: toXML(cookies, grouped)}
	case Netscape:
		return Output{Format: Netscape, Key: Netscape.Key(), Text: toNetscape(cookies, grouped)}
	default:
		return Output{Format: JSON, Key: JSON.Key(), Cookies: cookies}
	}
}

// encodedFields is a record rendered to the seven positional fields shared by
// the CSV, XML and Netscape encodings.
type encodedFields struct {
	domain     string
	flag       string
	path       string
	secure     string
	expiration string
	name       string
	value      string
}

func encodeFields(c cookie.Cookie) encodedFields {
	return encodedFields{
		domain:     c.Domain,
		flag:       boolLiteral(c.LooseFlag("httpOnly")),
		path:       c.EffectivePath(),
		secure:     boolLiteral(c.LooseFlag("secure")),
		expiration: expirationLiteral(c),
		name:       c.Name,
		value:      c.Value,
	}
}

func boolLiteral(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func expirationLiteral(c cookie.Cookie) string {
	exp, ok := c.LooseExpiration()
	if !ok {
		return "0"
	}
	return strconv.FormatFloat(math.Floor(exp), 'f', -1, 64)
}

// eachRecord visits the records of the expected shape: domains in order then
// records in order for groupings, sequence order otherwise.
func eachRecord(cookies cookie.Collection, grouped bool, fn func(cookie.Cookie)) {
	if grouped {
		if groups := cookies.Groups(); groups != nil {
			groups.Each(func(_ string, group []cookie.Cookie) {
				for _, c := range group {
					fn(c)
				}
			})
		}
		return
	}
	if cookies.IsGrouped() {
		return
	}
	for _, c := range cookies.Flat() {
		fn(c)
	}
}

// toCSV quotes the free-text fields but does not escape quotes or commas inside them,
// matching files produced by earlier exports.
func toCSV(cookies cookie.Collection, grouped bool) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')

	eachRecord(cookies, grouped, func(c cookie.Cookie) {
		f := encodeFields(c)
		b.WriteString(`"` + f.domain + `",`)
		b.WriteString(f.flag + ",")
		b.WriteString(`"` + f.path + `",`)
		b.WriteString(f.secure + ",")
		b.WriteString(f.expiration + ",")
		b.WriteString(`"` + f.name + `",`)
		b.WriteString(`"` + f.value + `"`)
		b.WriteByte('\n')
	})

	return b.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

func writeXMLCookie(b *strings.Builder, c cookie.Cookie, indent string) {
	f := encodeFields(c)
	inner := indent + xmlIndent

	b.WriteString(indent + "<cookie>\n")
	b.WriteString(inner + "<domain>" + escapeXML(f.domain) + "</domain>\n")
	b.WriteString(inner + "<flag>" + f.flag + "</flag>\n")
	b.WriteString(inner + "<path>" + escapeXML(f.path) + "</path>\n")
	b.WriteString(inner + "<secure>" + f.secure + "</secure>\n")
	b.WriteString(inner + "<expiration>" + f.expiration + "</expiration>\n")
	b.WriteString(inner + "<name>" + escapeXML(f.name) + "</name>\n")
	b.WriteString(inner + "<value>" + escapeXML(f.value) + "</value>\n")
	b.WriteString(indent + "</cookie>\n")
}

func toXML(cookies cookie.Collection, grouped bool) string {
	var b strings.Builder
	b.WriteString(XMLDeclaration + "\n<cookies>\n")

	if grouped {
		if groups := cookies.Groups(); groups != nil {
			groups.Each(func(domain string, group []cookie.Cookie) {
				b.WriteString(xmlIndent + `<domain name="` + escapeXML(domain) + "\">\n")
				for _, c := range group {
					writeXMLCookie(&b, c, xmlIndent+xmlIndent)
				}
				b.WriteString(xmlIndent + "</domain>\n")
			})
		}
	} else if !cookies.IsGrouped() {
		for _, c := range cookies.Flat() {
			writeXMLCookie(&b, c, xmlIndent)
		}
	}

	b.WriteString("</cookies>")
	return b.String()
}

// toNetscape writes tab separated rows; tabs and newlines inside values are not escaped.
func toNetscape(cookies cookie.Collection, grouped bool) string {
	var b strings.Builder
	b.WriteString(NetscapeHeader)

	eachRecord(cookies, grouped, func(c cookie.Cookie) {
		f := encodeFields(c)
		b.WriteString(strings.Join([]string{
			f.domain, f.flag, f.path, f.secure, f.expiration, f.name, f.value,
		}, "\t"))
		b.WriteByte('\n')
	})

	return b.String()
}
