package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/biscuit/cookie"
)

// pre-computed styles to avoid allocation in hot path
var (
	keyStyleBase = lipgloss.NewStyle().
			Foreground(RGBGrey).
			Align(lipgloss.Right)

	sectionHeaderStyleBase = lipgloss.NewStyle().
				Bold(true).
				Foreground(RGBPink)

	emptyValueText = lipgloss.NewStyle().Faint(true).Render("(empty)")
)

// KeyValuePair represents a single key-value pair
type KeyValuePair struct {
	Key   string
	Value string
}

// Section represents a grouped section of key-value pairs. Lines are rendered
// verbatim after the pairs with JSON highlighting.
type Section struct {
	Title string
	Pairs []KeyValuePair
	Lines []string
}

// RenderOptions configures key-value rendering
type RenderOptions struct {
	Width    int  // total available width
	Truncate bool // whether to truncate long values
	KeyWidth int  // key column width (0 = auto-calculate)
}

// renderSections renders multiple sections as formatted key-value output
func renderSections(sections []Section, opts RenderOptions) string {
	if len(sections) == 0 {
		return ""
	}

	keyWidth := opts.KeyWidth
	if keyWidth == 0 {
		keyWidth = clamp(opts.Width*3/10, 12, 20)
	}
	valueWidth := opts.Width - keyWidth - 3 // -3 for spacing

	var output strings.Builder

	for i, section := range sections {
		if section.Title != "" {
			output.WriteString(sectionHeaderStyleBase.Width(opts.Width).Render(section.Title))
			output.WriteString("\n")
		}

		for _, pair := range section.Pairs {
			output.WriteString(renderKeyValueRow(pair, keyWidth, valueWidth, opts.Truncate))
			output.WriteString("\n")
		}

		for _, line := range section.Lines {
			output.WriteString(HighlightJSONLine(line))
			output.WriteString("\n")
		}

		if i < len(sections)-1 {
			output.WriteString("\n")
		}
	}

	return output.String()
}

func renderKeyValueRow(pair KeyValuePair, keyWidth, valueWidth int, truncate bool) string {
	keyStyle := keyStyleBase.Width(keyWidth)

	value := pair.Value
	if value == "" {
		value = emptyValueText
	} else if truncate && valueWidth > 3 && len(value) > valueWidth {
		value = value[:valueWidth-3] + "..."
	}

	return keyStyle.Render(pair.Key) + "  " + value
}

// buildCookieSections describes a cookie for the detail panel.
func buildCookieSections(c cookie.Cookie, duplicate bool, now float64) []Section {
	expires := "session"
	if exp, ok := c.Expiration(); ok {
		expires = fmt.Sprintf("%s (%s)", formatExpires(c), strconv.FormatFloat(exp, 'f', -1, 64))
	}

	sections := make([]Section, 1, 3)
	sections[0] = Section{
		Title: "Cookie",
		Pairs: []KeyValuePair{
			{"Domain", c.Domain},
			{"Name", c.Name},
			{"Value", c.Value},
			{"Path", c.EffectivePath()},
			{"Secure", strconv.FormatBool(c.Secure)},
			{"HttpOnly", strconv.FormatBool(c.HTTPOnly)},
			{"Expires", expires},
			{"Status", formatStatus(c, false, now)},
		},
	}

	if duplicate {
		sections[0].Pairs = append(sections[0].Pairs, KeyValuePair{"Duplicate", "an earlier cookie has the same domain, name and path"})
	}

	if extra := extraFieldPairs(c); len(extra) > 0 {
		sections = append(sections, Section{
			Title: "Other Fields",
			Pairs: extra,
		})
	}

	if c.Decoded() {
		if raw, err := json.Marshal(c); err == nil {
			var indented bytes.Buffer
			if json.Indent(&indented, raw, "", "  ") == nil {
				sections = append(sections, Section{
					Title: "Source",
					Lines: strings.Split(indented.String(), "\n"),
				})
			}
		}
	}

	return sections
}

var knownFields = map[string]struct{}{
	"domain": {}, "name": {}, "value": {}, "path": {},
	"secure": {}, "httpOnly": {}, "expirationDate": {},
}

// extraFieldPairs lists attributes a browser export carried beyond the known set,
// such as sameSite or storeId.
func extraFieldPairs(c cookie.Cookie) []KeyValuePair {
	if !c.Decoded() {
		return nil
	}

	var fields map[string]any
	raw, err := json.Marshal(c)
	if err != nil || json.Unmarshal(raw, &fields) != nil {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if _, known := knownFields[k]; !known {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]KeyValuePair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, KeyValuePair{k, fmt.Sprint(fields[k])})
	}
	return pairs
}
