package tui

import (
	"strings"
)

// HighlightJSONLine colours object keys and brackets in one line of indented JSON.
func HighlightJSONLine(line string) string {
	if line == "" {
		return line
	}

	leadingWhitespace := ""
	contentStart := 0
	for i, r := range line {
		if r != ' ' && r != '\t' {
			leadingWhitespace = line[:i]
			contentStart = i
			break
		}
	}

	trimmedLine := strings.TrimRight(line, " \t\r\n")
	trailingWhitespace := line[len(trimmedLine):]
	if contentStart > len(trimmedLine) {
		return line
	}
	content := trimmedLine[contentStart:]

	// "key": value
	if idx := strings.Index(content, "\":"); idx > 0 {
		if keyStart := strings.LastIndex(content[:idx], "\""); keyStart >= 0 {
			beforeKey := content[:keyStart]
			keyPart := content[keyStart : idx+2]
			valuePart := content[idx+2:]

			styled := styleBrackets(beforeKey) + SyntaxKeyStyle.Render(keyPart) + styleBrackets(valuePart)
			return leadingWhitespace + styled + trailingWhitespace
		}
	}

	return leadingWhitespace + styleBrackets(content) + trailingWhitespace
}

// styleBrackets styles { } pink and [ ] yellow, leaving everything else alone.
func styleBrackets(text string) string {
	if text == "" {
		return text
	}

	var result strings.Builder
	for _, r := range text {
		switch r {
		case '{', '}':
			result.WriteString(SyntaxBraceStyle.Render(string(r)))
		case '[', ']':
			result.WriteString(SyntaxBracketStyle.Render(string(r)))
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}
