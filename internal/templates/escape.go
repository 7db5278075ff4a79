package templates

import "strings"

// EscapeHTML escapes the characters that are significant inside raw HTML
// blocks: & < > "
func EscapeHTML(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/4)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&#34;")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// EscapeMarkdown escapes user text placed in markdown context so that it
// renders literally. HTML characters are escaped too since raw HTML is
// passed through by the renderer.
// Special characters: \ ` * _ [ ] & < >
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\', '`', '*', '_', '[', ']':
			result.WriteByte('\\')
			result.WriteRune(r)
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
