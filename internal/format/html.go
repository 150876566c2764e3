package format

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	codeBlockRegex = regexp.MustCompile("(?s)```([a-zA-Z]*)\n?(.*?)```")
	inlineRegex    = regexp.MustCompile("`([^`]+)`")
	boldRegex      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	headerRegex    = regexp.MustCompile(`(?m)^#{1,6}\s+(.*)$`)
	sectionRegex   = regexp.MustCompile(`(?m)^([A-Z][A-Za-z /]{2,40}:)(\s|$)`)
)

// ToHTML converts a tutor reply into an HTML fragment for the web form.
// Section headers such as "Code Example:" are emphasized; everything else is escaped.
// Line breaks are left to the page's white-space styling.
func ToHTML(text string) string {
	if text == "" {
		return ""
	}

	// 1. Pull out fenced code so later passes leave it alone
	codeBlocks := make(map[string]string)
	text = codeBlockRegex.ReplaceAllStringFunc(text, func(m string) string {
		match := codeBlockRegex.FindStringSubmatch(m)
		lang, content := match[1], match[2]

		id := fmt.Sprintf("{CB-%d}", len(codeBlocks))
		if lang != "" {
			codeBlocks[id] = fmt.Sprintf("<pre><code class=\"language-%s\">%s</code></pre>", lang, EscapeHTML(content))
		} else {
			codeBlocks[id] = fmt.Sprintf("<pre><code>%s</code></pre>", EscapeHTML(content))
		}
		return id
	})

	inlineCode := make(map[string]string)
	text = inlineRegex.ReplaceAllStringFunc(text, func(m string) string {
		match := inlineRegex.FindStringSubmatch(m)
		id := fmt.Sprintf("{IL-%d}", len(inlineCode))
		inlineCode[id] = fmt.Sprintf("<code>%s</code>", EscapeHTML(match[1]))
		return id
	})

	// 2. Escape and decorate the prose
	text = EscapeHTML(text)
	text = headerRegex.ReplaceAllString(text, "<b>$1</b>")
	text = boldRegex.ReplaceAllString(text, "<b>$1</b>")
	text = sectionRegex.ReplaceAllString(text, "<strong class=\"section\">$1</strong>$2")

	// 3. Restore code
	for id, block := range codeBlocks {
		text = strings.ReplaceAll(text, id, block)
	}
	for id, code := range inlineCode {
		text = strings.ReplaceAll(text, id, code)
	}

	return text
}

// EscapeHTML escapes HTML special characters
func EscapeHTML(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	text = strings.ReplaceAll(text, `"`, "&#34;")
	return text
}
