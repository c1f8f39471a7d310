package story

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emojiRegex = regexp.MustCompile(`[\x{1F600}-\x{1F64F}]|[\x{1F300}-\x{1F5FF}]|[\x{1F680}-\x{1F6FF}]|[\x{1F1E0}-\x{1F1FF}]|[\x{2600}-\x{26FF}]|[\x{2700}-\x{27BF}]|[\x{1F900}-\x{1F9FF}]|[\x{1FA70}-\x{1FAFF}]|[\x{1F004}-\x{1F0CF}]`)

	// variation selectors and the Arabic tatweel, which only stretches glyphs
	silentRegex = regexp.MustCompile(`[\x{FE00}-\x{FE0F}]|\x{0640}`)

	zeroWidth = strings.NewReplacer(
		"\u200B", " ",
		"\u200C", " ",
		"\u200D", " ",
		"\uFEFF", " ",
	)
)

// RemoveEmojis strips pictographs and invisible characters that speech engines
// read out loud or choke on, and collapses whitespace. Arabic diacritics are kept.
func RemoveEmojis(text string) string {
	cleaned := emojiRegex.ReplaceAllString(text, "")
	cleaned = silentRegex.ReplaceAllString(cleaned, "")
	cleaned = zeroWidth.Replace(cleaned)

	var result strings.Builder
	result.Grow(len(cleaned))

	inWhitespace := false
	for _, r := range cleaned {
		if unicode.IsSpace(r) {
			if !inWhitespace {
				result.WriteRune(' ')
				inWhitespace = true
			}
			continue
		}
		result.WriteRune(r)
		inWhitespace = false
	}

	return strings.TrimSpace(result.String())
}
