package tts

import (
	"strings"
	"unicode"
)

// isSentenceEnd covers Latin and Arabic sentence punctuation.
func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '؟' || r == '…' || r == '۔'
}

func isClosingQuote(r rune) bool {
	return r == '"' || r == '\'' || r == '”' || r == '’' || r == '»'
}

// chunkText splits text into chunks of at most chunkSize runes. It prefers to
// split after a sentence end (plus trailing quotes and spaces), then after the
// last whitespace, and only cuts a word when nothing else fits.
func chunkText(text string, chunkSize int) []string {
	if chunkSize <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []string
	runes := []rune(text)
	length := len(runes)
	startIndex := 0

	for startIndex < length {
		endIndex := min(startIndex+chunkSize, length)

		if endIndex == length {
			if chunk := strings.TrimSpace(string(runes[startIndex:])); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		splitPoint := -1
		spacePoint := -1
		for k := endIndex - 1; k >= startIndex; k-- {
			if isSentenceEnd(runes[k]) {
				scanIdx := k + 1
				for scanIdx < length && isClosingQuote(runes[scanIdx]) {
					scanIdx++
				}
				for scanIdx < length && unicode.IsSpace(runes[scanIdx]) {
					scanIdx++
				}
				if scanIdx <= endIndex {
					splitPoint = scanIdx
					break
				}
			}
			if spacePoint == -1 && unicode.IsSpace(runes[k]) {
				spacePoint = k + 1
			}
		}

		if splitPoint == -1 {
			splitPoint = spacePoint
		}
		if splitPoint <= startIndex {
			// a single word longer than chunkSize
			splitPoint = endIndex
		}

		if chunk := strings.TrimSpace(string(runes[startIndex:splitPoint])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		startIndex = splitPoint
	}

	return chunks
}
