package utils

import (
	"strings"
	"time"
)

// DefaultReadSpeed is an unhurried storytelling pace in words per minute.
const DefaultReadSpeed = 130

func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingDuration estimates how long it takes to read text aloud at
// wordsPerMinute, stretched by 1/rate. A zero rate counts as 1.
func ReadingDuration(text string, wordsPerMinute int, rate float64) time.Duration {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultReadSpeed
	}
	if rate <= 0 {
		rate = 1
	}

	words := WordCount(text)
	if words == 0 {
		return 0
	}

	minutes := float64(words) / float64(wordsPerMinute) / rate
	return time.Duration(minutes * float64(time.Minute))
}
