package utils

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"
)

var disallowedFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}_\-]`)

func LoadTextFromFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// SaveTextToFile writes text to dir/<sanitized filename>.<extension>, overwriting
// any existing file, and returns the full path.
func SaveTextToFile(dir, filename, extension, text string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	target := path.Join(dir, fmt.Sprintf("%s.%s", SanitizeFilename(filename), extension))
	if err := os.WriteFile(target, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write to file: %w", err)
	}

	return target, nil
}

// SanitizeFilename keeps letters of any script, digits, underscores and hyphens.
func SanitizeFilename(filename string) string {
	filename = strings.TrimSpace(filename)
	filename = strings.ReplaceAll(filename, ".", "_")
	filename = strings.ReplaceAll(filename, " ", "_")
	filename = disallowedFilenameChars.ReplaceAllString(filename, "")

	runes := []rune(filename)
	if len(runes) > 150 {
		filename = string(runes[:150])
	}
	if filename == "" {
		filename = "untitled"
	}
	return filename
}
