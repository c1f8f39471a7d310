package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"حكاية عن القمر", "حكاية_عن_القمر"},
		{"story.v2", "story_v2"},
		{"a/b\\c:d?", "abcd"},
		{"  ", "untitled"},
		{"؟!", "untitled"},
		{strings.Repeat("ق", 200), strings.Repeat("ق", 150)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestSaveTextToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	target, err := SaveTextToFile(dir, "عمر وبوابة المدرسة", "json", `{"id":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "عمر_وبوابة_المدرسة.json"), target)

	data, err := LoadTextFromFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"x"}`, string(data))

	_, err = LoadTextFromFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadingDuration(t *testing.T) {
	text := strings.Repeat("كلمة ", 130)

	assert.Equal(t, time.Minute, ReadingDuration(text, 0, 0))
	assert.Equal(t, 30*time.Second, ReadingDuration(text, 260, 1))
	assert.Equal(t, 2*time.Minute, ReadingDuration(text, 130, 0.5))
	assert.Zero(t, ReadingDuration("   ", 130, 1))
	assert.Equal(t, 3, WordCount(" كان  يا ما "))
}

func TestToJsonStr(t *testing.T) {
	out, err := ToJsonStr(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)

	_, err = ToJsonStr(map[string]interface{}{"c": make(chan int)})
	assert.Error(t, err)

	pretty, err := ToPrettyJson(map[string]string{"title": "حكاية"}, false)
	require.NoError(t, err)
	assert.Contains(t, pretty, `"title": "حكاية"`)
}
