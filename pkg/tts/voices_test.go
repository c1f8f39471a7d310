package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoice_IsArabic(t *testing.T) {
	tests := []struct {
		voice Voice
		want  bool
	}{
		{Voice{Name: "Maged", Locale: "ar-SA"}, true},
		{Voice{Name: "Laila", Locale: "ar_EG"}, true},
		{Voice{Name: "x", Locale: "AR"}, true},
		{Voice{Name: "Arabic", Locale: "sem"}, true},
		{Voice{Name: "صوت عربي"}, true},
		{Voice{Name: "shimmer", Languages: []string{"en", "ar"}}, true},
		{Voice{Name: "Samantha", Locale: "en-US"}, false},
		{Voice{Name: "Amelie", Locale: "fr-CA", Languages: []string{"fr"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.voice.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.voice.IsArabic())
		})
	}
}

func TestVoiceSelection(t *testing.T) {
	s := NewVoiceSelection([]Voice{
		{ID: "en", Name: "English", Locale: "en"},
		{ID: "ar", Name: "Arabic", Locale: "ar"},
		{ID: "ar-eg", Name: "Egyptian", Locale: "ar-EG"},
	})

	assert.Len(t, s.Available(), 2)
	assert.Empty(t, s.Advisory())

	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Nil(t, s.VoicePtr())

	require.NoError(t, s.Select("egyptian"))
	v, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "ar-eg", v.ID)
	assert.Equal(t, "ar-eg", s.VoicePtr().ID)

	assert.ErrorIs(t, s.Select("en"), ErrVoiceNotFound, "non-Arabic voices cannot be picked")

	s.Clear()
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestVoiceSelection_Advisory(t *testing.T) {
	s := NewVoiceSelection([]Voice{{ID: "aura-asteria-en", Name: "aura-asteria-en", Locale: "en-US"}})

	assert.Empty(t, s.Available())
	assert.Equal(t, NoArabicVoiceAdvisory, s.Advisory())
}

func TestProviderVoices(t *testing.T) {
	assert.Len(t, FilterArabic((&OpenAISynthesizer{}).Voices()), 6)
	assert.Empty(t, FilterArabic((&DeepgramSynthesizer{}).Voices()))
}
