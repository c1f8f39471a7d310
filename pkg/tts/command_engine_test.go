package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const espeakVoices = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  ar              --/M      Arabic             sem/ar
 5  en-us           --/M      English_(America)  gmw/en-US            (en 3)
`

func TestParseEspeakVoices(t *testing.T) {
	voices := parseEspeakVoices(espeakVoices)

	require.Len(t, voices, 3)
	assert.Equal(t, Voice{ID: "ar", Name: "Arabic", Locale: "ar", Gender: "M", Provider: "espeak-ng"}, voices[1])

	arabic := FilterArabic(voices)
	require.Len(t, arabic, 1)
	assert.Equal(t, "ar", arabic[0].ID)
}

func TestCommandEngine_Args(t *testing.T) {
	e := NewCommandEngine("", nil)
	assert.Equal(t, "espeak-ng", e.Bin)

	assert.Equal(t, []string{"-v", "ar", "-s", "157", "مرحبا"},
		e.args(Utterance{Text: "مرحبا", Language: "ar-SA", Rate: 0.9}))

	assert.Equal(t, []string{"-v", "ar", "-s", "175", "x"},
		e.args(Utterance{Text: "x"}))

	assert.Equal(t, []string{"-v", "roa/ar", "-s", "350", "x"},
		e.args(Utterance{Text: "x", Language: "en", Rate: 2, Voice: &Voice{ID: "roa/ar"}}))
}

func TestCommandEngine_MissingBinary(t *testing.T) {
	e := NewCommandEngine("rawi-no-such-binary", nil)

	err := e.Speak(Utterance{Text: "مرحبا"})
	assert.Error(t, err)
}

func TestLanguageCode(t *testing.T) {
	assert.Equal(t, "ar", languageCode("ar-SA"))
	assert.Equal(t, "ar", languageCode("AR_eg"))
	assert.Equal(t, "", languageCode(""))
}
