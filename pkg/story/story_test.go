package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveEmojis(t *testing.T) {
	assert.Equal(t, "مرحبا يا عمر", RemoveEmojis("  مرحبا 👋  يا\n\tعمر 😰 "))
	assert.Equal(t, "كتاب", RemoveEmojis("كت\u0640\u0640اب"))
	assert.Equal(t, "a b", RemoveEmojis("a\u200bb"))
	assert.Equal(t, "مَرْحَبًا", RemoveEmojis("مَرْحَبًا"), "Arabic diacritics are kept")
}

func TestEmotion_Badge(t *testing.T) {
	assert.Equal(t, "😰", EmotionNervous.Badge())
	assert.Equal(t, "😊", EmotionWarm.Badge())
	assert.Equal(t, "🎙️", EmotionNone.Badge())
}

func TestSeedStory(t *testing.T) {
	s := SeedStory()

	assert.Equal(t, "عمر وبوابة المدرسة", s.Title)
	assert.Len(t, s.Scenes, 4)
	assert.Equal(t, EmotionNervous, s.Scenes[1].Emotion)
	assert.Equal(t, EmotionWarm, s.Scenes[2].Emotion)
}

func TestParseJson(t *testing.T) {
	seed := SeedStory()
	data, err := seed.ToJson()
	require.NoError(t, err)

	parsed, err := ParseJson([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, seed, parsed)

	_, err = ParseJson([]byte(`{"title":"فارغة","scenes":[]}`))
	assert.ErrorContains(t, err, "no scenes")

	_, err = ParseJson([]byte(`{"title":`))
	assert.ErrorContains(t, err, "invalid story json")
}

func TestStory_BuildContent(t *testing.T) {
	s := Story{
		Title: "حكاية",
		Scenes: Scenes{
			{Speaker: Narrator, Text: "بداية"},
			{Speaker: "عمر", Text: "  ", Emotion: EmotionNervous},
			{Speaker: "عمر", Text: "نهاية", Emotion: EmotionWarm},
		},
	}

	assert.Equal(t, "حكاية\n...\n🎙️ الراوي: بداية\n😊 عمر: نهاية", s.BuildContent())
}

func TestStory_Texts(t *testing.T) {
	s := Story{Scenes: Scenes{{Text: "أ 🚀"}, {Text: "ب"}}}

	assert.Equal(t, []string{"أ", "ب"}, s.Texts())
}

func TestGenre_Label(t *testing.T) {
	assert.Equal(t, "خيال علمي", GenreSciFi.Label())
	assert.Equal(t, "قيم", GenreValues.Label())
	assert.Equal(t, "mystery", Genre("mystery").Label())
}
