package story

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/andrejsstepanovs/rawi/pkg/utils"
)

// Narrator is the speaker attributed to every line that is not said by a character.
const Narrator = "الراوي"

type Genre string

const (
	GenreSciFi     Genre = "sci-fi"
	GenreAdventure Genre = "adventure"
	GenreFantasy   Genre = "fantasy"
	GenreSchool    Genre = "school"
	GenreValues    Genre = "values"
)

// Label is the Arabic display name of the genre.
func (g Genre) Label() string {
	switch g {
	case GenreSciFi:
		return "خيال علمي"
	case GenreAdventure:
		return "مغامرة"
	case GenreFantasy:
		return "خيال"
	case GenreSchool:
		return "حياة المدرسة"
	case GenreValues:
		return "قيم"
	}
	return string(g)
}

type Emotion string

const (
	EmotionNone    Emotion = ""
	EmotionNervous Emotion = "nervous"
	EmotionWarm    Emotion = "warm"
	EmotionExcited Emotion = "excited"
	EmotionCalm    Emotion = "calm"
)

// Badge is the emoji shown next to the speaker name.
func (e Emotion) Badge() string {
	switch e {
	case EmotionNervous:
		return "😰"
	case EmotionWarm:
		return "😊"
	case EmotionExcited:
		return "🤩"
	case EmotionCalm:
		return "😌"
	}
	return "🎙️"
}

type Scene struct {
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
	Emotion Emotion `json:"emotion,omitempty"`
}

type Scenes []Scene

type Story struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Genre  Genre  `json:"genre"`
	Brief  string `json:"brief"`
	Scenes Scenes `json:"scenes"`
}

func (s *Story) ToJson() (string, error) {
	return utils.ToJsonStr(s)
}

// ParseJson reads a story saved with ToJson. A story without scenes is rejected.
func ParseJson(data []byte) (Story, error) {
	var s Story
	if err := json.Unmarshal(data, &s); err != nil {
		return Story{}, fmt.Errorf("invalid story json: %w", err)
	}
	if len(s.Scenes) == 0 {
		return Story{}, fmt.Errorf("story %q has no scenes", s.Title)
	}
	return s, nil
}

// SpeechText is the scene text as it should be handed to a speech engine.
func (s Scene) SpeechText() string {
	return RemoveEmojis(s.Text)
}

// Texts returns the speech text of every scene in order.
func (s Story) Texts() []string {
	texts := make([]string, 0, len(s.Scenes))
	for _, scene := range s.Scenes {
		texts = append(texts, scene.SpeechText())
	}
	return texts
}

// BuildContent renders the story as a readable script.
func (s *Story) BuildContent() string {
	content := make([]string, 0, len(s.Scenes)+2)

	title := strings.TrimSpace(s.Title)
	if title != "" {
		content = append(content, title)
		content = append(content, "...")
	}

	for _, scene := range s.Scenes {
		text := strings.TrimSpace(scene.Text)
		if text == "" {
			continue
		}
		content = append(content, fmt.Sprintf("%s %s: %s", scene.Emotion.Badge(), scene.Speaker, text))
	}

	return strings.Join(content, "\n")
}
