package story

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	titleFormat = "حكاية عن %s"
	topicFormat = "واليوم سنحكي لكم حكاية عن %s."
	briefFormat = "قصة %s مستوحاة من فكرتك: %s"
)

// Generator assembles stories from the static templates.
// A Generator is not safe for concurrent use because of its random source.
type Generator struct {
	templates StoryTemplates
	rnd       *rand.Rand
	newID     func() string
}

type GeneratorOption func(*Generator)

// WithRand sets the random source used to pick intros.
func WithRand(rnd *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.rnd = rnd
	}
}

// WithIDs overrides the story id factory.
func WithIDs(newID func() string) GeneratorOption {
	return func(g *Generator) {
		g.newID = newID
	}
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		templates: Templates(),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Match returns the first template, in declared order, with a keyword found in prompt.
// The fallback template is returned when nothing matches.
func (g *Generator) Match(prompt string) StoryTemplate {
	lower := strings.ToLower(prompt)

	var fallback StoryTemplate
	for _, t := range g.templates {
		if t.IsFallback() {
			fallback = t
			continue
		}
		for _, keyword := range t.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return t
			}
		}
	}
	return fallback
}

// Generate builds a story for prompt. Callers must reject blank prompts.
func (g *Generator) Generate(prompt string) Story {
	t := g.Match(prompt)

	scenes := make(Scenes, 0, len(t.PlotLines)+2)
	scenes = append(scenes,
		Scene{Speaker: Narrator, Text: t.Intros[g.rnd.Intn(len(t.Intros))]},
		Scene{Speaker: Narrator, Text: fmt.Sprintf(topicFormat, prompt)},
	)
	for _, line := range t.PlotLines {
		scenes = append(scenes, Scene{Speaker: line.Speaker, Text: line.Text, Emotion: line.Emotion})
	}

	return Story{
		ID:     g.newID(),
		Title:  fmt.Sprintf(titleFormat, prompt),
		Genre:  t.Genre,
		Brief:  fmt.Sprintf(briefFormat, t.Genre.Label(), prompt),
		Scenes: scenes,
	}
}
