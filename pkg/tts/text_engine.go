package tts

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/andrejsstepanovs/rawi/pkg/utils"
)

// TextEngine "speaks" by writing the text out and taking as long as reading
// it aloud would take. It needs nothing installed and is the default engine.
type TextEngine struct {
	Out            io.Writer
	Language       string
	WordsPerMinute int

	utterances utterances
}

func NewTextEngine(out io.Writer, language string, wordsPerMinute int) *TextEngine {
	if out == nil {
		out = io.Discard
	}
	if language == "" {
		language = DefaultLanguage
	}
	return &TextEngine{Out: out, Language: language, WordsPerMinute: wordsPerMinute}
}

func (e *TextEngine) Speak(u Utterance) error {
	id, ctx := e.utterances.begin()
	duration := utils.ReadingDuration(u.Text, e.WordsPerMinute, u.Rate)

	go func() {
		if !e.utterances.active(id) {
			return
		}
		u.started()
		fmt.Fprintln(e.Out, u.Text)

		timer := time.NewTimer(duration)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if e.utterances.finish(id) {
			u.ended()
		}
	}()

	return nil
}

func (e *TextEngine) Cancel() {
	e.utterances.cancelCurrent()
}

func (e *TextEngine) Voices(_ context.Context) ([]Voice, error) {
	return []Voice{{
		ID:       "text",
		Name:     "نص",
		Locale:   e.Language,
		Provider: "text",
	}}, nil
}
