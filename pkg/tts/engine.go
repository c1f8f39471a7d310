package tts

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// DefaultLanguage is the locale utterances are spoken in unless configured otherwise.
const DefaultLanguage = "ar-SA"

// DefaultRate is slightly slower than normal speech, for clarity.
const DefaultRate = 0.9

var ErrUnknownEngine = errors.New("unknown speech engine")

// Utterance is one request to vocalize a text.
//
// Callbacks are always invoked on an engine goroutine, never from inside Speak or
// Cancel. OnEnd is called once when the utterance finishes on its own; it is never
// called for an utterance that was canceled. OnError replaces OnEnd when the engine
// fails after Speak returned.
type Utterance struct {
	Text     string
	Language string
	Rate     float64
	Voice    *Voice

	OnStart func()
	OnEnd   func()
	OnError func(error)
}

// Engine is the speech synthesis collaborator. At most one utterance is in
// flight: Speak cancels the previous one first.
type Engine interface {
	// Speak starts vocalizing u and returns without waiting for it to finish.
	Speak(u Utterance) error
	// Cancel stops the in-flight utterance, if any. It does not wait for callbacks.
	Cancel()
	Voices(ctx context.Context) ([]Voice, error)
}

// utterances hands out ids for in-flight utterances so a finished or canceled
// one can be told apart from the current one.
type utterances struct {
	mu      sync.Mutex
	current uint64
	cancel  context.CancelFunc
}

// begin cancels the in-flight utterance and registers a new one.
func (t *utterances) begin() (uint64, context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.current++
	t.cancel = cancel
	return t.current, ctx
}

func (t *utterances) active(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil && t.current == id
}

// finish reports whether id was still current, and clears it.
func (t *utterances) finish(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel == nil || t.current != id {
		return false
	}
	t.cancel()
	t.cancel = nil
	return true
}

func (t *utterances) cancelCurrent() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func languageCode(locale string) string {
	code, _, _ := strings.Cut(locale, "-")
	code, _, _ = strings.Cut(code, "_")
	return strings.ToLower(code)
}

func (u Utterance) started() {
	if u.OnStart != nil {
		u.OnStart()
	}
}

func (u Utterance) ended() {
	if u.OnEnd != nil {
		u.OnEnd()
	}
}

func (u Utterance) failed(err error) {
	if u.OnError != nil {
		u.OnError(err)
	}
}
