// Package narration reads a story aloud scene by scene.
//
// The Player is a small state machine (Idle, Speaking, Paused) over the scenes
// of one story. Every utterance handed to the speech engine carries the
// player's generation number at the time it was started. Any cancellation bumps
// the generation, so a completion callback or a pending inter-scene delay that
// belongs to a canceled utterance is ignored instead of advancing playback.
package narration

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andrejsstepanovs/rawi/pkg/story"
	"github.com/andrejsstepanovs/rawi/pkg/tts"
	"go.uber.org/zap"
)

// DefaultDelay is the pause after a scene before the next one starts.
const DefaultDelay = time.Second

var (
	ErrNoStory    = errors.New("no story loaded")
	ErrEmptyStory = errors.New("story has no scenes")
	ErrClosed     = errors.New("player closed")
)

type State int

const (
	Idle State = iota
	Speaking
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Speaking:
		return "speaking"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Status struct {
	State  State
	Index  int
	Scenes int
	Title  string
}

type Player struct {
	engine   tts.Engine
	clock    Clock
	logger   *zap.Logger
	language string
	rate     float64
	delay    time.Duration
	voice    func() *tts.Voice

	obsMu     sync.RWMutex
	observers []subscription
	nextObsID uint64

	mu         sync.Mutex
	story      story.Story
	loaded     bool
	closed     bool
	state      State
	index      int
	generation uint64
	pending    Timer
}

type subscription struct {
	id       uint64
	observer Observer
}

type Option func(*Player)

func WithClock(c Clock) Option {
	return func(p *Player) { p.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Player) { p.logger = l }
}

func WithDelay(d time.Duration) Option {
	return func(p *Player) { p.delay = d }
}

func WithRate(rate float64) Option {
	return func(p *Player) { p.rate = rate }
}

func WithLanguage(language string) Option {
	return func(p *Player) { p.language = language }
}

// WithVoice sets where the player looks up the voice for each utterance.
// Returning nil means the engine default.
func WithVoice(voice func() *tts.Voice) Option {
	return func(p *Player) { p.voice = voice }
}

func WithObserver(o Observer) Option {
	return func(p *Player) { p.Subscribe(o) }
}

func New(engine tts.Engine, opts ...Option) *Player {
	p := &Player{
		engine:   engine,
		clock:    SystemClock,
		logger:   zap.NewNop(),
		language: tts.DefaultLanguage,
		rate:     tts.DefaultRate,
		delay:    DefaultDelay,
		voice:    func() *tts.Voice { return nil },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subscribe adds an observer for events emitted from now on. The returned
// func removes it again and is safe to call more than once.
func (p *Player) Subscribe(o Observer) (unsubscribe func()) {
	p.obsMu.Lock()
	defer p.obsMu.Unlock()
	p.nextObsID++
	id := p.nextObsID
	p.observers = append(p.observers, subscription{id: id, observer: o})

	return func() {
		p.obsMu.Lock()
		defer p.obsMu.Unlock()
		for i, sub := range p.observers {
			if sub.id == id {
				p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
				return
			}
		}
	}
}

// Load replaces the current story. Anything in flight is canceled and the
// player is left Idle at the first scene.
func (p *Player) Load(s story.Story) error {
	if len(s.Scenes) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyStory, s.Title)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	p.cancelLocked()
	p.story = s
	p.loaded = true
	p.state = Idle
	p.index = 0
	p.logger.Debug("story loaded", zap.String("story", s.ID), zap.Int("scenes", len(s.Scenes)))
	return nil
}

// Play starts or resumes from the current scene. It does nothing while speaking.
func (p *Player) Play() error {
	p.mu.Lock()
	if err := p.usableLocked(); err != nil {
		p.mu.Unlock()
		return err
	}
	if p.state == Speaking {
		p.mu.Unlock()
		return nil
	}
	events, err := p.speakLocked(p.index)
	p.mu.Unlock()

	p.emit(events)
	return err
}

func (p *Player) Resume() error {
	return p.Play()
}

// PlayFrom starts speaking at scene i, clamped to the story.
func (p *Player) PlayFrom(i int) error {
	p.mu.Lock()
	if err := p.usableLocked(); err != nil {
		p.mu.Unlock()
		return err
	}
	events, err := p.speakLocked(p.clamp(i))
	p.mu.Unlock()

	p.emit(events)
	return err
}

func (p *Player) Next() error {
	return p.skip(1)
}

func (p *Player) Previous() error {
	return p.skip(-1)
}

func (p *Player) skip(step int) error {
	p.mu.Lock()
	if err := p.usableLocked(); err != nil {
		p.mu.Unlock()
		return err
	}
	events, err := p.speakLocked(p.clamp(p.index + step))
	p.mu.Unlock()

	p.emit(events)
	return err
}

// Pause stops speaking and keeps the position. When the current scene had
// already been read and the player was waiting to move on, the position moves
// to the next scene, and past the last scene the story is finished.
func (p *Player) Pause() {
	p.mu.Lock()
	events := p.pauseLocked()
	p.mu.Unlock()

	p.emit(events)
}

func (p *Player) pauseLocked() []Event {
	if p.state != Speaking {
		return nil
	}
	if p.pending != nil {
		if p.index+1 >= len(p.story.Scenes) {
			return p.finishLocked()
		}
		p.index++
	}
	p.cancelLocked()
	p.state = Paused
	return []Event{{Kind: EventPaused, Index: p.index}}
}

func (p *Player) finishLocked() []Event {
	p.cancelLocked()
	p.state = Idle
	p.index = 0
	return []Event{{Kind: EventFinished}}
}

// Stop cancels playback and rewinds to the first scene.
func (p *Player) Stop() {
	p.mu.Lock()
	wasIdle := p.state == Idle
	p.cancelLocked()
	p.state = Idle
	p.index = 0
	p.mu.Unlock()

	if !wasIdle {
		p.emit([]Event{{Kind: EventStopped}})
	}
}

// Toggle pauses while speaking and plays otherwise.
func (p *Player) Toggle() error {
	p.mu.Lock()
	if p.state == Speaking {
		events := p.pauseLocked()
		p.mu.Unlock()
		p.emit(events)
		return nil
	}
	if err := p.usableLocked(); err != nil {
		p.mu.Unlock()
		return err
	}
	events, err := p.speakLocked(p.index)
	p.mu.Unlock()

	p.emit(events)
	return err
}

// Close cancels everything in flight. The player cannot be used afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
	p.state = Idle
	p.closed = true
}

func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		State:  p.state,
		Index:  p.index,
		Scenes: len(p.story.Scenes),
		Title:  p.story.Title,
	}
}

func (p *Player) usableLocked() error {
	if p.closed {
		return ErrClosed
	}
	if !p.loaded {
		return ErrNoStory
	}
	return nil
}

func (p *Player) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if last := len(p.story.Scenes) - 1; i > last {
		return last
	}
	return i
}

// cancelLocked invalidates the in-flight utterance and any pending advance.
func (p *Player) cancelLocked() {
	p.generation++
	if p.pending != nil {
		p.pending.Stop()
		p.pending = nil
	}
	p.engine.Cancel()
}

func (p *Player) speakLocked(i int) ([]Event, error) {
	p.cancelLocked()

	p.index = i
	p.state = Speaking
	generation := p.generation
	scene := p.story.Scenes[i]

	events := []Event{{Kind: EventSceneStarted, Index: i, Scene: scene}}

	err := p.engine.Speak(tts.Utterance{
		Text:     scene.SpeechText(),
		Language: p.language,
		Rate:     p.rate,
		Voice:    p.voice(),
		OnStart:  func() { p.utteranceStarted(generation) },
		OnEnd:    func() { p.utteranceEnded(generation) },
		OnError:  func(err error) { p.utteranceFailed(generation, err) },
	})
	if err != nil {
		p.generation++
		p.state = Idle
		p.logger.Error("failed to start utterance", zap.Int("scene", i), zap.Error(err))
		events = append(events, Event{Kind: EventError, Index: i, Err: err})
		return events, fmt.Errorf("scene %d: %w", i+1, err)
	}

	p.logger.Debug("speaking scene", zap.Int("scene", i), zap.Uint64("generation", generation))
	return events, nil
}

func (p *Player) current(generation uint64) bool {
	return generation == p.generation && p.state == Speaking
}

func (p *Player) utteranceStarted(generation uint64) {
	p.mu.Lock()
	if !p.current(generation) {
		p.mu.Unlock()
		return
	}
	event := Event{Kind: EventSpeechStarted, Index: p.index, Scene: p.story.Scenes[p.index]}
	p.mu.Unlock()

	p.emit([]Event{event})
}

func (p *Player) utteranceEnded(generation uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.current(generation) {
		p.logger.Debug("ignoring stale utterance end", zap.Uint64("generation", generation))
		return
	}
	p.pending = p.clock.AfterFunc(p.delay, func() { p.advance(generation) })
}

func (p *Player) utteranceFailed(generation uint64, err error) {
	p.mu.Lock()
	if !p.current(generation) {
		p.mu.Unlock()
		return
	}
	p.cancelLocked()
	p.state = Idle
	event := Event{Kind: EventError, Index: p.index, Err: err}
	p.mu.Unlock()

	p.logger.Error("utterance failed", zap.Int("scene", event.Index), zap.Error(err))
	p.emit([]Event{event})
}

func (p *Player) advance(generation uint64) {
	p.mu.Lock()
	if !p.current(generation) {
		p.mu.Unlock()
		return
	}
	p.pending = nil

	var events []Event
	if next := p.index + 1; next < len(p.story.Scenes) {
		events, _ = p.speakLocked(next)
	} else {
		events = p.finishLocked()
	}
	p.mu.Unlock()

	p.emit(events)
}

func (p *Player) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	p.obsMu.RLock()
	observers := make([]Observer, len(p.observers))
	for i, sub := range p.observers {
		observers[i] = sub.observer
	}
	p.obsMu.RUnlock()

	for _, e := range events {
		for _, o := range observers {
			o(e)
		}
	}
}
