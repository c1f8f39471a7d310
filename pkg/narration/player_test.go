package narration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/andrejsstepanovs/rawi/pkg/story"
	"github.com/andrejsstepanovs/rawi/pkg/tts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeEngine struct {
	mu         sync.Mutex
	utterances []tts.Utterance
	cancels    int
	speakErr   error
}

func (e *fakeEngine) Speak(u tts.Utterance) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.speakErr != nil {
		return e.speakErr
	}
	e.utterances = append(e.utterances, u)
	return nil
}

func (e *fakeEngine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancels++
}

func (e *fakeEngine) Voices(_ context.Context) ([]tts.Voice, error) {
	return nil, nil
}

func (e *fakeEngine) last() tts.Utterance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.utterances[len(e.utterances)-1]
}

func (e *fakeEngine) texts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	texts := make([]string, 0, len(e.utterances))
	for _, u := range e.utterances {
		texts = append(texts, u.Text)
	}
	return texts
}

type manualTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
	delays []time.Duration
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{f: f}
	c.timers = append(c.timers, t)
	c.delays = append(c.delays, d)
	return t
}

// fire runs every timer that is still armed.
func (c *manualClock) fire() {
	c.mu.Lock()
	timers := c.timers
	c.timers = nil
	c.mu.Unlock()

	for _, t := range timers {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.f()
	}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func threeScenes() story.Story {
	return story.Story{
		ID:    "test",
		Title: "ثلاثة مشاهد",
		Scenes: story.Scenes{
			{Speaker: story.Narrator, Text: "الأول"},
			{Speaker: "عمر", Text: "الثاني", Emotion: story.EmotionNervous},
			{Speaker: story.Narrator, Text: "الثالث"},
		},
	}
}

func newTestPlayer(t *testing.T) (*Player, *fakeEngine, *manualClock, *recorder) {
	engine := &fakeEngine{}
	clock := &manualClock{}
	rec := &recorder{}
	p := New(engine,
		WithClock(clock),
		WithLogger(zaptest.NewLogger(t)),
		WithObserver(rec.observe),
	)
	require.NoError(t, p.Load(threeScenes()))
	return p, engine, clock, rec
}

func TestPlayer_PlaysAllScenesInOrderThenIdle(t *testing.T) {
	p, engine, clock, rec := newTestPlayer(t)

	require.NoError(t, p.Play())
	for i := 0; i < 3; i++ {
		assert.Equal(t, Status{State: Speaking, Index: i, Scenes: 3, Title: "ثلاثة مشاهد"}, p.Status())
		engine.last().OnEnd()
		clock.fire()
	}

	assert.Equal(t, []string{"الأول", "الثاني", "الثالث"}, engine.texts())
	assert.Equal(t, Idle, p.Status().State)
	assert.Equal(t, 0, p.Status().Index)
	assert.Equal(t, []EventKind{EventSceneStarted, EventSceneStarted, EventSceneStarted, EventFinished}, rec.kinds())
}

func TestPlayer_UtteranceCarriesSpeechSettings(t *testing.T) {
	engine := &fakeEngine{}
	voice := &tts.Voice{ID: "ar", Name: "Arabic"}
	p := New(engine,
		WithClock(&manualClock{}),
		WithLanguage("ar-EG"),
		WithRate(0.8),
		WithVoice(func() *tts.Voice { return voice }),
	)
	require.NoError(t, p.Load(story.Story{Scenes: story.Scenes{{Speaker: story.Narrator, Text: "مرحبا 👋"}}}))
	require.NoError(t, p.Play())

	u := engine.last()
	assert.Equal(t, "مرحبا", u.Text)
	assert.Equal(t, "ar-EG", u.Language)
	assert.Equal(t, 0.8, u.Rate)
	assert.Same(t, voice, u.Voice)
}

func TestPlayer_WaitsForDelayBeforeAdvancing(t *testing.T) {
	p, engine, clock, _ := newTestPlayer(t)

	require.NoError(t, p.Play())
	engine.last().OnEnd()

	assert.Equal(t, 0, p.Status().Index, "must not advance before the delay elapsed")
	assert.Equal(t, []time.Duration{DefaultDelay}, clock.delays)

	clock.fire()
	assert.Equal(t, 1, p.Status().Index)
}

func TestPlayer_StopSuppressesStaleCompletion(t *testing.T) {
	p, engine, clock, rec := newTestPlayer(t)

	require.NoError(t, p.Play())
	stale := engine.last()

	p.Stop()
	assert.Equal(t, Idle, p.Status().State)

	stale.OnEnd()
	clock.fire()

	assert.Len(t, engine.texts(), 1)
	assert.Equal(t, Idle, p.Status().State)
	assert.Equal(t, []EventKind{EventSceneStarted, EventStopped}, rec.kinds())
}

func TestPlayer_StopDuringDelayCancelsPendingAdvance(t *testing.T) {
	p, engine, clock, _ := newTestPlayer(t)

	require.NoError(t, p.Play())
	engine.last().OnEnd()
	p.Stop()
	clock.fire()

	assert.Len(t, engine.texts(), 1)
	assert.Equal(t, Idle, p.Status().State)
}

func TestPlayer_PauseAndResume(t *testing.T) {
	p, engine, clock, _ := newTestPlayer(t)

	require.NoError(t, p.Play())
	engine.last().OnEnd()
	clock.fire()
	require.Equal(t, 1, p.Status().Index)

	stale := engine.last()
	p.Pause()
	assert.Equal(t, Status{State: Paused, Index: 1, Scenes: 3, Title: "ثلاثة مشاهد"}, p.Status())

	stale.OnEnd()
	clock.fire()
	assert.Equal(t, Paused, p.Status().State)

	require.NoError(t, p.Resume())
	assert.Equal(t, Speaking, p.Status().State)
	assert.Equal(t, []string{"الأول", "الثاني", "الثاني"}, engine.texts())
}

func TestPlayer_PauseDuringDelayResumesAtNextScene(t *testing.T) {
	p, engine, clock, _ := newTestPlayer(t)

	require.NoError(t, p.Play())
	engine.last().OnEnd()
	p.Pause()
	clock.fire()

	assert.Equal(t, Status{State: Paused, Index: 1, Scenes: 3, Title: "ثلاثة مشاهد"}, p.Status())
	require.NoError(t, p.Resume())
	assert.Equal(t, "الثاني", engine.last().Text)
}

func TestPlayer_PauseDuringDelayAfterLastSceneFinishes(t *testing.T) {
	p, engine, clock, rec := newTestPlayer(t)

	require.NoError(t, p.PlayFrom(2))
	engine.last().OnEnd()
	p.Pause()
	clock.fire()

	assert.Equal(t, Status{State: Idle, Index: 0, Scenes: 3, Title: "ثلاثة مشاهد"}, p.Status())
	assert.Equal(t, []EventKind{EventSceneStarted, EventFinished}, rec.kinds())

	require.NoError(t, p.Resume())
	assert.Equal(t, []string{"الثالث", "الأول"}, engine.texts(), "the last scene is not read twice")
}

func TestPlayer_SkipClampsAndCancels(t *testing.T) {
	p, engine, _, _ := newTestPlayer(t)

	require.NoError(t, p.Previous())
	assert.Equal(t, 0, p.Status().Index)

	require.NoError(t, p.Next())
	require.NoError(t, p.Next())
	require.NoError(t, p.Next())
	assert.Equal(t, 2, p.Status().Index)
	assert.Equal(t, Speaking, p.Status().State)

	require.NoError(t, p.Previous())
	assert.Equal(t, 1, p.Status().Index)

	assert.Equal(t, []string{"الأول", "الثاني", "الثالث", "الثالث", "الثاني"}, engine.texts())
	engine.mu.Lock()
	defer engine.mu.Unlock()
	assert.GreaterOrEqual(t, engine.cancels, 5, "every start cancels the previous utterance")
}

func TestPlayer_SkipInvalidatesOldUtterance(t *testing.T) {
	p, engine, clock, _ := newTestPlayer(t)

	require.NoError(t, p.Play())
	first := engine.last()
	require.NoError(t, p.Next())

	first.OnEnd()
	clock.fire()
	assert.Equal(t, 1, p.Status().Index, "stale completion must not advance past the skipped-to scene")
	assert.Len(t, engine.texts(), 2)
}

func TestPlayer_PlayWhileSpeakingIsNoop(t *testing.T) {
	p, engine, _, _ := newTestPlayer(t)

	require.NoError(t, p.Play())
	require.NoError(t, p.Play())
	assert.Len(t, engine.texts(), 1)
}

func TestPlayer_Toggle(t *testing.T) {
	p, _, _, _ := newTestPlayer(t)

	require.NoError(t, p.Toggle())
	assert.Equal(t, Speaking, p.Status().State)
	require.NoError(t, p.Toggle())
	assert.Equal(t, Paused, p.Status().State)
	require.NoError(t, p.Toggle())
	assert.Equal(t, Speaking, p.Status().State)
}

func TestPlayer_ToggleFromManyGoroutines(t *testing.T) {
	p, _, _, rec := newTestPlayer(t)

	const toggles = 50
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Toggle())
		}()
	}
	wg.Wait()

	counts := map[EventKind]int{}
	for _, k := range rec.kinds() {
		counts[k]++
	}
	assert.Equal(t, map[EventKind]int{EventSceneStarted: toggles / 2, EventPaused: toggles / 2}, counts, "every toggle is one transition")
	assert.Equal(t, Paused, p.Status().State)
}

func TestPlayer_Unsubscribe(t *testing.T) {
	p, engine, clock, rec := newTestPlayer(t)

	other := &recorder{}
	unsubscribe := p.Subscribe(other.observe)
	require.NoError(t, p.Play())

	unsubscribe()
	unsubscribe()
	engine.last().OnEnd()
	clock.fire()

	assert.Equal(t, []EventKind{EventSceneStarted}, other.kinds())
	assert.Equal(t, []EventKind{EventSceneStarted, EventSceneStarted}, rec.kinds())
	assert.Len(t, p.observers, 1)
}

func TestPlayer_SpeakErrorReturnsToIdle(t *testing.T) {
	p, engine, _, rec := newTestPlayer(t)
	engine.speakErr = errors.New("no audio device")

	err := p.Play()
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.speakErr)
	assert.Equal(t, Idle, p.Status().State)
	assert.Equal(t, []EventKind{EventSceneStarted, EventError}, rec.kinds())
}

func TestPlayer_EngineFailureAfterStart(t *testing.T) {
	p, engine, clock, rec := newTestPlayer(t)

	require.NoError(t, p.Play())
	u := engine.last()
	u.OnError(errors.New("player crashed"))
	u.OnEnd()
	clock.fire()

	assert.Equal(t, Idle, p.Status().State)
	assert.Equal(t, []EventKind{EventSceneStarted, EventError}, rec.kinds())
}

func TestPlayer_SpeechStartedEvent(t *testing.T) {
	p, engine, _, rec := newTestPlayer(t)

	require.NoError(t, p.Play())
	engine.last().OnStart()

	assert.Equal(t, []EventKind{EventSceneStarted, EventSpeechStarted}, rec.kinds())
}

func TestPlayer_WithoutStory(t *testing.T) {
	p := New(&fakeEngine{}, WithClock(&manualClock{}))

	assert.ErrorIs(t, p.Play(), ErrNoStory)
	assert.ErrorIs(t, p.Next(), ErrNoStory)
	assert.ErrorIs(t, p.Load(story.Story{Title: "فارغة"}), ErrEmptyStory)
}

func TestPlayer_CloseCancelsAndRejects(t *testing.T) {
	p, engine, clock, _ := newTestPlayer(t)

	require.NoError(t, p.Play())
	stale := engine.last()
	p.Close()

	stale.OnEnd()
	clock.fire()

	assert.Len(t, engine.texts(), 1)
	assert.Equal(t, Idle, p.Status().State)
	assert.ErrorIs(t, p.Play(), ErrClosed)
}

func TestPlayer_LoadResetsPosition(t *testing.T) {
	p, engine, clock, _ := newTestPlayer(t)

	require.NoError(t, p.Play())
	stale := engine.last()
	require.NoError(t, p.Load(story.SeedStory()))
	stale.OnEnd()
	clock.fire()

	assert.Equal(t, Status{State: Idle, Index: 0, Scenes: 4, Title: "عمر وبوابة المدرسة"}, p.Status())
}

func TestPlayer_WithTextEngine(t *testing.T) {
	engine := tts.NewTextEngine(nil, tts.DefaultLanguage, 1_000_000)
	finished := make(chan struct{})

	var mu sync.Mutex
	var scenes []int
	p := New(engine,
		WithDelay(time.Millisecond),
		WithObserver(func(e Event) {
			mu.Lock()
			defer mu.Unlock()
			switch e.Kind {
			case EventSceneStarted:
				scenes = append(scenes, e.Index)
			case EventFinished:
				close(finished)
			}
		}),
	)
	require.NoError(t, p.Load(threeScenes()))
	require.NoError(t, p.Play())

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("story did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2}, scenes)
	assert.Equal(t, Idle, p.Status().State)
}
