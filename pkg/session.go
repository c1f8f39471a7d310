package pkg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/andrejsstepanovs/rawi/pkg/assistant"
	"github.com/andrejsstepanovs/rawi/pkg/briefing"
	"github.com/andrejsstepanovs/rawi/pkg/narration"
	"github.com/andrejsstepanovs/rawi/pkg/story"
	"github.com/andrejsstepanovs/rawi/pkg/theme"
	"github.com/andrejsstepanovs/rawi/pkg/tts"
	"go.uber.org/zap"
)

type Screen string

const (
	ScreenHome     Screen = "home"
	ScreenStories  Screen = "stories"
	ScreenChat     Screen = "chat"
	ScreenBriefing Screen = "briefing"
)

var errUnknownCommand = errors.New("unknown command")

// syncWriter serializes writes from the input loop and from player events.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Session is one run of the interactive app. It owns the story library, the
// narration player and the state of every screen; nothing outlives it.
type Session struct {
	logger *zap.Logger
	out    io.Writer
	now    func() time.Time

	player    *narration.Player
	voices    *tts.VoiceSelection
	library   *story.Library
	generator *story.Generator
	board     *briefing.Board
	weather   briefing.Weather
	chat      *assistant.Conversation

	playerOpts  []narration.Option
	typingDelay time.Duration

	mu     sync.RWMutex
	theme  theme.Theme
	screen Screen
	rnd    *rand.Rand
}

type SessionOption func(*Session)

func WithGenerator(g *story.Generator) SessionOption {
	return func(s *Session) { s.generator = g }
}

func WithNow(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithRand sets the source used to pick wisdoms.
func WithRand(rnd *rand.Rand) SessionOption {
	return func(s *Session) { s.rnd = rnd }
}

func WithTypingDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.typingDelay = d }
}

// WithScreen sets the screen the session starts on.
func WithScreen(screen Screen) SessionOption {
	return func(s *Session) { s.screen = screen }
}

// WithPlayerOptions adds options on top of the ones derived from the config.
func WithPlayerOptions(opts ...narration.Option) SessionOption {
	return func(s *Session) { s.playerOpts = append(s.playerOpts, opts...) }
}

func NewSession(ctx context.Context, cfg Config, engine tts.Engine, out io.Writer, logger *zap.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		logger:      logger,
		out:         &syncWriter{w: out},
		now:         time.Now,
		library:     story.NewLibrary(story.SeedStory()),
		generator:   story.NewGenerator(),
		board:       briefing.NewBoard(briefing.DefaultTasks()...),
		weather:     briefing.DefaultWeather(),
		typingDelay: assistant.DefaultTypingDelay,
		screen:      ScreenHome,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.chat = assistant.NewConversation(s.typingDelay)

	t, err := theme.Get(cfg.Theme)
	if err != nil {
		logger.Warn("falling back to default theme", zap.Error(err))
	}
	s.theme = t

	s.voices = loadVoices(ctx, engine, logger)
	if cfg.Voice != "" {
		if err := s.voices.Select(cfg.Voice); err != nil {
			logger.Warn("configured voice not available", zap.Error(err))
		}
	}

	playerOpts := []narration.Option{
		narration.WithLogger(logger),
		narration.WithDelay(cfg.SceneDelay),
		narration.WithRate(cfg.SpeechRate),
		narration.WithLanguage(cfg.Language),
		narration.WithVoice(s.voices.VoicePtr),
		narration.WithObserver(s.onEvent),
	}
	s.player = narration.New(engine, append(playerOpts, s.playerOpts...)...)
	return s
}

func loadVoices(ctx context.Context, engine tts.Engine, logger *zap.Logger) *tts.VoiceSelection {
	voices, err := engine.Voices(ctx)
	if err != nil {
		logger.Warn("failed to list voices", zap.Error(err))
	}
	selection := tts.NewVoiceSelection(voices)
	if advisory := selection.Advisory(); advisory != "" {
		logger.Warn("no Arabic voice available", zap.Int("voices", len(voices)))
	}
	return selection
}

func (s *Session) Library() *story.Library {
	return s.library
}

func (s *Session) Player() *narration.Player {
	return s.player
}

func (s *Session) Screen() Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen
}

func (s *Session) Theme() theme.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Close stops narration for good.
func (s *Session) Close() {
	s.player.Close()
}

// Run reads commands from in until it is exhausted, the user quits or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	defer s.Close()

	if advisory := s.voices.Advisory(); advisory != "" {
		s.println(s.Theme().Dim("%s", advisory))
	}
	s.renderScreen()
	s.println(s.Theme().Dim("اكتب /help لعرض الأوامر"))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		quit, err := s.Handle(ctx, scanner.Text())
		if err != nil {
			s.println(s.Theme().Highlight("⚠ %v", err))
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Handle executes one input line. Lines starting with "/" are commands, any
// other text goes to the current screen.
func (s *Session) Handle(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		return false, s.input(ctx, line)
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "quit", "exit":
		return true, nil
	case "help":
		s.help()
	case "home":
		s.switchScreen(ScreenHome)
	case "stories":
		s.switchScreen(ScreenStories)
	case "chat":
		s.switchScreen(ScreenChat)
	case "briefing":
		s.switchScreen(ScreenBriefing)
	case "themes":
		s.listThemes()
	case "theme":
		return false, s.setTheme(arg)
	case "voices":
		s.listVoices()
	case "voice":
		return false, s.setVoice(arg)
	case "new":
		return false, s.generate(arg)
	case "list":
		s.listStories()
	case "open":
		return false, s.open(arg)
	case "play":
		return false, s.player.Play()
	case "pause":
		s.player.Pause()
	case "toggle":
		return false, s.player.Toggle()
	case "stop":
		s.player.Stop()
	case "next":
		return false, s.player.Next()
	case "prev":
		return false, s.player.Previous()
	case "from":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("scene number: %w", err)
		}
		return false, s.player.PlayFrom(n - 1)
	case "status":
		s.status()
	case "done":
		return false, s.toggleTask(arg)
	case "speak":
		return false, s.toggleBriefing()
	case "wisdom":
		return false, s.showWisdoms(arg)
	default:
		return false, fmt.Errorf("%w: /%s", errUnknownCommand, name)
	}
	return false, nil
}

func (s *Session) input(ctx context.Context, text string) error {
	switch s.Screen() {
	case ScreenChat:
		return s.send(ctx, text)
	case ScreenStories, ScreenHome:
		return s.generate(text)
	}
	s.println(s.Theme().Dim("اكتب /help لعرض الأوامر"))
	return nil
}

// switchScreen leaves the current screen, canceling any narration, and shows target.
func (s *Session) switchScreen(target Screen) {
	s.mu.Lock()
	changed := s.screen != target
	s.screen = target
	s.mu.Unlock()

	if changed {
		s.player.Stop()
	}
	s.renderScreen()
}

func (s *Session) renderScreen() {
	t := s.Theme()
	switch s.Screen() {
	case ScreenHome:
		renderHome(s.out, t, homeView{
			now:     s.now(),
			stories: s.library.Len(),
			wisdom:  story.GetWisdomOfTheDay(),
		})
	case ScreenStories:
		s.println(t.Title("حان وقت القصة!"))
		s.println(t.Dim("اكتب فكرة لقصة جديدة، أو /list لعرض المكتبة"))
		s.listStories()
	case ScreenChat:
		for _, m := range s.chat.Messages() {
			s.printMessage(m)
		}
	case ScreenBriefing:
		s.renderBriefing()
	}
}

func (s *Session) generate(prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil
	}
	st := s.generator.Generate(prompt)
	s.library.Add(st)
	s.logger.Info("story generated",
		zap.String("id", st.ID),
		zap.String("genre", string(st.Genre)),
		zap.Int("scenes", len(st.Scenes)))

	s.mu.Lock()
	s.screen = ScreenStories
	s.mu.Unlock()

	return s.load(st, true)
}

func (s *Session) open(ref string) error {
	if ref == "" {
		st, ok := s.library.Latest()
		if !ok {
			return story.ErrStoryNotFound
		}
		return s.load(st, false)
	}
	st, err := s.library.Find(ref)
	if err != nil {
		return err
	}
	return s.load(st, false)
}

func (s *Session) load(st story.Story, play bool) error {
	if err := s.player.Load(st); err != nil {
		return err
	}
	t := s.Theme()
	s.println(t.Title("%s", st.Title))
	s.println(t.Dim("%s · %s", st.Genre.Label(), st.Brief))
	if !play {
		return nil
	}
	return s.player.Play()
}

// Narrate reads st aloud from the first scene and blocks until it finishes,
// fails or ctx is done.
func (s *Session) Narrate(ctx context.Context, st story.Story) error {
	done := make(chan error, 1)
	unsubscribe := s.player.Subscribe(func(e narration.Event) {
		var result error
		switch e.Kind {
		case narration.EventFinished:
		case narration.EventError:
			result = e.Err
		default:
			return
		}
		select {
		case done <- result:
		default:
		}
	})
	defer unsubscribe()

	if err := s.load(st, true); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		s.player.Stop()
		return nil
	case err := <-done:
		return err
	}
}

func (s *Session) listStories() {
	t := s.Theme()
	for i, st := range s.library.List() {
		s.println(fmt.Sprintf("%s %s %s", t.Highlight("%d.", i+1), t.Body("%s", st.Title), t.Dim("(%s)", st.Genre.Label())))
	}
}

func (s *Session) status() {
	st := s.player.Status()
	if st.Scenes == 0 {
		s.println(s.Theme().Dim("%s", narration.ErrNoStory))
		return
	}
	s.println(s.Theme().Dim("%s · %s · %d/%d", st.Title, st.State, st.Index+1, st.Scenes))
}

func (s *Session) onEvent(e narration.Event) {
	t := s.Theme()
	switch e.Kind {
	case narration.EventSceneStarted:
		s.println(fmt.Sprintf("%s %s %s", e.Scene.Emotion.Badge(), t.Highlight("%s:", e.Scene.Speaker), t.Body("%s", e.Scene.Text)))
	case narration.EventPaused:
		s.println(t.Dim("⏸"))
	case narration.EventStopped:
		s.println(t.Dim("⏹"))
	case narration.EventFinished:
		s.println(t.Dim("✨ النهاية"))
	case narration.EventError:
		s.println(t.Highlight("⚠ %v", e.Err))
	}
}

func (s *Session) listThemes() {
	current := s.Theme()
	for _, t := range theme.List() {
		marker := " "
		if t.ID == current.ID {
			marker = "•"
		}
		s.println(fmt.Sprintf("%s %s %s", marker, t.Title("%s", t.Name), t.Dim("%s", t.ID)))
	}
}

func (s *Session) setTheme(id string) error {
	t, err := theme.Get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
	s.println(t.Title("%s", t.Name))
	return nil
}

func (s *Session) listVoices() {
	t := s.Theme()
	if advisory := s.voices.Advisory(); advisory != "" {
		s.println(t.Dim("%s", advisory))
		return
	}
	selected, _ := s.voices.Selected()
	for _, v := range s.voices.Available() {
		marker := " "
		if v.ID == selected.ID {
			marker = "•"
		}
		s.println(fmt.Sprintf("%s %s %s", marker, t.Body("%s", v), t.Dim("%s", v.ID)))
	}
}

// setVoice picks the voice for the rest of the session; an empty name goes
// back to the engine default.
func (s *Session) setVoice(name string) error {
	if name == "" {
		s.voices.Clear()
		return nil
	}
	if err := s.voices.Select(name); err != nil {
		return err
	}
	v, _ := s.voices.Selected()
	s.println(s.Theme().Dim("%s", v))
	return nil
}

// showWisdoms prints count distinct random wisdoms, one when arg is empty.
func (s *Session) showWisdoms(arg string) error {
	count := 1
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return fmt.Errorf("wisdom count: %q", arg)
		}
		count = n
	}

	s.mu.Lock()
	picked := story.GetRandomWisdoms(s.rnd, count)
	s.mu.Unlock()

	t := s.Theme()
	for _, w := range picked {
		s.println(fmt.Sprintf("%s %s", t.Body("%q", w.Text), t.Dim("(%s)", w.Theme)))
	}
	return nil
}

func (s *Session) renderBriefing() {
	t := s.Theme()
	s.println(t.Title("إحاطتك اليومية"))
	s.println(t.Body("☁ %d° %s", s.weather.Celsius, s.weather.Condition))
	s.println(t.Title("مهامك:"))
	for _, task := range s.board.Tasks() {
		check := "○"
		if task.Done {
			check = "●"
		}
		s.println(fmt.Sprintf("%s %s %s %s", check, t.Highlight("%d", task.ID), t.Body("%s", task.Text), t.Dim("%s", task.DisplayTime())))
	}
	s.println(t.Dim("/done <رقم> لتبديل المهمة، /speak للاستماع"))
}

func (s *Session) toggleTask(arg string) error {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("task number: %w", err)
	}
	if _, err := s.board.Toggle(id); err != nil {
		return err
	}
	s.renderBriefing()
	return nil
}

// toggleBriefing reads the briefing aloud, or stops it when it is being read.
func (s *Session) toggleBriefing() error {
	if s.player.Status().State == narration.Speaking {
		s.player.Stop()
		return nil
	}
	if err := s.player.Load(briefing.Story(s.weather, s.board)); err != nil {
		return err
	}
	return s.player.Play()
}

func (s *Session) send(ctx context.Context, text string) error {
	s.println(s.Theme().Dim("يكتب..."))
	reply, ok, err := s.chat.Send(ctx, text)
	if err != nil || !ok {
		return err
	}
	s.printMessage(reply)
	return nil
}

func (s *Session) printMessage(m assistant.Message) {
	t := s.Theme()
	if m.Sender == assistant.SenderUser {
		s.println(fmt.Sprintf("%s %s", t.Dim("أنت:"), t.Body("%s", m.Text)))
		return
	}
	s.println(fmt.Sprintf("%s %s", t.Highlight("راوي:"), t.Body("%s", m.Text)))
}

func (s *Session) help() {
	t := s.Theme()
	lines := [][2]string{
		{"/home /stories /chat /briefing", "التنقل بين الشاشات"},
		{"/new <فكرة>", "قصة جديدة"},
		{"/list, /open <رقم>", "المكتبة"},
		{"/play /pause /toggle /stop /next /prev /from <رقم>", "التحكم في السرد"},
		{"/status", "حالة السرد"},
		{"/done <رقم>, /speak", "الإحاطة اليومية"},
		{"/wisdom [عدد]", "حكمة عشوائية"},
		{"/themes, /theme <id>", "المظهر"},
		{"/voices, /voice <اسم>", "الصوت"},
		{"/quit", "خروج"},
	}
	for _, l := range lines {
		s.println(fmt.Sprintf("%s  %s", t.Highlight("%s", l[0]), t.Dim("%s", l[1])))
	}
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
