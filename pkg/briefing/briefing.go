// Package briefing builds the daily briefing: weather, today's tasks and a
// short spoken summary of both.
package briefing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/andrejsstepanovs/rawi/pkg/story"
)

var ErrUnknownTask = errors.New("unknown task")

// Speaker is the voice attribution of the spoken briefing.
const Speaker = "راوي"

type Task struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
	// Time is the 24h clock time, HH:MM.
	Time string `json:"time"`
	Done bool   `json:"done"`
}

// DisplayTime renders Time the way the app shows it, e.g. "02:00 م".
func (t Task) DisplayTime() string {
	var hour, minute int
	if _, err := fmt.Sscanf(t.Time, "%d:%d", &hour, &minute); err != nil {
		return t.Time
	}
	suffix := "ص"
	if hour >= 12 {
		suffix = "م"
	}
	if hour > 12 {
		hour -= 12
	}
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour, minute, suffix)
}

type Weather struct {
	Celsius   int    `json:"celsius"`
	Condition string `json:"condition"`
}

// Board is today's task list. Safe for concurrent use.
type Board struct {
	mu    sync.RWMutex
	tasks []Task
}

func NewBoard(tasks ...Task) *Board {
	b := &Board{tasks: make([]Task, len(tasks))}
	copy(b.tasks, tasks)
	return b
}

func DefaultTasks() []Task {
	return []Task{
		{ID: 1, Text: "اجتماع فريق التصميم", Time: "10:00"},
		{ID: 2, Text: "شراء قهوة", Time: "14:00", Done: true},
		{ID: 3, Text: "قراءة قصة قبل النوم", Time: "21:00"},
	}
}

func DefaultWeather() Weather {
	return Weather{Celsius: 25, Condition: "غائم جزئياً"}
}

func (b *Board) Tasks() []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Toggle flips the done flag of task id and returns the new value.
func (b *Board) Toggle(id int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks[i].Done = !b.tasks[i].Done
			return b.tasks[i].Done, nil
		}
	}
	return false, fmt.Errorf("%w: %d", ErrUnknownTask, id)
}

// Pending returns the tasks not done yet, earliest first.
func (b *Board) Pending() []Task {
	pending := make([]Task, 0)
	for _, t := range b.Tasks() {
		if !t.Done {
			pending = append(pending, t)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Time < pending[j].Time
	})
	return pending
}

// Script is the text read out for the briefing.
func Script(w Weather, b *Board) string {
	lines := []string{
		"أهلاً بك.",
		fmt.Sprintf("درجة الحرارة اليوم %d درجة، والجو %s.", w.Celsius, w.Condition),
		fmt.Sprintf("لديك %d مهام اليوم.", len(b.Tasks())),
	}

	pending := b.Pending()
	if len(pending) == 0 {
		lines = append(lines, "أنجزت كل مهامك، أحسنت!")
	} else {
		first := pending[0]
		lines = append(lines, fmt.Sprintf("أهمها %s في الساعة %s.", first.Text, first.DisplayTime()))
	}

	lines = append(lines, "لا تنسى شرب قهوتك. أتمنى لك يوماً سعيداً.")
	return strings.Join(lines, " ")
}

// Story wraps the script in a single-scene story so it can be narrated.
func Story(w Weather, b *Board) story.Story {
	return story.Story{
		ID:     "daily-briefing",
		Title:  "إحاطتك اليومية",
		Genre:  story.GenreValues,
		Brief:  "ملخص يومك",
		Scenes: story.Scenes{{Speaker: Speaker, Text: Script(w, b), Emotion: story.EmotionCalm}},
	}
}
