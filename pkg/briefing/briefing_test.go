package briefing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	b := NewBoard(DefaultTasks()...)

	done, err := b.Toggle(1)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = b.Toggle(2)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = b.Toggle(42)
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestNewBoard_CopiesTasks(t *testing.T) {
	tasks := DefaultTasks()
	b := NewBoard(tasks...)
	_, err := b.Toggle(1)
	require.NoError(t, err)

	assert.False(t, tasks[0].Done)
}

func TestPending_EarliestFirst(t *testing.T) {
	b := NewBoard(
		Task{ID: 1, Text: "متأخر", Time: "21:00"},
		Task{ID: 2, Text: "منجز", Time: "08:00", Done: true},
		Task{ID: 3, Text: "مبكر", Time: "09:30"},
	)

	pending := b.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, 3, pending[0].ID)
	assert.Equal(t, 1, pending[1].ID)
}

func TestDisplayTime(t *testing.T) {
	assert.Equal(t, "10:00 ص", Task{Time: "10:00"}.DisplayTime())
	assert.Equal(t, "02:00 م", Task{Time: "14:00"}.DisplayTime())
	assert.Equal(t, "12:15 م", Task{Time: "12:15"}.DisplayTime())
	assert.Equal(t, "12:05 ص", Task{Time: "00:05"}.DisplayTime())
	assert.Equal(t, "قريباً", Task{Time: "قريباً"}.DisplayTime())
}

func TestScript(t *testing.T) {
	b := NewBoard(DefaultTasks()...)

	script := Script(DefaultWeather(), b)
	assert.Contains(t, script, "25 درجة")
	assert.Contains(t, script, "غائم جزئياً")
	assert.Contains(t, script, "لديك 3 مهام")
	assert.Contains(t, script, "أهمها اجتماع فريق التصميم في الساعة 10:00 ص")
}

func TestScript_AllDone(t *testing.T) {
	b := NewBoard(Task{ID: 1, Text: "شراء قهوة", Time: "14:00", Done: true})

	assert.Contains(t, Script(DefaultWeather(), b), "أنجزت كل مهامك")
}

func TestStory_SingleScene(t *testing.T) {
	s := Story(DefaultWeather(), NewBoard(DefaultTasks()...))

	require.Len(t, s.Scenes, 1)
	assert.Equal(t, Speaker, s.Scenes[0].Speaker)
	assert.Equal(t, Script(DefaultWeather(), NewBoard(DefaultTasks()...)), s.Scenes[0].Text)
}
