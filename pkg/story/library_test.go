package story

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_SeededAndAppendOnly(t *testing.T) {
	l := NewLibrary(SeedStory())
	require.Equal(t, 1, l.Len())

	g := newTestGenerator(1)
	first := g.Generate("قمر")
	first.ID = "aaa-111"
	second := g.Generate("غابة")
	second.ID = "bbb-222"
	l.Add(first)
	l.Add(second)

	list := l.List()
	require.Len(t, list, 3)
	assert.Equal(t, SeedStoryID, list[0].ID)
	assert.Equal(t, "aaa-111", list[1].ID)
	assert.Equal(t, "bbb-222", list[2].ID)

	latest, ok := l.Latest()
	require.True(t, ok)
	assert.Equal(t, "bbb-222", latest.ID)
}

func TestLibrary_ListIsACopy(t *testing.T) {
	l := NewLibrary(SeedStory())
	list := l.List()
	list[0].Title = "changed"

	again := l.List()
	assert.Equal(t, "عمر وبوابة المدرسة", again[0].Title)
}

func TestLibrary_Latest_Empty(t *testing.T) {
	_, ok := NewLibrary().Latest()
	assert.False(t, ok)
}

func TestLibrary_Get(t *testing.T) {
	l := NewLibrary(SeedStory())

	s, err := l.Get(SeedStoryID)
	require.NoError(t, err)
	assert.Len(t, s.Scenes, 4)

	_, err = l.Get("missing")
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestLibrary_Find(t *testing.T) {
	l := NewLibrary(
		Story{ID: "abc-1", Title: "one"},
		Story{ID: "abd-2", Title: "two"},
		Story{ID: "xyz-3", Title: "three"},
	)

	tests := []struct {
		ref   string
		title string
		err   bool
	}{
		{ref: "1", title: "one"},
		{ref: "3", title: "three"},
		{ref: "4", err: true},
		{ref: "0", err: true},
		{ref: "abd-2", title: "two"},
		{ref: "xy", title: "three"},
		{ref: "ab", err: true},
		{ref: "nope", err: true},
		{ref: "  ", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			s, err := l.Find(tt.ref)
			if tt.err {
				assert.ErrorIs(t, err, ErrStoryNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, s.Title)
		})
	}
}

func TestLibrary_FindNumericID(t *testing.T) {
	l := NewLibrary(
		Story{ID: "123abc", Title: "digits"},
		Story{ID: "2024", Title: "year"},
	)

	s, err := l.Find("123")
	require.NoError(t, err, "a number past the list is an id prefix")
	assert.Equal(t, "digits", s.Title)

	s, err = l.Find("2024")
	require.NoError(t, err)
	assert.Equal(t, "year", s.Title)

	s, err = l.Find("2")
	require.NoError(t, err, "positions win over ids")
	assert.Equal(t, "year", s.Title)

	_, err = l.Find("999")
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestLibrary_ConcurrentAdd(t *testing.T) {
	l := NewLibrary()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Add(Story{ID: fmt.Sprintf("s-%d", i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, l.Len())
}
