package story

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

var ErrStoryNotFound = errors.New("story not found")

// Library is the append-only, in-memory list of stories of one session.
// Insertion order is recency order: the last story added is the newest.
type Library struct {
	mu      sync.RWMutex
	stories []Story
}

func NewLibrary(seed ...Story) *Library {
	l := &Library{stories: make([]Story, 0, len(seed))}
	for _, s := range seed {
		l.Add(s)
	}
	return l
}

func (l *Library) Add(s Story) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stories = append(l.stories, s)
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.stories)
}

func (l *Library) List() []Story {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Story, len(l.stories))
	copy(out, l.stories)
	return out
}

func (l *Library) Latest() (Story, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.stories) == 0 {
		return Story{}, false
	}
	return l.stories[len(l.stories)-1], true
}

func (l *Library) Get(id string) (Story, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, s := range l.stories {
		if s.ID == id {
			return s, nil
		}
	}
	return Story{}, fmt.Errorf("%w: %s", ErrStoryNotFound, id)
}

// Find resolves ref as a 1-based position in the list, an exact id, or a
// unique id prefix, in that order. A number outside the list is tried as an id.
func (l *Library) Find(ref string) (Story, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Story{}, fmt.Errorf("%w: empty reference", ErrStoryNotFound)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if s, ok := l.at(n); ok {
			return s, nil
		}
	}
	if s, err := l.Get(ref); err == nil {
		return s, nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	var found []Story
	for _, s := range l.stories {
		if strings.HasPrefix(s.ID, ref) {
			found = append(found, s)
		}
	}
	if len(found) != 1 {
		return Story{}, fmt.Errorf("%w: %q matches %d stories", ErrStoryNotFound, ref, len(found))
	}
	return found[0], nil
}

func (l *Library) at(position int) (Story, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if position < 1 || position > len(l.stories) {
		return Story{}, false
	}
	return l.stories[position-1], true
}
