package narration

import "github.com/andrejsstepanovs/rawi/pkg/story"

type EventKind int

const (
	// EventSceneStarted is emitted when a scene is handed to the engine.
	EventSceneStarted EventKind = iota
	// EventSpeechStarted is emitted when the engine reports audio started.
	EventSpeechStarted
	EventPaused
	EventStopped
	// EventFinished is emitted after the last scene was read.
	EventFinished
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventSceneStarted:
		return "scene-started"
	case EventSpeechStarted:
		return "speech-started"
	case EventPaused:
		return "paused"
	case EventStopped:
		return "stopped"
	case EventFinished:
		return "finished"
	case EventError:
		return "error"
	}
	return "unknown"
}

type Event struct {
	Kind  EventKind
	Index int
	Scene story.Scene
	Err   error
}

// Observer is called outside the player lock; it may call back into the player.
type Observer func(Event)
