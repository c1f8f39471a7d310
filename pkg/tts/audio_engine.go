package tts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"

	"go.uber.org/zap"
)

// DefaultAudioPlayer plays an MP3 file and exits when it is done.
var DefaultAudioPlayer = []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}

// AudioEngine synthesizes each utterance to an MP3 file with a cloud
// Synthesizer, then plays the file with a local player command.
type AudioEngine struct {
	Synth     Synthesizer
	Player    []string
	Dir       string
	ChunkSize int
	Logger    *zap.Logger

	utterances utterances
}

func NewAudioEngine(synth Synthesizer, player []string, dir string, logger *zap.Logger) *AudioEngine {
	if len(player) == 0 {
		player = DefaultAudioPlayer
	}
	if dir == "" {
		dir = os.TempDir()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioEngine{
		Synth:     synth,
		Player:    player,
		Dir:       dir,
		ChunkSize: DefaultChunkSize,
		Logger:    logger,
	}
}

func (e *AudioEngine) Speak(u Utterance) error {
	if e.Synth == nil {
		return errors.New("audio engine has no synthesizer")
	}
	id, ctx := e.utterances.begin()

	req := SpeechRequest{Text: u.Text, Language: u.Language, Speed: u.Rate}
	if u.Voice != nil {
		req.Voice = u.Voice.ID
	}
	file := fmt.Sprintf("rawi_utterance_%d_%d.mp3", os.Getpid(), id)

	go func() {
		target := path.Join(e.Dir, file)
		defer os.Remove(target)

		if err := SynthesizeToFile(ctx, e.Synth, req, e.Dir, file, e.ChunkSize, e.Logger); err != nil {
			if e.utterances.finish(id) {
				e.Logger.Error("speech synthesis failed", zap.Error(err))
				u.failed(err)
			}
			return
		}
		if !e.utterances.active(id) {
			return
		}

		args := append(append([]string{}, e.Player[1:]...), target)
		cmd := exec.CommandContext(ctx, e.Player[0], args...)
		if err := cmd.Start(); err != nil {
			if e.utterances.finish(id) {
				u.failed(fmt.Errorf("failed to start %s: %w", e.Player[0], err))
			}
			return
		}
		u.started()

		err := cmd.Wait()
		if !e.utterances.finish(id) {
			return
		}
		if err != nil {
			u.failed(fmt.Errorf("%s exited: %w", e.Player[0], err))
			return
		}
		u.ended()
	}()

	return nil
}

func (e *AudioEngine) Cancel() {
	e.utterances.cancelCurrent()
}

func (e *AudioEngine) Voices(_ context.Context) ([]Voice, error) {
	if e.Synth == nil {
		return nil, nil
	}
	return e.Synth.Voices(), nil
}
