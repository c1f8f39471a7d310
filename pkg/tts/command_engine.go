package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// espeak-ng speaks at 175 words per minute unless told otherwise
const espeakBaseSpeed = 175

// CommandEngine speaks through a local espeak-ng process, one per utterance.
type CommandEngine struct {
	Bin    string
	Logger *zap.Logger

	utterances utterances
}

func NewCommandEngine(bin string, logger *zap.Logger) *CommandEngine {
	if bin == "" {
		bin = "espeak-ng"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandEngine{Bin: bin, Logger: logger}
}

func (e *CommandEngine) args(u Utterance) []string {
	voice := languageCode(u.Language)
	if voice == "" {
		voice = languageCode(DefaultLanguage)
	}
	if u.Voice != nil && u.Voice.ID != "" {
		voice = u.Voice.ID
	}

	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	speed := int(float64(espeakBaseSpeed) * rate)

	return []string{"-v", voice, "-s", strconv.Itoa(speed), u.Text}
}

func (e *CommandEngine) Speak(u Utterance) error {
	id, ctx := e.utterances.begin()

	cmd := exec.CommandContext(ctx, e.Bin, e.args(u)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		e.utterances.finish(id)
		return fmt.Errorf("failed to start %s: %w", e.Bin, err)
	}
	e.Logger.Debug("utterance started", zap.Uint64("utterance", id), zap.Int("pid", cmd.Process.Pid))

	go func() {
		if e.utterances.active(id) {
			u.started()
		}

		err := cmd.Wait()
		if !e.utterances.finish(id) {
			// canceled: the process was killed on purpose
			return
		}
		if err != nil {
			e.Logger.Warn("speech process failed", zap.Error(err), zap.String("stderr", stderr.String()))
			u.failed(fmt.Errorf("%s exited: %w", e.Bin, err))
			return
		}
		u.ended()
	}()

	return nil
}

func (e *CommandEngine) Cancel() {
	e.utterances.cancelCurrent()
}

func (e *CommandEngine) Voices(ctx context.Context) ([]Voice, error) {
	out, err := exec.CommandContext(ctx, e.Bin, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s voices: %w", e.Bin, err)
	}
	return parseEspeakVoices(string(out)), nil
}

// parseEspeakVoices reads the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  ar              --/M      Arabic             sem/ar
func parseEspeakVoices(table string) []Voice {
	voices := make([]Voice, 0)
	for _, line := range strings.Split(table, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[0] == "Pty" {
			continue
		}

		gender := ""
		if _, g, ok := strings.Cut(fields[2], "/"); ok {
			gender = g
		}

		voices = append(voices, Voice{
			ID:       fields[1],
			Name:     fields[3],
			Locale:   fields[1],
			Gender:   gender,
			Provider: "espeak-ng",
		})
	}
	return voices
}
