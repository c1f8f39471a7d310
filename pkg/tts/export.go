package tts

import (
	"context"
	"errors"
	"fmt"
	"path"

	"go.uber.org/zap"
)

// Exporter records a sequence of lines into a single MP3 file.
type Exporter struct {
	Synth     Synthesizer
	Dir       string
	ChunkSize int
	GapFile   string
	Logger    *zap.Logger
}

// Export synthesizes every line in order and joins them into Dir/outputFile.
// The returned path is the joined file.
func (e *Exporter) Export(ctx context.Context, lines []string, base SpeechRequest, outputFile string) (string, error) {
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(lines) == 0 {
		return "", errors.New("no lines to export")
	}

	files := make([]string, 0, len(lines))
	for n, line := range lines {
		req := base
		req.Text = line
		part := fmt.Sprintf("scene_%d_%s", n, outputFile)

		logger.Info("synthesizing scene", zap.Int("scene", n+1), zap.Int("of", len(lines)))
		if err := SynthesizeToFile(ctx, e.Synth, req, e.Dir, part, e.ChunkSize, logger); err != nil {
			_ = Remove(files)
			return "", fmt.Errorf("scene %d: %w", n+1, err)
		}
		files = append(files, path.Join(e.Dir, part))
	}

	finalFile := path.Join(e.Dir, outputFile)
	logger.Info("joining audio segments", zap.Int("segments", len(files)))
	if err := JoinMp3Files(files, finalFile, e.GapFile, logger); err != nil {
		return "", fmt.Errorf("failed to join MP3 files: %w", err)
	}

	if err := Remove(files); err != nil {
		logger.Warn("failed to remove temporary files", zap.Error(err))
	}
	return finalFile, nil
}
