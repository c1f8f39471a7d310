package tts

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"
)

// DefaultChunkSize keeps requests well under the 4096 character limit of the
// OpenAI speech endpoint.
const DefaultChunkSize = 2000

type SpeechRequest struct {
	Text     string
	Voice    string
	Language string
	Speed    float64
}

// Synthesizer turns text into an MP3 file.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SpeechRequest, outputFile string) error
	Voices() []Voice
}

// SynthesizeToFile synthesizes long text in sentence-bounded chunks and joins
// the parts into outputFile. Intermediate files are removed.
func SynthesizeToFile(ctx context.Context, s Synthesizer, req SpeechRequest, dir, outputFile string, chunkSize int, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	chunks := chunkText(req.Text, chunkSize)
	if len(chunks) == 0 {
		return fmt.Errorf("nothing to synthesize")
	}

	target := path.Join(dir, outputFile)
	if len(chunks) == 1 {
		req.Text = chunks[0]
		return s.Synthesize(ctx, req, target)
	}

	files := make([]string, 0, len(chunks))
	for k, chunk := range chunks {
		file := path.Join(dir, fmt.Sprintf("%d_%s", k, outputFile))
		part := req
		part.Text = strings.TrimSpace(chunk)

		logger.Debug("synthesizing chunk", zap.Int("chunk", k), zap.Int("chars", len([]rune(part.Text))))
		if err := s.Synthesize(ctx, part, file); err != nil {
			_ = Remove(files)
			return fmt.Errorf("chunk %d processing failed: %w", k, err)
		}
		files = append(files, file)
	}

	if err := JoinMp3Files(files, target, "", logger); err != nil {
		return fmt.Errorf("failed to join MP3 files: %w", err)
	}
	if err := Remove(files); err != nil {
		logger.Warn("failed to remove temporary files", zap.Error(err))
	}
	return nil
}

func writeAudio(outputFile string, data []byte) error {
	if err := os.MkdirAll(path.Dir(outputFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(outputFile, data, 0644)
}
