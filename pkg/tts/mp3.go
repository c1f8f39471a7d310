package tts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hyacinthus/mp3join"
	"go.uber.org/zap"
)

func Remove(files []string) error {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			return fmt.Errorf("failed to delete %s: %w", file, err)
		}
	}
	return nil
}

func appendMp3(joiner *mp3join.Joiner, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := joiner.Append(f); err != nil {
		return fmt.Errorf("failed to append %s: %w", file, err)
	}
	return nil
}

// JoinMp3Files concatenates files into output. When inbetweenFile is set it is
// inserted between every two files, e.g. a short silence between scenes.
func JoinMp3Files(files []string, output string, inbetweenFile string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	joiner := mp3join.New()

	for i, file := range files {
		logger.Debug("joining audio", zap.Int("index", i), zap.String("file", file))
		if err := appendMp3(joiner, file); err != nil {
			return err
		}

		if inbetweenFile != "" && i < len(files)-1 {
			if err := appendMp3(joiner, inbetweenFile); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}

	outFile, err := os.Create(output)
	if err != nil {
		return err
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, joiner.Reader()); err != nil {
		return err
	}
	return nil
}
