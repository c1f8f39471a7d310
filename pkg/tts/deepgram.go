package tts

import (
	"context"
	"fmt"
	"os"
	"path"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/speak/v1/rest"
	"github.com/deepgram/deepgram-go-sdk/pkg/client/interfaces"
	client "github.com/deepgram/deepgram-go-sdk/pkg/client/speak"
)

const DefaultDeepgramModel = "aura-asteria-en"

// DeepgramSynthesizer uses Deepgram Aura. Aura has no Arabic voices yet, so
// sessions using it show the no-Arabic-voice advisory.
type DeepgramSynthesizer struct {
	APIKey string
	Model  string
}

func NewDeepgramSynthesizer(apiKey, model string) *DeepgramSynthesizer {
	client.InitWithDefault()
	if model == "" {
		model = DefaultDeepgramModel
	}
	return &DeepgramSynthesizer{APIKey: apiKey, Model: model}
}

func (d *DeepgramSynthesizer) Synthesize(ctx context.Context, req SpeechRequest, outputFile string) error {
	model := d.Model
	if req.Voice != "" {
		model = req.Voice
	}
	options := &interfaces.SpeakOptions{
		Model: model,
	}

	if err := os.MkdirAll(path.Dir(outputFile), 0755); err != nil {
		return err
	}

	c := client.NewREST(d.APIKey, &interfaces.ClientOptions{})
	dg := api.New(c)

	if _, err := dg.ToSave(ctx, outputFile, req.Text, options); err != nil {
		return fmt.Errorf("deepgram speak failed: %w", err)
	}
	return nil
}

func (d *DeepgramSynthesizer) Voices() []Voice {
	models := []struct{ id, gender string }{
		{"aura-asteria-en", "F"},
		{"aura-luna-en", "F"},
		{"aura-stella-en", "F"},
		{"aura-hera-en", "F"},
		{"aura-orion-en", "M"},
		{"aura-arcas-en", "M"},
	}

	voices := make([]Voice, 0, len(models))
	for _, m := range models {
		voices = append(voices, Voice{
			ID:       m.id,
			Name:     m.id,
			Locale:   "en-US",
			Gender:   m.gender,
			Provider: "deepgram",
		})
	}
	return voices
}
