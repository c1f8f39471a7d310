package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = "gpt-4o-mini-tts"

// OpenAISynthesizer uses the OpenAI speech endpoint. Its voices are
// multilingual and speak Arabic.
type OpenAISynthesizer struct {
	Client       *openai.Client
	Model        string
	DefaultVoice openai.SpeechVoice
}

func NewOpenAISynthesizer(apiKey, model string) *OpenAISynthesizer {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAISynthesizer{
		Client:       openai.NewClient(apiKey),
		Model:        model,
		DefaultVoice: openai.VoiceShimmer,
	}
}

func (o *OpenAISynthesizer) Synthesize(ctx context.Context, req SpeechRequest, outputFile string) error {
	voice := o.DefaultVoice
	if req.Voice != "" {
		voice = openai.SpeechVoice(req.Voice)
	}
	speed := req.Speed
	if speed == 0 {
		speed = DefaultRate
	}

	request := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.Model),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Voice:          voice,
		Input:          req.Text,
		Speed:          speed,
	}

	resp, err := o.Client.CreateSpeech(ctx, request)
	if err != nil {
		return fmt.Errorf("speech generation error: %w", err)
	}
	defer resp.Close()

	buf, err := io.ReadAll(resp)
	if err != nil {
		return fmt.Errorf("failed to read speech response: %w", err)
	}

	return writeAudio(outputFile, buf)
}

func (o *OpenAISynthesizer) Voices() []Voice {
	names := []openai.SpeechVoice{
		openai.VoiceAlloy,
		openai.VoiceEcho,
		openai.VoiceFable,
		openai.VoiceOnyx,
		openai.VoiceNova,
		openai.VoiceShimmer,
	}

	voices := make([]Voice, 0, len(names))
	for _, name := range names {
		voices = append(voices, Voice{
			ID:        string(name),
			Name:      string(name),
			Languages: []string{"ar", "en", "fr", "es", "de"},
			Provider:  "openai",
		})
	}
	return voices
}
