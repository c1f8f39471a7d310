package pkg

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrejsstepanovs/rawi/pkg/narration"
	"github.com/andrejsstepanovs/rawi/pkg/tts"
	"github.com/andrejsstepanovs/rawi/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EngineText     = "text"
	EngineEspeak   = "espeak"
	EngineOpenAI   = "openai"
	EngineDeepgram = "deepgram"
)

type Config struct {
	Engine        string        `validate:"oneof=text espeak openai deepgram"`
	Language      string        `validate:"required"`
	SpeechRate    float64       `validate:"gt=0,lte=4"`
	SceneDelay    time.Duration `validate:"gte=0"`
	Theme         string        `validate:"required"`
	Voice         string
	ReadSpeed     int    `validate:"gt=0"`
	EspeakBin     string `validate:"required"`
	AudioPlayer   []string
	OutputDir     string `validate:"required"`
	OpenAIModel   string
	DeepgramModel string
	OpenAIKey     string `validate:"required_if=Engine openai"`
	DeepgramKey   string `validate:"required_if=Engine deepgram"`
	LogLevel      string `validate:"oneof=debug info warn error"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("RAWI_ENGINE", EngineText)
	v.SetDefault("RAWI_LANGUAGE", tts.DefaultLanguage)
	v.SetDefault("RAWI_SPEECH_RATE", tts.DefaultRate)
	v.SetDefault("RAWI_SCENE_DELAY", narration.DefaultDelay.String())
	v.SetDefault("RAWI_THEME", "default")
	v.SetDefault("RAWI_READSPEED", utils.DefaultReadSpeed)
	v.SetDefault("RAWI_ESPEAK_BIN", "espeak-ng")
	v.SetDefault("RAWI_AUDIO_PLAYER", strings.Join(tts.DefaultAudioPlayer, " "))
	v.SetDefault("RAWI_OUTPUT_DIR", ".")
	v.SetDefault("RAWI_OPENAI_MODEL", tts.DefaultOpenAIModel)
	v.SetDefault("RAWI_DEEPGRAM_MODEL", tts.DefaultDeepgramModel)
	v.SetDefault("RAWI_LOG_LEVEL", "info")
}

// LoadConfig reads the settings from v, filling in defaults, and validates them.
func LoadConfig(v *viper.Viper) (Config, error) {
	setDefaults(v)

	cfg := Config{
		Engine:        strings.ToLower(strings.TrimSpace(v.GetString("RAWI_ENGINE"))),
		Language:      v.GetString("RAWI_LANGUAGE"),
		SpeechRate:    v.GetFloat64("RAWI_SPEECH_RATE"),
		SceneDelay:    v.GetDuration("RAWI_SCENE_DELAY"),
		Theme:         v.GetString("RAWI_THEME"),
		Voice:         v.GetString("RAWI_VOICE"),
		ReadSpeed:     v.GetInt("RAWI_READSPEED"),
		EspeakBin:     v.GetString("RAWI_ESPEAK_BIN"),
		AudioPlayer:   strings.Fields(v.GetString("RAWI_AUDIO_PLAYER")),
		OutputDir:     v.GetString("RAWI_OUTPUT_DIR"),
		OpenAIModel:   v.GetString("RAWI_OPENAI_MODEL"),
		DeepgramModel: v.GetString("RAWI_DEEPGRAM_MODEL"),
		OpenAIKey:     v.GetString("OPENAI_API_KEY"),
		DeepgramKey:   v.GetString("DEEPGRAM_API_KEY"),
		LogLevel:      strings.ToLower(v.GetString("RAWI_LOG_LEVEL")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// NewLogger builds a console logger on stderr, so it never mixes with the
// story text printed to stdout.
func NewLogger(level string) (*zap.Logger, error) {
	atomic := zap.NewAtomicLevel()
	if level == "" {
		level = "info"
	}
	if err := atomic.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	zapConfig := zap.Config{
		Level:             atomic,
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          "console",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// NewSynthesizer returns the cloud synthesizer of the configured engine,
// wrapped with retries. Local engines have none.
func NewSynthesizer(cfg Config, logger *zap.Logger) (tts.Synthesizer, error) {
	switch cfg.Engine {
	case EngineOpenAI:
		return tts.NewRetrySynthesizer(tts.NewOpenAISynthesizer(cfg.OpenAIKey, cfg.OpenAIModel), logger), nil
	case EngineDeepgram:
		return tts.NewRetrySynthesizer(tts.NewDeepgramSynthesizer(cfg.DeepgramKey, cfg.DeepgramModel), logger), nil
	}
	return nil, fmt.Errorf("%w: %q has no audio synthesizer, use %s or %s", tts.ErrUnknownEngine, cfg.Engine, EngineOpenAI, EngineDeepgram)
}

// NewEngine builds the speech engine named in cfg. The text engine stays
// silent: the caller renders scenes from player events.
func NewEngine(cfg Config, logger *zap.Logger) (tts.Engine, error) {
	switch cfg.Engine {
	case EngineText, "":
		return tts.NewTextEngine(nil, cfg.Language, cfg.ReadSpeed), nil
	case EngineEspeak:
		return tts.NewCommandEngine(cfg.EspeakBin, logger), nil
	case EngineOpenAI, EngineDeepgram:
		synth, err := NewSynthesizer(cfg, logger)
		if err != nil {
			return nil, err
		}
		return tts.NewAudioEngine(synth, cfg.AudioPlayer, "", logger), nil
	}
	return nil, fmt.Errorf("%w: %q", tts.ErrUnknownEngine, cfg.Engine)
}
