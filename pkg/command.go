package pkg

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/andrejsstepanovs/rawi/pkg/briefing"
	"github.com/andrejsstepanovs/rawi/pkg/story"
	"github.com/andrejsstepanovs/rawi/pkg/theme"
	"github.com/andrejsstepanovs/rawi/pkg/tts"
	"github.com/andrejsstepanovs/rawi/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewCommands returns every sub-command of the rawi root command.
func NewCommands() []*cobra.Command {
	storyCmd := &cobra.Command{
		Use:   "story",
		Short: "Generate, list, play and export stories",
	}
	storyCmd.AddCommand(
		newGenerateCommand(),
		newListCommand(),
		newPlayCommand(),
		newExportCommand(),
	)

	return []*cobra.Command{
		storyCmd,
		newVoicesCommand(),
		newThemesCommand(),
		newBriefingCommand(),
		newScreenCommand("chat", "Chat with the assistant", ScreenChat),
		newScreenCommand("session", "Start the interactive app", ScreenHome),
		newHomeCommand(),
	}
}

func setup() (Config, *zap.Logger, error) {
	cfg, err := LoadConfig(viper.GetViper())
	if err != nil {
		return Config{}, nil, err
	}
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, logger, nil
}

// resolveStory finds ref in the library, or treats the words as a new prompt.
// No words means the seed story.
func resolveStory(library *story.Library, generator *story.Generator, args []string) story.Story {
	ref := strings.TrimSpace(strings.Join(args, " "))
	if ref == "" {
		return story.SeedStory()
	}
	if st, err := library.Find(ref); err == nil {
		return st
	}
	return generator.Generate(ref)
}

// storyFromFile reads a story saved by "story generate --save".
func storyFromFile(file string) (story.Story, error) {
	data, err := utils.LoadTextFromFile(file)
	if err != nil {
		return story.Story{}, err
	}
	return story.ParseJson(data)
}

// pickStory prefers a saved story file over the library lookup.
func pickStory(library *story.Library, fromJson string, args []string) (story.Story, error) {
	if fromJson != "" {
		return storyFromFile(fromJson)
	}
	return resolveStory(library, story.NewGenerator(), args), nil
}

func saveStoryJson(dir string, st story.Story) (string, error) {
	content, err := st.ToJson()
	if err != nil {
		return "", err
	}
	return utils.SaveTextToFile(dir, st.Title, "json", content)
}

func printStory(cmd *cobra.Command, st story.Story, asJson bool) error {
	if asJson {
		out, err := utils.ToPrettyJson(st, false)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), st.BuildContent())
	return nil
}

func newGenerateCommand() *cobra.Command {
	var asJson, save bool
	cmd := &cobra.Command{
		Use:   "generate <prompt...>",
		Short: "Generate a story from a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				return nil
			}
			st := story.NewGenerator().Generate(prompt)
			logger.Info("story generated", zap.String("id", st.ID), zap.String("genre", string(st.Genre)))

			if save {
				file, err := saveStoryJson(cfg.OutputDir, st)
				if err != nil {
					return err
				}
				logger.Info("JSON saved", zap.String("file", file))
			}
			return printStory(cmd, st, asJson)
		},
	}
	cmd.Flags().BoolVar(&asJson, "json", false, "print the story as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "save the story JSON to the output directory")
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stories of the library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := theme.Default()
			for i, st := range story.NewLibrary(story.SeedStory()).List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", t.Highlight("%d.", i+1), t.Body("%s", st.Title), t.Dim("[%s] %s", st.ID, st.Genre.Label()))
			}
			return nil
		},
	}
}

func newPlayCommand() *cobra.Command {
	var fromJson string
	cmd := &cobra.Command{
		Use:   "play [ref|prompt...]",
		Short: "Read a story aloud, scene by scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			engine, err := NewEngine(cfg, logger)
			if err != nil {
				return err
			}
			s := NewSession(cmd.Context(), cfg, engine, cmd.OutOrStdout(), logger, WithScreen(ScreenStories))
			defer s.Close()

			st, err := pickStory(s.Library(), fromJson, args)
			if err != nil {
				return err
			}
			return s.Narrate(cmd.Context(), st)
		},
	}
	cmd.Flags().StringVar(&fromJson, "from-json", "", "play a story saved as JSON")
	return cmd
}

func newExportCommand() *cobra.Command {
	var gap, fromJson string
	cmd := &cobra.Command{
		Use:   "export [ref|prompt...]",
		Short: "Synthesize a story into one MP3 file next to its JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			synth, err := NewSynthesizer(cfg, logger)
			if err != nil {
				return err
			}

			st, err := pickStory(story.NewLibrary(story.SeedStory()), fromJson, args)
			if err != nil {
				return err
			}
			jsonFile, err := saveStoryJson(cfg.OutputDir, st)
			if err != nil {
				return err
			}
			logger.Info("JSON saved", zap.String("file", jsonFile))

			exporter := &tts.Exporter{
				Synth:     synth,
				Dir:       cfg.OutputDir,
				ChunkSize: tts.DefaultChunkSize,
				GapFile:   gap,
				Logger:    logger,
			}
			base := tts.SpeechRequest{Voice: cfg.Voice, Language: cfg.Language, Speed: cfg.SpeechRate}
			soundFile, err := exporter.Export(cmd.Context(), st.Texts(), base, utils.SanitizeFilename(st.Title)+".mp3")
			if err != nil {
				return err
			}

			logger.Info("Success!")
			fmt.Fprintf(cmd.OutOrStdout(), "Story: %s\njson: %s\nmp3: %s\n", st.Title, jsonFile, soundFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&gap, "gap", "", "MP3 file to insert between scenes")
	cmd.Flags().StringVar(&fromJson, "from-json", "", "export a story saved as JSON")
	return cmd
}

func newVoicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "voices",
		Short: "List the Arabic voices of the configured engine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			engine, err := NewEngine(cfg, logger)
			if err != nil {
				return err
			}
			selection := loadVoices(cmd.Context(), engine, logger)
			if advisory := selection.Advisory(); advisory != "" {
				fmt.Fprintln(cmd.OutOrStdout(), advisory)
				return nil
			}
			for _, v := range selection.Available() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", v.ID, v, v.Provider)
			}
			return nil
		},
	}
}

func newThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "Show the available themes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, t := range theme.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s %s\n", t.ID, t.Title("%s", t.Name), t.Dim("%s", "نص تجريبي"))
			}
			return nil
		},
	}
}

func newBriefingCommand() *cobra.Command {
	var done []int
	var speak bool
	cmd := &cobra.Command{
		Use:   "briefing",
		Short: "Show today's weather and tasks, optionally read aloud",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			engine, err := NewEngine(cfg, logger)
			if err != nil {
				return err
			}
			s := NewSession(cmd.Context(), cfg, engine, cmd.OutOrStdout(), logger, WithScreen(ScreenBriefing))
			defer s.Close()

			for _, id := range done {
				if _, err := s.board.Toggle(id); err != nil {
					return err
				}
			}
			s.renderBriefing()

			if !speak {
				return nil
			}
			return s.Narrate(cmd.Context(), briefing.Story(s.weather, s.board))
		},
	}
	cmd.Flags().IntSliceVar(&done, "toggle", nil, "task numbers to mark done or undone")
	cmd.Flags().BoolVar(&speak, "speak", false, "read the briefing aloud")
	return cmd
}

func newHomeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the home screen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			t, _ := theme.Get(cfg.Theme)
			renderHome(cmd.OutOrStdout(), t, homeView{
				now:     time.Now(),
				stories: story.NewLibrary(story.SeedStory()).Len(),
				wisdom:  story.GetWisdomOfTheDay(),
			})
			return nil
		},
	}
}

func newScreenCommand(use, short string, screen Screen) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			engine, err := NewEngine(cfg, logger)
			if err != nil {
				return err
			}
			s := NewSession(cmd.Context(), cfg, engine, cmd.OutOrStdout(), logger, WithScreen(screen))
			return s.Run(cmd.Context(), os.Stdin)
		},
	}
}
