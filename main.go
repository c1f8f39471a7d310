package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrejsstepanovs/rawi/pkg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	initConfig()

	rootCmd := &cobra.Command{
		Use:           "rawi",
		Short:         "Rawi, the Arabic storyteller assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(pkg.NewCommands()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Println(err)
		stop()
		os.Exit(1)
	}
}

func initConfig() {
	// app.env in the working directory, then in the home directory
	viper.SetConfigName("app")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	home, err := os.UserHomeDir()
	if err != nil {
		log.Println("Error getting user home directory:", err)
	} else {
		viper.AddConfigPath(home)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Println("Error reading config file:", err)
		}
	}
}
