package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "moneylover",
	Short: "An unofficial client of moneylover.me",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Usage()
		os.Exit(1)
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func initConfig() {
	if debug, _ := rootCmd.PersistentFlags().GetBool("debug"); debug {
		// slog.SetLogLoggerLevel requires Go 1.22+; this is the closest
		// equivalent available on Go 1.21.
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	home, err := os.UserHomeDir()
	if err != nil {
		slog.Error("cannot find home directory", "error", err)
		os.Exit(1)
	}

	viper.SetConfigName("moneylover")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Join(home, ".config"))

	// A missing config just means nobody logged in yet.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("cannot read config", "error", err)
			os.Exit(1)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
