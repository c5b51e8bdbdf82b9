/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/avivkr/lineup-tools/internal/lineup"
	"github.com/avivkr/lineup-tools/internal/prompt"
	"github.com/avivkr/lineup-tools/internal/source"
	"github.com/avivkr/lineup-tools/internal/store"
)

var cfgFile string
var databasePath string
var lastFmApiKey string
var lastFmSecret string
var spotifyId string
var spotifySecret string
var youtubeApiKey string
var geminiApiKey string
var telegramToken string
var sendgridApiKey string
var fromAddress string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lineup-tools",
	Short: "Matches playlist listening data against a festival lineup",
	Long: `Fetches festival lineups into a local SQLite cache, matches them
against Spotify playlists or last.fm listening data, and builds
personalized schedules.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.lineup-tools.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./lineup.db", "Path to the SQLite database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVar(
		&lastFmApiKey, "lastfm_api_key", "", "last.fm API key")
	viper.BindPFlag("lastfm_api_key", rootCmd.PersistentFlags().Lookup("lastfm_api_key"))

	rootCmd.PersistentFlags().StringVar(
		&lastFmSecret, "lastfm_secret", "", "last.fm secret")
	viper.BindPFlag("lastfm_secret", rootCmd.PersistentFlags().Lookup("lastfm_secret"))

	rootCmd.PersistentFlags().StringVar(
		&spotifyId, "spotify_id", "", "Spotify client ID")
	viper.BindPFlag("spotify_id", rootCmd.PersistentFlags().Lookup("spotify_id"))

	rootCmd.PersistentFlags().StringVar(
		&spotifySecret, "spotify_secret", "", "Spotify client secret")
	viper.BindPFlag("spotify_secret", rootCmd.PersistentFlags().Lookup("spotify_secret"))

	rootCmd.PersistentFlags().StringVar(
		&youtubeApiKey, "youtube_api_key", "", "YouTube Data API key")
	viper.BindPFlag("youtube_api_key", rootCmd.PersistentFlags().Lookup("youtube_api_key"))

	rootCmd.PersistentFlags().StringVar(
		&geminiApiKey, "gemini_api_key", "", "Gemini API key")
	viper.BindPFlag("gemini_api_key", rootCmd.PersistentFlags().Lookup("gemini_api_key"))

	rootCmd.PersistentFlags().StringVar(
		&telegramToken, "telegram_token", "", "Telegram bot token")
	viper.BindPFlag("telegram_token", rootCmd.PersistentFlags().Lookup("telegram_token"))

	rootCmd.PersistentFlags().StringVar(
		&sendgridApiKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", rootCmd.PersistentFlags().Lookup("sendgrid_api_key"))

	rootCmd.PersistentFlags().StringVar(&fromAddress, "from", "", "From email address")
	viper.BindPFlag("from", rootCmd.PersistentFlags().Lookup("from"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".lineup-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".lineup-tools")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// loadCatalog reads every cached event and folds it into a catalog.
func loadCatalog(dbPath string) (*lineup.Catalog, error) {
	db, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	events, err := db.AllEvents()
	if err != nil {
		return nil, fmt.Errorf("reading cached lineup: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("lineup cache is empty - run update first")
	}

	cat, skipped := lineup.BuildCatalog(events)
	if skipped > 0 {
		fmt.Printf("Skipped %d malformed cached events\n", skipped)
	}
	return cat, nil
}

// newResolver builds the playlist resolver from whatever credentials are
// configured. Either backend may be absent.
func newResolver(ctx context.Context) (*source.Resolver, error) {
	resolver := &source.Resolver{}

	if spotifyId != "" && spotifySecret != "" {
		spotifySource, err := source.NewSpotifySource(ctx, spotifyId, spotifySecret)
		if err != nil {
			return nil, fmt.Errorf("connecting to Spotify: %w", err)
		}
		resolver.Spotify = spotifySource
	}

	if youtubeApiKey != "" {
		youtubeSource, err := source.NewYouTubeSource(ctx, youtubeApiKey)
		if err != nil {
			return nil, fmt.Errorf("connecting to YouTube: %w", err)
		}
		resolver.YouTube = youtubeSource
	}

	if lastFmApiKey != "" {
		resolver.LastFM = source.NewLastFMSource(lastFmApiKey, lastFmSecret)
	}

	return resolver, nil
}

// loadTravel reads the stage walking-time matrix, if one was given.
func loadTravel(path string) (*prompt.TravelTimes, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening walking times: %w", err)
	}
	defer f.Close()

	travel, err := prompt.LoadTravelTimes(f)
	if err != nil {
		return nil, fmt.Errorf("reading walking times %q: %w", path, err)
	}
	return travel, nil
}
