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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avivkr/lineup-tools/internal/bot"
	"github.com/avivkr/lineup-tools/internal/generate"
	"github.com/avivkr/lineup-tools/internal/lineup"
)

var botWalkingTimes string
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Runs the Telegram bot",
	Long: `Serves the interactive frontend: users send playlist links, pick a
weekend, and get back the matching artists and an AI-generated
schedule. Runs until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runBot(viper.GetString("database"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(botCmd)

	botCmd.Flags().StringVar(&botWalkingTimes, "walking_times", "",
		"CSV matrix of walking minutes between stages")
}

func runBot(dbPath string) error {
	if telegramToken == "" {
		return fmt.Errorf("telegram_token is required")
	}
	if geminiApiKey == "" {
		return fmt.Errorf("gemini_api_key is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resolver, err := newResolver(ctx)
	if err != nil {
		return err
	}

	travel, err := loadTravel(botWalkingTimes)
	if err != nil {
		return err
	}

	b, err := bot.New(bot.Config{
		Token:     telegramToken,
		Playlists: resolver,
		Generator: generate.NewGeminiClient(geminiApiKey),
		Travel:    travel,
		LoadCatalog: func(ctx context.Context) (*lineup.Catalog, error) {
			return loadCatalog(dbPath)
		},
	})
	if err != nil {
		return err
	}

	fmt.Println("Bot is up")
	return b.Run(ctx)
}
