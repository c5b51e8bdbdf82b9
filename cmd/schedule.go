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
	"github.com/spf13/viper"

	"github.com/avivkr/lineup-tools/internal/generate"
	"github.com/avivkr/lineup-tools/internal/lineup"
	"github.com/avivkr/lineup-tools/internal/notify"
	"github.com/avivkr/lineup-tools/internal/prompt"
)

type ScheduleConfig struct {
	DbPath       string
	Links        []string
	Weekend      string
	WalkingTimes string
	Email        string
	DryRun       bool
}

var scheduleWeekend string
var scheduleWalkingTimes string
var scheduleEmail string
var scheduleDryRun bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule [playlist link...]",
	Short: "Generates a personal festival schedule",
	Long: `Matches the playlists against the lineup, then asks Gemini for a
day-by-day schedule built around the matched artists. With no
arguments, links are read from stdin, one per line.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := ScheduleConfig{
			DbPath:       viper.GetString("database"),
			Links:        args,
			Weekend:      scheduleWeekend,
			WalkingTimes: scheduleWalkingTimes,
			Email:        scheduleEmail,
			DryRun:       scheduleDryRun,
		}
		err := generateSchedule(config)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVarP(&scheduleWeekend, "weekend", "w", lineup.All,
		"Which weekend to schedule: 'weekend 1', 'weekend 2', or 'all'")
	scheduleCmd.Flags().StringVar(&scheduleWalkingTimes, "walking_times", "",
		"CSV matrix of walking minutes between stages")
	scheduleCmd.Flags().StringVar(&scheduleEmail, "email", "",
		"Also email the schedule to this address")
	scheduleCmd.Flags().BoolVar(&scheduleDryRun, "dry-run", false,
		"Print the generator prompt instead of calling Gemini")
}

func generateSchedule(config ScheduleConfig) error {
	links, err := gatherLinks(config.Links)
	if err != nil {
		return err
	}

	ctx := context.Background()
	resolver, err := newResolver(ctx)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(config.DbPath)
	if err != nil {
		return err
	}

	matched, err := matchPlaylists(ctx, links, resolver, cat)
	if err != nil {
		return err
	}

	relevant := lineup.FilterByWeekend(matched, config.Weekend)
	if len(relevant) == 0 {
		fmt.Println("None of the playlist artists play at the festival.")
		return nil
	}

	travel, err := loadTravel(config.WalkingTimes)
	if err != nil {
		return err
	}

	payload := prompt.Assemble(relevant, config.Weekend, travel)
	if config.DryRun {
		fmt.Println(payload)
		return nil
	}

	if geminiApiKey == "" {
		return fmt.Errorf("gemini_api_key is required (or use --dry-run)")
	}

	fmt.Printf("Generating schedule for %d artists\n", len(relevant))
	schedule, err := generate.NewGeminiClient(geminiApiKey).Generate(ctx, payload)
	if err != nil {
		return fmt.Errorf("generating schedule: %w", err)
	}
	fmt.Println(schedule)

	if config.Email != "" {
		notifier := notify.NewEmailNotifier(sendgridApiKey, fromAddress, config.Email, "Your festival schedule")
		if err := notifier.Send(schedule); err != nil {
			return fmt.Errorf("emailing schedule: %w", err)
		}
		fmt.Printf("Sent schedule to %s\n", config.Email)
	}

	return nil
}
