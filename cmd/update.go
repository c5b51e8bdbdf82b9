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
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avivkr/lineup-tools/internal/lineup"
	"github.com/avivkr/lineup-tools/internal/source"
	"github.com/avivkr/lineup-tools/internal/store"
)

type UpdateConfig struct {
	DbPath   string
	EventIDs map[string]string
	Force    bool
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetches the festival lineup feeds",
	Long:  `Stores each weekend's schedule in a local SQLite database.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := UpdateConfig{
			DbPath: viper.GetString("database"),
			EventIDs: map[string]string{
				lineup.Weekend1: viper.GetString("weekend1_event"),
				lineup.Weekend2: viper.GetString("weekend2_event"),
			},
			Force: viper.GetBool("force"),
		}

		feed := source.NewClashfinderSource(config.EventIDs)
		err := updateLineup(context.Background(), config, feed)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	var weekend1Event string
	updateCmd.Flags().StringVar(&weekend1Event, "weekend1_event", "tml2024w1", "Clashfinder event ID for weekend 1")
	viper.BindPFlag("weekend1_event", updateCmd.Flags().Lookup("weekend1_event"))

	var weekend2Event string
	updateCmd.Flags().StringVar(&weekend2Event, "weekend2_event", "tml2024w2", "Clashfinder event ID for weekend 2")
	viper.BindPFlag("weekend2_event", updateCmd.Flags().Lookup("weekend2_event"))

	var force bool
	updateCmd.Flags().BoolVarP(&force, "force", "f", false, "Refetch the feeds regardless of when they were last updated")
	viper.BindPFlag("force", updateCmd.Flags().Lookup("force"))
}

func updateLineup(ctx context.Context, config UpdateConfig, feed source.LineupSource) error {
	db, err := store.New(config.DbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	now := time.Now()

	for _, weekend := range []string{lineup.Weekend1, lineup.Weekend2} {
		lastUpdated, err := db.LastUpdated(weekend)
		if err != nil {
			return err
		}
		if !lastUpdated.IsZero() && now.Sub(lastUpdated).Hours() < 24 && !config.Force {
			fmt.Printf("%s was already updated in the past 24 hours\n", weekend)
			continue
		}

		fmt.Printf("Fetching schedule for %s\n", weekend)
		events, err := feed.Fetch(ctx, weekend)
		if err != nil {
			// A broken feed just means no events for that weekend.
			fmt.Printf("Error fetching %s: %v\n", weekend, err)
			continue
		}

		if err := db.ReplaceEvents(weekend, events); err != nil {
			return fmt.Errorf("storing %s: %w", weekend, err)
		}
		if err := db.SetLastUpdated(weekend, now); err != nil {
			return err
		}
		fmt.Printf("Stored %d events for %s\n", len(events), weekend)
	}

	return nil
}
