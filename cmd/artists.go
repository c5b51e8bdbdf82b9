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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avivkr/lineup-tools/internal/lineup"
)

var artistsWeekend string
var artistsCmd = &cobra.Command{
	Use:   "artists",
	Short: "Lists the cached festival roster",
	Long:  `Reads the lineup from the local database. Run update first.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := printArtists(viper.GetString("database"), artistsWeekend)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(artistsCmd)

	artistsCmd.Flags().StringVarP(&artistsWeekend, "weekend", "w", lineup.All,
		"Which weekend to list: 'weekend 1', 'weekend 2', or 'all'")
}

func printArtists(dbPath string, weekend string) error {
	cat, err := loadCatalog(dbPath)
	if err != nil {
		return err
	}

	artists := lineup.FilterByWeekend(cat.Artists(), weekend)

	rows := make([][]string, 0, len(artists))
	for _, a := range artists {
		second := ""
		if a.Show2 != nil {
			second = a.Show2.String()
		}
		rows = append(rows, []string{a.Name, a.Show.String(), second})
	}

	fmt.Print(renderTable([]string{"Artist", "Show", "Second show"}, rows))
	fmt.Printf("%d artists\n", len(artists))
	return nil
}
