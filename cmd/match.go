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
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avivkr/lineup-tools/internal/lineup"
	"github.com/avivkr/lineup-tools/internal/match"
	"github.com/avivkr/lineup-tools/internal/source"
)

var matchWeekend string
var matchCmd = &cobra.Command{
	Use:   "match [playlist link...]",
	Short: "Matches playlist artists against the festival lineup",
	Long: `Fetches the given playlists and prints the artists that also play at
the festival, with how many of their songs appear across the playlists.
Links are Spotify playlist URLs, YouTube/YouTube Music playlist URLs, or
'lastfm:<username>' references. With
no arguments, links are read from stdin, one per line.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := printMatches(viper.GetString("database"), args, matchWeekend)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVarP(&matchWeekend, "weekend", "w", lineup.All,
		"Which weekend to keep: 'weekend 1', 'weekend 2', or 'all'")
}

func printMatches(dbPath string, args []string, weekend string) error {
	links, err := gatherLinks(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	resolver, err := newResolver(ctx)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(dbPath)
	if err != nil {
		return err
	}

	matched, err := matchPlaylists(ctx, links, resolver, cat)
	if err != nil {
		return err
	}

	relevant := lineup.FilterByWeekend(matched, weekend)
	if len(relevant) == 0 {
		fmt.Println("None of the playlist artists play at the festival.")
		return nil
	}

	rows := make([][]string, 0, len(relevant))
	for _, a := range relevant {
		rows = append(rows, []string{a.Name, strconv.Itoa(a.Songs), a.Summary(weekend)})
	}
	fmt.Print(renderTable([]string{"Artist", "Songs", "Shows"}, rows))
	fmt.Printf("%d of the playlist artists play at the festival\n", len(relevant))
	return nil
}

// matchPlaylists fetches each playlist in turn and folds its artists into one
// matched list, summing song counts for artists seen in several playlists.
func matchPlaylists(ctx context.Context, links []string, resolver *source.Resolver, cat *lineup.Catalog) ([]*lineup.Artist, error) {
	var matched []*lineup.Artist
	for _, link := range links {
		playlist, err := resolver.Fetch(ctx, link)
		if err != nil {
			return nil, fmt.Errorf("fetching %q: %w", link, err)
		}
		matched = match.Merge(matched, playlist, cat)
		fmt.Printf("Fetched %q: %d artists\n", link, len(playlist))
	}
	return matched, nil
}

func gatherLinks(args []string) ([]string, error) {
	var links []string
	for _, arg := range args {
		links = append(links, source.SplitLinks(arg)...)
	}
	if len(links) > 0 {
		return links, nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			links = append(links, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading links from stdin: %w", err)
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("no playlist links given")
	}
	return links, nil
}
