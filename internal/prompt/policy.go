package prompt

import "fmt"

// Break-suggestion thresholds, in minutes of free gap between the end of one
// show (plus walking time) and the start of the next.
const (
	mealBreakMinutes  = 90
	snackBreakMinutes = 60
)

const promptIntro = `Input Parameters:

  User's Favorite Artists and Their Song Counts:
    A list of the user's favorite artists and the number of songs they know by each artist.
    For example:

      Yves V: 2 songs
      John Newman: 1 song
      Maddix: 5 songs

  Festival Lineup:
    The lineup for the selected weekend, including the stage/host names, dates, and time slots for each artist's performance.
    For instance:

      Yves V: Mainstage, weekend 1, 2024-07-20 16:00 to 2024-07-20 17:00

  Stage Travel Time Data:
    The estimated walking time (in minutes) between different stages, listed below. Pairs that are not listed take no meaningful time to walk.
`

const promptPolicy = `Task Description:

  Create a personalized festival schedule from the data above.
  Prioritize artists with a higher number of known songs. If multiple artists perform simultaneously, choose the artist with the most known songs.

  Between consecutive shows, compute the free gap as: next show start - (current show end + walking time between the two stages).
  - If the gap is %d minutes or more, suggest a full meal break and state the exact number of free minutes.
  - If the gap is %d to %d minutes, suggest a snack break and state the exact number of free minutes.
  - If the gap is under %d minutes, make no break suggestion.
  For example:
    a gap of 95 minutes: "%s"
    a gap of 75 minutes: "%s"
    a gap of 45 minutes: no suggestion.

  Factor the walking time between stages into the schedule so there is enough time to move between performances. When the walking time between two stages is zero, do not mention it.

Output Format:

  A personalized schedule for the selected weekend, listing the performances in chronological order within each day. Include per entry:

    - Artist name (and number of known songs)
    - Stage/host name
    - Date and time slot
    - Walking time to the next stage (when applicable)
    - Meal or snack break suggestion (when applicable)

  The output must be plain prose without any markup.
`

// BreakSuggestion returns the advisory text for a free gap of the given
// minutes: a meal break at 90 minutes or more, a snack break from 60 to 89,
// nothing below 60.
func BreakSuggestion(gapMinutes int) string {
	switch {
	case gapMinutes >= mealBreakMinutes:
		return fmt.Sprintf("You have %d free minutes - a good window for a full meal break.", gapMinutes)
	case gapMinutes >= snackBreakMinutes:
		return fmt.Sprintf("You have %d free minutes - enough for a snack break.", gapMinutes)
	default:
		return ""
	}
}

func policyText() string {
	return fmt.Sprintf(promptPolicy,
		mealBreakMinutes,
		snackBreakMinutes, mealBreakMinutes-1,
		snackBreakMinutes,
		BreakSuggestion(95),
		BreakSuggestion(75),
	)
}
