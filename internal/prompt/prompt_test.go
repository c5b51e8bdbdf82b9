package prompt

import (
	"strings"
	"testing"

	"github.com/avivkr/lineup-tools/internal/lineup"
)

func TestBreakSuggestionBoundaries(t *testing.T) {
	cases := []struct {
		gap  int
		want string
	}{
		{59, ""},
		{60, "You have 60 free minutes - enough for a snack break."},
		{89, "You have 89 free minutes - enough for a snack break."},
		{90, "You have 90 free minutes - a good window for a full meal break."},
		{120, "You have 120 free minutes - a good window for a full meal break."},
		{0, ""},
	}
	for _, c := range cases {
		if got := BreakSuggestion(c.gap); got != c.want {
			t.Errorf("BreakSuggestion(%d) = %q, want %q", c.gap, got, c.want)
		}
	}
}

func TestTravelTimesRenderOmitsZero(t *testing.T) {
	tt := NewTravelTimes()
	tt.Set("Mainstage", "Freedom", 12)
	tt.Set("Mainstage", "Cage", 0)

	rendered := tt.Render()
	if !strings.Contains(rendered, "Freedom to Mainstage: 12 minutes") {
		t.Errorf("rendered table missing pair:\n%s", rendered)
	}
	if strings.Contains(rendered, "0 minutes") || strings.Contains(rendered, "Cage") {
		t.Errorf("zero-minute pair must not be rendered:\n%s", rendered)
	}
}

func TestLoadTravelTimes(t *testing.T) {
	csv := ",Mainstage,Freedom,Cage\n" +
		"Mainstage,0,12,7\n" +
		"Freedom,12,0,5\n" +
		"Cage,7,5,0\n"
	tt, err := LoadTravelTimes(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadTravelTimes error: %v", err)
	}
	if got := tt.Minutes("Freedom", "Mainstage"); got != 12 {
		t.Errorf("Minutes(Freedom, Mainstage) = %d, want 12", got)
	}
	if got := tt.Minutes("cage", "FREEDOM"); got != 5 {
		t.Errorf("case-insensitive lookup = %d, want 5", got)
	}
	if got := tt.Minutes("Cage", "Cage"); got != 0 {
		t.Errorf("Minutes(Cage, Cage) = %d, want 0", got)
	}
}

func TestLoadTravelTimesMalformed(t *testing.T) {
	if _, err := LoadTravelTimes(strings.NewReader(",A,B\nA,0\n")); err == nil {
		t.Error("short row must fail")
	}
	if _, err := LoadTravelTimes(strings.NewReader(",A\nA,soon\n")); err == nil {
		t.Error("non-numeric minutes must fail")
	}
}

func testArtists() []*lineup.Artist {
	cat, _ := lineup.BuildCatalog([]lineup.Event{
		{Artist: "Maddix", Stage: "Stage 8", Start: "2024-07-19 19:00", End: "2024-07-19 20:00", Weekend: lineup.Weekend1},
		{Artist: "Yves V", Stage: "Mainstage", Start: "2024-07-20 16:00", End: "2024-07-20 17:00", Weekend: lineup.Weekend1},
		{Artist: "Yves V", Stage: "Cage", Start: "2024-07-27 15:00", End: "2024-07-27 16:00", Weekend: lineup.Weekend2},
	})
	maddix, _ := cat.Lookup("Maddix")
	maddix.Songs = 5
	yves, _ := cat.Lookup("Yves V")
	yves.Songs = 1
	return cat.Artists()
}

func TestAssembleDeterministic(t *testing.T) {
	artists := testArtists()
	tt := NewTravelTimes()
	tt.Set("Stage 8", "Mainstage", 15)

	first := Assemble(artists, lineup.Weekend1, tt)
	second := Assemble(artists, lineup.Weekend1, tt)
	if first != second {
		t.Error("Assemble is not deterministic for identical input")
	}
}

func TestAssembleContent(t *testing.T) {
	artists := testArtists()
	tt := NewTravelTimes()
	tt.Set("Stage 8", "Mainstage", 15)

	payload := Assemble(artists, lineup.Weekend1, tt)

	for _, want := range []string{
		"Maddix: 5 songs",
		"Yves V: 1 song",
		"Maddix: Stage 8, weekend 1, 2024-07-19 19:00 to 2024-07-19 20:00",
		"Mainstage to Stage 8: 15 minutes",
		"Selected weekend: weekend 1",
		"plain prose without any markup",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q", want)
		}
	}

	// Weekend 1 selection must not leak the weekend 2 show.
	if strings.Contains(payload, "Cage") {
		t.Errorf("payload contains weekend 2 show for weekend 1 selection:\n%s", payload)
	}
}

func TestAssembleAllWeekendsListsBothShows(t *testing.T) {
	payload := Assemble(testArtists(), lineup.All, NewTravelTimes())
	if !strings.Contains(payload, "Mainstage") || !strings.Contains(payload, "Cage") {
		t.Error("all-weekends payload must list both shows of a two-weekend artist")
	}
}
