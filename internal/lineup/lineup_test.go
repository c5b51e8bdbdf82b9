package lineup

import (
	"reflect"
	"strings"
	"testing"
)

func testEvents() []Event {
	return []Event{
		{Artist: "Yves V", Stage: "Mainstage", Start: "2024-07-20 16:00", End: "2024-07-20 17:00", Weekend: Weekend1},
		{Artist: "John Newman", Stage: "Freedom", Start: "2024-07-19 18:00", End: "2024-07-19 19:00", Weekend: Weekend1},
		{Artist: "Maddix", Stage: "Stage 8", Start: "2024-07-19 19:00", End: "2024-07-19 20:00", Weekend: Weekend1},
		{Artist: "Yves V", Stage: "Cage", Start: "2024-07-27 15:00", End: "2024-07-27 16:00", Weekend: Weekend2},
	}
}

func TestBuildCatalogDeduplicates(t *testing.T) {
	cat, skipped := BuildCatalog(testEvents())
	if skipped != 0 {
		t.Errorf("BuildCatalog skipped = %d, want 0", skipped)
	}
	if cat.Len() != 3 {
		t.Fatalf("BuildCatalog len = %d, want 3", cat.Len())
	}

	yves, ok := cat.Lookup("Yves V")
	if !ok {
		t.Fatal("Lookup(Yves V) not found")
	}
	if yves.Show.Weekend != Weekend1 || yves.Show.Stage != "Mainstage" {
		t.Errorf("primary show = %+v, want weekend 1 at Mainstage", yves.Show)
	}
	if yves.Show2 == nil {
		t.Fatal("second event did not fill Show2")
	}
	if yves.Show2.Weekend != Weekend2 || yves.Show2.Stage != "Cage" {
		t.Errorf("Show2 = %+v, want weekend 2 at Cage", *yves.Show2)
	}
	if yves.Songs != 0 {
		t.Errorf("lineup-only artist Songs = %d, want 0", yves.Songs)
	}
}

func TestBuildCatalogCaseInsensitive(t *testing.T) {
	events := []Event{
		{Artist: "Yves V", Stage: "Mainstage", Start: "16:00", End: "17:00", Weekend: Weekend1},
		{Artist: "yves v", Stage: "Cage", Start: "15:00", End: "16:00", Weekend: Weekend2},
	}
	cat, _ := BuildCatalog(events)
	if cat.Len() != 1 {
		t.Fatalf("catalog holds %d artists for one case-insensitive name, want 1", cat.Len())
	}
	a, ok := cat.Lookup("YVES V")
	if !ok {
		t.Fatal("Lookup(YVES V) not found")
	}
	if a.Name != "Yves V" {
		t.Errorf("kept name = %q, want first-seen casing %q", a.Name, "Yves V")
	}
	if a.Show2 == nil {
		t.Error("case-variant event did not merge into Show2")
	}
}

func TestBuildCatalogSkipsMalformed(t *testing.T) {
	events := append(testEvents(),
		Event{Artist: "", Stage: "Mainstage", Start: "16:00", End: "17:00", Weekend: Weekend1},
		Event{Artist: "No Times", Stage: "Mainstage", Weekend: Weekend1},
	)
	cat, skipped := BuildCatalog(events)
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
	if cat.Len() != 3 {
		t.Errorf("catalog len = %d, want 3", cat.Len())
	}
	if _, ok := cat.Lookup("No Times"); ok {
		t.Error("malformed record made it into the catalog")
	}
}

func TestBuildCatalogIdempotent(t *testing.T) {
	first, _ := BuildCatalog(testEvents())
	second, _ := BuildCatalog(testEvents())

	if first.Len() != second.Len() {
		t.Fatalf("lengths differ: %d vs %d", first.Len(), second.Len())
	}
	for i := range first.Artists() {
		a, b := first.Artists()[i], second.Artists()[i]
		if !reflect.DeepEqual(*a, *b) {
			t.Errorf("artist %d differs: %+v vs %+v", i, *a, *b)
		}
	}
}

func TestSameWeekendCollisionOverwritesShow2(t *testing.T) {
	// The two-show model holds one slot per weekend; a third event for the
	// same name replaces the prior second show.
	events := []Event{
		{Artist: "Maddix", Stage: "Stage 8", Start: "19:00", End: "20:00", Weekend: Weekend1},
		{Artist: "Maddix", Stage: "Cage", Start: "21:00", End: "22:00", Weekend: Weekend2},
		{Artist: "Maddix", Stage: "Atmosphere", Start: "23:00", End: "23:59", Weekend: Weekend2},
	}
	cat, _ := BuildCatalog(events)
	a, _ := cat.Lookup("Maddix")
	if a.Show2 == nil || a.Show2.Stage != "Atmosphere" {
		t.Errorf("Show2 = %+v, want latest event (Atmosphere)", a.Show2)
	}
}

func TestFilterByWeekend(t *testing.T) {
	cat, _ := BuildCatalog(testEvents())
	artists := cat.Artists()

	w1 := FilterByWeekend(artists, "Weekend 1")
	if len(w1) != 3 {
		t.Fatalf("weekend 1 filter len = %d, want 3", len(w1))
	}
	for _, a := range w1 {
		if !a.PlaysOn(Weekend1) {
			t.Errorf("%s filtered into weekend 1 without a show there", a.Name)
		}
	}

	w2 := FilterByWeekend(artists, Weekend2)
	if len(w2) != 1 || w2[0].Name != "Yves V" {
		t.Fatalf("weekend 2 filter = %v, want [Yves V]", names(w2))
	}

	all := FilterByWeekend(artists, All)
	if len(all) != len(artists) {
		t.Errorf("all filter len = %d, want %d", len(all), len(artists))
	}
	both := FilterByWeekend(artists, "both")
	if len(both) != len(artists) {
		t.Errorf("both filter len = %d, want %d", len(both), len(artists))
	}
}

func TestSummarySelectsShow(t *testing.T) {
	cat, _ := BuildCatalog(testEvents())
	yves, _ := cat.Lookup("Yves V")

	all := yves.Summary("")
	if !strings.Contains(all, "Mainstage") || !strings.Contains(all, "Cage") {
		t.Errorf("unselected summary missing a show:\n%s", all)
	}

	w2 := yves.Summary("WEEKEND 2")
	if strings.Contains(w2, "Mainstage") || !strings.Contains(w2, "Cage") {
		t.Errorf("weekend 2 summary wrong:\n%s", w2)
	}

	maddix, _ := cat.Lookup("Maddix")
	none := maddix.Summary(Weekend2)
	if !strings.Contains(none, "No show for the selected weekend.") {
		t.Errorf("summary for missing weekend:\n%s", none)
	}
}

func names(artists []*Artist) []string {
	var out []string
	for _, a := range artists {
		out = append(out, a.Name)
	}
	return out
}

