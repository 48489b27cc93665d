package composer

import (
	"math"
	"testing"

	"github.com/opolyo01/etl-classes/internal/domain"
)

func cand(sec domain.Section) *candidate {
	return &candidate{section: &sec, meetings: domain.ParseSchedule(sec.DaysTime)}
}

func TestScore_ModalityPreferenceRanksOnlineHigher(t *testing.T) {
	prefs := domain.Preferences{
		Modality: domain.ModalityOnline,
		Weights:  domain.Weights{Modality: 1},
	}

	online := []*candidate{cand(domain.Section{Modality: "Online", DaysTime: "TBA"})}
	inPerson := []*candidate{cand(domain.Section{Modality: "In Person", DaysTime: "MWF 09:00 AM-09:50 AM"})}

	onlineScore, _ := Score(online, prefs, nil)
	inPersonScore, _ := Score(inPerson, prefs, nil)

	if onlineScore <= inPersonScore {
		t.Errorf("online = %v, in-person = %v; online should score strictly higher", onlineScore, inPersonScore)
	}
	if onlineScore != 1 {
		t.Errorf("fully matching modality = %v, want 1", onlineScore)
	}
}

func TestScore_TimeWindowsCountFittingMeetings(t *testing.T) {
	prefs := domain.Preferences{
		Windows: []domain.TimeWindow{{Start: 9 * 60, End: 12 * 60}},
		Weights: domain.Weights{Time: 1},
	}

	chosen := []*candidate{
		cand(domain.Section{DaysTime: "MWF 09:00 AM-09:50 AM"}), // fits
		cand(domain.Section{DaysTime: "Th 6:00 PM-8:50 PM"}),    // evening, outside
	}

	total, breakdown := Score(chosen, prefs, nil)
	if math.Abs(total-0.5) > 1e-9 {
		t.Errorf("total = %v, want 0.5 (one of two meetings fits)", total)
	}
	if math.Abs(breakdown["time"]-0.5) > 1e-9 {
		t.Errorf("time contribution = %v, want 0.5", breakdown["time"])
	}
}

func TestScore_AsyncMeetingsAlwaysFitWindows(t *testing.T) {
	prefs := domain.Preferences{
		Windows: []domain.TimeWindow{{Start: 9 * 60, End: 10 * 60}},
		Weights: domain.Weights{Time: 1},
	}
	chosen := []*candidate{cand(domain.Section{DaysTime: "Online"})}

	total, _ := Score(chosen, prefs, nil)
	if total != 1 {
		t.Errorf("async-only schedule = %v, want 1", total)
	}
}

func TestScore_RatingSubScore(t *testing.T) {
	weights := domain.Weights{Rating: 1}
	known := []*candidate{cand(domain.Section{Instructor: "DOE, JANE", DaysTime: "TBA"})}

	// Missing data scores neutral.
	total, _ := Score(known, domain.Preferences{Weights: weights}, nil)
	if math.Abs(total-0.5) > 1e-9 {
		t.Errorf("unrated instructor = %v, want neutral 0.5", total)
	}

	// Known rating normalizes to [0,1].
	ratings := map[string]float64{"DOE, JANE": 4.5}
	total, _ = Score(known, domain.Preferences{Weights: weights}, ratings)
	if math.Abs(total-0.9) > 1e-9 {
		t.Errorf("4.5/5 instructor = %v, want 0.9", total)
	}

	// Below the acceptable floor scores zero.
	prefs := domain.Preferences{MinRating: 4.8, Weights: weights}
	total, _ = Score(known, prefs, ratings)
	if total != 0 {
		t.Errorf("below-floor instructor = %v, want 0", total)
	}
}

func TestScore_TotalIsReproducible(t *testing.T) {
	// Contributions 0.1, 0.2 and 0.3 are not exactly representable in
	// binary floating point, so any variation in summation order shows
	// up as a different total.
	prefs := domain.Preferences{
		Weights: domain.Weights{Modality: 0.1, Time: 0.2, Rating: 0.6},
	}
	chosen := []*candidate{cand(domain.Section{DaysTime: "TBA"})}

	first, _ := Score(chosen, prefs, nil)
	for i := 0; i < 100; i++ {
		total, breakdown := Score(chosen, prefs, nil)
		if total != first {
			t.Fatalf("run %d: total = %v, first run gave %v", i, total, first)
		}
		if want := breakdown["modality"] + breakdown["time"] + breakdown["rating"]; total != want {
			t.Fatalf("total %v != fixed-order breakdown sum %v", total, want)
		}
	}
}

func TestScore_BreakdownSumsToTotal(t *testing.T) {
	prefs := domain.Preferences{
		Modality: domain.ModalityInPerson,
		Windows:  []domain.TimeWindow{{Start: 8 * 60, End: 18 * 60}},
		Weights:  domain.Weights{Modality: 2, Time: 1, Rating: 3},
	}
	chosen := []*candidate{
		cand(domain.Section{Modality: "In Person", Instructor: "DOE, JANE", DaysTime: "MWF 09:00 AM-09:50 AM"}),
		cand(domain.Section{Modality: "Online", DaysTime: "TBA"}),
	}
	ratings := map[string]float64{"DOE, JANE": 4.0}

	total, breakdown := Score(chosen, prefs, ratings)
	sum := 0.0
	for _, v := range breakdown {
		sum += v
	}
	if math.Abs(total-sum) > 1e-9 {
		t.Errorf("total %v != breakdown sum %v", total, sum)
	}
}
