package composer

import (
	"github.com/opolyo01/etl-classes/internal/domain"
)

// Neutral sub-score for instructors with no rating data: dead center
// of the scale, so missing enrichment never penalizes a schedule.
const neutralRating = 0.5

// Score maps a complete schedule onto a preference-fit score. Each
// criterion yields a sub-score in [0,1] which is multiplied by its
// configured weight; the total is the sum and the breakdown holds each
// criterion's weighted contribution. ratings is keyed by the raw
// instructor string ("LAST, FIRST") and may be nil.
func Score(chosen []*candidate, prefs domain.Preferences, ratings map[string]float64) (float64, map[string]float64) {
	modality := prefs.Weights.Modality * modalityScore(chosen, prefs.Modality)
	timeOfDay := prefs.Weights.Time * timeScore(chosen, prefs.Windows)
	rating := prefs.Weights.Rating * ratingScore(chosen, prefs.MinRating, ratings)

	// Sum in a fixed order: float addition is not associative, and the
	// total feeds the ranking, which must be reproducible across calls.
	total := modality + timeOfDay + rating

	breakdown := map[string]float64{
		"modality": modality,
		"time":     timeOfDay,
		"rating":   rating,
	}
	return total, breakdown
}

// modalityScore is the fraction of sections delivered in the preferred
// modality. No preference (or "any") fits everything. Sections whose
// modality cannot be normalized count as non-matching rather than
// erroring.
func modalityScore(chosen []*candidate, preferred string) float64 {
	if preferred == "" || preferred == domain.ModalityAny {
		return 1
	}
	matched := 0
	for _, c := range chosen {
		if c.section.NormalizedModality() == preferred {
			matched++
		}
	}
	return float64(matched) / float64(len(chosen))
}

// timeScore is the fraction of meetings that fall entirely inside one
// of the preferred windows. Asynchronous meetings have no wall-clock
// footprint and always fit.
func timeScore(chosen []*candidate, windows []domain.TimeWindow) float64 {
	if len(windows) == 0 {
		return 1
	}
	total, fit := 0, 0
	for _, c := range chosen {
		for _, m := range c.meetings {
			total++
			if m.Async {
				fit++
				continue
			}
			for _, w := range windows {
				if w.Contains(m) {
					fit++
					break
				}
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(fit) / float64(total)
}

// ratingScore averages the per-section instructor rating sub-scores.
// Unknown instructors score neutral; known instructors below the
// acceptable floor score zero; otherwise the 0-5 rating is normalized
// to [0,1].
func ratingScore(chosen []*candidate, minRating float64, ratings map[string]float64) float64 {
	sum := 0.0
	for _, c := range chosen {
		r, ok := ratings[c.section.Instructor]
		switch {
		case c.section.Instructor == "" || !ok:
			sum += neutralRating
		case r < minRating:
			// Known and below the floor.
		default:
			sum += clamp01(r / 5)
		}
	}
	return sum / float64(len(chosen))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
