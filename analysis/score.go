package analysis

import (
	"sort"
	"time"
)

// RiskLevel bands a suspicion rate for display.
type RiskLevel string

const (
	RiskSafe       RiskLevel = "safe"
	RiskMostlySafe RiskLevel = "mostly_safe"
	RiskModerate   RiskLevel = "moderate"
	RiskNotable    RiskLevel = "notable"
	RiskHigh       RiskLevel = "high"
)

const (
	// minimum meals before a historical profile counts as reliable
	enoughDataHistorical = 3
	// lower bar when investigating a single symptom occurrence
	enoughDataWindow = 2

	// proximity weight decays linearly from 1 at gap 0 to this floor
	// at gap == window
	proximityFloor = 0.25
	// neutral prior used when an ingredient has no usable history
	noHistoryBaseline = 0.5
)

// IngredientProfile is the historical rollup for one ingredient.
// Derived on every call, never persisted.
type IngredientProfile struct {
	Name               string    `json:"name"`
	Display            string    `json:"display"`
	TotalOccurrences   int       `json:"total_occurrences"`
	SymptomOccurrences int       `json:"symptom_occurrences"`
	SafeOccurrences    int       `json:"safe_occurrences"`
	SuspicionRate      float64   `json:"suspicion_rate"`
	RiskLevel          RiskLevel `json:"risk_level"`
	HasEnoughData      bool      `json:"has_enough_data"`
}

func riskLevelFor(rate float64) RiskLevel {
	switch {
	case rate == 0:
		return RiskSafe
	case rate < 0.3:
		return RiskMostlySafe
	case rate < 0.6:
		return RiskModerate
	case rate < 0.8:
		return RiskNotable
	default:
		return RiskHigh
	}
}

// HistoricalProfiles rolls the whole dataset up per ingredient: how many
// meals contained it, and how many of those were followed by symptoms
// under the same-day pairing policy. The result is ordered by suspicion
// rate desc, then total occurrences desc, then name asc.
func HistoricalProfiles(meals []MealEvent, symptoms []SymptomEvent) []IngredientProfile {
	flagged := make(map[string]struct{})
	for _, p := range PairByDay(meals, symptoms) {
		flagged[p.Meal.ID] = struct{}{}
	}

	acc := make(map[string]*IngredientProfile)
	for _, m := range meals {
		_, withSymptom := flagged[m.ID]
		for _, tok := range m.Ingredients {
			p := acc[tok.Key]
			if p == nil {
				p = &IngredientProfile{Name: tok.Key, Display: tok.Display}
				acc[tok.Key] = p
			}
			p.TotalOccurrences++
			if withSymptom {
				p.SymptomOccurrences++
			}
		}
	}

	out := make([]IngredientProfile, 0, len(acc))
	for _, p := range acc {
		p.SafeOccurrences = p.TotalOccurrences - p.SymptomOccurrences
		if p.TotalOccurrences > 0 {
			p.SuspicionRate = float64(p.SymptomOccurrences) / float64(p.TotalOccurrences)
		}
		p.RiskLevel = riskLevelFor(p.SuspicionRate)
		p.HasEnoughData = p.TotalOccurrences >= enoughDataHistorical
		out = append(out, *p)
	}
	sortProfiles(out)
	return out
}

func sortProfiles(ps []IngredientProfile) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].SuspicionRate != ps[j].SuspicionRate {
			return ps[i].SuspicionRate > ps[j].SuspicionRate
		}
		if ps[i].TotalOccurrences != ps[j].TotalOccurrences {
			return ps[i].TotalOccurrences > ps[j].TotalOccurrences
		}
		return ps[i].Name < ps[j].Name
	})
}

// TopProblematic returns at most n ingredients with a non-zero suspicion
// rate, ranked by the profile order.
func TopProblematic(profiles []IngredientProfile, n int) []IngredientProfile {
	if n <= 0 {
		return nil
	}
	ranked := make([]IngredientProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.SuspicionRate > 0 {
			ranked = append(ranked, p)
		}
	}
	sortProfiles(ranked)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// PotentiallySafe returns the ingredients eaten at least once and never
// followed by a symptom.
func PotentiallySafe(profiles []IngredientProfile) []IngredientProfile {
	var out []IngredientProfile
	for _, p := range profiles {
		if p.SuspicionRate == 0 && p.TotalOccurrences >= 1 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalOccurrences != out[j].TotalOccurrences {
			return out[i].TotalOccurrences > out[j].TotalOccurrences
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// WindowBucket classifies one ingredient of a symptom-window analysis.
// Every scored ingredient lands in exactly one bucket.
type WindowBucket string

const (
	BucketTrigger      WindowBucket = "potential_trigger"
	BucketSafe         WindowBucket = "safe"
	BucketInsufficient WindowBucket = "insufficient_data"
	BucketNew          WindowBucket = "new_ingredient"
)

// WindowResult is the time-weighted verdict for one ingredient eaten
// within the lookback window of a selected symptom.
type WindowResult struct {
	Name            string             `json:"name"`
	Display         string             `json:"display"`
	ProximityWeight float64            `json:"proximity_weight"`
	SuspicionScore  float64            `json:"suspicion_score"`
	UsedHistory     bool               `json:"used_history"`
	IsSafe          bool               `json:"is_safe"`
	Bucket          WindowBucket       `json:"bucket"`
	History         *IngredientProfile `json:"history,omitempty"`
}

// proximityWeight decays linearly with the gap between meal and anchor:
// 1 at gap 0, proximityFloor at gap == window.
func proximityWeight(gap, window time.Duration) float64 {
	if window <= 0 {
		return proximityFloor
	}
	frac := 1 - float64(gap)/float64(window)
	if frac < 0 {
		frac = 0
	}
	return proximityFloor + (1-proximityFloor)*frac
}

// AnalyzeSymptomWindow scores every ingredient eaten within the lookback
// window before the symptom identified by symptomID. An unknown id or an
// empty window yields an empty result, never an error. When an ingredient
// appears in several meals inside the window, the closest meal defines
// its proximity weight.
func AnalyzeSymptomWindow(meals []MealEvent, symptoms []SymptomEvent, symptomID string, window time.Duration) []WindowResult {
	var anchor *SymptomEvent
	for i := range symptoms {
		if symptoms[i].ID == symptomID {
			anchor = &symptoms[i]
			break
		}
	}
	if anchor == nil {
		return nil
	}

	type occurrence struct {
		display string
		gap     time.Duration
	}
	occ := make(map[string]occurrence)
	for _, m := range MealsWithin(meals, *anchor, window) {
		gap := anchor.At.Sub(m.At)
		for _, tok := range m.Ingredients {
			cur, ok := occ[tok.Key]
			if !ok || gap < cur.gap {
				occ[tok.Key] = occurrence{display: tok.Display, gap: gap}
			}
		}
	}
	if len(occ) == 0 {
		return nil
	}

	// history is the evidence prior to the window under investigation;
	// the windowed meals and the anchor must not count as their own
	// history or no ingredient could ever be new.
	windowStart := anchor.At.Add(-window)
	var priorMeals []MealEvent
	for _, m := range meals {
		if m.At.Before(windowStart) {
			priorMeals = append(priorMeals, m)
		}
	}
	var priorSymptoms []SymptomEvent
	for _, s := range symptoms {
		if s.At.Before(anchor.At) {
			priorSymptoms = append(priorSymptoms, s)
		}
	}
	history := make(map[string]IngredientProfile)
	for _, p := range HistoricalProfiles(priorMeals, priorSymptoms) {
		history[p.Name] = p
	}

	out := make([]WindowResult, 0, len(occ))
	for key, o := range occ {
		r := WindowResult{
			Name:            key,
			Display:         o.display,
			ProximityWeight: proximityWeight(o.gap, window),
		}
		hist, known := history[key]
		switch {
		case !known:
			r.Bucket = BucketNew
			r.SuspicionScore = noHistoryBaseline * r.ProximityWeight
		default:
			r.History = &hist
			r.IsSafe = hist.SymptomOccurrences == 0 && hist.TotalOccurrences >= 1
			if hist.TotalOccurrences >= enoughDataWindow {
				r.UsedHistory = true
				r.SuspicionScore = hist.SuspicionRate
			} else {
				r.SuspicionScore = noHistoryBaseline * r.ProximityWeight
			}
			switch {
			case r.IsSafe:
				r.Bucket = BucketSafe
			case r.UsedHistory && r.SuspicionScore > 0:
				r.Bucket = BucketTrigger
			default:
				r.Bucket = BucketInsufficient
			}
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].SuspicionScore != out[j].SuspicionScore {
			return out[i].SuspicionScore > out[j].SuspicionScore
		}
		if out[i].ProximityWeight != out[j].ProximityWeight {
			return out[i].ProximityWeight > out[j].ProximityWeight
		}
		return out[i].Name < out[j].Name
	})
	return out
}
