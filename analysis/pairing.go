package analysis

import (
	"sort"
	"time"
)

// MealEvent is an immutable snapshot of one logged meal.
type MealEvent struct {
	ID          string
	At          time.Time
	Ingredients []Token
}

// SymptomEvent is an immutable snapshot of one logged symptom.
type SymptomEvent struct {
	ID          string
	At          time.Time
	Description []Token
	Critical    bool
}

// MealPair is one meal together with the symptoms attributed to it.
// Only pairs with at least one symptom are emitted.
type MealPair struct {
	Meal     MealEvent
	Symptoms []SymptomEvent
}

type dayEvent struct {
	at      time.Time
	isMeal  bool
	meal    MealEvent
	symptom SymptomEvent
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

// PairByDay attributes symptoms to meals per calendar day: each meal
// opens a window that absorbs every subsequent symptom on the same day
// until the next meal (or the day's end) closes it. Symptoms with no
// preceding meal that day are unattributed and dropped. Events at the
// same instant sort meal-before-symptom, each kind in input order.
func PairByDay(meals []MealEvent, symptoms []SymptomEvent) []MealPair {
	days := map[string][]dayEvent{}
	for _, m := range meals {
		k := dayKey(m.At)
		days[k] = append(days[k], dayEvent{at: m.At, isMeal: true, meal: m})
	}
	for _, s := range symptoms {
		k := dayKey(s.At)
		days[k] = append(days[k], dayEvent{at: s.At, symptom: s})
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pairs []MealPair
	for _, k := range keys {
		events := days[k]
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].at.Before(events[j].at)
		})

		var open *MealPair
		flush := func() {
			if open != nil && len(open.Symptoms) > 0 {
				pairs = append(pairs, *open)
			}
			open = nil
		}
		for _, ev := range events {
			if ev.isMeal {
				flush()
				open = &MealPair{Meal: ev.meal}
				continue
			}
			if open != nil {
				open.Symptoms = append(open.Symptoms, ev.symptom)
			}
		}
		flush()
	}
	return pairs
}

// MealsWithin returns the meals eaten in the backward window
// [anchor.At − lookback, anchor.At], both ends inclusive, in input order.
func MealsWithin(meals []MealEvent, anchor SymptomEvent, lookback time.Duration) []MealEvent {
	if lookback <= 0 {
		return nil
	}
	from := anchor.At.Add(-lookback)
	var out []MealEvent
	for _, m := range meals {
		if m.At.Before(from) || m.At.After(anchor.At) {
			continue
		}
		out = append(out, m)
	}
	return out
}
