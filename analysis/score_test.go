package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileByName(t *testing.T, profiles []IngredientProfile, name string) IngredientProfile {
	t.Helper()
	for _, p := range profiles {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no profile for %q", name)
	return IngredientProfile{}
}

func TestHistoricalProfiles_MostRecentMealTakesTheBlame(t *testing.T) {
	meals := []MealEvent{
		meal("m1", at(1, 8, 0), "cow milk"),
		meal("m2", at(1, 9, 0), "rye bread"),
	}
	symptoms := []SymptomEvent{symptom("s1", at(1, 10, 0), "bloating")}

	profiles := HistoricalProfiles(meals, symptoms)
	require.Len(t, profiles, 2)

	milk := profileByName(t, profiles, "cow milk")
	assert.Equal(t, 1, milk.TotalOccurrences)
	assert.Equal(t, 0, milk.SymptomOccurrences)
	assert.Equal(t, 1, milk.SafeOccurrences)
	assert.Equal(t, 0.0, milk.SuspicionRate)

	bread := profileByName(t, profiles, "rye bread")
	assert.Equal(t, 1, bread.TotalOccurrences)
	assert.Equal(t, 1, bread.SymptomOccurrences)
	assert.Equal(t, 1.0, bread.SuspicionRate)
}

func TestHistoricalProfiles_NeverFlaggedIsSafe(t *testing.T) {
	var meals []MealEvent
	for d := 1; d <= 5; d++ {
		meals = append(meals, meal(fmt.Sprintf("m%d", d), at(d, 12, 0), "oats"))
	}

	profiles := HistoricalProfiles(meals, nil)
	oats := profileByName(t, profiles, "oats")
	assert.Equal(t, 5, oats.TotalOccurrences)
	assert.Equal(t, 0, oats.SymptomOccurrences)
	assert.Equal(t, 0.0, oats.SuspicionRate)
	assert.Equal(t, RiskSafe, oats.RiskLevel)
	assert.True(t, oats.HasEnoughData)

	safe := PotentiallySafe(profiles)
	require.Len(t, safe, 1)
	assert.Equal(t, "oats", safe[0].Name)
}

func TestHistoricalProfiles_ThreeOfFourIsNotable(t *testing.T) {
	var meals []MealEvent
	var symptoms []SymptomEvent
	for d := 1; d <= 4; d++ {
		meals = append(meals, meal(fmt.Sprintf("m%d", d), at(d, 12, 0), "cheese"))
		if d <= 3 {
			symptoms = append(symptoms, symptom(fmt.Sprintf("s%d", d), at(d, 14, 0), "cramps"))
		}
	}

	profiles := HistoricalProfiles(meals, symptoms)
	cheese := profileByName(t, profiles, "cheese")
	assert.Equal(t, 4, cheese.TotalOccurrences)
	assert.Equal(t, 3, cheese.SymptomOccurrences)
	assert.InDelta(t, 0.75, cheese.SuspicionRate, 1e-9)
	assert.Equal(t, RiskNotable, cheese.RiskLevel)
}

func TestRiskLevelBands(t *testing.T) {
	assert.Equal(t, RiskSafe, riskLevelFor(0))
	assert.Equal(t, RiskMostlySafe, riskLevelFor(0.1))
	assert.Equal(t, RiskMostlySafe, riskLevelFor(0.29))
	assert.Equal(t, RiskModerate, riskLevelFor(0.3))
	assert.Equal(t, RiskModerate, riskLevelFor(0.59))
	assert.Equal(t, RiskNotable, riskLevelFor(0.6))
	assert.Equal(t, RiskNotable, riskLevelFor(0.79))
	assert.Equal(t, RiskHigh, riskLevelFor(0.8))
	assert.Equal(t, RiskHigh, riskLevelFor(1.0))
}

func TestHasEnoughData_ThresholdBoundary(t *testing.T) {
	var meals []MealEvent
	for d := 1; d <= 3; d++ {
		meals = append(meals, meal(fmt.Sprintf("a%d", d), at(d, 8, 0), "apple"))
	}
	for d := 1; d <= 2; d++ {
		meals = append(meals, meal(fmt.Sprintf("b%d", d), at(d, 9, 0), "banana"))
	}

	profiles := HistoricalProfiles(meals, nil)
	assert.True(t, profileByName(t, profiles, "apple").HasEnoughData)
	assert.False(t, profileByName(t, profiles, "banana").HasEnoughData)
}

func TestHistoricalProfiles_InvariantsAndIdempotence(t *testing.T) {
	meals := []MealEvent{
		meal("m1", at(1, 8, 0), "cow milk, rye bread"),
		meal("m2", at(1, 12, 0), "cheese"),
		meal("m3", at(2, 8, 0), "cow milk"),
		meal("m4", at(2, 12, 0), "rye bread, cheese"),
		meal("m5", at(3, 8, 0), "oats"),
	}
	symptoms := []SymptomEvent{
		symptom("s1", at(1, 13, 0), "bloating"),
		symptom("s2", at(2, 9, 0), "cramps"),
	}

	first := HistoricalProfiles(meals, symptoms)
	second := HistoricalProfiles(meals, symptoms)
	assert.Equal(t, first, second)

	for _, p := range first {
		assert.GreaterOrEqual(t, p.SuspicionRate, 0.0, p.Name)
		assert.LessOrEqual(t, p.SuspicionRate, 1.0, p.Name)
		assert.LessOrEqual(t, p.SymptomOccurrences, p.TotalOccurrences, p.Name)
		assert.Equal(t, p.TotalOccurrences-p.SymptomOccurrences, p.SafeOccurrences, p.Name)
	}

	// ranking: rate desc, then total desc, then name asc
	for i := 1; i < len(first); i++ {
		a, b := first[i-1], first[i]
		if a.SuspicionRate != b.SuspicionRate {
			assert.Greater(t, a.SuspicionRate, b.SuspicionRate)
		} else if a.TotalOccurrences != b.TotalOccurrences {
			assert.Greater(t, a.TotalOccurrences, b.TotalOccurrences)
		} else {
			assert.Less(t, a.Name, b.Name)
		}
	}
}

func TestTopProblematic(t *testing.T) {
	profiles := []IngredientProfile{
		{Name: "oats", SuspicionRate: 0, TotalOccurrences: 5},
		{Name: "cheese", SuspicionRate: 1.0, TotalOccurrences: 2},
		{Name: "milk", SuspicionRate: 0.5, TotalOccurrences: 4},
	}

	top := TopProblematic(profiles, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "cheese", top[0].Name)
	assert.Equal(t, "milk", top[1].Name)

	// safe ingredients never pad the list
	all := TopProblematic(profiles, 10)
	require.Len(t, all, 2)

	assert.Nil(t, TopProblematic(profiles, 0))
}

// ---------- per-symptom window ----------

func TestAnalyzeSymptomWindow_UnknownSymptom(t *testing.T) {
	meals := []MealEvent{meal("m1", at(1, 12, 0), "oats")}
	symptoms := []SymptomEvent{symptom("s1", at(1, 14, 0), "bloating")}
	assert.Nil(t, AnalyzeSymptomWindow(meals, symptoms, "nope", 6*time.Hour))
}

func TestAnalyzeSymptomWindow_EmptyWindow(t *testing.T) {
	meals := []MealEvent{meal("m1", at(1, 2, 0), "oats")}
	symptoms := []SymptomEvent{symptom("s1", at(1, 14, 0), "bloating")}
	assert.Nil(t, AnalyzeSymptomWindow(meals, symptoms, "s1", 2*time.Hour))
}

func TestAnalyzeSymptomWindow_NewIngredient(t *testing.T) {
	meals := []MealEvent{meal("m1", at(5, 16, 0), "durian")}
	symptoms := []SymptomEvent{symptom("s1", at(5, 18, 0), "nausea")}

	results := AnalyzeSymptomWindow(meals, symptoms, "s1", 6*time.Hour)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, BucketNew, r.Bucket)
	assert.Nil(t, r.History)
	assert.False(t, r.UsedHistory)
	assert.False(t, r.IsSafe)
	assert.Greater(t, r.SuspicionScore, 0.0)
	assert.LessOrEqual(t, r.SuspicionScore, noHistoryBaseline)
}

func TestAnalyzeSymptomWindow_UsesQualifyingHistory(t *testing.T) {
	meals := []MealEvent{
		meal("m1", at(1, 12, 0), "cheese"),
		meal("m2", at(2, 12, 0), "cheese"),
		meal("m3", at(5, 16, 0), "cheese"),
	}
	symptoms := []SymptomEvent{
		symptom("s1", at(1, 14, 0), "cramps"),
		symptom("s2", at(2, 14, 0), "cramps"),
		symptom("s3", at(5, 18, 0), "cramps"),
	}

	results := AnalyzeSymptomWindow(meals, symptoms, "s3", 6*time.Hour)
	require.Len(t, results, 1)
	r := results[0]
	assert.True(t, r.UsedHistory)
	assert.Equal(t, BucketTrigger, r.Bucket)
	require.NotNil(t, r.History)
	assert.Equal(t, 2, r.History.TotalOccurrences)
	assert.Equal(t, 1.0, r.SuspicionScore)
}

func TestAnalyzeSymptomWindow_ZeroSymptomHistoryIsSafeEvenWithOneMeal(t *testing.T) {
	meals := []MealEvent{
		meal("m1", at(1, 12, 0), "oats"),
		meal("m2", at(5, 16, 0), "oats"),
	}
	symptoms := []SymptomEvent{symptom("s1", at(5, 18, 0), "nausea")}

	results := AnalyzeSymptomWindow(meals, symptoms, "s1", 6*time.Hour)
	require.Len(t, results, 1)
	r := results[0]
	assert.True(t, r.IsSafe)
	assert.Equal(t, BucketSafe, r.Bucket)
	assert.False(t, r.UsedHistory, "one prior meal is below the history threshold")
}

func TestAnalyzeSymptomWindow_ThinFlaggedHistoryIsInsufficient(t *testing.T) {
	meals := []MealEvent{
		meal("m1", at(1, 12, 0), "cheese"),
		meal("m2", at(5, 16, 0), "cheese"),
	}
	symptoms := []SymptomEvent{
		symptom("s1", at(1, 14, 0), "cramps"),
		symptom("s2", at(5, 18, 0), "cramps"),
	}

	results := AnalyzeSymptomWindow(meals, symptoms, "s2", 6*time.Hour)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, BucketInsufficient, r.Bucket)
	assert.False(t, r.UsedHistory)
	assert.False(t, r.IsSafe)
	require.NotNil(t, r.History)
	assert.Equal(t, 1, r.History.TotalOccurrences)
}

func TestAnalyzeSymptomWindow_BucketsPartitionResults(t *testing.T) {
	meals := []MealEvent{
		// cheese: rich flagged history
		meal("m1", at(1, 12, 0), "cheese"),
		meal("m2", at(2, 12, 0), "cheese"),
		// oats: clean history
		meal("m3", at(3, 12, 0), "oats"),
		// milk: one flagged prior meal
		meal("m4", at(4, 12, 0), "milk"),
		// everything plus a brand new ingredient in the window
		meal("m5", at(6, 15, 0), "cheese, oats, milk, durian"),
	}
	symptoms := []SymptomEvent{
		symptom("s1", at(1, 14, 0), "cramps"),
		symptom("s2", at(2, 14, 0), "cramps"),
		symptom("s3", at(4, 14, 0), "bloating"),
		symptom("s4", at(6, 18, 0), "nausea"),
	}

	results := AnalyzeSymptomWindow(meals, symptoms, "s4", 6*time.Hour)
	require.Len(t, results, 4)

	counts := map[WindowBucket]int{}
	for _, r := range results {
		counts[r.Bucket]++
		assert.GreaterOrEqual(t, r.SuspicionScore, 0.0, r.Name)
		assert.LessOrEqual(t, r.SuspicionScore, 1.0, r.Name)
		assert.GreaterOrEqual(t, r.ProximityWeight, proximityFloor, r.Name)
		assert.LessOrEqual(t, r.ProximityWeight, 1.0, r.Name)
	}
	assert.Equal(t, 1, counts[BucketTrigger])
	assert.Equal(t, 1, counts[BucketSafe])
	assert.Equal(t, 1, counts[BucketInsufficient])
	assert.Equal(t, 1, counts[BucketNew])
}

func TestProximityWeight(t *testing.T) {
	w := 6 * time.Hour
	assert.Equal(t, 1.0, proximityWeight(0, w))
	assert.InDelta(t, proximityFloor, proximityWeight(w, w), 1e-9)

	// monotonic: closer meals weigh more
	assert.Greater(t, proximityWeight(1*time.Hour, w), proximityWeight(2*time.Hour, w))
	assert.Greater(t, proximityWeight(2*time.Hour, w), proximityWeight(5*time.Hour, w))
}

func TestAnalyzeSymptomWindow_ClosestMealDefinesWeight(t *testing.T) {
	meals := []MealEvent{
		meal("m1", at(5, 13, 0), "oats"),
		meal("m2", at(5, 17, 0), "oats"),
	}
	symptoms := []SymptomEvent{symptom("s1", at(5, 18, 0), "nausea")}

	results := AnalyzeSymptomWindow(meals, symptoms, "s1", 6*time.Hour)
	require.Len(t, results, 1)
	assert.InDelta(t, proximityWeight(time.Hour, 6*time.Hour), results[0].ProximityWeight, 1e-9)
}
