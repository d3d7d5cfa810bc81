package services

import (
	"math"
	"math/rand"
	"sort"

	"nutriplan/models"
)

// suggestionCalorieTolerance is the accepted distance from the per-meal
// target, as a fraction of it, before the calorie filter is relaxed.
const suggestionCalorieTolerance = 0.5

// scoreBucketWidth groups suggestions whose score is within this many
// points of the bucket's first member.
const scoreBucketWidth = 10.0

// candidate is a catalog meal annotated for selection.
type candidate struct {
	meal      models.Meal
	prepTime  int
	nutrition models.MealNutrition
	score     float64
}

func annotate(meals []models.Meal) []candidate {
	out := make([]candidate, len(meals))
	for i := range meals {
		out[i] = candidate{
			meal:      meals[i],
			prepTime:  meals[i].TotalPreparationTime(),
			nutrition: CalculateMealNutrition(&meals[i]),
		}
	}
	return out
}

func withinPrepTime(cs []candidate, maxMinutes int) []candidate {
	var out []candidate
	for _, c := range cs {
		if c.prepTime <= maxMinutes {
			out = append(out, c)
		}
	}
	return out
}

func calorieDistance(c candidate, target float64) float64 {
	return math.Abs(float64(c.meal.Calories) - target)
}

func withinCalories(cs []candidate, target, tolerance float64) []candidate {
	var out []candidate
	for _, c := range cs {
		if calorieDistance(c, target) <= target*tolerance {
			out = append(out, c)
		}
	}
	return out
}

// sortByCalorieDistance orders candidates nearest to target first. Equal
// distances keep catalog order.
func sortByCalorieDistance(cs []candidate, target float64) {
	sort.SliceStable(cs, func(i, j int) bool {
		return calorieDistance(cs[i], target) < calorieDistance(cs[j], target)
	})
}

func sortByScore(cs []candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].score > cs[j].score
	})
}

// shuffleFunc has the signature of rand.Shuffle.
type shuffleFunc func(n int, swap func(i, j int))

// diversify expects cs sorted by descending score. It splits it into buckets
// whose members are within scoreBucketWidth of the bucket's first member,
// shuffles each bucket on its own and keeps the bucket order.
func diversify(cs []candidate, shuffle shuffleFunc) []candidate {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	out := make([]candidate, 0, len(cs))
	for start := 0; start < len(cs); {
		anchor := cs[start].score
		end := start + 1
		for end < len(cs) && anchor-cs[end].score <= scoreBucketWidth {
			end++
		}
		bucket := append([]candidate(nil), cs[start:end]...)
		shuffle(len(bucket), func(i, j int) { bucket[i], bucket[j] = bucket[j], bucket[i] })
		out = append(out, bucket...)
		start = end
	}
	return out
}

func toScoredMeals(cs []candidate, limit int) []models.ScoredMeal {
	if limit > 0 && len(cs) > limit {
		cs = cs[:limit]
	}
	out := make([]models.ScoredMeal, len(cs))
	for i, c := range cs {
		out[i] = models.ScoredMeal{
			Meal:            c.meal,
			PreparationTime: c.prepTime,
			Nutrition:       c.nutrition,
			RelevanceScore:  c.score,
		}
	}
	return out
}
