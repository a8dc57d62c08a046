package risk

// MaxRecommendations caps the number of recommendations reported.
const MaxRecommendations = 6

// Recommendation texts.
const (
	RecommendDiet        = "Reduce saturated fats and increase fiber intake (fruits, vegetables, whole grains)"
	RecommendLipidReview = "Discuss cholesterol-lowering medications with your doctor"
	RecommendSodium      = "Reduce sodium intake (aim for less than 2,300mg per day)"
	RecommendAerobic     = "Regular aerobic exercise (30 minutes, 5 days/week)"
	RecommendScreening   = "Schedule annual cardiac health screenings"
	RecommendFitness     = "Improve cardiovascular fitness through regular exercise"
	RecommendNoSmoking   = "Avoid smoking and limit alcohol consumption"
	RecommendSleep       = "Ensure 7-8 hours of quality sleep each night"
)

// Recommendations lists lifestyle advice derived from submitted values keyed
// by field name, followed by the two general lines. Missing fields contribute
// nothing. The list is capped at MaxRecommendations.
func Recommendations(values map[string]float64) []string {
	var out []string

	if chol, ok := values["chol"]; ok && chol > 200 {
		out = append(out, RecommendDiet, RecommendLipidReview)
	}
	if bp, ok := values["trestbps"]; ok && bp > 130 {
		out = append(out, RecommendSodium, RecommendAerobic)
	}
	if age, ok := values["age"]; ok && age > 50 {
		out = append(out, RecommendScreening)
	}
	if hr, ok := values["thalach"]; ok && hr < 100 {
		out = append(out, RecommendFitness)
	}
	out = append(out, RecommendNoSmoking, RecommendSleep)

	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}
