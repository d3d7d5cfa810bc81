package utils

import "math"

// CalculateBMI expects weight in kilograms and height in centimeters.
func CalculateBMI(weightKg, heightCm float64) (float64, bool) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, false
	}
	h := heightCm / 100.0
	bmi := weightKg / (h * h)
	if math.IsInf(bmi, 0) || math.IsNaN(bmi) {
		return 0, false
	}
	return bmi, true
}

func bmiFrom(weightKg, heightCm *float64) (float64, bool) {
	if weightKg == nil || heightCm == nil {
		return 0, false
	}
	return CalculateBMI(*weightKg, *heightCm)
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
