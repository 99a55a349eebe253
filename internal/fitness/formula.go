package fitness

import (
	"math"
	"strings"
)

// DefaultActivity is the sedentary activity multiplier used when none is given.
const DefaultActivity = 1.2

type Sex int16

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

// ParseSex maps "male" (any case) to SexMale. Every other value, unknown
// ones included, is treated as female.
func ParseSex(sex string) Sex {
	if strings.EqualFold(strings.TrimSpace(sex), "male") {
		return SexMale
	}
	return SexFemale
}

func (s Sex) Code() int16 {
	return int16(s)
}

func (s Sex) String() string {
	if s == SexMale {
		return "male"
	}
	return "female"
}

// Bmr is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func Bmr(weightKg, heightCm float64, ageYears int, sex Sex) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// ComputeTdee returns the total daily energy expenditure: BMR scaled by the
// activity multiplier.
func ComputeTdee(weightKg, heightCm float64, ageYears int, sex string, activity float64) float64 {
	return Bmr(weightKg, heightCm, ageYears, ParseSex(sex)) * activity
}

// RoundKcal rounds half away from zero, the form a TDEE is persisted in.
func RoundKcal(tdee float64) int32 {
	return int32(math.Round(tdee))
}

// ComputeOneRepMax estimates the one-rep max with the Epley formula.
func ComputeOneRepMax(weight, reps float64) float64 {
	return weight * (1 + reps/30)
}
