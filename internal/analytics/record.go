package analytics

import (
	"errors"
	"time"
)

const (
	TableTdee      = "tdee_calculation"
	TableOneRepMax = "one_rep_max_calculation"

	MinRecentLimit     = 1
	MaxRecentLimit     = 500
	DefaultRecentLimit = 100
)

// ErrStorage marks every failure coming from a storage backend, so callers can
// tell it apart from their own errors with errors.Is.
var ErrStorage = errors.New("analytics storage failure")

// TdeeCalculation is an append-only audit record of a single TDEE computation.
// Sex is stored as a code: 0 = male, 1 = female.
type TdeeCalculation struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Sex       int16     `json:"sex"`
	WeightKg  float64   `json:"weight_kg"`
	HeightCm  float64   `json:"height_cm"`
	AgeYears  int16     `json:"age_years"`
	Activity  float64   `json:"activity"`
	TdeeKcal  int32     `json:"tdee_kcal"`
	Note      *string   `json:"note,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
	ClientID  *string   `json:"client_id,omitempty"`
}

// OneRepMaxCalculation is an append-only audit record of a single
// one-rep-max (Epley) computation.
type OneRepMaxCalculation struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Weight    float64   `json:"weight"`
	Reps      int32     `json:"reps"`
	OneRm     float64   `json:"one_rm"`
	Note      *string   `json:"note,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
	ClientID  *string   `json:"client_id,omitempty"`
}

type TdeeParams struct {
	Sex       int16
	WeightKg  float64
	HeightCm  float64
	AgeYears  int16
	Activity  float64
	TdeeKcal  int32
	Note      *string
	UserAgent *string
	ClientID  *string
}

func (p TdeeParams) record(id int64, createdAt time.Time) TdeeCalculation {
	return TdeeCalculation{
		ID:        id,
		CreatedAt: createdAt,
		Sex:       p.Sex,
		WeightKg:  p.WeightKg,
		HeightCm:  p.HeightCm,
		AgeYears:  p.AgeYears,
		Activity:  p.Activity,
		TdeeKcal:  p.TdeeKcal,
		Note:      p.Note,
		UserAgent: p.UserAgent,
		ClientID:  p.ClientID,
	}
}

type OneRepMaxParams struct {
	Weight    float64
	Reps      int32
	OneRm     float64
	Note      *string
	UserAgent *string
	ClientID  *string
}

func (p OneRepMaxParams) record(id int64, createdAt time.Time) OneRepMaxCalculation {
	return OneRepMaxCalculation{
		ID:        id,
		CreatedAt: createdAt,
		Weight:    p.Weight,
		Reps:      p.Reps,
		OneRm:     p.OneRm,
		Note:      p.Note,
		UserAgent: p.UserAgent,
		ClientID:  p.ClientID,
	}
}

// ClampLimit bounds a requested "recent" limit to [MinRecentLimit, MaxRecentLimit].
func ClampLimit(limit int) int {
	return min(max(limit, MinRecentLimit), MaxRecentLimit)
}
