package fitness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/fitcalc/internal/analytics"
	"github.com/2beens/fitcalc/internal/telemetry/metrics"
	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=fitness_test

type analyticsRecorder interface {
	RecordTdee(ctx context.Context, params analytics.TdeeParams)
	RecordOneRepMax(ctx context.Context, params analytics.OneRepMaxParams)
}

type analyticsReader interface {
	GetRecent(ctx context.Context, limit int) ([]analytics.TdeeCalculation, error)
	GetRecentOneRepMax(ctx context.Context, limit int) ([]analytics.OneRepMaxCalculation, error)
}

type TdeeResponse struct {
	Tdee float64 `json:"tdee"`
}

type OneRepMaxRequest struct {
	Weight float64 `json:"weight" validate:"required,min=1"`
	Reps   int32   `json:"reps" validate:"required,min=1"`
}

type OneRepMaxResponse struct {
	OneRepMax float64 `json:"oneRepMax"`
}

type TdeeRow struct {
	ID        int64   `json:"id"`
	CreatedAt *string `json:"createdAt"`
	Sex       int16   `json:"sex"`
	WeightKg  float64 `json:"weightKg"`
	HeightCm  float64 `json:"heightCm"`
	AgeYears  int16   `json:"ageYears"`
	Activity  float64 `json:"activity"`
	TdeeKcal  int32   `json:"tdeeKcal"`
}

type OneRepMaxRow struct {
	ID        int64   `json:"id"`
	CreatedAt *string `json:"createdAt"`
	Weight    float64 `json:"weight"`
	Reps      int32   `json:"reps"`
	OneRm     float64 `json:"oneRm"`
}

type Handler struct {
	recorder analyticsRecorder
	reader   analyticsReader
	metrics  *metrics.Manager
	validate *validator.Validate
}

func NewHandler(
	recorder analyticsRecorder,
	reader analyticsReader,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		recorder: recorder,
		reader:   reader,
		metrics:  metricsManager,
		validate: validator.New(),
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tdee", handler.HandleTdee).Methods("GET", "OPTIONS").Name("tdee")
	api.HandleFunc("/tdee/recent", handler.HandleTdeeRecent).Methods("GET", "OPTIONS").Name("tdee-recent")
	api.HandleFunc("/one-rep-max", handler.HandleOneRepMax).Methods("POST", "OPTIONS").Name("one-rep-max")
	api.HandleFunc("/one-rep-max/recent", handler.HandleOneRepMaxRecent).Methods("GET", "OPTIONS").Name("one-rep-max-recent")
}

func (handler *Handler) HandleTdee(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.Start(r.Context(), "handler.fitness.tdee")
	defer span.End()

	query := r.URL.Query()
	weightKg, err := floatParam(query.Get("weightKg"), "weightKg", 1)
	if err != nil {
		badRequest(w, err)
		return
	}
	heightCm, err := floatParam(query.Get("heightCm"), "heightCm", 1)
	if err != nil {
		badRequest(w, err)
		return
	}
	age, err := intParam(query.Get("age"), "age", 1)
	if err != nil {
		badRequest(w, err)
		return
	}
	// stored as a smallint
	if age > math.MaxInt16 {
		badRequest(w, errors.New("parameter <age> too large"))
		return
	}
	// present but empty falls through to female
	if !query.Has("sex") {
		badRequest(w, errors.New("parameter <sex> missing"))
		return
	}
	sex := query.Get("sex")
	activity := DefaultActivity
	if activityStr := query.Get("activity"); activityStr != "" {
		activity, err = strconv.ParseFloat(activityStr, 64)
		if err != nil || !isFinite(activity) || activity <= 0 {
			badRequest(w, errors.New("parameter <activity> must be a number greater than 0"))
			return
		}
	}

	tdee := ComputeTdee(weightKg, heightCm, age, sex, activity)
	// tdee_kcal is stored as an integer
	if !isFinite(tdee) || math.Round(tdee) > math.MaxInt32 || math.Round(tdee) < math.MinInt32 {
		badRequest(w, errors.New("tdee out of range"))
		return
	}
	handler.metrics.CounterTdeeCalculations.Inc()
	span.SetAttributes(attribute.Float64("tdee", tdee))

	handler.recorder.RecordTdee(ctx, analytics.TdeeParams{
		Sex:       ParseSex(sex).Code(),
		WeightKg:  weightKg,
		HeightCm:  heightCm,
		AgeYears:  int16(age),
		Activity:  activity,
		TdeeKcal:  RoundKcal(tdee),
		UserAgent: userAgent(r),
	})

	pkg.WriteJSON(w, TdeeResponse{Tdee: tdee}, http.StatusOK)
}

func (handler *Handler) HandleTdeeRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.Start(r.Context(), "handler.fitness.tdee.recent")
	defer span.End()

	limit, err := limitParam(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	span.SetAttributes(attribute.Int("limit", limit))

	calculations, err := handler.reader.GetRecent(ctx, limit)
	if err != nil {
		log.Errorf("get recent tdee calculations: %s", err)
		span.RecordError(err)
		http.Error(w, "failed to get recent tdee calculations", http.StatusInternalServerError)
		return
	}

	rows := make([]TdeeRow, 0, len(calculations))
	for _, c := range calculations {
		rows = append(rows, TdeeRow{
			ID:        c.ID,
			CreatedAt: formatCreatedAt(c.CreatedAt),
			Sex:       c.Sex,
			WeightKg:  c.WeightKg,
			HeightCm:  c.HeightCm,
			AgeYears:  c.AgeYears,
			Activity:  c.Activity,
			TdeeKcal:  c.TdeeKcal,
		})
	}

	pkg.WriteJSON(w, rows, http.StatusOK)
}

func (handler *Handler) HandleOneRepMax(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.Start(r.Context(), "handler.fitness.onerepmax")
	defer span.End()

	var req OneRepMaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("one rep max, unmarshal json body: %s", err)
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := handler.validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			badRequest(w, fmt.Errorf("field <%s> failed on <%s>", vErrs[0].Field(), vErrs[0].Tag()))
			return
		}
		badRequest(w, err)
		return
	}

	oneRepMax := ComputeOneRepMax(req.Weight, float64(req.Reps))
	if !isFinite(oneRepMax) {
		badRequest(w, errors.New("one rep max out of range"))
		return
	}
	handler.metrics.CounterOneRepMaxCalculations.Inc()
	span.SetAttributes(attribute.Float64("one_rep_max", oneRepMax))

	handler.recorder.RecordOneRepMax(ctx, analytics.OneRepMaxParams{
		Weight: req.Weight,
		Reps:   req.Reps,
		OneRm:  oneRepMax,
	})

	pkg.WriteJSON(w, OneRepMaxResponse{OneRepMax: oneRepMax}, http.StatusOK)
}

func (handler *Handler) HandleOneRepMaxRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, span := tracing.Start(r.Context(), "handler.fitness.onerepmax.recent")
	defer span.End()

	limit, err := limitParam(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	span.SetAttributes(attribute.Int("limit", limit))

	calculations, err := handler.reader.GetRecentOneRepMax(ctx, limit)
	if err != nil {
		log.Errorf("get recent one rep max calculations: %s", err)
		span.RecordError(err)
		http.Error(w, "failed to get recent one rep max calculations", http.StatusInternalServerError)
		return
	}

	rows := make([]OneRepMaxRow, 0, len(calculations))
	for _, c := range calculations {
		rows = append(rows, OneRepMaxRow{
			ID:        c.ID,
			CreatedAt: formatCreatedAt(c.CreatedAt),
			Weight:    c.Weight,
			Reps:      c.Reps,
			OneRm:     c.OneRm,
		})
	}

	pkg.WriteJSON(w, rows, http.StatusOK)
}

func badRequest(w http.ResponseWriter, err error) {
	log.Tracef("bad request: %s", err)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func floatParam(raw, name string, minValue float64) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("parameter <%s> missing", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(v) {
		return 0, fmt.Errorf("parameter <%s> NaN", name)
	}
	if v < minValue {
		return 0, fmt.Errorf("parameter <%s> must be at least %v", name, minValue)
	}
	return v, nil
}

func intParam(raw, name string, minValue int) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("parameter <%s> missing", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter <%s> must be an integer", name)
	}
	if v < minValue {
		return 0, fmt.Errorf("parameter <%s> must be at least %d", name, minValue)
	}
	return v, nil
}

// limitParam reads the optional "limit" query param and clamps it to the
// allowed range. Only a non-integer value is an error.
func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return analytics.DefaultRecentLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("parameter <limit> must be an integer")
	}
	return analytics.ClampLimit(limit), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatCreatedAt(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func userAgent(r *http.Request) *string {
	ua := r.Header.Get("User-Agent")
	if ua == "" {
		return nil
	}
	return &ua
}
