package fitness_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/2beens/fitcalc/internal/analytics"
	"github.com/2beens/fitcalc/internal/fitness"
	"github.com/2beens/fitcalc/internal/telemetry/metrics"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type handlerTestDeps struct {
	recorder *MockanalyticsRecorder
	reader   *MockanalyticsReader
	metrics  *metrics.Manager
	router   *mux.Router
}

func newHandlerTestDeps(t *testing.T) handlerTestDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := handlerTestDeps{
		recorder: NewMockanalyticsRecorder(ctrl),
		reader:   NewMockanalyticsReader(ctrl),
		metrics:  metrics.NewTestManager(),
		router:   mux.NewRouter(),
	}
	handler := fitness.NewHandler(deps.recorder, deps.reader, deps.metrics)
	handler.SetupRoutes(deps.router)
	return deps
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func strPtr(s string) *string {
	return &s
}

func TestHandleTdee(t *testing.T) {
	deps := newHandlerTestDeps(t)

	deps.recorder.EXPECT().RecordTdee(gomock.Any(), analytics.TdeeParams{
		Sex:       0,
		WeightKg:  80,
		HeightCm:  180,
		AgeYears:  25,
		Activity:  1.55,
		TdeeKcal:  2798,
		UserAgent: strPtr("test-agent"),
	})

	req := httptest.NewRequest("GET", "/api/tdee?weightKg=80&heightCm=180&age=25&sex=male&activity=1.55", nil)
	req.Header.Set("User-Agent", "test-agent")
	rr := serve(deps.router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp fitness.TdeeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 2797.75, resp.Tdee, 1e-9)
	assert.Equal(t, float64(1), testutil.ToFloat64(deps.metrics.CounterTdeeCalculations))
}

func TestHandleTdee_DefaultsAndFemale(t *testing.T) {
	deps := newHandlerTestDeps(t)

	deps.recorder.EXPECT().RecordTdee(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, p analytics.TdeeParams) {
			assert.Equal(t, int16(1), p.Sex)
			assert.Equal(t, fitness.DefaultActivity, p.Activity)
			assert.Equal(t, int32(1967), p.TdeeKcal)
			assert.Nil(t, p.UserAgent)
			assert.Nil(t, p.Note)
			assert.Nil(t, p.ClientID)
		})

	req := httptest.NewRequest("GET", "/api/tdee?weightKg=80&heightCm=180&age=25&sex=unknown", nil)
	req.Header.Del("User-Agent")
	rr := serve(deps.router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp fitness.TdeeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	// (800 + 1125 - 125 - 161) * 1.2
	assert.InDelta(t, 1966.8, resp.Tdee, 1e-9)
}

func TestHandleTdee_InvalidParams(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{name: "missing weight", query: "heightCm=180&age=25&sex=male"},
		{name: "zero weight", query: "weightKg=0&heightCm=180&age=25&sex=male"},
		{name: "weight NaN", query: "weightKg=abc&heightCm=180&age=25&sex=male"},
		{name: "weight literal NaN", query: "weightKg=NaN&heightCm=180&age=25&sex=male"},
		{name: "weight Inf", query: "weightKg=Inf&heightCm=180&age=25&sex=male"},
		{name: "missing height", query: "weightKg=80&age=25&sex=male"},
		{name: "height below min", query: "weightKg=80&heightCm=0.5&age=25&sex=male"},
		{name: "missing age", query: "weightKg=80&heightCm=180&sex=male"},
		{name: "zero age", query: "weightKg=80&heightCm=180&age=0&sex=male"},
		{name: "fractional age", query: "weightKg=80&heightCm=180&age=25.5&sex=male"},
		{name: "age too large", query: "weightKg=80&heightCm=180&age=40000&sex=male"},
		{name: "missing sex", query: "weightKg=80&heightCm=180&age=25"},
		{name: "zero activity", query: "weightKg=80&heightCm=180&age=25&sex=male&activity=0"},
		{name: "negative activity", query: "weightKg=80&heightCm=180&age=25&sex=male&activity=-1.2"},
		{name: "activity NaN", query: "weightKg=80&heightCm=180&age=25&sex=male&activity=abc"},
		{name: "tdee above int32", query: "weightKg=1e9&heightCm=180&age=25&sex=male"},
		{name: "tdee below int32", query: "weightKg=1&heightCm=1&age=32767&sex=female&activity=1e6"},
		{name: "tdee overflows to Inf", query: "weightKg=1e308&heightCm=180&age=25&sex=male&activity=10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deps := newHandlerTestDeps(t)
			// no RecordTdee expectation: nothing may be persisted

			req := httptest.NewRequest("GET", "/api/tdee?"+tc.query, nil)
			rr := serve(deps.router, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, float64(0), testutil.ToFloat64(deps.metrics.CounterTdeeCalculations))
		})
	}
}

func TestHandleTdee_EmptySex(t *testing.T) {
	deps := newHandlerTestDeps(t)
	deps.recorder.EXPECT().RecordTdee(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, p analytics.TdeeParams) {
			assert.Equal(t, fitness.SexFemale.Code(), p.Sex)
		})

	req := httptest.NewRequest("GET", "/api/tdee?weightKg=80&heightCm=180&age=25&sex=", nil)
	rr := serve(deps.router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp fitness.TdeeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 1966.8, resp.Tdee, 1e-9)
}

func TestHandleTdee_LargeValidResult(t *testing.T) {
	deps := newHandlerTestDeps(t)
	deps.recorder.EXPECT().RecordTdee(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, p analytics.TdeeParams) {
			assert.Equal(t, int32(1200001206), p.TdeeKcal)
		})

	// (1e9 + 1125 - 125 + 5) * 1.2
	req := httptest.NewRequest("GET", "/api/tdee?weightKg=1e8&heightCm=180&age=25&sex=male", nil)
	rr := serve(deps.router, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestHandleTdeeRecent(t *testing.T) {
	deps := newHandlerTestDeps(t)
	createdAt := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	deps.reader.EXPECT().GetRecent(gomock.Any(), analytics.DefaultRecentLimit).Return([]analytics.TdeeCalculation{
		{ID: 2, CreatedAt: createdAt, Sex: 0, WeightKg: 80, HeightCm: 180, AgeYears: 25, Activity: 1.55, TdeeKcal: 2798, UserAgent: strPtr("ua")},
		{ID: 1, Sex: 1, WeightKg: 60, HeightCm: 165, AgeYears: 30, Activity: 1.2, TdeeKcal: 1627},
	}, nil)

	rr := serve(deps.router, httptest.NewRequest("GET", "/api/tdee/recent", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, map[string]any{
		"id":        float64(2),
		"createdAt": "2024-03-01T10:30:00Z",
		"sex":       float64(0),
		"weightKg":  float64(80),
		"heightCm":  float64(180),
		"ageYears":  float64(25),
		"activity":  1.55,
		"tdeeKcal":  float64(2798),
	}, rows[0])
	assert.Nil(t, rows[1]["createdAt"])
	assert.Contains(t, rows[1], "createdAt")
	assert.Equal(t, float64(1), rows[1]["id"])
}

func TestHandleRecent_Limits(t *testing.T) {
	testCases := []struct {
		query         string
		expectedLimit int
	}{
		{query: "", expectedLimit: 100},
		{query: "?limit=10", expectedLimit: 10},
		{query: "?limit=0", expectedLimit: 1},
		{query: "?limit=-5", expectedLimit: 1},
		{query: "?limit=500", expectedLimit: 500},
		{query: "?limit=10000", expectedLimit: 500},
	}

	for _, tc := range testCases {
		t.Run("tdee"+tc.query, func(t *testing.T) {
			deps := newHandlerTestDeps(t)
			deps.reader.EXPECT().GetRecent(gomock.Any(), tc.expectedLimit).Return(nil, nil)

			rr := serve(deps.router, httptest.NewRequest("GET", "/api/tdee/recent"+tc.query, nil))
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "[]", rr.Body.String())
		})
		t.Run("one-rep-max"+tc.query, func(t *testing.T) {
			deps := newHandlerTestDeps(t)
			deps.reader.EXPECT().GetRecentOneRepMax(gomock.Any(), tc.expectedLimit).Return([]analytics.OneRepMaxCalculation{}, nil)

			rr := serve(deps.router, httptest.NewRequest("GET", "/api/one-rep-max/recent"+tc.query, nil))
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "[]", rr.Body.String())
		})
	}
}

func TestHandleRecent_InvalidLimit(t *testing.T) {
	deps := newHandlerTestDeps(t)

	rr := serve(deps.router, httptest.NewRequest("GET", "/api/tdee/recent?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(deps.router, httptest.NewRequest("GET", "/api/one-rep-max/recent?limit=1.5", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleRecent_StorageFailure(t *testing.T) {
	deps := newHandlerTestDeps(t)
	storageErr := errors.Join(analytics.ErrStorage, errors.New("connection refused"))

	deps.reader.EXPECT().GetRecent(gomock.Any(), 100).Return(nil, storageErr)
	deps.reader.EXPECT().GetRecentOneRepMax(gomock.Any(), 100).Return(nil, storageErr)

	rr := serve(deps.router, httptest.NewRequest("GET", "/api/tdee/recent", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = serve(deps.router, httptest.NewRequest("GET", "/api/one-rep-max/recent", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandleOneRepMax(t *testing.T) {
	deps := newHandlerTestDeps(t)

	deps.recorder.EXPECT().RecordOneRepMax(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, p analytics.OneRepMaxParams) {
			assert.Equal(t, float64(100), p.Weight)
			assert.Equal(t, int32(5), p.Reps)
			assert.InDelta(t, 116.66666666666667, p.OneRm, 1e-9)
			assert.Nil(t, p.Note)
			assert.Nil(t, p.UserAgent)
			assert.Nil(t, p.ClientID)
		})

	req := httptest.NewRequest("POST", "/api/one-rep-max", strings.NewReader(`{"weight": 100, "reps": 5}`))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(deps.router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp fitness.OneRepMaxResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 116.66666666666667, resp.OneRepMax, 1e-9)
	assert.Equal(t, float64(1), testutil.ToFloat64(deps.metrics.CounterOneRepMaxCalculations))
}

func TestHandleOneRepMax_InvalidBody(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "malformed json", body: `{"weight": 100,`},
		{name: "missing weight", body: `{"reps": 5}`},
		{name: "missing reps", body: `{"weight": 100}`},
		{name: "zero weight", body: `{"weight": 0, "reps": 5}`},
		{name: "weight below min", body: `{"weight": 0.5, "reps": 5}`},
		{name: "zero reps", body: `{"weight": 100, "reps": 0}`},
		{name: "negative reps", body: `{"weight": 100, "reps": -3}`},
		{name: "fractional reps", body: `{"weight": 100, "reps": 2.5}`},
		{name: "weight as string", body: `{"weight": "100", "reps": 5}`},
		{name: "one rep max overflows to Inf", body: `{"weight": 1e308, "reps": 30}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			deps := newHandlerTestDeps(t)

			req := httptest.NewRequest("POST", "/api/one-rep-max", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := serve(deps.router, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, float64(0), testutil.ToFloat64(deps.metrics.CounterOneRepMaxCalculations))
		})
	}
}

func TestHandle_Options(t *testing.T) {
	testCases := []struct {
		path  string
		allow string
	}{
		{path: "/api/tdee", allow: "GET, OPTIONS"},
		{path: "/api/tdee/recent", allow: "GET, OPTIONS"},
		{path: "/api/one-rep-max", allow: "POST, OPTIONS"},
		{path: "/api/one-rep-max/recent", allow: "GET, OPTIONS"},
	}

	deps := newHandlerTestDeps(t)
	for _, tc := range testCases {
		rr := serve(deps.router, httptest.NewRequest("OPTIONS", tc.path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, tc.path)
		assert.Equal(t, tc.allow, rr.Header().Get("Allow"), tc.path)
	}
}

func TestHandle_MethodNotAllowed(t *testing.T) {
	deps := newHandlerTestDeps(t)

	rr := serve(deps.router, httptest.NewRequest("POST", "/api/tdee", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = serve(deps.router, httptest.NewRequest("GET", "/api/one-rep-max", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandler_WithMemoryStore(t *testing.T) {
	store := analytics.NewMemoryRepo()
	m := metrics.NewTestManager()
	recorder := analytics.NewRecorder(store, m, analytics.RecorderParams{})
	defer func() {
		require.NoError(t, recorder.Close(context.Background()))
	}()

	router := mux.NewRouter()
	fitness.NewHandler(recorder, store, m).SetupRoutes(router)

	// rejected requests persist nothing
	rr := serve(router, httptest.NewRequest("GET", "/api/tdee?weightKg=0&heightCm=180&age=25&sex=male", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	recent, err := store.GetRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, recent)

	for _, w := range []string{"70", "80", "90"} {
		rr = serve(router, httptest.NewRequest("GET", "/api/tdee?weightKg="+w+"&heightCm=180&age=25&sex=male&activity=1.55", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr = serve(router, httptest.NewRequest("POST", "/api/one-rep-max", strings.NewReader(`{"weight": 100, "reps": 5}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(router, httptest.NewRequest("GET", "/api/tdee/recent?limit=2", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var tdeeRows []fitness.TdeeRow
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tdeeRows))
	require.Len(t, tdeeRows, 2)
	assert.Equal(t, int64(3), tdeeRows[0].ID)
	assert.Equal(t, float64(90), tdeeRows[0].WeightKg)
	assert.Equal(t, int64(2), tdeeRows[1].ID)
	assert.Equal(t, int32(2798), tdeeRows[1].TdeeKcal)
	require.NotNil(t, tdeeRows[0].CreatedAt)
	_, err = time.Parse(time.RFC3339, *tdeeRows[0].CreatedAt)
	assert.NoError(t, err)

	rr = serve(router, httptest.NewRequest("GET", "/api/one-rep-max/recent", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var ormRows []fitness.OneRepMaxRow
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ormRows))
	require.Len(t, ormRows, 1)
	assert.Equal(t, int64(1), ormRows[0].ID)
	assert.Equal(t, int32(5), ormRows[0].Reps)
	assert.InDelta(t, 116.66666666666667, ormRows[0].OneRm, 1e-9)
}
