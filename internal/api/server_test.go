package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/rgehrsitz/ccsgo/internal/scenario"
	"github.com/rgehrsitz/ccsgo/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const familyJSON = `{
	"family": {
		"parent1": {"name": "Sam", "baseIncome": "100000", "hoursPerDay": "7.6"},
		"parent2": {"name": "Alex", "baseIncome": "80000"}
	},
	"children": [
		{"name": "Ada", "age": 3, "careType": "centre_based", "hourlyFee": "12.50", "weeklyHours": "40"}
	]
}`

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
}

type generated struct {
	Mode            string            `json:"mode"`
	Metric          string            `json:"metric"`
	Scenarios       []domain.Scenario `json:"scenarios"`
	Recommendations []struct {
		Title string `json:"title"`
	} `json:"recommendations"`
	Dropped     int      `json:"dropped"`
	Assumptions []string `json:"assumptions"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, origins ...string) (*gin.Engine, *metrics.Recorder) {
	t.Helper()
	recorder := metrics.NewRecorder()
	gen := scenario.NewGenerator(nil, scenario.WithObserver(recorder))
	srv := NewServer(Config{Generator: gen, Recorder: recorder, AllowedOrigins: origins, Version: "test"})
	return srv.Router(), recorder
}

func do(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func withRanking(metric, order string) string {
	return strings.TrimSuffix(strings.TrimSpace(familyJSON), "}") +
		`, "metric": "` + metric + `", "order": "` + order + `"}`
}

func TestHealth(t *testing.T) {
	router, _ := newTestServer(t)

	rec, _ := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)
}

func TestGenerateCommon(t *testing.T) {
	router, _ := newTestServer(t)

	rec, env := do(t, router, http.MethodPost, "/api/scenarios/common", familyJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "success", env.Status)

	var out generated
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "common", out.Mode)
	assert.Equal(t, "net_income", out.Metric)
	require.Len(t, out.Scenarios, 10)
	assert.Zero(t, out.Dropped)
	assert.NotEmpty(t, out.Recommendations)
	assert.Contains(t, out.Assumptions, "5% of subsidy withheld until reconciliation")

	first := out.Scenarios[0]
	assert.Equal(t, "5 + 5 days", first.Name)
	assert.Equal(t, "7805.2", first.AnnualOutOfPocket.String())
	for i := 1; i < len(out.Scenarios); i++ {
		assert.False(t, out.Scenarios[i].NetIncomeAfterChildcare.GreaterThan(out.Scenarios[i-1].NetIncomeAfterChildcare),
			"scenarios sorted by net income descending")
	}
}

func TestGenerateExhaustiveAscending(t *testing.T) {
	router, _ := newTestServer(t)

	rec, env := do(t, router, http.MethodPost, "/api/scenarios/exhaustive", withRanking("oop", "asc"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out generated
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out.Scenarios, 35)
	assert.Equal(t, "out_of_pocket", out.Metric)
	for i := 1; i < len(out.Scenarios); i++ {
		assert.False(t, out.Scenarios[i].AnnualOutOfPocket.LessThan(out.Scenarios[i-1].AnnualOutOfPocket))
	}
}

func TestGenerateBadRequests(t *testing.T) {
	router, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"family":`},
		{"unknown metric", withRanking("happiness", "desc")},
		{"unknown order", withRanking("net", "sideways")},
		{"no children", `{"family": {"parent1": {"baseIncome": "90000"}}, "children": []}`},
		{"negative income", `{"family": {"parent1": {"baseIncome": "-1"}}, "children": [{"age": 2, "careType": "oshc", "hourlyFee": "10", "weeklyHours": "10"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, http.MethodPost, "/api/scenarios/common", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "error", env.Status)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestCustom(t *testing.T) {
	router, _ := newTestServer(t)
	body := strings.TrimSuffix(strings.TrimSpace(familyJSON), "}") + `, "parent1Days": 5, "parent2Days": 3}`

	rec, env := do(t, router, http.MethodPost, "/api/scenarios/custom", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var s domain.Scenario
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Equal(t, "5 + 3 days", s.Name)
	assert.True(t, s.Custom)

	bad := strings.TrimSuffix(strings.TrimSpace(familyJSON), "}") + `, "parent1Days": 9, "parent2Days": 2}`
	rec, env = do(t, router, http.MethodPost, "/api/scenarios/custom", bad)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error, "9 + 2")
}

func generateCommon(t *testing.T, router http.Handler) []domain.Scenario {
	t.Helper()
	_, env := do(t, router, http.MethodPost, "/api/scenarios/common", familyJSON)
	var out generated
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out.Scenarios
}

func TestFilterSortBest(t *testing.T) {
	router, _ := newTestServer(t)
	scenarios := generateCommon(t, router)
	list, err := json.Marshal(scenarios)
	require.NoError(t, err)

	t.Run("filter", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPost, "/api/scenarios/filter",
			`{"scenarios": `+string(list)+`, "criteria": {"minWorkDays": 9}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var out []domain.Scenario
		require.NoError(t, json.Unmarshal(env.Data, &out))
		require.Len(t, out, 2)
		for _, s := range out {
			assert.GreaterOrEqual(t, s.TotalWorkDays(), 9)
		}
	})

	t.Run("sort", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPost, "/api/scenarios/sort",
			`{"scenarios": `+string(list)+`, "metric": "work_days", "order": "asc"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var out []domain.Scenario
		require.NoError(t, json.Unmarshal(env.Data, &out))
		require.Len(t, out, 10)
		assert.Equal(t, 3, out[0].TotalWorkDays())
		assert.Equal(t, 10, out[9].TotalWorkDays())
	})

	t.Run("best", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPost, "/api/scenarios/best",
			`{"scenarios": `+string(list)+`, "metric": "out_of_pocket", "direction": "min"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var best domain.Scenario
		require.NoError(t, json.Unmarshal(env.Data, &best))
		for _, s := range scenarios {
			assert.False(t, s.AnnualOutOfPocket.LessThan(best.AnnualOutOfPocket))
		}
	})

	t.Run("best without scenarios", func(t *testing.T) {
		rec, _ := do(t, router, http.MethodPost, "/api/scenarios/best", `{"scenarios": [], "metric": "net"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("best with bad direction", func(t *testing.T) {
		rec, _ := do(t, router, http.MethodPost, "/api/scenarios/best", `{"scenarios": [], "metric": "net", "direction": "up"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRatesAndMetricList(t *testing.T) {
	router, _ := newTestServer(t)

	rec, env := do(t, router, http.MethodGet, "/api/rates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var schedule domain.RateSchedule
	require.NoError(t, json.Unmarshal(env.Data, &schedule))
	assert.Equal(t, 52, schedule.WeeksPerYear)

	rec, env = do(t, router, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"out_of_pocket"`)
	assert.Contains(t, string(env.Data), `"preferred":"min"`)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestServer(t)
	generateCommon(t, router)

	rec, _ := do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `ccsgo_scenarios_generated_total{mode="common"} 10`)
	assert.Contains(t, body, `ccsgo_http_requests_total{method="POST",path="/api/scenarios/common",status="200"} 1`)
}

func TestCORS(t *testing.T) {
	router, _ := newTestServer(t, "http://localhost:5173")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
