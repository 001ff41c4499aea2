package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/ccsgo/internal/compare"
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/rgehrsitz/ccsgo/internal/scenario"
)

// GenerateRequest is a household plus how the resulting scenarios should be ranked
type GenerateRequest struct {
	domain.Household
	Metric string `json:"metric,omitempty"`
	Order  string `json:"order,omitempty"`
}

// GenerateResponse is a ranked batch with the combinations that could not be built
type GenerateResponse struct {
	*compare.ComparisonSet
	Mode     scenario.Mode      `json:"mode"`
	Failures []scenario.Failure `json:"failures,omitempty"`
}

// CustomRequest prices one arbitrary day pair
type CustomRequest struct {
	domain.Household
	Parent1Days int `json:"parent1Days"`
	Parent2Days int `json:"parent2Days"`
}

// FilterRequest narrows a previously generated list
type FilterRequest struct {
	Scenarios []domain.Scenario `json:"scenarios"`
	Criteria  compare.Criteria  `json:"criteria"`
}

// SortRequest orders a previously generated list
type SortRequest struct {
	Scenarios []domain.Scenario `json:"scenarios"`
	Metric    string            `json:"metric"`
	Order     string            `json:"order,omitempty"`
}

// BestRequest picks one scenario. Without a direction the highest value wins.
type BestRequest struct {
	Scenarios []domain.Scenario `json:"scenarios"`
	Metric    string            `json:"metric"`
	Direction string            `json:"direction,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": s.version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) rates(c *gin.Context) {
	c.JSON(http.StatusOK, Success(http.StatusOK, s.generator.Engine().Schedule))
}

func (s *Server) listMetrics(c *gin.Context) {
	type metricInfo struct {
		Name      compare.Metric    `json:"name"`
		Label     string            `json:"label"`
		Preferred compare.Direction `json:"preferred"`
	}
	out := make([]metricInfo, 0, len(compare.Metrics()))
	for _, m := range compare.Metrics() {
		out = append(out, metricInfo{Name: m, Label: m.Label(), Preferred: m.Preferred()})
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, out))
}

func (s *Server) generate(mode scenario.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request payload: "+err.Error())
			return
		}
		metric, order, err := parseRanking(req.Metric, req.Order)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := s.parser.Prepare(&req.Household); err != nil {
			badRequest(c, err.Error())
			return
		}

		batch, err := s.generator.Generate(c.Request.Context(), mode, scenario.RequestFromHousehold(&req.Household))
		if err != nil {
			s.logger.Errorf("%s generation failed: %v", mode, err)
			c.JSON(http.StatusInternalServerError, Error(http.StatusInternalServerError, err.Error()))
			return
		}

		set := compare.NewComparisonSet("", batch.Scenarios, metric, order)
		set.Dropped = batch.Dropped
		set.Assumptions = compare.ScheduleAssumptions(s.generator.Engine().Schedule, req.WithholdingRate)
		c.JSON(http.StatusOK, Success(http.StatusOK, GenerateResponse{
			ComparisonSet: set,
			Mode:          batch.Mode,
			Failures:      batch.Failures,
		}))
	}
}

func (s *Server) custom(c *gin.Context) {
	var req CustomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if err := s.parser.Prepare(&req.Household); err != nil {
		badRequest(c, err.Error())
		return
	}

	built := s.generator.Custom(scenario.RequestFromHousehold(&req.Household), req.Parent1Days, req.Parent2Days)
	if built == nil {
		msg := fmt.Sprintf("combination %d + %d days could not be calculated", req.Parent1Days, req.Parent2Days)
		c.JSON(http.StatusUnprocessableEntity, Error(http.StatusUnprocessableEntity, msg))
		return
	}
	built.Custom = true
	c.JSON(http.StatusOK, Success(http.StatusOK, built))
}

func (s *Server) filter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, compare.Filter(req.Scenarios, req.Criteria)))
}

func (s *Server) sort(c *gin.Context) {
	var req SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	metric, order, err := parseRanking(req.Metric, req.Order)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, compare.SortScenarios(req.Scenarios, metric, order)))
}

func (s *Server) best(c *gin.Context) {
	var req BestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	metric, err := compare.ParseMetric(req.Metric)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var found *domain.Scenario
	switch compare.Direction(req.Direction) {
	case "":
		found = compare.FindBest(req.Scenarios, metric)
	case compare.Maximize, compare.Minimize:
		found = compare.FindOptimal(req.Scenarios, metric, compare.Direction(req.Direction))
	case "preferred":
		found = compare.FindOptimal(req.Scenarios, metric, metric.Preferred())
	default:
		badRequest(c, fmt.Sprintf("unknown direction %q (want max, min or preferred)", req.Direction))
		return
	}
	if found == nil {
		c.JSON(http.StatusNotFound, Error(http.StatusNotFound, "no scenarios supplied"))
		return
	}
	c.JSON(http.StatusOK, Success(http.StatusOK, found))
}

// parseRanking reads a metric and order, defaulting to net income descending
func parseRanking(metricName, orderName string) (compare.Metric, compare.Order, error) {
	metric := compare.MetricNetIncome
	if metricName != "" {
		m, err := compare.ParseMetric(metricName)
		if err != nil {
			return "", "", err
		}
		metric = m
	}
	order, err := compare.ParseOrder(orderName)
	if err != nil {
		return "", "", err
	}
	return metric, order, nil
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Error(http.StatusBadRequest, msg))
}

func statusLabel(status int) string {
	return strconv.Itoa(status)
}
