package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/engine"
	"EquityScope/internal/provider"
	"EquityScope/internal/recorder"
)

// Server exposes the analysis pipeline to the presentation layer as JSON.
type Server struct {
	Analyzer *analyzer.Analyzer
	Recorder recorder.Recorder

	DefaultPeriod   string
	DefaultInterval string
}

// NewServer creates a Server.
func NewServer(a *analyzer.Analyzer, rec recorder.Recorder, defaultPeriod, defaultInterval string) *Server {
	return &Server{
		Analyzer:        a,
		Recorder:        rec,
		DefaultPeriod:   defaultPeriod,
		DefaultInterval: defaultInterval,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/analyze", s.analyze)
		v1.GET("/history/:symbol", s.history)
	}
	return r
}

type meta struct {
	Timestamp time.Time `json:"timestamp"`
}

type successResponse struct {
	Data interface{} `json:"data"`
	Meta meta        `json:"meta"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
	Meta  meta      `json:"meta"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, successResponse{Data: data, Meta: meta{Timestamp: time.Now()}})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{
		Error: errorBody{Code: code, Message: message},
		Meta:  meta{Timestamp: time.Now()},
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// analyze handles GET /api/v1/analyze?symbol=&period=&interval=.
// Data failures come back as explicit error states, never as a neutral
// score dressed up as a result.
func (s *Server) analyze(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Query("symbol")))
	if symbol == "" {
		fail(c, http.StatusBadRequest, "missing_symbol", "query parameter \"symbol\" is required")
		return
	}
	period := c.DefaultQuery("period", s.DefaultPeriod)
	interval := c.DefaultQuery("interval", s.DefaultInterval)

	report, err := s.Analyzer.Analyze(symbol, period, interval)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrDataUnavailable):
			fail(c, http.StatusBadGateway, "data_unavailable", err.Error())
		case errors.Is(err, engine.ErrInsufficientData):
			fail(c, http.StatusUnprocessableEntity, "insufficient_data", err.Error())
		default:
			fail(c, http.StatusBadRequest, "bad_request", err.Error())
		}
		return
	}

	if s.Recorder != nil {
		if err := s.Recorder.RecordAnalysis(recorder.FromReport(report)); err != nil {
			// Recording is best-effort; the analysis itself succeeded.
			c.Header("X-Record-Error", err.Error())
		}
	}
	success(c, report)
}

// history handles GET /api/v1/history/:symbol?limit=.
func (s *Server) history(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var recs []recorder.AnalysisRecord
	if s.Recorder != nil {
		var err error
		recs, err = s.Recorder.RecentBySymbol(symbol, limit)
		if err != nil {
			fail(c, http.StatusInternalServerError, "storage_error", err.Error())
			return
		}
	}
	success(c, recs)
}
