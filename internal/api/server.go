package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"onlinerf/internal/data"
	"onlinerf/internal/models"
)

type Server struct {
	model   models.Model
	logger  *zap.Logger
	apiKey  string
	metrics *Metrics
	gather  prometheus.Gatherer
}

func NewServer(model models.Model, logger *zap.Logger, apiKey string, metrics *Metrics, gather prometheus.Gatherer) *Server {
	return &Server{model: model, logger: logger, apiKey: apiKey, metrics: metrics, gather: gather}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{})))
	r.GET("/status", s.handleStatus)

	api := r.Group("/")
	api.Use(s.apiKeyMiddleware)
	api.POST("/train", s.handleTrain)
	api.POST("/train/batch", s.handleTrainBatch)
	api.POST("/predict", s.handlePredict)
	api.POST("/compare", s.handleCompare)
	api.GET("/importance", s.handleImportance)
	api.GET("/snapshot", s.handleSnapshot)
	return r
}

func (s *Server) apiKeyMiddleware(c *gin.Context) {
	if s.apiKey == "" {
		c.Next()
		return
	}
	if c.GetHeader("X-API-Key") != s.apiKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

// record is the wire form of an input. Features may arrive either as a plain
// array or in the sync service's encoded form.
type record struct {
	ID              string    `json:"id"`
	Classification  int       `json:"classification" binding:"gte=0"`
	Features        []float64 `json:"features" binding:"required_without=EncodedFeatures"`
	EncodedFeatures string    `json:"encoded_features"`
}

func (r record) input() (*data.Input, error) {
	feats := r.Features
	if len(feats) == 0 {
		var err error
		if feats, err = data.DecodeFeatures(r.EncodedFeatures); err != nil {
			return nil, err
		}
	}
	return &data.Input{ID: r.ID, Classification: r.Classification, Features: feats}, nil
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNoTrainedTrees):
		status = http.StatusConflict
	case errors.Is(err, models.ErrDimensionMismatch),
		errors.Is(err, models.ErrInvalidLabel),
		errors.Is(err, models.ErrEmptyBatch):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) afterTraining(n int) {
	s.metrics.Trained.Add(float64(n))
	s.metrics.observeStats(s.model.PercentDone(), s.model.Stats())
}

func (s *Server) handleTrain(c *gin.Context) {
	var req record
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	in, err := req.input()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.model.TrainOne(in); err != nil {
		s.fail(c, err)
		return
	}
	s.afterTraining(1)
	c.JSON(http.StatusOK, gin.H{"trained": 1})
}

func (s *Server) handleTrainBatch(c *gin.Context) {
	var reqs []record
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	batch := make([]*data.Input, 0, len(reqs))
	for i, r := range reqs {
		in, err := r.input()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item " + strconv.Itoa(i) + ": " + err.Error()})
			return
		}
		batch = append(batch, in)
	}
	if err := s.model.Train(batch); err != nil {
		s.fail(c, err)
		return
	}
	s.afterTraining(len(batch))
	c.JSON(http.StatusOK, gin.H{"trained": len(batch)})
}

func (s *Server) handlePredict(c *gin.Context) {
	var req record
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	in, err := req.input()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	class, err := s.model.Predict(in)
	if err != nil {
		s.fail(c, err)
		return
	}
	probs, err := s.model.PredictPercent(in)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.metrics.Predictions.WithLabelValues("predict").Inc()
	c.JSON(http.StatusOK, gin.H{"class": class, "probabilities": probs, "model": s.model.Name()})
}

type compareReq struct {
	A record `json:"a"`
	B record `json:"b"`
}

func (s *Server) handleCompare(c *gin.Context) {
	var req compareReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return
	}
	var dists [2]map[int]float64
	for i, r := range []record{req.A, req.B} {
		in, err := r.input()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if dists[i], err = s.model.PredictPercent(in); err != nil {
			s.fail(c, err)
			return
		}
	}
	s.metrics.Predictions.WithLabelValues("compare").Inc()
	c.JSON(http.StatusOK, gin.H{"difference": models.PredictionDifference(dists[0], dists[1])})
}

func (s *Server) handleImportance(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"importance": s.model.VariableImportance()})
}

func (s *Server) handleStatus(c *gin.Context) {
	stats := s.model.Stats()
	resets := 0
	for _, st := range stats {
		resets += st.Resets
	}
	c.JSON(http.StatusOK, gin.H{
		"model":        s.model.Name(),
		"trees":        len(stats),
		"percent_done": s.model.PercentDone(),
		"resets":       resets,
	})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	raw, err := s.model.Serialize()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
