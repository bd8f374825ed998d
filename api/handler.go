package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Eutropios/WarMAC/config"
	"github.com/Eutropios/WarMAC/market"
	"github.com/Eutropios/WarMAC/models"
	"github.com/Eutropios/WarMAC/services"
	"github.com/Eutropios/WarMAC/storage"
	"github.com/Eutropios/WarMAC/utils"
)

// Server exposes the statistic pipeline over HTTP. History is nil when
// result persistence is disabled.
type Server struct {
	cfg     *config.Config
	logger  *utils.Logger
	history *storage.PostgresWriter
}

// NewServer creates a Server. history may be nil.
func NewServer(cfg *config.Config, logger *utils.Logger, history *storage.PostgresWriter) *Server {
	return &Server{cfg: cfg, logger: logger, history: history}
}

// SetupRoutes registers all endpoints and returns the gin engine.
func (s *Server) SetupRoutes() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.getHealth)
	v1 := r.Group("/v1")
	{
		v1.GET("/average", s.getAverage)
		v1.GET("/history", s.getHistory)
	}
	return r
}

type averageParams struct {
	Item      string `form:"item" binding:"required"`
	Statistic string `form:"statistic"`
	Platform  string `form:"platform"`
	TimeRange int    `form:"timerange"`
	MaxRank   bool   `form:"maxrank"`
	Radiant   bool   `form:"radiant"`
	Buyers    bool   `form:"buyers"`
}

func (s *Server) getAverage(c *gin.Context) {
	params := averageParams{
		Statistic: config.DefaultStatistic,
		Platform:  config.DefaultPlatform,
		TimeRange: config.DefaultTimeRange,
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	statistic, err := models.ParseStatisticKind(params.Statistic)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	platform, err := models.ParsePlatform(params.Platform)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := services.ValidateTimeRange(params.TimeRange); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.MaxRank && params.Radiant {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maxrank and radiant are mutually exclusive"})
		return
	}

	req := services.AverageRequest{
		Statistic: statistic,
		Platform:  platform,
		TimeRange: params.TimeRange,
		MaxRank:   params.MaxRank,
		Radiant:   params.Radiant,
		Buyers:    params.Buyers,
	}

	client := market.NewClient(s.cfg, platform, s.logger)
	pipeline := services.NewPipeline(client, s.logger)

	result, _, err := pipeline.Run(c.Request.Context(), params.Item, req)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, services.ErrNoListings), errors.Is(err, market.ErrItemNotFound):
			status = http.StatusNotFound
		case errors.Is(err, services.ErrInvalidPrice):
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if s.history != nil {
		if err := s.history.WriteResult(result); err != nil {
			s.logger.Error("History write failed for %s: %v", result.Item, err)
		}
	}

	c.JSON(http.StatusOK, result)
}

type historyParams struct {
	Item  string `form:"item" binding:"required"`
	Limit int    `form:"limit"`
}

func (s *Server) getHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "history persistence is disabled"})
		return
	}

	params := historyParams{Limit: 50}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := s.history.FetchHistory(market.DisplayName(market.Slug(params.Item)), params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": params.Item, "results": entries})
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
