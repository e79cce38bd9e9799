package server

import (
	"strings"

	reportdomain "github.com/foodledger/foodledger/internal/report/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetIngredientGenreStats(c *gin.Context) {
	resp, err := s.reportSvc.IngredientGenreStats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetDishGenreStats(c *gin.Context) {
	resp, err := s.reportSvc.DishGenreStats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetIngredientPopularity(c *gin.Context) {
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	n := 10
	if limit != nil {
		n = *limit
	}

	resp, err := s.reportSvc.IngredientPopularity(c.Request.Context(), n)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetProfitabilityDistribution(c *gin.Context) {
	resp, err := s.reportSvc.ProfitabilityDistribution(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) GetTrends(c *gin.Context) {
	days, err := parseOptionalInt(c.Query("days"))
	if err != nil {
		AbortWithError(c, newValidationError("days", "invalid_days", "invalid days"))
		return
	}

	req := reportdomain.TrendRequest{
		Interval: reportdomain.TrendInterval(strings.TrimSpace(c.Query("interval"))),
	}
	if days != nil {
		req.Days = *days
	}

	resp, err := s.reportSvc.Trends(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}
