package server

import (
	"strings"

	dishdomain "github.com/foodledger/foodledger/internal/dish/domain"
	"github.com/foodledger/foodledger/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateDish(c *gin.Context) {
	var req dishdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.dishSvc.CreateWithIngredients(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, resp)
}

func (s *Server) UpdateDish(c *gin.Context) {
	var req dishdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.dishSvc.UpdateWithIngredients(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) DeleteDish(c *gin.Context) {
	if err := s.dishSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

func (s *Server) GetDishByID(c *gin.Context) {
	resp, err := s.dishSvc.GetWithIngredients(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) ListDishes(c *gin.Context) {
	var query struct {
		Name         string `form:"name"`
		Genre        string `form:"genre"`
		MinTotalCost string `form:"minTotalCost"`
		MaxTotalCost string `form:"maxTotalCost"`
		SortBy       string `form:"sortBy"`
		Order        string `form:"sortOrder"`
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	minCost, err := parseOptionalFloat(query.MinTotalCost)
	if err != nil {
		AbortWithError(c, newValidationError("minTotalCost", "invalid_min_total_cost", "invalid minTotalCost"))
		return
	}
	maxCost, err := parseOptionalFloat(query.MaxTotalCost)
	if err != nil {
		AbortWithError(c, newValidationError("maxTotalCost", "invalid_max_total_cost", "invalid maxTotalCost"))
		return
	}

	resp, err := s.dishSvc.List(c.Request.Context(), dishdomain.ListRequest{
		Name:         strings.TrimSpace(query.Name),
		Genre:        strings.TrimSpace(query.Genre),
		MinTotalCost: minCost,
		MaxTotalCost: maxCost,
		SortBy:       strings.TrimSpace(query.SortBy),
		OrderBy:      strings.TrimSpace(query.Order),
		Page:         query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.Items, resp.PageInfo)
}
