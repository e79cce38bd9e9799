package server

import (
	"strings"

	fooddomain "github.com/foodledger/foodledger/internal/food/domain"
	"github.com/foodledger/foodledger/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateCompletedFood(c *gin.Context) {
	var req fooddomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.foodSvc.CreateWithDishes(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, resp)
}

func (s *Server) UpdateCompletedFood(c *gin.Context) {
	var req fooddomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.foodSvc.UpdateWithDishes(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) DeleteCompletedFood(c *gin.Context) {
	if err := s.foodSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

func (s *Server) GetCompletedFoodByID(c *gin.Context) {
	resp, err := s.foodSvc.GetWithDishes(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) ListCompletedFoods(c *gin.Context) {
	var query struct {
		Name         string `form:"name"`
		MinPrice     string `form:"minPrice"`
		MaxPrice     string `form:"maxPrice"`
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

	minPrice, err := parseOptionalFloat(query.MinPrice)
	if err != nil {
		AbortWithError(c, newValidationError("minPrice", "invalid_min_price", "invalid minPrice"))
		return
	}
	maxPrice, err := parseOptionalFloat(query.MaxPrice)
	if err != nil {
		AbortWithError(c, newValidationError("maxPrice", "invalid_max_price", "invalid maxPrice"))
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

	resp, err := s.foodSvc.List(c.Request.Context(), fooddomain.ListRequest{
		Name:         strings.TrimSpace(query.Name),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
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
