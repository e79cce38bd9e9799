package server

import (
	"strings"

	ingredientdomain "github.com/foodledger/foodledger/internal/ingredient/domain"
	"github.com/foodledger/foodledger/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateIngredient(c *gin.Context) {
	var req ingredientdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ingredientSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, resp)
}

func (s *Server) UpdateIngredient(c *gin.Context) {
	var req ingredientdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.ingredientSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) DeleteIngredient(c *gin.Context) {
	if err := s.ingredientSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

func (s *Server) GetIngredientByID(c *gin.Context) {
	resp, err := s.ingredientSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) ListIngredients(c *gin.Context) {
	var query struct {
		Name     string `form:"name"`
		Store    string `form:"store"`
		Genre    string `form:"genre"`
		MinPrice string `form:"minPrice"`
		MaxPrice string `form:"maxPrice"`
		SortBy   string `form:"sortBy"`
		Order    string `form:"sortOrder"`
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

	resp, err := s.ingredientSvc.List(c.Request.Context(), ingredientdomain.ListRequest{
		Name:     strings.TrimSpace(query.Name),
		Store:    strings.TrimSpace(query.Store),
		Genre:    strings.TrimSpace(query.Genre),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		SortBy:   strings.TrimSpace(query.SortBy),
		OrderBy:  strings.TrimSpace(query.Order),
		Page:     query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.Items, resp.PageInfo)
}
