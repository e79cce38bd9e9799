package server

import (
	"strings"

	memodomain "github.com/foodledger/foodledger/internal/memo/domain"
	"github.com/foodledger/foodledger/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateMemo(c *gin.Context) {
	var req memodomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.memoSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, resp)
}

func (s *Server) UpdateMemo(c *gin.Context) {
	var req memodomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.memoSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) DeleteMemo(c *gin.Context) {
	if err := s.memoSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

func (s *Server) GetMemoByID(c *gin.Context) {
	resp, err := s.memoSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, resp)
}

func (s *Server) ListMemos(c *gin.Context) {
	var query struct {
		Title  string `form:"title"`
		SortBy string `form:"sortBy"`
		Order  string `form:"sortOrder"`
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.memoSvc.List(c.Request.Context(), memodomain.ListRequest{
		Title:   strings.TrimSpace(query.Title),
		SortBy:  strings.TrimSpace(query.SortBy),
		OrderBy: strings.TrimSpace(query.Order),
		Page:    query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondList(c, resp.Items, resp.PageInfo)
}
