package server

import (
	"net/http"
	"time"

	"github.com/foodledger/foodledger/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

// envelope is the uniform response body: {success, data|error, message,
// timestamp}, with an optional pagination block on list responses.
type envelope struct {
	Success    bool                 `json:"success"`
	Data       any                  `json:"data,omitempty"`
	Error      *errorPayload        `json:"error,omitempty"`
	Pagination *pagination.PageInfo `json:"pagination,omitempty"`
	Message    string               `json:"message,omitempty"`
	Timestamp  string               `json:"timestamp"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func respondOK(c *gin.Context, data any) {
	respond(c, http.StatusOK, data)
}

func respondCreated(c *gin.Context, data any) {
	respond(c, http.StatusCreated, data)
}

func respondList(c *gin.Context, data any, page pagination.PageInfo) {
	c.JSON(http.StatusOK, envelope{
		Success:    true,
		Data:       data,
		Pagination: &page,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
