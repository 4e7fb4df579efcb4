package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wize-house/api-go/errorx"
)

type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Meta       interface{}     `json:"meta,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// respondError maps the error taxonomy onto HTTP statuses. Callers never see
// a partially applied mutation: a failure response means nothing changed
// except, in the degraded aggregate case, a ledger record awaiting reconcile.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errorx.CodeOf(err) {
	case errorx.BadRequest:
		status = http.StatusBadRequest
	case errorx.Unauthorized:
		status = http.StatusUnauthorized
	case errorx.Forbidden:
		status = http.StatusForbidden
	case errorx.NotFound:
		status = http.StatusNotFound
	case errorx.StoreFailure, errorx.EvidenceUpload:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error(), "success": false})
}
