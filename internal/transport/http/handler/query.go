package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docstore-rag/internal/app"
	"docstore-rag/internal/transport/http/response"
)

type QueryHandler struct {
	queryService *app.QueryService
}

type AskRequest struct {
	Query string `json:"query" binding:"required"`
}

func NewQueryHandler(queryService *app.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

func (h *QueryHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	answer, err := h.queryService.Ask(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "query failed")
		}
		return
	}

	response.OK(c, gin.H{"query": req.Query, "answer": answer})
}
