package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tupi-ai/askpdf/service"
	"github.com/tupi-ai/askpdf/types"
)

// SearchHandler exposes raw similarity search over HTTP.
type SearchHandler struct {
	rag *service.RAGService
}

func NewSearchHandler(rag *service.RAGService) *SearchHandler {
	return &SearchHandler{rag: rag}
}

func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status: false, Message: "invalid request body",
		})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status: false, Message: "query must not be empty",
		})
		return
	}

	results, err := h.rag.Search(c.Request.Context(), req.Query, req.K)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status: false, Message: "search failed: " + err.Error(),
		})
		return
	}

	items := make([]types.SearchResultItem, 0, len(results))
	for _, result := range results {
		items = append(items, types.SearchResultItem{
			ID:       result.Chunk.ID,
			Content:  result.Chunk.Content,
			Metadata: result.Chunk.Metadata,
			Score:    result.Score,
		})
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   types.SearchResponse{Results: items},
	})
}
