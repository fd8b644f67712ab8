package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tupi-ai/askpdf/service"
	"github.com/tupi-ai/askpdf/types"
)

// AskHandler exposes the question-answering pipeline over HTTP.
type AskHandler struct {
	rag *service.RAGService
}

func NewAskHandler(rag *service.RAGService) *AskHandler {
	return &AskHandler{rag: rag}
}

func (h *AskHandler) HandleAsk(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status: false, Message: "invalid request body",
		})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status: false, Message: "question must not be empty",
		})
		return
	}

	answer, err := h.rag.Ask(c.Request.Context(), req.Question)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status: false, Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   types.AskResponse{Answer: answer},
	})
}
