package controller

import (
	"log/slog"
	"net/http"

	"tropical-cargo-api/internal/dto"
	"tropical-cargo-api/internal/service"

	"github.com/gin-gonic/gin"
)

type QuoteController struct {
	Service *service.QuoteService
	logger  *slog.Logger
}

func NewQuoteController(s *service.QuoteService, logger *slog.Logger) *QuoteController {
	return &QuoteController{Service: s, logger: logger}
}

// POST /quotes
func (ctl *QuoteController) Submit(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input", "errors": validationDetails(err)})
		return
	}

	quote, err := ctl.Service.Submit(c.Request.Context(), &req)
	if err != nil {
		ctl.logger.Error("Failed to submit quote request", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit quote request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Quote request submitted successfully",
		"id":      quote.ID.Hex(),
	})
}
