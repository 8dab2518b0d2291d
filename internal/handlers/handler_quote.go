package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/apperrors"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/dto"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// quoteHandler handles HTTP requests for upstream price quotes.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

// newQuoteHandler creates a new quoteHandler.
func newQuoteHandler(qs portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{
		quoteService: qs,
	}
}

// registerQuoteRoutes registers routes related to quotes.
func registerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade) {
	h := newQuoteHandler(quoteService)

	quotes := rg.Group("/quotes")
	{
		quotes.POST("/refresh", h.refreshPrices)
		quotes.GET("/:ticker", h.getQuote)
	}
}

// getQuote godoc
// @Summary Get the current quote for a ticker
// @Description Fetches the current price from the configured upstream providers
// @Tags quotes
// @Produce  json
// @Param   ticker path string true "Ticker symbol"
// @Success 200 {object} dto.QuoteResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No price available"
// @Failure 502 {object} map[string]string "Upstream provider failed"
// @Security BearerAuth
// @Router /quotes/{ticker} [get]
func (h *quoteHandler) getQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ticker := c.Param("ticker")

	quote, err := h.quoteService.GetQuote(c.Request.Context(), ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No price available", slog.String("ticker", ticker))
			c.JSON(http.StatusNotFound, gin.H{"error": "No price available for " + ticker})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to fetch quote", slog.String("ticker", ticker), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch quote"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// refreshPrices godoc
// @Summary Refresh all asset prices
// @Description Fetches quotes for every non-deleted asset and stores the fetched prices; failed tickers are reported, not fatal
// @Tags quotes
// @Produce  json
// @Success 200 {object} dto.QuoteRefreshResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to refresh prices"
// @Security BearerAuth
// @Router /quotes/refresh [post]
func (h *quoteHandler) refreshPrices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.quoteService.RefreshPrices(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to refresh prices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh prices"})
		return
	}

	logger.Info("Prices refreshed", slog.Int("updated", result.Updated), slog.Int("failed", len(result.Failed)))
	c.JSON(http.StatusOK, dto.ToQuoteRefreshResponse(result))
}
