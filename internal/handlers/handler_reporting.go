package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/dto"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for derived reports: the cashflow
// summary and its aggregations, the sankey graph and the price history table.
type reportingHandler struct {
	ledgerService    portssvc.LedgerSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(ls portssvc.LedgerSvcFacade, rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		ledgerService:    ls,
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(ledgerService, reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/categories", h.getCategoryTotals)
		reports.GET("/monthly", h.getMonthlyTotals)
		reports.GET("/sankey", h.getSankey)
		reports.GET("/price-history", h.getPriceHistory)
	}
}

// getSummary godoc
// @Summary Get the cashflow summary
// @Description Returns the filtered entries plus total income, total expenses, net balance and income/expense ratio
// @Tags reports
// @Produce  json
// @Param   year query int false "Filter by year"
// @Param   month query int false "Filter by month (requires year)"
// @Param   type query string false "Filter by entry type" Enums(INCOME, FIXED, VARIABLE, DEBT)
// @Param   category query string false "Filter by category"
// @Param   subcategory query string false "Filter by subcategory"
// @Param   currency query string false "Currency for display strings" default(EUR)
// @Success 200 {object} dto.CashflowSummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build summary"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for summary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	currency := c.DefaultQuery("currency", "EUR")

	window, filter := windowAndFilter(params.Year, params.Month, params.Type, params.Category, params.Subcategory)
	summary, err := h.ledgerService.Summarize(c.Request.Context(), userID, window, filter)
	if err != nil {
		logger.Error("Failed to build cashflow summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashflowSummaryResponse(summary, currency))
}

// getCategoryTotals godoc
// @Summary Get per-category totals
// @Description Aggregates the filtered entries per category, sorted descending by amount
// @Tags reports
// @Produce  json
// @Param   year query int false "Filter by year"
// @Param   month query int false "Filter by month (requires year)"
// @Param   type query string false "Filter by entry type" Enums(INCOME, FIXED, VARIABLE, DEBT)
// @Param   category query string false "Filter by category"
// @Success 200 {array} domain.CategoryTotal
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to aggregate categories"
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *reportingHandler) getCategoryTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for category totals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	window, filter := windowAndFilter(params.Year, params.Month, params.Type, params.Category, params.Subcategory)
	totals, err := h.ledgerService.CategoryTotals(c.Request.Context(), userID, window, filter)
	if err != nil {
		logger.Error("Failed to aggregate category totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate categories"})
		return
	}

	c.JSON(http.StatusOK, totals)
}

// getMonthlyTotals godoc
// @Summary Get per-month totals
// @Description Aggregates the filtered entries per month
// @Tags reports
// @Produce  json
// @Param   year query int false "Filter by year"
// @Param   type query string false "Filter by entry type" Enums(INCOME, FIXED, VARIABLE, DEBT)
// @Param   category query string false "Filter by category"
// @Success 200 {array} domain.MonthlyTotal
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to aggregate months"
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlyTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for monthly totals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	window, filter := windowAndFilter(params.Year, params.Month, params.Type, params.Category, params.Subcategory)
	totals, err := h.ledgerService.MonthlyTotals(c.Request.Context(), userID, window, filter)
	if err != nil {
		logger.Error("Failed to aggregate monthly totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate months"})
		return
	}

	c.JSON(http.StatusOK, totals)
}

// getSankey godoc
// @Summary Get the cashflow sankey graph
// @Description Builds the budget flow graph for the window; mode, type and category select the drill-down view
// @Tags reports
// @Produce  json
// @Param   year query int false "Filter by year"
// @Param   month query int false "Filter by month (requires year)"
// @Param   mode query string false "Drill-down mode" Enums(ROOT, TYPE, CATEGORY) default(ROOT)
// @Param   type query string false "Expense type for TYPE mode" Enums(FIXED, VARIABLE, DEBT)
// @Param   category query string false "Category for CATEGORY mode"
// @Param   topN query int false "Keep only the N largest buckets per level"
// @Param   currency query string false "Currency for display strings" default(EUR)
// @Success 200 {object} dto.SankeyResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build graph"
// @Security BearerAuth
// @Router /reports/sankey [get]
func (h *reportingHandler) getSankey(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.SankeyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for sankey", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	state := domain.RootSankeyState()
	switch domain.SankeyMode(params.Mode) {
	case domain.SankeyModeType:
		if params.Type == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type is required in TYPE mode"})
			return
		}
		state = domain.TypeDrillState(domain.EntryType(params.Type))
	case domain.SankeyModeCategory:
		if params.Category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category is required in CATEGORY mode"})
			return
		}
		state = domain.CategoryDrillState(params.Category)
	}

	window := domain.ReportingWindow{Year: params.Year, Month: time.Month(params.Month)}
	graph, err := h.reportingService.SankeyGraph(c.Request.Context(), userID, window, domain.EntryFilter{}, state, params.TopN)
	if err != nil {
		logger.Error("Failed to build sankey graph", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build graph"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSankeyResponse(graph, params.Currency))
}

// getPriceHistory godoc
// @Summary Get the asset price history table
// @Description Builds the asset-by-month table from the user's snapshots, with trend colors and summary percentages
// @Tags reports
// @Produce  json
// @Param   mode query string false "Cell display mode" Enums(UNIT, TOTAL) default(UNIT)
// @Param   year query int false "Restrict to one calendar year"
// @Param   from query string false "Start month (YYYY-MM-DD), ignored when year is set"
// @Param   includeTotals query bool false "Append the aggregate totals row"
// @Param   currency query string false "Currency for display strings" default(EUR)
// @Success 200 {object} dto.PriceHistoryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build price history"
// @Security BearerAuth
// @Router /reports/price-history [get]
func (h *reportingHandler) getPriceHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.PriceHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for price history", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	svcParams := portssvc.PriceHistoryParams{
		Mode:          domain.PriceDisplayMode(params.Mode),
		Year:          params.Year,
		IncludeTotals: params.IncludeTotals,
	}
	if params.From != "" {
		from, err := time.Parse("2006-01-02", params.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date: " + err.Error()})
			return
		}
		svcParams.From = from
	}

	table, err := h.reportingService.PriceHistory(c.Request.Context(), userID, svcParams)
	if err != nil {
		logger.Error("Failed to build price history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build price history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceHistoryResponse(table, params.Currency))
}
