package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/apperrors"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/domain"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/dto"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/middleware"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/utils"
	"github.com/gin-gonic/gin"
)

// assetHandler handles HTTP requests related to portfolio assets.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

// newAssetHandler creates a new assetHandler.
func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{
		assetService: as,
	}
}

// registerAssetRoutes registers routes related to assets and snapshots.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.POST("/snapshots", h.captureSnapshots)
		assets.GET("/snapshots", h.listSnapshots)
		assets.GET("/:id", h.getAsset)
		assets.PUT("/:id", h.updateAsset)
		assets.DELETE("/:id", h.deleteAsset)
		assets.POST("/:id/simulate-sale", h.simulateSale)
	}
}

func assetDisplayValue(a *domain.Asset) string {
	return utils.FormatMoney(a.Quantity.Mul(a.CurrentPrice), a.Currency)
}

// createAsset godoc
// @Summary Create a new asset
// @Description Creates a new portfolio asset; the composition breakdown, when given, must sum to exactly 100 percent
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create asset"
// @Security BearerAuth
// @Router /assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating asset", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create asset in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		}
		return
	}

	logger.Info("Asset created", slog.String("asset_id", asset.AssetID))
	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset, assetDisplayValue(asset)))
}

// listAssets godoc
// @Summary List assets
// @Description Retrieves the user's assets, optionally including soft-deleted ones
// @Tags assets
// @Produce  json
// @Param   includeDeleted query bool false "Include soft-deleted assets"
// @Success 200 {object} dto.ListAssetsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list assets"
// @Security BearerAuth
// @Router /assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListAssetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAssets", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	assets, err := h.assetService.ListAssets(c.Request.Context(), userID, params.IncludeDeleted)
	if err != nil {
		logger.Error("Failed to list assets from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assets"})
		return
	}

	responses := make([]dto.AssetResponse, len(assets))
	for i := range assets {
		responses[i] = dto.ToAssetResponse(&assets[i], assetDisplayValue(&assets[i]))
	}
	c.JSON(http.StatusOK, dto.ListAssetsResponse{Assets: responses})
}

// getAsset godoc
// @Summary Get an asset by ID
// @Description Retrieves details for a specific asset
// @Tags assets
// @Produce  json
// @Param   id path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Failed to retrieve asset"
// @Security BearerAuth
// @Router /assets/{id} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.assetService.GetAssetByID(c.Request.Context(), userID, assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Asset not found", slog.String("asset_id", assetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			logger.Error("Failed to get asset from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve asset"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset, assetDisplayValue(asset)))
}

// updateAsset godoc
// @Summary Update an asset
// @Description Applies a partial update; a replaced composition must still sum to 100 percent
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   id path string true "Asset ID to update"
// @Param   asset body dto.UpdateAssetRequest true "Asset fields to update"
// @Success 200 {object} dto.AssetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Failed to update asset"
// @Security BearerAuth
// @Router /assets/{id} [put]
func (h *assetHandler) updateAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("id")

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), userID, assetID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Asset not found for update", slog.String("asset_id", assetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating asset", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update asset in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset, assetDisplayValue(asset)))
}

// deleteAsset godoc
// @Summary Delete an asset
// @Description Soft-deletes an asset; its historical snapshots keep rendering in reports
// @Tags assets
// @Produce  json
// @Param   id path string true "Asset ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Failed to delete asset"
// @Security BearerAuth
// @Router /assets/{id} [delete]
func (h *assetHandler) deleteAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.assetService.DeleteAsset(c.Request.Context(), userID, assetID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Asset not found for deletion", slog.String("asset_id", assetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else {
			logger.Error("Failed to delete asset in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// captureSnapshots godoc
// @Summary Capture monthly snapshots
// @Description Records one snapshot per non-deleted asset at the month boundary; re-capturing the same month overwrites it
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   capture body dto.CaptureSnapshotsRequest false "Month to capture, defaults to the current month"
// @Success 201 {object} dto.ListSnapshotsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to capture snapshots"
// @Security BearerAuth
// @Router /assets/snapshots [post]
func (h *assetHandler) captureSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CaptureSnapshotsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for CaptureSnapshots", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}
	month := req.Month
	if month.IsZero() {
		month = time.Now()
	}

	snapshots, err := h.assetService.CaptureSnapshots(c.Request.Context(), userID, month)
	if err != nil {
		logger.Error("Failed to capture snapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture snapshots"})
		return
	}

	responses := make([]dto.SnapshotResponse, len(snapshots))
	for i := range snapshots {
		responses[i] = dto.ToSnapshotResponse(&snapshots[i])
	}
	c.JSON(http.StatusCreated, dto.ListSnapshotsResponse{Snapshots: responses})
}

// listSnapshots godoc
// @Summary List asset snapshots
// @Description Retrieves the user's snapshots from the given start month
// @Tags assets
// @Produce  json
// @Param   from query string false "Start month (YYYY-MM-DD)"
// @Success 200 {object} dto.ListSnapshotsResponse
// @Failure 400 {object} map[string]string "Invalid from date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list snapshots"
// @Security BearerAuth
// @Router /assets/snapshots [get]
func (h *assetHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var from time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date: " + err.Error()})
			return
		}
		from = parsed
	}

	snapshots, err := h.assetService.ListSnapshots(c.Request.Context(), userID, from)
	if err != nil {
		logger.Error("Failed to list snapshots", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list snapshots"})
		return
	}

	responses := make([]dto.SnapshotResponse, len(snapshots))
	for i := range snapshots {
		responses[i] = dto.ToSnapshotResponse(&snapshots[i])
	}
	c.JSON(http.StatusOK, dto.ListSnapshotsResponse{Snapshots: responses})
}

// simulateSale godoc
// @Summary Simulate selling part of a holding
// @Description Computes sale value, cost basis, gain, tax and net proceeds; a quantity above the owned one is clamped and flagged
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   id path string true "Asset ID"
// @Param   simulation body dto.TaxSimulationRequest true "Sale parameters"
// @Success 200 {object} dto.TaxSimulationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 500 {object} map[string]string "Failed to simulate sale"
// @Security BearerAuth
// @Router /assets/{id}/simulate-sale [post]
func (h *assetHandler) simulateSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	assetID := c.Param("id")

	var req dto.TaxSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SimulateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sim, err := h.assetService.SimulateSale(c.Request.Context(), userID, assetID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Asset not found for sale simulation", slog.String("asset_id", assetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error simulating sale", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to simulate sale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate sale"})
		}
		return
	}

	currency := c.DefaultQuery("currency", "EUR")
	c.JSON(http.StatusOK, dto.ToTaxSimulationResponse(sim, currency))
}
