package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/gavraq/activity-backend-go/internal/service"
	"github.com/gavraq/activity-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for daily activity analysis
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// dailyAnalysisRequest is the POST body for a daily analysis run. Pings are
// kept raw so the decoder can drop malformed records individually.
type dailyAnalysisRequest struct {
	Date  string          `json:"date" binding:"required"`
	Pings json.RawMessage `json:"pings" binding:"required"`
}

// AnalyzeDay handles POST /api/v1/analysis/daily
func (h *AnalysisHandler) AnalyzeDay(c *gin.Context) {
	var req dailyAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: date and pings are required")
		return
	}

	result, err := h.analysisService.AnalyzeDay(c.Request.Context(), req.Date, req.Pings)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetLocations handles GET /api/v1/locations?date=YYYY-MM-DD
func (h *AnalysisHandler) GetLocations(c *gin.Context) {
	result, err := h.analysisService.LocationsForDate(c.Query("date"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, result)
}

// GetTrips handles GET /api/v1/locations/trips
func (h *AnalysisHandler) GetTrips(c *gin.Context) {
	response.Success(c, h.analysisService.Trips())
}
