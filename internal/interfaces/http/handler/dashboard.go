package handler

import (
	appbilling "github.com/dashboard/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard aggregate HTTP requests
type DashboardHandler struct {
	BaseHandler
	queryService     *appbilling.QueryService
	dashboardService *appbilling.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(
	queryService *appbilling.QueryService,
	dashboardService *appbilling.DashboardService,
) *DashboardHandler {
	return &DashboardHandler{
		queryService:     queryService,
		dashboardService: dashboardService,
	}
}

// RegisterRoutes registers dashboard routes on the API group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/cards", h.Cards)
		dashboard.GET("/revenue", h.Revenue)
	}
}

// Cards returns the four dashboard card values. The computation is
// all-or-nothing: any underlying failure yields an error, never a mix
// of fresh and missing numbers.
// GET /api/v1/dashboard/cards
func (h *DashboardHandler) Cards(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.dashboardService.ComputeCardStats(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// Revenue returns the reference revenue series for the chart
// GET /api/v1/dashboard/revenue
func (h *DashboardHandler) Revenue(c *gin.Context) {
	points, err := h.queryService.MonthlyRevenue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, points)
}
