package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"innkeeper-backend/internal/occupancy"
	"innkeeper-backend/internal/store"
)

// parsePeriod reads the from/to query parameters as inclusive calendar
// dates and returns the matching period. The period end is the midnight
// after "to", so from=2025-03-01&to=2025-03-31 covers all 31 days of March.
func parsePeriod(c *gin.Context) (occupancy.Period, bool) {
	from, err := time.Parse(time.DateOnly, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'from' date, use YYYY-MM-DD"})
		return occupancy.Period{}, false
	}
	to, err := time.Parse(time.DateOnly, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing 'to' date, use YYYY-MM-DD"})
		return occupancy.Period{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'to' must not be before 'from'"})
		return occupancy.Period{}, false
	}
	return occupancy.Period{Start: from, End: to.AddDate(0, 0, 1)}, true
}

type occupancyReportResponse struct {
	From       string             `json:"from"`
	To         string             `json:"to"`
	Total      float64            `json:"total_percent"`
	ByCategory map[string]float64 `json:"by_category"`
	ByFloor    map[string]float64 `json:"by_floor"`
}

// OccupancyReport handles GET /api/reports/occupancy?from=...&to=...
func (h *Handler) OccupancyReport(c *gin.Context) {
	period, ok := parsePeriod(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	now := time.Now()

	roomCount, err := h.store.CountRooms(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count rooms"})
		return
	}
	byCategory, err := h.store.CountRoomsByCategory(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate rooms by category"})
		return
	}
	byFloor, err := h.store.CountRoomsByFloor(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate rooms by floor"})
		return
	}
	stays, err := h.store.StaysOverlapping(ctx, period.Start, period.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve bookings"})
		return
	}

	allStays := make([]occupancy.Stay, 0, len(stays))
	categoryStays := make(map[string][]occupancy.Stay)
	floorStays := make(map[string][]occupancy.Stay)
	for _, row := range stays {
		out := row.CheckOut
		stay := occupancy.Stay{Start: row.CheckIn, End: &out}
		allStays = append(allStays, stay)
		categoryStays[row.Category] = append(categoryStays[row.Category], stay)
		floorStays[row.Floor] = append(floorStays[row.Floor], stay)
	}

	c.JSON(http.StatusOK, occupancyReportResponse{
		From:       period.Start.Format(time.DateOnly),
		To:         period.End.AddDate(0, 0, -1).Format(time.DateOnly),
		Total:      occupancy.Percent(period, roomCount, allStays, now),
		ByCategory: occupancy.GroupPercent(period, groupCountMap(byCategory), categoryStays, now),
		ByFloor:    occupancy.GroupPercent(period, groupCountMap(byFloor), floorStays, now),
	})
}

type vehicleUsageResponse struct {
	From       string             `json:"from"`
	To         string             `json:"to"`
	Total      float64            `json:"total_percent"`
	ByCategory map[string]float64 `json:"by_category"`
}

// VehicleUsageReport handles GET /api/reports/vehicle-usage?from=...&to=...
// Open usage intervals (vehicle still out) count up to the current moment.
func (h *Handler) VehicleUsageReport(c *gin.Context) {
	period, ok := parsePeriod(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	now := time.Now()

	vehicleCount, err := h.store.CountVehicles(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count vehicles"})
		return
	}
	byCategory, err := h.store.CountVehiclesByCategory(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate vehicles by category"})
		return
	}
	usage, err := h.store.UsageOverlapping(ctx, period.Start, period.End)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve vehicle usage"})
		return
	}

	allStays := make([]occupancy.Stay, 0, len(usage))
	categoryStays := make(map[string][]occupancy.Stay)
	for _, row := range usage {
		stay := occupancy.Stay{Start: row.StartedAt, End: row.EndedAt}
		allStays = append(allStays, stay)
		categoryStays[row.Category] = append(categoryStays[row.Category], stay)
	}

	c.JSON(http.StatusOK, vehicleUsageResponse{
		From:       period.Start.Format(time.DateOnly),
		To:         period.End.AddDate(0, 0, -1).Format(time.DateOnly),
		Total:      occupancy.Percent(period, vehicleCount, allStays, now),
		ByCategory: occupancy.GroupPercent(period, groupCountMap(byCategory), categoryStays, now),
	})
}

func groupCountMap(rows []store.GroupCount) map[string]int64 {
	m := make(map[string]int64, len(rows))
	for _, row := range rows {
		m[row.Key] = row.Count
	}
	return m
}
