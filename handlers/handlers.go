package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bicyclespokesperson/MapsTD-sub000/config"
	"github.com/bicyclespokesperson/MapsTD-sub000/models"
	"github.com/bicyclespokesperson/MapsTD-sub000/services"
)

// Handler wires the map service to the HTTP surface.
type Handler struct {
	maps *services.MapService
	cfg  config.Config
}

func New(maps *services.MapService, cfg config.Config) *Handler {
	return &Handler{maps: maps, cfg: cfg}
}

// session resolves the :id path parameter; on failure it writes the
// error response and returns nil.
func (h *Handler) session(c *gin.Context) *services.MapSession {
	session, err := h.maps.Session(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil
	}
	return session
}

func (h *Handler) CreateMap(c *gin.Context) {
	log.Println("=== Received create map request ===")

	var req models.CreateMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("ERROR: Failed to parse request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.maps.CreateMap(c.Request.Context(), req)
	if err != nil {
		log.Printf("ERROR: Map creation failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, mapResponse(session))
}

func (h *Handler) GetRoads(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	roads := session.Roads()
	c.JSON(http.StatusOK, models.RoadsResponse{Roads: roads, Count: len(roads)})
}

func (h *Handler) FindPath(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req models.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path := session.FindPath(req.Start, req.End)
	c.JSON(http.StatusOK, models.PathResponse{Path: path, Found: path != nil})
}

func (h *Handler) BoundaryEntries(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	entries, err := session.BoundaryEntries()
	if err != nil {
		log.Printf("ERROR: Boundary entry computation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Found %d boundary entries for map %s", len(entries), session.ID)
	c.JSON(http.StatusOK, models.BoundaryEntriesResponse{Entries: entries, Count: len(entries)})
}

func (h *Handler) SimulateDemolition(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req models.DemolitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	connected, err := session.SimulateDemolition(req.Center, req.RadiusMeters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.SimulateDemolitionResponse{Connected: connected})
}

func (h *Handler) Demolish(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req models.DemolitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	removed := session.Demolish(req.Center, req.RadiusMeters)
	log.Printf("Demolition on map %s removed %d nodes at (%.6f, %.6f) radius %.0fm",
		session.ID, removed, req.Center.Latitude, req.Center.Longitude, req.RadiusMeters)

	c.JSON(http.StatusOK, models.DemolitionResponse{RemovedNodes: removed})
}

func (h *Handler) PointOnRoad(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req models.PointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"on_road": session.PointOnRoad(req.Point, h.cfg.RoadToleranceMeters)})
}

func (h *Handler) Elevation(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req models.PointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ElevationResponse{Elevation: session.Elevation(req.Point)})
}

func (h *Handler) LineOfSight(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req models.LineOfSightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.LineOfSightResponse{Visible: session.LineOfSight(req)})
}

func (h *Handler) Visibility(c *gin.Context) {
	session := h.session(c)
	if session == nil {
		return
	}

	var req models.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	polygon := session.Visibility(req, h.cfg.Visibility)
	c.JSON(http.StatusOK, models.VisibilityResponse{Polygon: polygon})
}

func (h *Handler) SaveMap(c *gin.Context) {
	savedID, err := h.maps.SaveMap(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrMapNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("ERROR: Failed to save map: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved_id": savedID})
}

func (h *Handler) ListSaved(c *gin.Context) {
	saved, err := h.maps.ListSaved()
	if err != nil {
		log.Printf("ERROR: Failed to list saved maps: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"maps": saved, "count": len(saved)})
}

func (h *Handler) GetSaved(c *gin.Context) {
	saved, err := h.maps.GetSaved(c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "saved map not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (h *Handler) LoadSaved(c *gin.Context) {
	session, err := h.maps.LoadSaved(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "saved map not found"})
			return
		}
		log.Printf("ERROR: Failed to load saved map: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, mapResponse(session))
}

func mapResponse(session *services.MapSession) models.MapResponse {
	return models.MapResponse{
		ID:           session.ID,
		Name:         session.Name,
		Target:       session.Target,
		Polygon:      session.Polygon,
		AreaSqMeters: session.Area,
		NodeCount:    session.NodeCount(),
		RoadCount:    len(session.Roads()),
	}
}
