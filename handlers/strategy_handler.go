package handlers

import (
	"net/http"

	"parkappeal-backend/models"
	"parkappeal-backend/regulations"
	"parkappeal-backend/strategy"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles HTTP requests for appeal strategy analysis and
// jurisdiction lookups
type StrategyHandler struct {
	regulations *regulations.Catalog
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(catalog *regulations.Catalog) *StrategyHandler {
	return &StrategyHandler{regulations: catalog}
}

// ListAngles handles GET /api/strategy/angles
func (h *StrategyHandler) ListAngles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    strategy.Angles(),
	})
}

// GetAngle handles GET /api/strategy/angles/:key
func (h *StrategyHandler) GetAngle(c *gin.Context) {
	key := c.Param("key")
	angle := strategy.Angle(key)
	if angle == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Unknown appeal angle",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    angle,
	})
}

// ClassifyRequest represents the request body for angle classification
type ClassifyRequest struct {
	Facts    map[string]interface{} `json:"facts" binding:"required"`
	Evidence map[string]interface{} `json:"evidence"`
}

// suggestedAngle is one classifier suggestion with its evidence strength
type suggestedAngle struct {
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Strength    strategy.Strength `json:"strength"`
}

// Classify handles POST /api/strategy/classify
func (h *StrategyHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	facts := models.CitationFacts(req.Facts)
	evidence := models.EvidenceSet(req.Evidence)

	keys := strategy.SuggestAngles(facts)
	suggestions := make([]suggestedAngle, 0, len(keys))
	for _, key := range keys {
		angle := strategy.Angle(key)
		if angle == nil {
			continue
		}
		suggestions = append(suggestions, suggestedAngle{
			Key:         angle.Key,
			Name:        angle.Name,
			Description: angle.Description,
			Strength:    strategy.AngleStrength(key, evidence),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"angles": suggestions,
		},
	})
}

// StrengthRequest represents the request body for evidence strength scoring
type StrengthRequest struct {
	Angle    string                 `json:"angle" binding:"required"`
	Evidence map[string]interface{} `json:"evidence"`
}

// Strength handles POST /api/strategy/strength
func (h *StrategyHandler) Strength(c *gin.Context) {
	var req StrengthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	angle := strategy.Angle(req.Angle)
	if angle == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Unknown appeal angle",
			},
		})
		return
	}

	evidence := models.EvidenceSet(req.Evidence)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"angle":             angle.Key,
			"strength":          strategy.AngleStrength(angle.Key, evidence),
			"required_evidence": angle.RequiredEvidence,
		},
	})
}

// ListStates handles GET /api/jurisdictions/states
func (h *StrategyHandler) ListStates(c *gin.Context) {
	codes := h.regulations.StateCodes()
	states := make([]*regulations.StateRegulation, 0, len(codes))
	for _, code := range codes {
		states = append(states, h.regulations.StateInfo(code))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    states,
	})
}

// ListCities handles GET /api/jurisdictions/states/:code/cities
func (h *StrategyHandler) ListCities(c *gin.Context) {
	code := c.Param("code")
	if h.regulations.StateInfo(code) == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Unknown state code",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.regulations.CitiesForState(code),
	})
}

// ResolveJurisdiction handles GET /api/jurisdictions/resolve
func (h *StrategyHandler) ResolveJurisdiction(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_STATE",
				"message": "state query parameter is required",
			},
		})
		return
	}

	info := h.regulations.CombinedInfo(c.Query("city"), state)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    info,
	})
}
