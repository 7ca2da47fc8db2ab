package handlers

import (
	"context"
	"io"
	"log"
	"net/http"

	"parkappeal-backend/models"
	"parkappeal-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppealHandler handles HTTP requests for appeal cases
type AppealHandler struct {
	caseService   *service.CaseService
	appealService *service.AppealService
}

// NewAppealHandler creates a new appeal handler
func NewAppealHandler(caseService *service.CaseService, appealService *service.AppealService) *AppealHandler {
	return &AppealHandler{
		caseService:   caseService,
		appealService: appealService,
	}
}

// CreateCaseRequest represents the request body for creating an appeal case
type CreateCaseRequest struct {
	UserID         string                 `json:"user_id" binding:"required"`
	Status         string                 `json:"status"`
	CitationNumber string                 `json:"citation_number"`
	ViolationType  string                 `json:"violation_type"`
	City           string                 `json:"city"`
	State          string                 `json:"state"`
	Facts          map[string]interface{} `json:"facts"`
	Evidence       map[string]interface{} `json:"evidence"`
	SelectedAngles []string               `json:"selected_angles"`
}

// CreateCase handles POST /api/cases
func (h *AppealHandler) CreateCase(c *gin.Context) {
	var req CreateCaseRequest
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

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	var status models.CaseStatus
	if req.Status != "" {
		status = models.CaseStatus(req.Status)
	} else {
		status = models.CaseStatusDraft
	}

	serviceReq := service.CreateCaseRequest{
		UserID: userID,
		Status: status,
	}

	result, err := h.caseService.CreateCase(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CREATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	// Update with citation details if provided
	if req.CitationNumber != "" || req.ViolationType != "" || req.City != "" || req.State != "" ||
		req.Facts != nil || req.Evidence != nil || len(req.SelectedAngles) > 0 {
		result.Case.CitationNumber = req.CitationNumber
		result.Case.ViolationType = req.ViolationType
		result.Case.City = req.City
		result.Case.State = req.State

		if req.Facts != nil {
			result.Case.Facts = models.CitationFacts(req.Facts)
		}
		if req.Evidence != nil {
			result.Case.Evidence = models.EvidenceSet(req.Evidence)
		}
		if len(req.SelectedAngles) > 0 {
			result.Case.SelectedAngles = req.SelectedAngles
		}

		updateReq := service.UpdateCaseRequest{
			Case: result.Case,
		}
		_, err = h.caseService.UpdateCase(c.Request.Context(), updateReq)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPDATE_FAILED",
					"message": err.Error(),
				},
			})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Case,
	})
}

// GetCase handles GET /api/cases/:id
func (h *AppealHandler) GetCase(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid case ID format",
			},
		})
		return
	}

	serviceReq := service.GetCaseRequest{
		ID: id,
	}

	result, err := h.caseService.GetCase(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Appeal case not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Case,
	})
}

// ListCases handles GET /api/cases
func (h *AppealHandler) ListCases(c *gin.Context) {
	userIDStr := c.Query("user_id")
	if userIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_USER_ID",
				"message": "user_id query parameter is required",
			},
		})
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	var status *models.CaseStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := models.CaseStatus(statusStr)
		status = &s
	}

	serviceReq := service.ListCasesRequest{
		UserID: userID,
		Status: status,
		Limit:  50,
	}

	result, err := h.caseService.ListCases(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Cases,
	})
}

// UpdateCaseRequest represents the request body for updating an appeal case
type UpdateCaseRequest struct {
	Status             string                 `json:"status"`
	CitationNumber     string                 `json:"citation_number"`
	ViolationType      string                 `json:"violation_type"`
	City               string                 `json:"city"`
	State              string                 `json:"state"`
	Facts              map[string]interface{} `json:"facts"`
	Evidence           map[string]interface{} `json:"evidence"`
	SelectedAngles     []string               `json:"selected_angles"`
	RefineInstructions *string                `json:"refine_instructions"`
}

// UpdateCase handles PUT /api/cases/:id
func (h *AppealHandler) UpdateCase(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid case ID format",
			},
		})
		return
	}

	// Get existing case
	getReq := service.GetCaseRequest{ID: id}
	result, err := h.caseService.GetCase(c.Request.Context(), getReq)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Appeal case not found",
			},
		})
		return
	}

	appealCase := result.Case

	var req UpdateCaseRequest
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

	// Update fields if provided
	if req.Status != "" {
		appealCase.Status = models.CaseStatus(req.Status)
	}
	if req.CitationNumber != "" {
		appealCase.CitationNumber = req.CitationNumber
	}
	if req.ViolationType != "" {
		appealCase.ViolationType = req.ViolationType
	}
	if req.City != "" {
		appealCase.City = req.City
	}
	if req.State != "" {
		appealCase.State = req.State
	}
	if req.Facts != nil {
		appealCase.Facts = models.CitationFacts(req.Facts)
	}
	if req.Evidence != nil {
		appealCase.Evidence = models.EvidenceSet(req.Evidence)
	}
	if req.SelectedAngles != nil {
		appealCase.SelectedAngles = req.SelectedAngles
	}
	if req.RefineInstructions != nil {
		appealCase.RefineInstructions = req.RefineInstructions
	}

	updateReq := service.UpdateCaseRequest{
		Case: appealCase,
	}

	updateResult, err := h.caseService.UpdateCase(c.Request.Context(), updateReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPDATE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updateResult.Case,
	})
}

// GenerateAppeal handles POST /api/cases/:id/generate
func (h *AppealHandler) GenerateAppeal(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid case ID format",
			},
		})
		return
	}

	var reqBody struct {
		RefineInstructions *string `json:"refine_instructions"`
	}
	if err := c.ShouldBindJSON(&reqBody); err != nil && err != io.EOF {
		// JSON is optional, ignore binding errors if body is empty
	}

	// Stash regeneration notes on the case before queuing the job
	if reqBody.RefineInstructions != nil {
		getReq := service.GetCaseRequest{ID: id}
		result, err := h.caseService.GetCase(c.Request.Context(), getReq)
		if err == nil {
			result.Case.RefineInstructions = reqBody.RefineInstructions
			updateReq := service.UpdateCaseRequest{Case: result.Case}
			if _, err := h.caseService.UpdateCase(c.Request.Context(), updateReq); err != nil {
				log.Printf("Warning: failed to store refine instructions for case %s: %v", id, err)
			}
		}
	}

	serviceReq := service.GenerateAppealRequest{
		CaseID: id,
	}

	// Create job (synchronous, fast)
	result, err := h.appealService.GenerateAppeal(c.Request.Context(), serviceReq)
	if err != nil {
		status := http.StatusInternalServerError
		code := "GENERATION_FAILED"
		switch err {
		case service.ErrCaseNotFound:
			status = http.StatusNotFound
			code = "NOT_FOUND"
		case service.ErrMissingCitationInfo:
			status = http.StatusBadRequest
			code = "MISSING_CITATION_INFO"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	// Spawn background goroutine for actual processing
	// Use background context (not request context) to avoid cancellation
	go func() {
		bgCtx := context.Background()
		if err := h.appealService.ProcessAppeal(bgCtx, result.JobID); err != nil {
			// Error is logged and stored in job.ErrorMessage
			// No need to return to HTTP client (they'll poll status)
			log.Printf("Appeal job %s failed: %v", result.JobID, err)
		}
	}()

	// Return immediately (within 100ms)
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"job_id":  result.JobID,
			"status":  "pending",
			"message": "Appeal generation job created. Poll /api/jobs/:id for updates.",
		},
	})
}

// AnalyzeCase handles POST /api/cases/:id/analyze
func (h *AppealHandler) AnalyzeCase(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid case ID format",
			},
		})
		return
	}

	serviceReq := service.AnalyzeCaseRequest{
		CaseID: id,
	}

	result, err := h.appealService.AnalyzeCase(c.Request.Context(), serviceReq)
	if err != nil {
		if err == service.ErrCaseNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Appeal case not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ANALYSIS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"analysis": result.Analysis,
		},
	})
}

// SuggestQuestions handles POST /api/cases/:id/questions
func (h *AppealHandler) SuggestQuestions(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid case ID format",
			},
		})
		return
	}

	var reqBody struct {
		Angle string `json:"angle"`
	}
	if err := c.ShouldBindJSON(&reqBody); err != nil && err != io.EOF {
		// JSON is optional, ignore binding errors if body is empty
	}

	serviceReq := service.SuggestQuestionsRequest{
		CaseID:   id,
		AngleKey: reqBody.Angle,
	}

	result, err := h.appealService.SuggestQuestions(c.Request.Context(), serviceReq)
	if err != nil {
		status := http.StatusInternalServerError
		code := "SUGGESTION_FAILED"
		switch err {
		case service.ErrCaseNotFound:
			status = http.StatusNotFound
			code = "NOT_FOUND"
		case service.ErrUnknownAngle:
			status = http.StatusBadRequest
			code = "UNKNOWN_ANGLE"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"angle":     result.Angle,
			"questions": result.Questions,
		},
	})
}

// GetCaseJob handles GET /api/cases/:id/job
func (h *AppealHandler) GetCaseJob(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid case ID format",
			},
		})
		return
	}

	serviceReq := service.GetCaseJobRequest{
		CaseID: id,
	}

	result, err := h.appealService.GetCaseJob(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "No appeal job found for this case",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Job,
	})
}

// GetJobStatus handles GET /api/jobs/:id
func (h *AppealHandler) GetJobStatus(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid job ID format",
			},
		})
		return
	}

	serviceReq := service.GetJobStatusRequest{
		JobID: id,
	}

	result, err := h.appealService.GetJobStatus(c.Request.Context(), serviceReq)
	if err != nil {
		if err == service.ErrJobNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Appeal job not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Job,
	})
}
