package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"parkappeal-backend/models"
	"parkappeal-backend/repository"
	"parkappeal-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FileHandler handles HTTP requests for evidence files
type FileHandler struct {
	storage          storage.Storage
	fileRepo         *repository.FileRepository
	caseRepo         *repository.CaseRepository
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewFileHandler creates a new file handler
func NewFileHandler(store storage.Storage, fileRepo *repository.FileRepository, caseRepo *repository.CaseRepository) *FileHandler {
	return &FileHandler{
		storage:     store,
		fileRepo:    fileRepo,
		caseRepo:    caseRepo,
		maxFileSize: 10 * 1024 * 1024, // 10MB
		allowedMimeTypes: map[string]bool{
			"application/pdf": true,
			"image/jpeg":      true,
			"image/png":       true,
			"image/heic":      true,
			"text/plain":      true,
		},
	}
}

// UploadFile handles POST /api/files/upload
func (h *FileHandler) UploadFile(c *gin.Context) {
	var userID uuid.UUID
	var caseID *uuid.UUID

	caseIDStr := c.PostForm("case_id")
	if caseIDStr != "" {
		cid, err := uuid.Parse(caseIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CASE_ID",
					"message": "Invalid case_id format",
				},
			})
			return
		}
		caseID = &cid

		// Get case to retrieve user_id
		appealCase, err := h.caseRepo.GetByID(c.Request.Context(), cid)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CASE_NOT_FOUND",
					"message": "Appeal case not found",
				},
			})
			return
		}
		userID = appealCase.UserID
	} else {
		// If no case_id, require user_id in form
		userIDStr := c.PostForm("user_id")
		if userIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_USER_ID",
					"message": "Either case_id or user_id is required",
				},
			})
			return
		}
		uid, err := uuid.Parse(userIDStr)
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
		userID = uid
	}

	// Get file from form
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	// Validate file size
	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize),
			},
		})
		return
	}

	// Open file
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	// Determine MIME type
	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		// Try to infer from extension
		filename := strings.ToLower(fileHeader.Filename)
		switch {
		case strings.HasSuffix(filename, ".pdf"):
			mimeType = "application/pdf"
		case strings.HasSuffix(filename, ".jpg"), strings.HasSuffix(filename, ".jpeg"):
			mimeType = "image/jpeg"
		case strings.HasSuffix(filename, ".png"):
			mimeType = "image/png"
		case strings.HasSuffix(filename, ".heic"):
			mimeType = "image/heic"
		case strings.HasSuffix(filename, ".txt"):
			mimeType = "text/plain"
		default:
			mimeType = "application/octet-stream"
		}
	}

	// Validate MIME type. Photos are the most common evidence, so any image
	// subtype is accepted.
	if !h.allowedMimeTypes[mimeType] && !strings.HasPrefix(mimeType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "File type not allowed. Allowed types: images, PDF, TXT",
			},
		})
		return
	}

	// Generate file ID
	fileID := uuid.New()

	// Upload to storage
	storagePath, err := h.storage.Upload(c.Request.Context(), fileID, fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": fmt.Sprintf("Failed to upload file: %v", err),
			},
		})
		return
	}

	var label *string
	if labelStr := c.PostForm("label"); labelStr != "" {
		label = &labelStr
	}

	// Create file record in database
	fileRecord := &models.EvidenceFile{
		ID:          fileID,
		UserID:      userID,
		CaseID:      caseID,
		Filename:    fileHeader.Filename,
		MimeType:    mimeType,
		Size:        fileHeader.Size,
		StoragePath: storagePath,
		Label:       label,
	}

	err = h.fileRepo.Create(c.Request.Context(), fileRecord)
	if err != nil {
		// Try to clean up uploaded file
		h.storage.Delete(c.Request.Context(), storagePath)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": fmt.Sprintf("Failed to save file record: %v", err),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":         fileRecord.ID,
			"filename":   fileRecord.Filename,
			"mime_type":  fileRecord.MimeType,
			"size":       fileRecord.Size,
			"label":      fileRecord.Label,
			"created_at": fileRecord.CreatedAt,
		},
	})
}

// GetFile handles GET /api/files/:id
func (h *FileHandler) GetFile(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid file ID format",
			},
		})
		return
	}

	file, err := h.fileRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "File not found",
			},
		})
		return
	}

	// Download from storage
	reader, err := h.storage.Download(c.Request.Context(), file.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": fmt.Sprintf("Failed to download file: %v", err),
			},
		})
		return
	}
	defer reader.Close()

	// Set headers
	c.Header("Content-Type", file.MimeType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, reader, nil)
}

// ListCaseFiles handles GET /api/cases/:id/files
func (h *FileHandler) ListCaseFiles(c *gin.Context) {
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

	files, err := h.fileRepo.ListByCaseID(c.Request.Context(), id)
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
		"data":    files,
	})
}

// DeleteFile handles DELETE /api/files/:id
func (h *FileHandler) DeleteFile(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid file ID format",
			},
		})
		return
	}

	file, err := h.fileRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "File not found",
			},
		})
		return
	}

	if err := h.storage.Delete(c.Request.Context(), file.StoragePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DELETE_FAILED",
				"message": fmt.Sprintf("Failed to delete stored file: %v", err),
			},
		})
		return
	}

	if err := h.fileRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": fmt.Sprintf("Failed to delete file record: %v", err),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":      id,
			"deleted": true,
		},
	})
}
