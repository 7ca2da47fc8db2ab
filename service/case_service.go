package service

import (
	"context"
	"errors"

	"parkappeal-backend/models"
	"parkappeal-backend/repository"

	"github.com/google/uuid"
)

// CaseService handles business logic for appeal cases
type CaseService struct {
	caseRepo *repository.CaseRepository
}

// CaseServiceOption is a functional option for CaseService
type CaseServiceOption func(*CaseService)

// WithCaseRepository sets the case repository
func WithCaseRepository(repo *repository.CaseRepository) CaseServiceOption {
	return func(s *CaseService) {
		s.caseRepo = repo
	}
}

// NewCaseService creates a new case service
func NewCaseService(opts ...CaseServiceOption) *CaseService {
	s := &CaseService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCaseRequest represents a request to create an appeal case
type CreateCaseRequest struct {
	UserID uuid.UUID
	Status models.CaseStatus
}

// CreateCaseResult represents the result of creating an appeal case
type CreateCaseResult struct {
	Case *models.AppealCase
}

// CreateCase creates a new appeal case with default values
func (s *CaseService) CreateCase(ctx context.Context, req CreateCaseRequest) (*CreateCaseResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}

	appealCase := &models.AppealCase{
		UserID:         req.UserID,
		Status:         req.Status,
		Facts:          make(models.CitationFacts),
		Evidence:       make(models.EvidenceSet),
		SelectedAngles: []string{},
	}

	if appealCase.Status == "" {
		appealCase.Status = models.CaseStatusDraft
	}

	err := s.caseRepo.Create(ctx, appealCase)
	if err != nil {
		return nil, err
	}

	return &CreateCaseResult{Case: appealCase}, nil
}

// GetCaseRequest represents a request to get an appeal case
type GetCaseRequest struct {
	ID uuid.UUID
}

// GetCaseResult represents the result of getting an appeal case
type GetCaseResult struct {
	Case *models.AppealCase
}

// GetCase retrieves an appeal case by ID
func (s *CaseService) GetCase(ctx context.Context, req GetCaseRequest) (*GetCaseResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}

	appealCase, err := s.caseRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &GetCaseResult{Case: appealCase}, nil
}

// UpdateCaseRequest represents a request to update an appeal case
type UpdateCaseRequest struct {
	Case *models.AppealCase
}

// UpdateCaseResult represents the result of updating an appeal case
type UpdateCaseResult struct {
	Case *models.AppealCase
}

// UpdateCase updates an appeal case
func (s *CaseService) UpdateCase(ctx context.Context, req UpdateCaseRequest) (*UpdateCaseResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}

	err := s.caseRepo.Update(ctx, req.Case)
	if err != nil {
		return nil, err
	}

	return &UpdateCaseResult{Case: req.Case}, nil
}

// ListCasesRequest represents a request to list appeal cases
type ListCasesRequest struct {
	UserID uuid.UUID
	Status *models.CaseStatus
	Limit  int
	Offset int
}

// ListCasesResult represents the result of listing appeal cases
type ListCasesResult struct {
	Cases []*models.AppealCase
}

// ListCases lists appeal cases for a user
func (s *CaseService) ListCases(ctx context.Context, req ListCasesRequest) (*ListCasesResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}

	cases, err := s.caseRepo.ListByUserID(ctx, req.UserID, req.Status, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	return &ListCasesResult{Cases: cases}, nil
}
