package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"parkappeal-backend/models"
	"parkappeal-backend/regulations"
	"parkappeal-backend/repository"
	"parkappeal-backend/strategy"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
)

// AppealService handles appeal letter generation
type AppealService struct {
	caseRepo    *repository.CaseRepository
	jobRepo     *repository.AppealJobRepository
	regulations *regulations.Catalog
	gemini      *genai.Client
}

// AppealServiceOption is a functional option for AppealService
type AppealServiceOption func(*AppealService)

// AppealWithCaseRepository sets the case repository
func AppealWithCaseRepository(repo *repository.CaseRepository) AppealServiceOption {
	return func(s *AppealService) {
		s.caseRepo = repo
	}
}

// AppealWithJobRepository sets the appeal job repository
func AppealWithJobRepository(repo *repository.AppealJobRepository) AppealServiceOption {
	return func(s *AppealService) {
		s.jobRepo = repo
	}
}

// AppealWithRegulations sets the jurisdiction catalog
func AppealWithRegulations(catalog *regulations.Catalog) AppealServiceOption {
	return func(s *AppealService) {
		s.regulations = catalog
	}
}

// AppealWithGeminiClient sets the Gemini client
func AppealWithGeminiClient(client *genai.Client) AppealServiceOption {
	return func(s *AppealService) {
		s.gemini = client
	}
}

// NewAppealService creates a new appeal service
func NewAppealService(opts ...AppealServiceOption) *AppealService {
	s := &AppealService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrCaseNotFound        = errors.New("appeal case not found")
	ErrMissingCitationInfo = errors.New("case missing citation number or state")
	ErrJobCreationFailed   = errors.New("failed to create appeal job")
	ErrGenerationFailed    = errors.New("failed to generate appeal content")
	ErrJobNotFound         = errors.New("appeal job not found")
	ErrUnknownAngle        = errors.New("unknown appeal angle")
)

const (
	generationModel       = "gemini-1.5-pro"
	generationTemperature = 0.4
	maxRetries            = 3
	initialBackoff        = time.Second
	maxSuggestedQuestions = 5

	comprehensiveStep = "Drafting Comprehensive Appeal"
	assembleStep      = "Assembling Document"
)

// GenerateAppealRequest represents a request to generate appeal letters
type GenerateAppealRequest struct {
	CaseID uuid.UUID
}

// GenerateAppealResult represents the result of creating an appeal job
type GenerateAppealResult struct {
	JobID uuid.UUID
}

// GetJobStatusRequest represents a request to get job status
type GetJobStatusRequest struct {
	JobID uuid.UUID
}

// GetJobStatusResult represents the result of getting job status
type GetJobStatusResult struct {
	Job *models.AppealJob
}

// GenerateAppeal validates the case, creates an appeal job and returns
// immediately. The actual generation runs in ProcessAppeal; this method must
// stay fast so the HTTP handler can respond within its timeout.
func (s *AppealService) GenerateAppeal(
	ctx context.Context,
	req GenerateAppealRequest,
) (*GenerateAppealResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}
	if s.jobRepo == nil {
		return nil, errors.New("appeal job repository not set")
	}

	appealCase, err := s.caseRepo.GetByID(ctx, req.CaseID)
	if err != nil {
		return nil, ErrCaseNotFound
	}

	if appealCase.CitationNumber == "" || appealCase.State == "" {
		return nil, ErrMissingCitationInfo
	}

	job := &models.AppealJob{
		ID:     uuid.New(),
		CaseID: req.CaseID,
		Status: models.JobStatusPending,
		Steps:  s.initializeSteps(s.caseAngles(appealCase)),
	}

	err = s.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, ErrJobCreationFailed
	}

	return &GenerateAppealResult{JobID: job.ID}, nil
}

// GetJobStatus retrieves the status of an appeal job
func (s *AppealService) GetJobStatus(
	ctx context.Context,
	req GetJobStatusRequest,
) (*GetJobStatusResult, error) {
	if s.jobRepo == nil {
		return nil, errors.New("appeal job repository not set")
	}

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, ErrJobNotFound
	}

	return &GetJobStatusResult{Job: job}, nil
}

// GetCaseJobRequest represents a request to get the latest job for a case
type GetCaseJobRequest struct {
	CaseID uuid.UUID
}

// GetCaseJobResult represents the result of getting the latest job for a case
type GetCaseJobResult struct {
	Job *models.AppealJob
}

// GetCaseJob retrieves the most recent appeal job for a case
func (s *AppealService) GetCaseJob(
	ctx context.Context,
	req GetCaseJobRequest,
) (*GetCaseJobResult, error) {
	if s.jobRepo == nil {
		return nil, errors.New("appeal job repository not set")
	}

	job, err := s.jobRepo.GetByCaseID(ctx, req.CaseID)
	if err != nil {
		return nil, ErrJobNotFound
	}

	return &GetCaseJobResult{Job: job}, nil
}

// AnalyzeCaseRequest represents a request to assess appeal strength
type AnalyzeCaseRequest struct {
	CaseID uuid.UUID
}

// AnalyzeCaseResult represents the result of an appeal strength assessment
type AnalyzeCaseResult struct {
	Analysis string
}

// AnalyzeCase asks the generation model for an overall assessment of the
// case: likely strength, best angles, supporting factors and weaknesses.
// Synchronous; one model call.
func (s *AppealService) AnalyzeCase(
	ctx context.Context,
	req AnalyzeCaseRequest,
) (*AnalyzeCaseResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}
	if s.regulations == nil {
		return nil, errors.New("regulation catalog not set")
	}

	appealCase, err := s.caseRepo.GetByID(ctx, req.CaseID)
	if err != nil {
		return nil, ErrCaseNotFound
	}

	location := s.regulations.CombinedInfo(appealCase.City, appealCase.State)
	prompt := BuildAnalysisPrompt(appealCase.Facts, location, appealCase.Evidence)

	analysis, err := s.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &AnalyzeCaseResult{Analysis: analysis}, nil
}

// SuggestQuestionsRequest represents a request for follow-up intake questions.
// AngleKey is optional; when empty the case's top-ranked angle is used.
type SuggestQuestionsRequest struct {
	CaseID   uuid.UUID
	AngleKey string
}

// SuggestQuestionsResult represents the suggested follow-up questions
type SuggestQuestionsResult struct {
	Angle     string
	Questions []string
}

// SuggestQuestions asks the generation model for extra intake questions that
// would strengthen the appeal for one angle, beyond the angle's standard
// question list
func (s *AppealService) SuggestQuestions(
	ctx context.Context,
	req SuggestQuestionsRequest,
) (*SuggestQuestionsResult, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}

	appealCase, err := s.caseRepo.GetByID(ctx, req.CaseID)
	if err != nil {
		return nil, ErrCaseNotFound
	}

	angleKey := req.AngleKey
	if angleKey == "" {
		angleKey = s.caseAngles(appealCase)[0]
	}

	angle := strategy.Angle(angleKey)
	if angle == nil {
		return nil, ErrUnknownAngle
	}

	prompt := BuildFollowUpPrompt(appealCase.Facts, angle)

	text, err := s.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &SuggestQuestionsResult{
		Angle:     angle.Key,
		Questions: parseQuestions(text),
	}, nil
}

// parseQuestions splits a numbered-list response into bare question lines.
// Numbering, bullet punctuation and comment lines are dropped; at most five
// questions are kept.
func parseQuestions(text string) []string {
	questions := make([]string, 0, maxSuggestedQuestions)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "0123456789.-) "))
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if len(questions) == maxSuggestedQuestions {
			break
		}
	}

	return questions
}

// caseAngles resolves which angles to draft: the appellant's selection when
// present, otherwise the classifier's suggestions from the collected facts.
func (s *AppealService) caseAngles(appealCase *models.AppealCase) []string {
	if len(appealCase.SelectedAngles) > 0 {
		return appealCase.SelectedAngles
	}
	return strategy.SuggestAngles(appealCase.Facts)
}

// initializeSteps creates the job steps for the chosen angles
func (s *AppealService) initializeSteps(angleKeys []string) models.AppealSteps {
	steps := make(models.AppealSteps, 0)

	for _, key := range angleKeys {
		angle := strategy.Angle(key)
		if angle == nil {
			continue
		}
		steps = append(steps, models.AppealStep{
			Name:   angleStepName(angle),
			Status: "pending",
		})
	}

	steps = append(steps, models.AppealStep{Name: comprehensiveStep, Status: "pending"})
	steps = append(steps, models.AppealStep{Name: assembleStep, Status: "pending"})

	return steps
}

func angleStepName(angle *strategy.AppealAngle) string {
	return "Drafting " + angle.Name + " Appeal"
}

// appealSection is one generated letter keyed by its angle display name
type appealSection struct {
	Name    string
	Content string
}

// ProcessAppeal performs the actual generation work in the background.
// One Gemini call per selected angle plus one for the comprehensive letter,
// so this can take a minute or more.
func (s *AppealService) ProcessAppeal(ctx context.Context, jobID uuid.UUID) error {
	if s.jobRepo == nil {
		return errors.New("appeal job repository not set")
	}
	if s.caseRepo == nil {
		return errors.New("case repository not set")
	}
	if s.regulations == nil {
		return errors.New("regulation catalog not set")
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load appeal job: %w", err)
	}

	appealCase, err := s.caseRepo.GetByID(ctx, job.CaseID)
	if err != nil {
		s.markJobFailed(ctx, jobID, "failed to load case: "+err.Error())
		return err
	}

	err = s.jobRepo.UpdateStatus(ctx, jobID, models.JobStatusInProgress)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	location := s.regulations.CombinedInfo(appealCase.City, appealCase.State)
	angleKeys := s.caseAngles(appealCase)

	sections := make([]appealSection, 0, len(angleKeys))

	for _, key := range angleKeys {
		angle := strategy.Angle(key)
		if angle == nil {
			log.Printf("Warning: skipping unknown appeal angle %q for case %s", key, appealCase.ID)
			continue
		}

		stepName := angleStepName(angle)
		err = s.updateStepStatus(ctx, jobID, stepName, "in_progress")
		if err != nil {
			s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
			return err
		}

		prompt := BuildAnglePrompt(appealCase.Facts, location, angle, appealCase.Evidence)
		prompt = withRefineInstructions(prompt, appealCase.RefineInstructions)

		content, err := s.generateText(ctx, prompt)
		if err != nil {
			s.markJobFailed(ctx, jobID, fmt.Sprintf("failed to draft %s appeal: %v", angle.Name, err))
			return fmt.Errorf("failed to draft %s appeal: %w", angle.Name, err)
		}

		sections = append(sections, appealSection{Name: angle.Name, Content: content})

		err = s.updateStepStatus(ctx, jobID, stepName, "completed")
		if err != nil {
			s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
			return err
		}
	}

	err = s.updateStepStatus(ctx, jobID, comprehensiveStep, "in_progress")
	if err != nil {
		s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
		return err
	}

	prompt := BuildComprehensivePrompt(appealCase.Facts, location, angleKeys, appealCase.Evidence)
	prompt = withRefineInstructions(prompt, appealCase.RefineInstructions)

	comprehensive, err := s.generateText(ctx, prompt)
	if err != nil {
		s.markJobFailed(ctx, jobID, fmt.Sprintf("failed to draft comprehensive appeal: %v", err))
		return fmt.Errorf("failed to draft comprehensive appeal: %w", err)
	}

	err = s.updateStepStatus(ctx, jobID, comprehensiveStep, "completed")
	if err != nil {
		s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
		return err
	}

	err = s.updateStepStatus(ctx, jobID, assembleStep, "in_progress")
	if err != nil {
		s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
		return err
	}

	document := s.assembleDocument(appealCase, location, comprehensive, sections)

	err = s.updateStepStatus(ctx, jobID, assembleStep, "completed")
	if err != nil {
		s.markJobFailed(ctx, jobID, "failed to update step: "+err.Error())
		return err
	}

	err = s.caseRepo.UpdateGeneratedContent(ctx, job.CaseID, document)
	if err != nil {
		s.markJobFailed(ctx, jobID, "failed to store generated content: "+err.Error())
		return err
	}

	err = s.jobRepo.Complete(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	return nil
}

// withRefineInstructions appends the appellant's regeneration notes, if any
func withRefineInstructions(prompt string, instructions *string) string {
	if instructions == nil || *instructions == "" {
		return prompt
	}
	return prompt + "\n\nADDITIONAL INSTRUCTIONS FROM THE APPELLANT:\n" + *instructions
}

// updateStepStatus updates the status of a specific step in the appeal job
func (s *AppealService) updateStepStatus(ctx context.Context, jobID uuid.UUID, stepName, status string) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	steps := job.Steps
	var currentStep string
	if job.CurrentStep != nil {
		currentStep = *job.CurrentStep
	}

	for i := range steps {
		if steps[i].Name == stepName {
			steps[i].Status = status
			if status == "in_progress" {
				currentStep = stepName
			}
			break
		}
	}

	return s.jobRepo.UpdateProgress(ctx, jobID, currentStep, steps)
}

// markJobFailed marks a job as failed with an error message
func (s *AppealService) markJobFailed(ctx context.Context, jobID uuid.UUID, errorMessage string) {
	if err := s.jobRepo.Fail(ctx, jobID, errorMessage); err != nil {
		log.Printf("Warning: failed to mark job %s as failed: %v", jobID, err)
	}
}

// generateText sends one request to the generation model and returns its
// text, retrying transient failures with exponential backoff. The error is
// returned as-is so callers can surface it in the tagged failure result.
func (s *AppealService) generateText(ctx context.Context, prompt string) (string, error) {
	if s.gemini == nil {
		return "", errors.New("gemini client not set")
	}

	model := s.gemini.GenerativeModel(generationModel)
	model.SetTemperature(generationTemperature)

	var lastErr error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			continue
		}

		content := extractText(resp)
		if content != "" {
			return content, nil
		}
		lastErr = ErrGenerationFailed
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", maxRetries, lastErr)
}

// extractText flattens all text parts of a generation response
func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

// assembleDocument combines the comprehensive letter and the per-angle drafts
// into the stored document
func (s *AppealService) assembleDocument(
	appealCase *models.AppealCase,
	location *regulations.CombinedInfo,
	comprehensive string,
	sections []appealSection,
) string {
	var b strings.Builder
	divider := strings.Repeat("=", 70)

	b.WriteString("PARKING CITATION APPEAL\n")
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "Citation Number: %s\n", appealCase.CitationNumber)
	if appealCase.ViolationType != "" {
		fmt.Fprintf(&b, "Violation: %s\n", appealCase.ViolationType)
	}
	if location.State != nil {
		jurisdiction := location.State.Name
		if appealCase.City != "" {
			jurisdiction = appealCase.City + ", " + jurisdiction
		}
		fmt.Fprintf(&b, "Jurisdiction: %s\n", jurisdiction)
		fmt.Fprintf(&b, "Appeal Deadline: %d days from citation\n", location.State.AppealDeadlineDays)
	}

	b.WriteString("\nCOMPREHENSIVE APPEAL LETTER\n")
	b.WriteString(divider + "\n\n")
	b.WriteString(comprehensive)
	b.WriteString("\n")

	if len(sections) > 0 {
		b.WriteString("\nALTERNATIVE SINGLE-ANGLE DRAFTS\n")
		b.WriteString(divider + "\n")
		for _, section := range sections {
			fmt.Fprintf(&b, "\nAPPEAL ANGLE: %s\n\n", section.Name)
			b.WriteString(section.Content)
			b.WriteString("\n")
		}
	}

	return b.String()
}
