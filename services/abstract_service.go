package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"abstract-portal/config"
	"abstract-portal/models"
	"abstract-portal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AbstractService interface {
	Submit(req models.SubmitAbstractRequest, userID uint, userEmail string) (*models.Abstract, error)
	GetByID(id uint) (*models.Abstract, error)
	ListAll(params models.AbstractListParams) ([]models.Abstract, models.Statistics, error)
	ListByUser(userID uint) ([]models.Abstract, error)
	UpdateContent(id uint, req models.UpdateAbstractRequest, userID uint) (*models.Abstract, error)
	Delete(id uint, userID uint) error
	UpdateStatus(id uint, status models.AbstractStatus, comments string) (*models.Abstract, error)
	BulkUpdateStatus(ids []uint, status models.AbstractStatus, comments string) (*models.BulkUpdateResult, error)
	Statistics() (models.Statistics, error)
	GetFiles(abstractID uint) ([]models.UploadedFile, error)
}

type abstractService struct {
	abstractRepo repositories.AbstractRepository
	limits       config.WordLimitConfig
	notifier     NotificationService
}

func NewAbstractService(abstractRepo repositories.AbstractRepository, limits config.WordLimitConfig, notifier NotificationService) AbstractService {
	return &abstractService{
		abstractRepo: abstractRepo,
		limits:       limits,
		notifier:     notifier,
	}
}

var requiredSubmissionFields = []string{
	"title",
	"presenter_name",
	"institution_name",
	"presentation_type",
	"category",
	"abstract_content",
}

func (s *abstractService) Submit(req models.SubmitAbstractRequest, userID uint, userEmail string) (*models.Abstract, error) {
	if err := validateRequiredFields(req); err != nil {
		return nil, err
	}

	if err := s.checkWordLimit(req.AbstractContent, req.PresentationType); err != nil {
		return nil, err
	}

	abstract := &models.Abstract{
		UserID:           userID,
		Title:            req.Title,
		PresenterName:    req.PresenterName,
		InstitutionName:  req.InstitutionName,
		PresentationType: req.PresentationType,
		Category:         req.Category,
		AbstractContent:  req.AbstractContent,
		CoAuthors:        req.CoAuthors,
		RegistrationID:   req.RegistrationID,
		Status:           models.StatusPending,
		AbstractNumber:   generateAbstractNumber(),
	}

	// Legacy single-file slot mirrors the first uploaded file.
	if len(req.UploadedFiles) > 0 {
		first := req.UploadedFiles[0]
		abstract.FileName = &first.OriginalName
		abstract.FilePath = &first.Path
		abstract.FileSize = &first.Size
	}

	if err := s.abstractRepo.Create(abstract); err != nil {
		log.Println("Failed to create abstract:", err)
		return nil, models.ErrorInternalServer{Message: "Failed to submit abstract"}
	}

	// Record every uploaded file; a single bad row must not lose the
	// submission that was already committed.
	for _, f := range req.UploadedFiles {
		file := &models.UploadedFile{
			AbstractID: abstract.ID,
			FileName:   f.OriginalName,
			FilePath:   f.Path,
			FileSize:   f.Size,
		}
		if err := s.abstractRepo.SaveUploadedFile(file); err != nil {
			log.Printf("Failed to record uploaded file %s for abstract %d: %v", f.OriginalName, abstract.ID, err)
			continue
		}
		abstract.Files = append(abstract.Files, *file)
	}

	s.notifier.NotifySubmissionReceived(abstract, userEmail)

	return abstract, nil
}

func (s *abstractService) GetByID(id uint) (*models.Abstract, error) {
	abstract, err := s.abstractRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Abstract not found"}
		}
		log.Println("Failed to load abstract:", err)
		return nil, models.ErrorInternalServer{Message: "Failed to load abstract"}
	}
	return abstract, nil
}

// ListAll returns the admin view: filtered abstracts plus a statistics
// snapshot computed over the complete set, so the counts always reflect the
// latest committed status regardless of the active filters.
func (s *abstractService) ListAll(params models.AbstractListParams) ([]models.Abstract, models.Statistics, error) {
	abstracts, err := s.abstractRepo.GetAll()
	if err != nil {
		log.Println("Failed to list abstracts:", err)
		return nil, models.Statistics{}, models.ErrorInternalServer{Message: "Failed to list abstracts"}
	}

	stats := BuildStatistics(abstracts)

	filtered := make([]models.Abstract, 0, len(abstracts))
	for _, a := range abstracts {
		if params.Status != "" && params.Status != "all" &&
			!strings.EqualFold(string(a.EffectiveStatus()), params.Status) {
			continue
		}
		if params.Category != "" && params.Category != "all" &&
			!strings.EqualFold(a.Category, params.Category) {
			continue
		}
		filtered = append(filtered, a)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return filtered, stats, nil
}

func (s *abstractService) ListByUser(userID uint) ([]models.Abstract, error) {
	abstracts, err := s.abstractRepo.GetByUserID(userID)
	if err != nil {
		log.Println("Failed to list user abstracts:", err)
		return nil, models.ErrorInternalServer{Message: "Failed to list abstracts"}
	}
	return abstracts, nil
}

func (s *abstractService) UpdateContent(id uint, req models.UpdateAbstractRequest, userID uint) (*models.Abstract, error) {
	abstract, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if abstract.UserID != userID {
		return nil, models.ErrorUnauthorized{Message: "You do not own this abstract"}
	}

	// Once the review has moved past pending, the owner loses edit rights.
	if abstract.EffectiveStatus() != models.StatusPending {
		return nil, models.ErrorUnauthorized{Message: "Cannot edit an abstract that has already been reviewed"}
	}

	presentationType := abstract.PresentationType
	if req.PresentationType != "" {
		presentationType = req.PresentationType
	}
	if req.AbstractContent != "" {
		if err := s.checkWordLimit(req.AbstractContent, presentationType); err != nil {
			return nil, err
		}
		abstract.AbstractContent = req.AbstractContent
	}

	if req.Title != "" {
		abstract.Title = req.Title
	}
	if req.PresenterName != "" {
		abstract.PresenterName = req.PresenterName
	}
	if req.InstitutionName != "" {
		abstract.InstitutionName = req.InstitutionName
	}
	if req.PresentationType != "" {
		abstract.PresentationType = req.PresentationType
	}
	if req.Category != "" {
		abstract.Category = req.Category
	}
	if req.CoAuthors != "" {
		abstract.CoAuthors = req.CoAuthors
	}

	if err := s.abstractRepo.Update(abstract); err != nil {
		log.Println("Failed to update abstract:", err)
		return nil, models.ErrorInternalServer{Message: "Failed to update abstract"}
	}

	return abstract, nil
}

func (s *abstractService) Delete(id uint, userID uint) error {
	abstract, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if abstract.UserID != userID {
		return models.ErrorUnauthorized{Message: "You do not own this abstract"}
	}

	if abstract.EffectiveStatus() != models.StatusPending {
		return models.ErrorUnauthorized{Message: "Cannot delete an abstract that has already been reviewed"}
	}

	if err := s.abstractRepo.Delete(id); err != nil {
		log.Println("Failed to delete abstract:", err)
		return models.ErrorInternalServer{Message: "Failed to delete abstract"}
	}
	return nil
}

func (s *abstractService) UpdateStatus(id uint, status models.AbstractStatus, comments string) (*models.Abstract, error) {
	if !models.ValidTransitionTarget(status) {
		return nil, models.ErrorValidation{
			Message: fmt.Sprintf("Invalid status %q: must be one of pending, approved, rejected", status),
		}
	}

	abstract, err := s.abstractRepo.UpdateStatus(id, status, comments)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Abstract not found"}
		}
		log.Println("Failed to update status:", err)
		return nil, models.ErrorInternalServer{Message: "Failed to update status"}
	}

	s.notifier.NotifyStatusChange(abstract)

	return abstract, nil
}

func (s *abstractService) BulkUpdateStatus(ids []uint, status models.AbstractStatus, comments string) (*models.BulkUpdateResult, error) {
	if !models.ValidTransitionTarget(status) {
		return nil, models.ErrorValidation{
			Message: fmt.Sprintf("Invalid status %q: must be one of pending, approved, rejected", status),
		}
	}
	if len(ids) == 0 {
		return nil, models.ErrorValidation{Message: "No abstract ids provided"}
	}

	result, err := s.abstractRepo.BulkUpdateStatus(ids, status, comments)
	if err != nil {
		log.Println("Bulk status update failed:", err)
		return nil, models.ErrorInternalServer{Message: "Bulk status update failed"}
	}

	for _, id := range result.Succeeded {
		if abstract, err := s.abstractRepo.GetByID(id); err == nil {
			s.notifier.NotifyStatusChange(abstract)
		}
	}

	return result, nil
}

func (s *abstractService) Statistics() (models.Statistics, error) {
	abstracts, err := s.abstractRepo.GetAll()
	if err != nil {
		log.Println("Failed to load abstracts for statistics:", err)
		return models.Statistics{}, models.ErrorInternalServer{Message: "Failed to compute statistics"}
	}
	return BuildStatistics(abstracts), nil
}

func (s *abstractService) GetFiles(abstractID uint) ([]models.UploadedFile, error) {
	if _, err := s.GetByID(abstractID); err != nil {
		return nil, err
	}
	files, err := s.abstractRepo.GetFilesByAbstractID(abstractID)
	if err != nil {
		log.Println("Failed to load files:", err)
		return nil, models.ErrorInternalServer{Message: "Failed to load files"}
	}
	return files, nil
}

func validateRequiredFields(req models.SubmitAbstractRequest) error {
	values := map[string]string{
		"title":             req.Title,
		"presenter_name":    req.PresenterName,
		"institution_name":  req.InstitutionName,
		"presentation_type": req.PresentationType,
		"category":          req.Category,
		"abstract_content":  req.AbstractContent,
	}

	var missing []string
	for _, field := range requiredSubmissionFields {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return models.ErrorValidation{
			Message:       "Missing required fields: " + strings.Join(missing, ", "),
			MissingFields: missing,
		}
	}
	return nil
}

func (s *abstractService) checkWordLimit(content, presentationType string) error {
	count := CountWords(content)
	limit := s.limits.LimitFor(presentationType)
	if count > limit {
		return models.ErrorValidation{
			Message:   fmt.Sprintf("Abstract exceeds word limit: %d words (max %d)", count, limit),
			WordCount: count,
			WordLimit: limit,
		}
	}
	return nil
}

func generateAbstractNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return fmt.Sprintf("ABST-%d-%s", time.Now().UnixMilli(), suffix)
}
