package repositories

import (
	"time"

	"abstract-portal/models"

	"gorm.io/gorm"
)

type AbstractRepository interface {
	Create(abstract *models.Abstract) error
	GetByID(id uint) (*models.Abstract, error)
	GetAll() ([]models.Abstract, error)
	GetByUserID(userID uint) ([]models.Abstract, error)
	Update(abstract *models.Abstract) error
	UpdateStatus(id uint, status models.AbstractStatus, comments string) (*models.Abstract, error)
	BulkUpdateStatus(ids []uint, status models.AbstractStatus, comments string) (*models.BulkUpdateResult, error)
	Delete(id uint) error
	SaveUploadedFile(file *models.UploadedFile) error
	GetFilesByAbstractID(abstractID uint) ([]models.UploadedFile, error)
}

type abstractRepository struct {
	db *gorm.DB
}

func NewAbstractRepository(db *gorm.DB) AbstractRepository {
	return &abstractRepository{db: db}
}

func (r *abstractRepository) Create(abstract *models.Abstract) error {
	return r.db.Create(abstract).Error
}

func (r *abstractRepository) GetByID(id uint) (*models.Abstract, error) {
	var abstract models.Abstract
	err := r.db.Preload("User").
		Preload("Files").
		First(&abstract, id).Error
	return &abstract, err
}

func (r *abstractRepository) GetAll() ([]models.Abstract, error) {
	var abstracts []models.Abstract
	err := r.db.Preload("User").
		Preload("Files").
		Order("submission_date desc").
		Find(&abstracts).Error
	return abstracts, err
}

func (r *abstractRepository) GetByUserID(userID uint) ([]models.Abstract, error) {
	var abstracts []models.Abstract
	err := r.db.Where("user_id = ?", userID).
		Preload("Files").
		Order("submission_date desc").
		Find(&abstracts).Error
	return abstracts, err
}

func (r *abstractRepository) Update(abstract *models.Abstract) error {
	return r.db.Save(abstract).Error
}

func (r *abstractRepository) UpdateStatus(id uint, status models.AbstractStatus, comments string) (*models.Abstract, error) {
	res := r.db.Model(&models.Abstract{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":            status,
			"reviewer_comments": comments,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// BulkUpdateStatus applies one status to many abstracts in a single
// transaction. Unknown ids are reported in Failed without aborting the
// batch; a database error rolls back every row.
func (r *abstractRepository) BulkUpdateStatus(ids []uint, status models.AbstractStatus, comments string) (*models.BulkUpdateResult, error) {
	result := &models.BulkUpdateResult{
		Succeeded: []uint{},
		Failed:    []uint{},
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, id := range ids {
			res := tx.Model(&models.Abstract{}).
				Where("id = ?", id).
				Updates(map[string]interface{}{
					"status":            status,
					"reviewer_comments": comments,
					"updated_at":        now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				result.Failed = append(result.Failed, id)
			} else {
				result.Succeeded = append(result.Succeeded, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.SucceededCount = len(result.Succeeded)
	result.FailedCount = len(result.Failed)
	return result, nil
}

func (r *abstractRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("abstract_id = ?", id).Delete(&models.UploadedFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Abstract{}, id).Error
	})
}

func (r *abstractRepository) SaveUploadedFile(file *models.UploadedFile) error {
	return r.db.Create(file).Error
}

func (r *abstractRepository) GetFilesByAbstractID(abstractID uint) ([]models.UploadedFile, error) {
	var files []models.UploadedFile
	err := r.db.Where("abstract_id = ?", abstractID).Find(&files).Error
	return files, err
}
