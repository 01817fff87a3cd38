// diseases.go - Disease CRUD; medications hang off a disease

package services

import (
	"context"
	"strings"

	"healthtrack-backend/database"
	"healthtrack-backend/models"

	"gorm.io/gorm"
)

type DiseaseInput struct {
	Name        *string    `json:"name"`
	DiagnosedAt *Timestamp `json:"diagnosedAt"`
	IsChronic   *bool      `json:"isChronic"`
	IsActive    *bool      `json:"isActive"`
	Severity    *string    `json:"severity"`
	Notes       *string    `json:"notes"`
}

func (in DiseaseInput) apply(d *models.Disease) {
	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.DiagnosedAt != nil {
		d.DiagnosedAt = in.DiagnosedAt.Ptr()
	}
	if in.IsChronic != nil {
		d.IsChronic = in.IsChronic
	}
	if in.IsActive != nil {
		d.IsActive = in.IsActive
	}
	if in.Severity != nil {
		d.Severity = strings.TrimSpace(*in.Severity)
	}
	if in.Notes != nil {
		d.Notes = *in.Notes
	}
}

func orderedMedications(db *gorm.DB) *gorm.DB {
	return db.Order("created_at asc").Order("id asc")
}

func ListDiseases(ctx context.Context, userID string) ([]models.Disease, error) {
	diseases := []models.Disease{}
	err := database.DB.WithContext(ctx).
		Preload("Medications", orderedMedications).
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id desc").
		Find(&diseases).Error
	if err != nil {
		return nil, err
	}
	return diseases, nil
}

func GetDisease(ctx context.Context, userID string, id uint) (*models.Disease, error) {
	var d models.Disease
	err := database.DB.WithContext(ctx).
		Preload("Medications", orderedMedications).
		First(&d, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func CreateDisease(ctx context.Context, userID string, in DiseaseInput) (*models.Disease, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name is required")
	}
	d := models.Disease{UserID: userID}
	in.apply(&d)
	if err := database.DB.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, err
	}
	d.Medications = []models.Medication{}
	return &d, nil
}

func UpdateDisease(ctx context.Context, userID string, id uint, in DiseaseInput) (*models.Disease, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name must not be empty")
	}
	d, err := GetDisease(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in == (DiseaseInput{}) {
		return d, nil
	}
	in.apply(d)
	// Omit associations so Save does not upsert the preloaded medications.
	if err := database.DB.WithContext(ctx).Omit("Medications").Save(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDisease removes the disease and its medications in one transaction.
func DeleteDisease(ctx context.Context, userID string, id uint) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Disease
		if err := tx.Select("id").First(&d, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("disease_id = ?", d.ID).Delete(&models.Medication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Disease{}, d.ID).Error
	})
}
