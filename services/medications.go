// medications.go - Medication CRUD, ownership checked through the parent disease

package services

import (
	"context"
	"strings"

	"healthtrack-backend/database"
	"healthtrack-backend/models"

	"gorm.io/gorm"
)

type MedicationInput struct {
	DiseaseID *uint      `json:"diseaseId"`
	Name      *string    `json:"name"`
	Dosage    *string    `json:"dosage"`
	Frequency *string    `json:"frequency"`
	StartDate *Timestamp `json:"startDate"`
	EndDate   *Timestamp `json:"endDate"`
	Notes     *string    `json:"notes"`
}

func (in MedicationInput) apply(m *models.Medication) {
	if in.DiseaseID != nil {
		m.DiseaseID = *in.DiseaseID
	}
	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Dosage != nil {
		m.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Frequency != nil {
		m.Frequency = strings.TrimSpace(*in.Frequency)
	}
	if in.StartDate != nil {
		m.StartDate = in.StartDate.Ptr()
	}
	if in.EndDate != nil {
		m.EndDate = in.EndDate.Ptr()
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
}

func checkDates(m *models.Medication) error {
	if m.StartDate != nil && m.EndDate != nil && m.EndDate.Before(*m.StartDate) {
		return invalid("endDate is before startDate")
	}
	return nil
}

// ownDisease confirms the disease exists and belongs to userID.
func ownDisease(db *gorm.DB, userID string, diseaseID uint) error {
	var d models.Disease
	if err := db.Select("id").First(&d, "id = ? AND user_id = ?", diseaseID, userID).Error; err != nil {
		return notFound(err)
	}
	return nil
}

func ListMedications(ctx context.Context, userID string, diseaseID uint) ([]models.Medication, error) {
	db := database.DB.WithContext(ctx)
	if err := ownDisease(db, userID, diseaseID); err != nil {
		return nil, err
	}
	meds := []models.Medication{}
	if err := orderedMedications(db.Where("disease_id = ?", diseaseID)).Find(&meds).Error; err != nil {
		return nil, err
	}
	return meds, nil
}

func GetMedication(ctx context.Context, userID string, id uint) (*models.Medication, error) {
	db := database.DB.WithContext(ctx)
	var m models.Medication
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	if err := ownDisease(db, userID, m.DiseaseID); err != nil {
		return nil, err
	}
	return &m, nil
}

func CreateMedication(ctx context.Context, userID string, in MedicationInput) (*models.Medication, error) {
	if in.DiseaseID == nil || *in.DiseaseID == 0 {
		return nil, invalid("diseaseId is required")
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name is required")
	}
	var m models.Medication
	in.apply(&m)
	if err := checkDates(&m); err != nil {
		return nil, err
	}
	db := database.DB.WithContext(ctx)
	if err := ownDisease(db, userID, m.DiseaseID); err != nil {
		return nil, err
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func UpdateMedication(ctx context.Context, userID string, id uint, in MedicationInput) (*models.Medication, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name must not be empty")
	}
	m, err := GetMedication(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in == (MedicationInput{}) {
		return m, nil
	}
	db := database.DB.WithContext(ctx)
	if in.DiseaseID != nil && *in.DiseaseID != m.DiseaseID {
		if err := ownDisease(db, userID, *in.DiseaseID); err != nil {
			return nil, err
		}
	}
	in.apply(m)
	if err := checkDates(m); err != nil {
		return nil, err
	}
	if err := db.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func DeleteMedication(ctx context.Context, userID string, id uint) error {
	m, err := GetMedication(ctx, userID, id)
	if err != nil {
		return err
	}
	return database.DB.WithContext(ctx).Delete(&models.Medication{}, m.ID).Error
}
