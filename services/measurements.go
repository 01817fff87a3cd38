// measurements.go - Body measurement CRUD scoped to one user

package services

import (
	"context"
	"time"

	"healthtrack-backend/database"
	"healthtrack-backend/models"
)

// MeasurementInput is used for both create and partial update; nil fields are
// left untouched on update.
type MeasurementInput struct {
	Date        *Timestamp `json:"date"`
	Weight      *float64   `json:"weight"`
	Height      *float64   `json:"height"`
	BodyFat     *float64   `json:"bodyFat"`
	Systolic    *int       `json:"systolic"`
	Diastolic   *int       `json:"diastolic"`
	HeartRate   *int       `json:"heartRate"`
	BloodSugar  *float64   `json:"bloodSugar"`
	Temperature *float64   `json:"temperature"`
	Notes       *string    `json:"notes"`
}

// MeasurementFilter narrows ListMeasurements. Zero values mean no bound.
type MeasurementFilter struct {
	From   *time.Time // inclusive
	To     *time.Time // inclusive
	Before *time.Time // exclusive, used for whole-day upper bounds
	Limit  int
}

func (in MeasurementInput) validate() error {
	for name, v := range map[string]*float64{
		"weight": in.Weight, "height": in.Height, "bodyFat": in.BodyFat,
		"bloodSugar": in.BloodSugar, "temperature": in.Temperature,
	} {
		if v != nil && *v < 0 {
			return invalid("%s must not be negative", name)
		}
	}
	for name, v := range map[string]*int{
		"systolic": in.Systolic, "diastolic": in.Diastolic, "heartRate": in.HeartRate,
	} {
		if v != nil && *v < 0 {
			return invalid("%s must not be negative", name)
		}
	}
	if in.BodyFat != nil && *in.BodyFat > 100 {
		return invalid("bodyFat is a percentage")
	}
	return nil
}

func (in MeasurementInput) apply(m *models.Measurement) {
	if in.Date != nil {
		m.Date = in.Date.Time.UTC()
	}
	if in.Weight != nil {
		m.Weight = in.Weight
	}
	if in.Height != nil {
		m.Height = in.Height
	}
	if in.BodyFat != nil {
		m.BodyFat = in.BodyFat
	}
	if in.Systolic != nil {
		m.Systolic = in.Systolic
	}
	if in.Diastolic != nil {
		m.Diastolic = in.Diastolic
	}
	if in.HeartRate != nil {
		m.HeartRate = in.HeartRate
	}
	if in.BloodSugar != nil {
		m.BloodSugar = in.BloodSugar
	}
	if in.Temperature != nil {
		m.Temperature = in.Temperature
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
}

// deriveBMI recomputes BMI from weight and height, clearing it when either is
// missing or implausible so the stored value never disagrees with them.
func deriveBMI(m *models.Measurement) {
	m.BMI = nil
	if m.Weight == nil || m.Height == nil {
		return
	}
	if bmi, err := CalculateBMI(*m.Height, *m.Weight); err == nil {
		m.BMI = &bmi
	}
}

func withCategory(m *models.Measurement) {
	m.BMICategory = ""
	if m.BMI != nil {
		m.BMICategory = BMICategory(*m.BMI)
	}
}

func ListMeasurements(ctx context.Context, userID string, f MeasurementFilter) ([]models.Measurement, error) {
	q := database.DB.WithContext(ctx).Where("user_id = ?", userID)
	if f.From != nil {
		q = q.Where("date >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("date <= ?", f.To.UTC())
	}
	if f.Before != nil {
		q = q.Where("date < ?", f.Before.UTC())
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	measurements := []models.Measurement{}
	if err := q.Order("date desc").Order("id desc").Find(&measurements).Error; err != nil {
		return nil, err
	}
	for i := range measurements {
		withCategory(&measurements[i])
	}
	return measurements, nil
}

func GetMeasurement(ctx context.Context, userID string, id uint) (*models.Measurement, error) {
	var m models.Measurement
	if err := database.DB.WithContext(ctx).First(&m, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, notFound(err)
	}
	withCategory(&m)
	return &m, nil
}

func LatestMeasurement(ctx context.Context, userID string) (*models.Measurement, error) {
	var m models.Measurement
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc").Order("id desc").
		Take(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	withCategory(&m)
	return &m, nil
}

func CreateMeasurement(ctx context.Context, userID string, in MeasurementInput) (*models.Measurement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	m := models.Measurement{UserID: userID, Date: time.Now().UTC()}
	in.apply(&m)
	deriveBMI(&m)
	if err := database.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	withCategory(&m)
	return &m, nil
}

func UpdateMeasurement(ctx context.Context, userID string, id uint, in MeasurementInput) (*models.Measurement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	m, err := GetMeasurement(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in == (MeasurementInput{}) {
		return m, nil
	}
	in.apply(m)
	deriveBMI(m)
	if err := database.DB.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	withCategory(m)
	return m, nil
}

func DeleteMeasurement(ctx context.Context, userID string, id uint) error {
	res := database.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Measurement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
