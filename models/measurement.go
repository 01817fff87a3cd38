// measurement.go - Body measurement records

package models

import "time"

// Measurement is one body measurement entry. Every metric is optional.
type Measurement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index;not null;size:64" json:"userId"`
	Date        time.Time `gorm:"index" json:"date"`
	Weight      *float64  `json:"weight"`                         // kg
	Height      *float64  `json:"height"`                         // cm
	BMI         *float64  `json:"bmi"`                            // derived from weight/height
	BMICategory string    `gorm:"-" json:"bmiCategory,omitempty"` // derived on read, not stored
	BodyFat     *float64  `json:"bodyFat"`                        // percent
	Systolic    *int      `json:"systolic"`                       // mmHg
	Diastolic   *int      `json:"diastolic"`                      // mmHg
	HeartRate   *int      `json:"heartRate"`                      // bpm
	BloodSugar  *float64  `json:"bloodSugar"`                     // mg/dL
	Temperature *float64  `json:"temperature"`                    // Celsius
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
