// disease.go - Diseases and the medications prescribed for them

package models

import "time"

type Disease struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      string       `gorm:"index;not null;size:64" json:"userId"`
	Name        string       `gorm:"not null" json:"name"`
	DiagnosedAt *time.Time   `json:"diagnosedAt"`
	IsChronic   *bool        `json:"isChronic"`
	IsActive    *bool        `json:"isActive"`
	Severity    string       `json:"severity"`
	Notes       string       `json:"notes"`
	Medications []Medication `gorm:"constraint:OnDelete:CASCADE;" json:"medications"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type Medication struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	DiseaseID uint       `gorm:"index;not null" json:"diseaseId"`
	Name      string     `gorm:"not null" json:"name"`
	Dosage    string     `json:"dosage"`
	Frequency string     `json:"frequency"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
