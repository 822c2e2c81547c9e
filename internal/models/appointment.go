package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a scheduled clinic visit. Patient contact
// details are embedded rather than modelled as a separate aggregate:
// the phone number is the primary notification channel and is required
// at booking time.
type Appointment struct {
	BaseModel
	DoctorID       string            `gorm:"size:36;index" json:"doctorId"`
	PatientName    string            `gorm:"size:255;not null" json:"patientName"`
	PatientPhone   string            `gorm:"size:30;not null" json:"patientPhone"`
	PatientEmail   string            `gorm:"size:255" json:"patientEmail,omitempty"`
	PatientAddress string            `gorm:"size:255" json:"patientAddress,omitempty"`
	Date           time.Time         `gorm:"index" json:"date"`
	Time           string            `gorm:"size:20" json:"time"` // display time, e.g. "09:00 AM"
	Status         AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Notes          string            `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor"`
}
