package models

// Doctor represents a member of the clinic's roster. Doctors are
// reference data created through administrative actions; the record is
// never hard-deleted because appointments keep pointing at it.
type Doctor struct {
	BaseModel
	Name           string `gorm:"size:255;not null" json:"name"`
	Specialization string `gorm:"size:255" json:"specialization"`
	Phone          string `gorm:"size:30" json:"phone,omitempty"`

	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}
