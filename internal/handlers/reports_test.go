package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-server/internal/models"
)

func TestBuildPhoneListCSV(t *testing.T) {
	appointments := []models.Appointment{
		{
			PatientName:  "Rafiq Islam",
			PatientPhone: "+8801712345678",
			Date:         time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			Time:         "09:00 AM",
			Doctor:       models.Doctor{Name: "Dr. Abdul Rahman", Specialization: "Cardiologist"},
		},
		{
			PatientName:  "Khan, Karim", // comma must be quoted
			PatientPhone: "+8801634567890",
			Date:         time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC),
			Time:         "10:30 AM",
			Doctor:       models.Doctor{Name: "Dr. Fatima Khan", Specialization: "Neurologist"},
		},
	}

	csv := BuildPhoneListCSV(appointments)
	lines := strings.Split(csv, "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "Phone Number,Patient Name,Appointment Date,Appointment Time,Doctor,Specialization", lines[0])
	assert.Equal(t, "+8801712345678,Rafiq Islam,2024-01-15,09:00 AM,Dr. Abdul Rahman,Cardiologist", lines[1])
	assert.Equal(t, `+8801634567890,"Khan, Karim",2024-01-16,10:30 AM,Dr. Fatima Khan,Neurologist`, lines[2])
}

func TestBuildPhoneListCSVMissingDoctor(t *testing.T) {
	appointments := []models.Appointment{
		{
			PatientName:  "Sadia Rahman",
			PatientPhone: "+8801898765432",
			Date:         time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			Time:         "11:30 AM",
		},
	}

	csv := BuildPhoneListCSV(appointments)
	assert.Contains(t, csv, "N/A,N/A")
}
