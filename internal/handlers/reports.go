package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler handles data export requests.
type ReportHandler struct {
	DB *gorm.DB
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// phoneListHeaders are the CSV columns of the patient phone list, in
// export order.
var phoneListHeaders = []string{
	"Phone Number",
	"Patient Name",
	"Appointment Date",
	"Appointment Time",
	"Doctor",
	"Specialization",
}

// DownloadPhoneList handles exporting patient contact details as CSV,
// filtered by month/year and name substrings (admin). One row per
// matching appointment.
func (h *ReportHandler) DownloadPhoneList(c *gin.Context) {
	query := h.DB.Joins("Doctor")

	if patientName := c.Query("patientName"); patientName != "" {
		query = query.Where("patient_name LIKE ?", "%"+patientName+"%")
	}
	if doctorName := c.Query("doctorName"); doctorName != "" {
		query = query.Where("Doctor.name LIKE ?", "%"+doctorName+"%")
	}

	monthParam := c.Query("month")
	yearParam := c.DefaultQuery("year", strconv.Itoa(time.Now().Year()))

	year, err := strconv.Atoi(yearParam)
	if err != nil {
		utils.BadRequest(c, "Invalid year filter")
		return
	}

	fileName := fmt.Sprintf("patient_appointments_%d.csv", year)
	if monthParam != "" {
		month, err := strconv.Atoi(monthParam)
		if err != nil || month < 1 || month > 12 {
			utils.BadRequest(c, "Invalid month filter, expected 1-12")
			return
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(0, 1, 0))
		fileName = fmt.Sprintf("patient_appointments_%s_%d.csv", start.Month(), year)
	} else {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(1, 0, 0))
	}

	var appointments []models.Appointment
	if err := query.Order("date asc, time asc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	if len(appointments) == 0 {
		utils.NotFound(c, "No appointments found with the selected filters")
		return
	}

	csv := BuildPhoneListCSV(appointments)
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(200, "text/csv; charset=utf-8", []byte(csv))
}

// BuildPhoneListCSV renders appointments as comma-delimited text with
// a header row. Fields containing commas are wrapped in quotes.
func BuildPhoneListCSV(appointments []models.Appointment) string {
	var b strings.Builder
	b.WriteString(strings.Join(phoneListHeaders, ","))

	for _, appt := range appointments {
		doctorName := "N/A"
		specialization := "N/A"
		if appt.Doctor.Name != "" {
			doctorName = appt.Doctor.Name
			specialization = appt.Doctor.Specialization
		}

		fields := []string{
			appt.PatientPhone,
			appt.PatientName,
			appt.Date.Format(DateParamLayout),
			appt.Time,
			doctorName,
			specialization,
		}
		b.WriteByte('\n')
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvField(field))
		}
	}

	return b.String()
}

func csvField(value string) string {
	if strings.Contains(value, ",") {
		return `"` + value + `"`
	}
	return value
}
