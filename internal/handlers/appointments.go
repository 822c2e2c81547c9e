package handlers

import (
	"time"

	"clinic-management-server/internal/models"
	"clinic-management-server/internal/notify"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateParamLayout is the wire format for appointment dates.
const DateParamLayout = "2006-01-02"

// AppointmentHandler handles appointment booking and lifecycle requests.
type AppointmentHandler struct {
	DB       *gorm.DB
	Notifier *notify.Notifier
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, notifier *notify.Notifier) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Notifier: notifier}
}

// AppointmentResponse pairs an appointment with the outcome of the
// notification attempt coupled to the action. A failed or skipped SMS
// is a secondary warning; the primary action already succeeded.
type AppointmentResponse struct {
	Appointment models.Appointment `json:"appointment"`
	SMSSent     bool               `json:"smsSent"`
	SMSNote     string             `json:"smsNote,omitempty"`
}

func notificationResponse(appt models.Appointment, outcome notify.Outcome) AppointmentResponse {
	resp := AppointmentResponse{Appointment: appt, SMSSent: outcome.Sent}
	if outcome.SkipReason != "" {
		resp.SMSNote = outcome.SkipReason
	} else if outcome.Err != nil {
		resp.SMSNote = "SMS dispatch failed: " + outcome.Err.Error()
	}
	return resp
}

// CreateAppointmentRequest represents the request body for booking an
// appointment. Patient contact details are captured inline.
type CreateAppointmentRequest struct {
	DoctorID       string `json:"doctorId" binding:"required,uuid"`
	PatientName    string `json:"patientName" binding:"required"`
	PatientPhone   string `json:"patientPhone" binding:"required"`
	PatientEmail   string `json:"patientEmail" binding:"omitempty,email"`
	PatientAddress string `json:"patientAddress"`
	Date           string `json:"date" binding:"required"` // yyyy-mm-dd
	Time           string `json:"time" binding:"required"` // display time, e.g. "09:00 AM"
	Notes          string `json:"notes"`
}

// CreateAppointment handles booking a new appointment. The booking is
// always created with status pending, and a confirmation SMS is
// attempted immediately so the patient hears back without waiting for
// a later confirm action.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// Parse in Local so the stored day matches what the MySQL driver
	// (loc=Local in the DSN) hands back on reads.
	date, err := time.ParseInLocation(DateParamLayout, req.Date, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid date format, expected yyyy-mm-dd")
		return
	}

	// Verify the chosen doctor exists; a stale selection is a hard stop.
	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	appointment := models.Appointment{
		DoctorID:       req.DoctorID,
		PatientName:    req.PatientName,
		PatientPhone:   req.PatientPhone,
		PatientEmail:   req.PatientEmail,
		PatientAddress: req.PatientAddress,
		Date:           date,
		Time:           req.Time,
		Status:         models.StatusPending,
		Notes:          req.Notes,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}
	appointment.Doctor = doctor

	// The appointment stands regardless of how the SMS attempt goes.
	outcome := h.Notifier.Notify(c.Request.Context(), appointment, models.TemplateConfirmation)

	utils.Created(c, "Appointment created successfully", notificationResponse(appointment, outcome))
}

// GetAppointments handles fetching appointments, optionally narrowed
// by doctor and calendar day. The same filtering feeds the bulk
// notification preview in the client.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if err := h.DB.Preload("Doctor").Order("date asc, time asc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	doctorID := c.Query("doctorId")
	var day *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(DateParamLayout, raw, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid date filter, expected yyyy-mm-dd")
			return
		}
		day = &parsed
	}

	filtered := notify.FilterAppointments(appointments, doctorID, day)
	utils.Success(c, "Appointments fetched successfully", filtered)
}

// GetAppointmentByID handles fetching a single appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Doctor").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentStatusRequest represents the request body for
// changing an appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed cancelled"`
	Notes  string                   `json:"notes"` // Optional notes for status change (e.g., cancellation reason)
}

// UpdateAppointmentStatus handles moving an appointment through its
// lifecycle. The new status is persisted first; the coupled
// notification is attempted afterwards and its failure reported as a
// partial outcome, never rolled back.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Doctor").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !notify.ValidTransition(appointment.Status, req.Status) {
		utils.Conflict(c, "Cannot change status from "+string(appointment.Status)+" to "+string(req.Status))
		return
	}

	appointment.Status = req.Status
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	outcome := h.Notifier.StatusChanged(c.Request.Context(), appointment, req.Status)

	utils.Success(c, "Appointment status updated successfully", notificationResponse(appointment, outcome))
}

// SendReminder handles the reminder side-channel action, available
// only while an appointment is confirmed. Unlike status changes, the
// SMS is the whole action here, so a skip or failure is an error.
func (h *AppointmentHandler) SendReminder(c *gin.Context) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Doctor").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !notify.CanRemind(appointment.Status) {
		utils.Conflict(c, "Reminders can only be sent for confirmed appointments")
		return
	}

	outcome := h.Notifier.Remind(c.Request.Context(), appointment)
	if outcome.SkipReason != "" {
		utils.BadRequest(c, "Reminder not sent: "+outcome.SkipReason)
		return
	}
	if outcome.Err != nil {
		utils.InternalServerError(c, "Failed to send reminder SMS: "+outcome.Err.Error())
		return
	}

	utils.Success(c, "Reminder SMS sent successfully", notificationResponse(appointment, outcome))
}
