package handlers

import (
	"time"

	"clinic-management-server/internal/models"
	"clinic-management-server/internal/notify"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NotificationHandler handles bulk SMS requests.
type NotificationHandler struct {
	DB       *gorm.DB
	Notifier *notify.Notifier
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB, notifier *notify.Notifier) *NotificationHandler {
	return &NotificationHandler{DB: db, Notifier: notifier}
}

// BulkSMSRequest represents the request body for a bulk send. Both
// filters are optional and combine as logical AND. The message may
// use the same placeholder tokens as the stored templates; they are
// substituted per recipient.
type BulkSMSRequest struct {
	DoctorID string `json:"doctorId" binding:"omitempty,uuid"`
	Date     string `json:"date" binding:"omitempty"` // yyyy-mm-dd
	Message  string `json:"message" binding:"required"`
}

// BulkSMSResponse reports the aggregate outcome of a bulk send.
type BulkSMSResponse struct {
	Matched      int `json:"matched"`
	SuccessCount int `json:"successCount"`
	FailCount    int `json:"failCount"`
}

// SendBulkSMS handles sending a personalized message to every patient
// whose appointment matches the filters. Individual failures never
// abort the run; preconditions (empty match, empty message) block it
// entirely before any dispatch.
func (h *NotificationHandler) SendBulkSMS(c *gin.Context) {
	var req BulkSMSRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var day *time.Time
	if req.Date != "" {
		parsed, err := time.ParseInLocation(DateParamLayout, req.Date, time.Local)
		if err != nil {
			utils.BadRequest(c, "Invalid date filter, expected yyyy-mm-dd")
			return
		}
		day = &parsed
	}

	var appointments []models.Appointment
	if err := h.DB.Preload("Doctor").Order("date asc, time asc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	filtered := notify.FilterAppointments(appointments, req.DoctorID, day)

	result, err := h.Notifier.SendBulk(c.Request.Context(), filtered, req.Message)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, "Bulk SMS finished", BulkSMSResponse{
		Matched:      len(filtered),
		SuccessCount: result.SuccessCount,
		FailCount:    result.FailCount,
	})
}
