package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoctorHandler handles doctor roster requests.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// GetDoctors handles fetching the full doctor roster.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Order("name asc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// CreateDoctorRequest represents the request body for adding a doctor.
type CreateDoctorRequest struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	Phone          string `json:"phone"`
}

// CreateDoctor handles adding a doctor to the roster (admin).
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor := models.Doctor{
		Name:           req.Name,
		Specialization: req.Specialization,
		Phone:          req.Phone,
	}

	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	utils.Created(c, "Doctor created successfully", doctor)
}

// UpdateDoctorRequest represents the request body for editing a doctor.
// The identifier is immutable; only descriptive fields change.
type UpdateDoctorRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

// UpdateDoctor handles editing a doctor's details (admin).
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != "" {
		doctor.Name = req.Name
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}

	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor updated successfully", doctor)
}
