package handlers

import (
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler handles staff account management (admin operations).
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateUserRequest represents the request body for creating a staff
// account by an admin.
type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=ADMIN RECEPTIONIST"`
}

// CreateUser handles creating a new staff account (admin).
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      models.Role(req.Role),
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	utils.Created(c, "User created successfully", user.Sanitize())
}

// GetUsers handles fetching all staff accounts (admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitizedUsers := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitizedUsers[i] = u.Sanitize()
	}

	utils.Success(c, "Users fetched successfully", sanitizedUsers)
}

// GetUserByID handles fetching a single staff account by ID (admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// UpdateUserRequest represents the request body for updating a staff
// account by an admin.
type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"` // Allow email update, ensure uniqueness
	Role      string `json:"role,omitempty" binding:"omitempty,oneof=ADMIN RECEPTIONIST"`
	// Password should be updated via a separate "change password" endpoint for security
}

// UpdateUser handles updating a staff account by ID (admin).
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil { // Use ShouldBindJSON for partial updates
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" && req.Email != user.Email {
		// Check if new email is already taken
		var existingUser models.User
		if err := h.DB.Where("email = ? AND id != ?", req.Email, user.ID).First(&existingUser).Error; err == nil {
			utils.BadRequest(c, "New email is already in use")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = models.Role(req.Role)
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}

	utils.Success(c, "User updated successfully", user.Sanitize())
}

// DeleteUser handles deleting a staff account by ID (admin).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}

	utils.Success(c, "User deleted successfully", nil)
}
