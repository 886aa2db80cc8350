package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store-api/apperrors"
	"store-api/middleware"
	"store-api/models"
	"store-api/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// CreateAdmin, CreateStaff and CreateClient share the same intake with the
// role fixed by the endpoint.
func (ctl *UserController) CreateAdmin(c *gin.Context) {
	ctl.createUser(c, models.RoleAdmin, "Admin created successfully")
}

func (ctl *UserController) CreateStaff(c *gin.Context) {
	ctl.createUser(c, models.RoleStaff, "Staff created successfully")
}

func (ctl *UserController) CreateClient(c *gin.Context) {
	ctl.createUser(c, models.RoleClient, "Client created successfully")
}

func (ctl *UserController) createUser(c *gin.Context, role, successMessage string) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	user, err := ctl.users.CreateUser(c.Request.Context(), req, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": successMessage,
		"data":    user,
	})
}

// Profile returns the authenticated caller's own account.
func (ctl *UserController) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	user, err := ctl.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (ctl *UserController) GetUserByID(c *gin.Context) {
	user, err := ctl.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (ctl *UserController) GetUsersByRole(c *gin.Context) {
	users, err := ctl.users.GetUsersByRole(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (ctl *UserController) GetUsersByPhoneNumber(c *gin.Context) {
	users, err := ctl.users.GetUsersByPhone(c.Request.Context(), c.Query("phoneNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (ctl *UserController) UpdateUser(c *gin.Context) {
	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	user, err := ctl.users.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (ctl *UserController) DeleteUser(c *gin.Context) {
	if err := ctl.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
