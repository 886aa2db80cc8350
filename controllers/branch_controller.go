package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"store-api/apperrors"
	"store-api/services"
)

type BranchController struct {
	branches *services.BranchService
}

func NewBranchController(branches *services.BranchService) *BranchController {
	return &BranchController{branches: branches}
}

type staffAssignmentRequest struct {
	StaffID  string `json:"staffId" binding:"required"`
	BranchID string `json:"branchId" binding:"required"`
}

func (ctl *BranchController) GetBranches(c *gin.Context) {
	page, err := parsePositiveInt(c, "pageNum", 1)
	if err != nil {
		respondError(c, err)
		return
	}
	pageSize, err := parsePositiveInt(c, "pageSize", 10)
	if err != nil {
		respondError(c, err)
		return
	}

	branches, total, err := ctl.branches.ListBranches(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      total,
		"totalPages": int(math.Ceil(float64(total) / float64(pageSize))),
		"branches":   branches,
	})
}

func (ctl *BranchController) GetBranchByID(c *gin.Context) {
	branch, err := ctl.branches.GetBranch(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, branch)
}

func (ctl *BranchController) CreateBranch(c *gin.Context) {
	var req services.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	branch, err := ctl.branches.CreateBranch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "New branch has been created successfully",
		"data":    branch,
	})
}

func (ctl *BranchController) UpdateBranch(c *gin.Context) {
	var updates bson.M
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	branch, err := ctl.branches.UpdateBranch(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Branch updated successfully",
		"data":    branch,
	})
}

func (ctl *BranchController) DeleteBranch(c *gin.Context) {
	if err := ctl.branches.DeleteBranch(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted successfully"})
}

func (ctl *BranchController) AddStaff(c *gin.Context) {
	var req staffAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	if err := ctl.branches.AddStaff(c.Request.Context(), req.BranchID, req.StaffID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff has been added successfully"})
}

func (ctl *BranchController) RemoveStaff(c *gin.Context) {
	var req staffAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(err.Error()))
		return
	}

	if err := ctl.branches.RemoveStaff(c.Request.Context(), req.BranchID, req.StaffID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff has been removed successfully"})
}
