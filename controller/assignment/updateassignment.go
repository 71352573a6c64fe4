package assignment

import (
	"errors"
	"net/http"
	"strconv"

	"assignmenthub/dto"
	"assignmenthub/middleware"
	"assignmenthub/model"
	"assignmenthub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func UpdateAssignmentController(router *gin.Engine, db *gorm.DB, verifier middleware.TokenVerifier) {
	router.PUT("/assignments/:id", middleware.AccessTokenMiddleware(verifier), middleware.VerifyTokenUID(), func(c *gin.Context) {
		UpdateAssignment(c, db)
	})
}

func UpdateAssignment(c *gin.Context, db *gorm.DB) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	var request dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	var assignment model.Assignment
	if err := db.Where("assignment_id = ?", id).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignment"})
		}
		return
	}

	if !services.Allowed(services.OwnerOf, assignment.CreatorEmail, c.Query("email")) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "You can only update your own posted assignments",
			"reason": services.ReasonNotOwner,
		})
		return
	}

	updates := map[string]interface{}{}
	if request.Title != nil {
		updates["title"] = *request.Title
	}
	if request.Description != nil {
		updates["description"] = *request.Description
	}
	if request.Thumbnail != nil {
		updates["thumbnail"] = *request.Thumbnail
	}
	if request.Difficulty != nil {
		updates["difficulty"] = *request.Difficulty
	}
	if request.Marks != nil {
		updates["marks"] = *request.Marks
	}
	if request.DueDate != nil {
		updates["due_date"] = *request.DueDate
	}

	if len(updates) > 0 {
		if err := db.Model(&assignment).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignment"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignment updated successfully"})
}
