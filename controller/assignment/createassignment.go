package assignment

import (
	"net/http"

	"assignmenthub/dto"
	"assignmenthub/middleware"
	"assignmenthub/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateAssignmentController(router *gin.Engine, db *gorm.DB, verifier middleware.TokenVerifier) {
	router.POST("/assignments", middleware.AccessTokenMiddleware(verifier), middleware.VerifyTokenUID(), func(c *gin.Context) {
		CreateAssignment(c, db)
	})
}

func CreateAssignment(c *gin.Context, db *gorm.DB) {
	var request dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	assignment := model.Assignment{
		Title:        request.Title,
		Description:  request.Description,
		Thumbnail:    request.Thumbnail,
		Difficulty:   request.Difficulty,
		Marks:        request.Marks,
		DueDate:      request.DueDate,
		CreatorEmail: request.CreatorEmail,
	}

	if err := db.Create(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Assignment created successfully",
		"assignmentId": assignment.AssignmentID,
	})
}
