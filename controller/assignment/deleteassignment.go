package assignment

import (
	"errors"
	"net/http"
	"strconv"

	"assignmenthub/middleware"
	"assignmenthub/model"
	"assignmenthub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func DeleteAssignmentController(router *gin.Engine, db *gorm.DB, verifier middleware.TokenVerifier) {
	router.DELETE("/assignments/:id", middleware.AccessTokenMiddleware(verifier), middleware.VerifyTokenUID(), func(c *gin.Context) {
		DeleteAssignment(c, db)
	})
}

func DeleteAssignment(c *gin.Context, db *gorm.DB) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
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
			"error":  "You can only delete your own posted assignments",
			"reason": services.ReasonNotOwner,
		})
		return
	}

	if err := db.Delete(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted successfully"})
}
