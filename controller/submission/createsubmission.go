package submission

import (
	"errors"
	"net/http"

	"assignmenthub/dto"
	"assignmenthub/middleware"
	"assignmenthub/model"
	"assignmenthub/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateSubmissionController(router *gin.Engine, db *gorm.DB, firestoreClient *firestore.Client, verifier middleware.TokenVerifier) {
	router.POST("/submissions", middleware.AccessTokenMiddleware(verifier), middleware.VerifyTokenUID(), func(c *gin.Context) {
		CreateSubmission(c, db, firestoreClient)
	})
}

func CreateSubmission(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	var request dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	var assignment model.Assignment
	if err := db.Select("assignment_id", "creator_email").
		Where("assignment_id = ?", request.AssignmentID).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignment"})
		}
		return
	}

	if !services.Allowed(services.NotOwnerOf, assignment.CreatorEmail, request.ExamineeEmail) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "You can't submit your own assignments",
			"reason": services.ReasonSelfSubmission,
		})
		return
	}

	var count int64
	if err := db.Model(&model.Submission{}).
		Where("assignment_id = ? AND examinee_email = ?", request.AssignmentID, request.ExamineeEmail).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing submissions"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "You have already submitted this assignment",
			"reason": services.ReasonDuplicateSubmission,
		})
		return
	}

	submission := model.Submission{
		AssignmentID:  request.AssignmentID,
		ExamineeEmail: request.ExamineeEmail,
		DocLink:       request.DocLink,
		Note:          request.Note,
		Status:        model.SubmissionStatusPending,
	}

	if err := db.Create(&submission).Error; err != nil {
		// Two identical submissions can pass the existence check at the
		// same time; the unique index turns the loser into this error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"error":  "You have already submitted this assignment",
				"reason": services.ReasonDuplicateSubmission,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	services.MirrorSubmission(c.Request.Context(), firestoreClient, submission)

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Submission created successfully",
		"submissionId": submission.SubmissionID,
	})
}
