package submission

import (
	"errors"
	"net/http"
	"strconv"

	"assignmenthub/dto"
	"assignmenthub/middleware"
	"assignmenthub/model"
	"assignmenthub/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func EvaluateSubmissionController(router *gin.Engine, db *gorm.DB, firestoreClient *firestore.Client, verifier middleware.TokenVerifier) {
	router.PATCH("/submissions/:id", middleware.AccessTokenMiddleware(verifier), middleware.VerifyTokenUID(), func(c *gin.Context) {
		EvaluateSubmission(c, db, firestoreClient)
	})
}

func EvaluateSubmission(c *gin.Context, db *gorm.DB, firestoreClient *firestore.Client) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var request dto.EvaluateSubmissionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	var submission model.Submission
	if err := db.Where("submission_id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submission"})
		}
		return
	}

	if submission.Status != model.SubmissionStatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "This assignment has already been evaluated",
			"reason": services.ReasonAlreadyEvaluated,
		})
		return
	}

	if !services.Allowed(services.NotOwnerOf, submission.ExamineeEmail, c.Query("email")) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "You can't evaluate your own assignment",
			"reason": services.ReasonSelfEvaluation,
		})
		return
	}

	updates := map[string]interface{}{
		"status":         model.SubmissionStatusCompleted,
		"obtained_marks": request.ObtainedMarks,
		"feedback":       request.Feedback,
	}
	if err := db.Model(&submission).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate submission"})
		return
	}

	submission.Status = model.SubmissionStatusCompleted
	submission.ObtainedMarks = request.ObtainedMarks
	submission.Feedback = request.Feedback
	services.MirrorSubmission(c.Request.Context(), firestoreClient, submission)

	c.JSON(http.StatusOK, gin.H{"message": "Submission evaluated successfully"})
}
