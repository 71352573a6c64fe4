package submission

import (
	"errors"
	"net/http"
	"strconv"

	"assignmenthub/dto"
	"assignmenthub/middleware"
	"assignmenthub/model"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SubmissionController(router *gin.Engine, db *gorm.DB, firestoreClient *firestore.Client, verifier middleware.TokenVerifier) {
	router.GET("/submissions", middleware.AccessTokenMiddleware(verifier), middleware.VerifyTokenUID(), func(c *gin.Context) {
		ListSubmissions(c, db)
	})
	router.GET("/submissions/:id", func(c *gin.Context) {
		GetSubmission(c, db)
	})
}

func ListSubmissions(c *gin.Context, db *gorm.DB) {
	query := db.Model(&model.Submission{})

	// Only the exact value "pending" narrows the list; anything else is
	// treated as no filter, matching the original behavior.
	if c.Query("status") == model.SubmissionStatusPending {
		query = query.Where("status = ?", model.SubmissionStatusPending)
	}
	if email := c.Query("email"); email != "" {
		query = query.Where("examinee_email = ?", email)
	}

	var submissions []model.Submission
	if err := query.Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	enriched, err := enrichSubmissions(db, submissions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, enriched)
}

func GetSubmission(c *gin.Context, db *gorm.DB) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
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

	enriched, err := enrichSubmissions(db, []model.Submission{submission})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submission"})
		return
	}

	c.JSON(http.StatusOK, enriched[0])
}

// enrichSubmissions attaches the referenced assignment's title and marks to
// each submission. Submissions whose assignment no longer exists are
// returned as-is.
func enrichSubmissions(db *gorm.DB, submissions []model.Submission) ([]dto.SubmissionResponse, error) {
	ids := make([]int, 0, len(submissions))
	seen := make(map[int]bool, len(submissions))
	for _, submission := range submissions {
		if !seen[submission.AssignmentID] {
			seen[submission.AssignmentID] = true
			ids = append(ids, submission.AssignmentID)
		}
	}

	byID := make(map[int]model.Assignment, len(ids))
	if len(ids) > 0 {
		var assignments []model.Assignment
		if err := db.Select("assignment_id", "title", "marks").
			Where("assignment_id IN ?", ids).
			Find(&assignments).Error; err != nil {
			return nil, err
		}
		for _, assignment := range assignments {
			byID[assignment.AssignmentID] = assignment
		}
	}

	enriched := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		response := dto.SubmissionResponse{Submission: submission}
		if assignment, ok := byID[submission.AssignmentID]; ok {
			response.AssignmentTitle = assignment.Title
			response.AssignmentMarks = assignment.Marks
		}
		enriched = append(enriched, response)
	}
	return enriched, nil
}
