package assignment

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"assignmenthub/middleware"
	"assignmenthub/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AssignmentController(router *gin.Engine, db *gorm.DB, verifier middleware.TokenVerifier) {
	router.GET("/assignments", func(c *gin.Context) {
		ListAssignments(c, db)
	})
	router.GET("/assignments/random", func(c *gin.Context) {
		RandomAssignments(c, db)
	})
	router.GET("/assignments/:id", func(c *gin.Context) {
		GetAssignment(c, db)
	})
	router.GET("/myAssignments", middleware.AccessTokenMiddleware(verifier), middleware.VerifyTokenUID(), func(c *gin.Context) {
		MyAssignments(c, db)
	})
}

func ListAssignments(c *gin.Context, db *gorm.DB) {
	query := db.Model(&model.Assignment{})

	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var assignments []model.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, assignments)
}

func RandomAssignments(c *gin.Context, db *gorm.DB) {
	var assignments []model.Assignment
	if err := db.Order(randomOrder(db)).Limit(6).Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// randomOrder picks the dialect's random function; MySQL spells it RAND(),
// SQLite (used by the tests) spells it RANDOM().
func randomOrder(db *gorm.DB) string {
	if db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}

func MyAssignments(c *gin.Context, db *gorm.DB) {
	var assignments []model.Assignment
	if err := db.Where("creator_email = ?", c.Query("email")).Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, assignments)
}

func GetAssignment(c *gin.Context, db *gorm.DB) {
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

	c.JSON(http.StatusOK, assignment)
}
