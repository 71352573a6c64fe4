package submission

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"assignmenthub/middleware"
	"assignmenthub/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET_KEY", "test-secret")
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.Assignment{}, &model.Submission{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	verifier := middleware.HMACVerifier{}
	SubmissionController(router, db, nil, verifier)
	CreateSubmissionController(router, db, nil, verifier)
	EvaluateSubmissionController(router, db, nil, verifier)
	return router
}

func authToken(t *testing.T, uid, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"uid":   uid,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doRequest(t *testing.T, router *gin.Engine, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	request := httptest.NewRequest(method, target, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func seedAssignment(t *testing.T, db *gorm.DB, title, creatorEmail string, marks float64) model.Assignment {
	t.Helper()
	assignment := model.Assignment{Title: title, CreatorEmail: creatorEmail, Marks: marks}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}
	return assignment
}

func seedSubmission(t *testing.T, db *gorm.DB, assignmentID int, examineeEmail, status string) model.Submission {
	t.Helper()
	submission := model.Submission{
		AssignmentID:  assignmentID,
		ExamineeEmail: examineeEmail,
		Status:        status,
	}
	if err := db.Create(&submission).Error; err != nil {
		t.Fatalf("failed to seed submission: %v", err)
	}
	return submission
}

func decodeObject(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var object map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &object); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
	return object
}

func decodeList(t *testing.T, recorder *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var list []map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
	return list
}

func TestCreateSubmission(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)
	assignment := seedAssignment(t, db, "Algebra", "a@x.com", 100)
	token := authToken(t, "u2", "b@x.com")

	recorder := doRequest(t, router, http.MethodPost, "/submissions?uid=u2", token, map[string]interface{}{
		"assignmentId":   assignment.AssignmentID,
		"examinee_email": "b@x.com",
		"doc_link":       "https://docs.example.com/b",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var stored model.Submission
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("expected the submission to be stored: %v", err)
	}
	if stored.Status != model.SubmissionStatusPending {
		t.Errorf("expected status pending, got %q", stored.Status)
	}
}

func TestCreateSubmissionRequiresAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)
	assignment := seedAssignment(t, db, "Algebra", "a@x.com", 100)
	body := map[string]interface{}{
		"assignmentId":   assignment.AssignmentID,
		"examinee_email": "b@x.com",
	}

	recorder := doRequest(t, router, http.MethodPost, "/submissions?uid=u2", "", body)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", recorder.Code)
	}

	token := authToken(t, "u2", "b@x.com")
	recorder = doRequest(t, router, http.MethodPost, "/submissions?uid=u9", token, body)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on uid mismatch, got %d", recorder.Code)
	}

	var count int64
	db.Model(&model.Submission{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no submissions after rejected requests, got %d", count)
	}
}

func TestCreateSubmissionForOwnAssignment(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)
	assignment := seedAssignment(t, db, "Algebra", "a@x.com", 100)
	token := authToken(t, "u1", "a@x.com")

	recorder := doRequest(t, router, http.MethodPost, "/submissions?uid=u1", token, map[string]interface{}{
		"assignmentId":   assignment.AssignmentID,
		"examinee_email": "a@x.com",
	})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
	if object := decodeObject(t, recorder); object["reason"] != "self_submission" {
		t.Errorf("expected reason self_submission, got %v", object["reason"])
	}

	var count int64
	db.Model(&model.Submission{}).Count(&count)
	if count != 0 {
		t.Fatalf("self-submission was stored")
	}
}

func TestCreateSubmissionDuplicate(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)
	assignment := seedAssignment(t, db, "Algebra", "a@x.com", 100)
	token := authToken(t, "u2", "b@x.com")
	body := map[string]interface{}{
		"assignmentId":   assignment.AssignmentID,
		"examinee_email": "b@x.com",
	}

	recorder := doRequest(t, router, http.MethodPost, "/submissions?uid=u2", token, body)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("first submission: expected 201, got %d", recorder.Code)
	}

	recorder = doRequest(t, router, http.MethodPost, "/submissions?uid=u2", token, body)
	if recorder.Code != http.StatusConflict {
		t.Fatalf("second submission: expected 409, got %d", recorder.Code)
	}
	if object := decodeObject(t, recorder); object["reason"] != "duplicate_submission" {
		t.Errorf("expected reason duplicate_submission, got %v", object["reason"])
	}

	var count int64
	db.Model(&model.Submission{}).
		Where("assignment_id = ? AND examinee_email = ?", assignment.AssignmentID, "b@x.com").
		Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one submission for the pair, got %d", count)
	}
}

func TestCreateSubmissionAssignmentNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)
	token := authToken(t, "u2", "b@x.com")

	recorder := doRequest(t, router, http.MethodPost, "/submissions?uid=u2", token, map[string]interface{}{
		"assignmentId":   999,
		"examinee_email": "b@x.com",
	})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}

func TestEvaluateSubmission(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)
	assignment := seedAssignment(t, db, "Algebra", "a@x.com", 100)
	submission := seedSubmission(t, db, assignment.AssignmentID, "b@x.com", model.SubmissionStatusPending)
	token := authToken(t, "u1", "a@x.com")
	target := "/submissions/" + strconv.Itoa(submission.SubmissionID) + "?uid=u1&email=a@x.com"

	recorder := doRequest(t, router, http.MethodPatch, target, token, map[string]interface{}{
		"obtainedMarks": 85,
		"feedback":      "Well done",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var stored model.Submission
	db.First(&stored, submission.SubmissionID)
	if stored.Status != model.SubmissionStatusCompleted {
		t.Errorf("expected status completed, got %q", stored.Status)
	}
	if stored.ObtainedMarks != 85 || stored.Feedback != "Well done" {
		t.Errorf("evaluation not recorded: %+v", stored)
	}

	// A second evaluation must be refused and leave the first untouched.
	recorder = doRequest(t, router, http.MethodPatch, target, token, map[string]interface{}{
		"obtainedMarks": 10,
		"feedback":      "Changed my mind",
	})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409 on re-evaluation, got %d", recorder.Code)
	}
	if object := decodeObject(t, recorder); object["reason"] != "already_evaluated" {
		t.Errorf("expected reason already_evaluated, got %v", object["reason"])
	}

	db.First(&stored, submission.SubmissionID)
	if stored.ObtainedMarks != 85 || stored.Feedback != "Well done" {
		t.Errorf("re-evaluation mutated the record: %+v", stored)
	}
}

func TestEvaluateOwnSubmission(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)
	assignment := seedAssignment(t, db, "Algebra", "a@x.com", 100)
	submission := seedSubmission(t, db, assignment.AssignmentID, "b@x.com", model.SubmissionStatusPending)
	token := authToken(t, "u2", "b@x.com")

	recorder := doRequest(t, router, http.MethodPatch,
		"/submissions/"+strconv.Itoa(submission.SubmissionID)+"?uid=u2&email=b@x.com",
		token, map[string]interface{}{"obtainedMarks": 100, "feedback": "perfect"})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
	if object := decodeObject(t, recorder); object["reason"] != "self_evaluation" {
		t.Errorf("expected reason self_evaluation, got %v", object["reason"])
	}

	var stored model.Submission
	db.First(&stored, submission.SubmissionID)
	if stored.Status != model.SubmissionStatusPending {
		t.Errorf("self-evaluation changed status to %q", stored.Status)
	}
}

func TestEvaluateSubmissionNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)
	token := authToken(t, "u1", "a@x.com")

	recorder := doRequest(t, router, http.MethodPatch, "/submissions/999?uid=u1&email=a@x.com",
		token, map[string]interface{}{"obtainedMarks": 1})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}

func TestListSubmissionsFilters(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)
	assignment := seedAssignment(t, db, "Algebra", "a@x.com", 100)
	seedSubmission(t, db, assignment.AssignmentID, "b@x.com", model.SubmissionStatusPending)
	seedSubmission(t, db, assignment.AssignmentID, "c@x.com", model.SubmissionStatusCompleted)
	token := authToken(t, "u1", "a@x.com")

	recorder := doRequest(t, router, http.MethodGet, "/submissions?uid=u1&status=pending", token, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	list := decodeList(t, recorder)
	if len(list) != 1 || list[0]["examinee_email"] != "b@x.com" {
		t.Fatalf("expected only the pending submission, got %v", list)
	}

	// Any status value other than the literal "pending" is ignored.
	recorder = doRequest(t, router, http.MethodGet, "/submissions?uid=u1&status=completed", token, nil)
	if list := decodeList(t, recorder); len(list) != 2 {
		t.Fatalf("expected an unfiltered list, got %d items", len(list))
	}

	recorder = doRequest(t, router, http.MethodGet, "/submissions?uid=u1&email=c@x.com", token, nil)
	list = decodeList(t, recorder)
	if len(list) != 1 || list[0]["examinee_email"] != "c@x.com" {
		t.Fatalf("expected only c@x.com's submission, got %v", list)
	}
}

func TestSubmissionEnrichment(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)
	assignment := seedAssignment(t, db, "T", "a@x.com", 100)
	submission := seedSubmission(t, db, assignment.AssignmentID, "b@x.com", model.SubmissionStatusPending)
	token := authToken(t, "u1", "a@x.com")

	recorder := doRequest(t, router, http.MethodGet, "/submissions?uid=u1", token, nil)
	list := decodeList(t, recorder)
	if len(list) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(list))
	}
	if list[0]["assignment_title"] != "T" || list[0]["assignment_marks"] != float64(100) {
		t.Errorf("expected enrichment title/marks, got %v", list[0])
	}

	// The by-id read is public and enriched the same way.
	recorder = doRequest(t, router, http.MethodGet, "/submissions/"+strconv.Itoa(submission.SubmissionID), "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	object := decodeObject(t, recorder)
	if object["assignment_title"] != "T" {
		t.Errorf("expected enrichment on single read, got %v", object)
	}

	// Deleting the assignment drops the enrichment fields, not the request.
	db.Delete(&model.Assignment{}, assignment.AssignmentID)
	recorder = doRequest(t, router, http.MethodGet, "/submissions/"+strconv.Itoa(submission.SubmissionID), "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 after assignment removal, got %d", recorder.Code)
	}
	object = decodeObject(t, recorder)
	if _, ok := object["assignment_title"]; ok {
		t.Errorf("expected assignment_title to be absent, got %v", object["assignment_title"])
	}
	if _, ok := object["assignment_marks"]; ok {
		t.Errorf("expected assignment_marks to be absent, got %v", object["assignment_marks"])
	}
}

func TestGetSubmissionNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	recorder := doRequest(t, router, http.MethodGet, "/submissions/999", "", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}

	recorder = doRequest(t, router, http.MethodGet, "/submissions/not-a-number", "", nil)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", recorder.Code)
	}
}
