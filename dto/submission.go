package dto

import (
	"assignmenthub/model"
)

type CreateSubmissionRequest struct {
	AssignmentID  int    `json:"assignmentId" binding:"required"`
	ExamineeEmail string `json:"examinee_email" binding:"required"`
	DocLink       string `json:"doc_link"`
	Note          string `json:"note"`
}

type EvaluateSubmissionRequest struct {
	ObtainedMarks float64 `json:"obtainedMarks"`
	Feedback      string  `json:"feedback"`
}

// SubmissionResponse is a submission enriched with the referenced
// assignment's title and marks. Enrichment is best-effort: when the
// assignment no longer exists the extra fields are simply omitted.
type SubmissionResponse struct {
	model.Submission
	AssignmentTitle string  `json:"assignment_title,omitempty"`
	AssignmentMarks float64 `json:"assignment_marks,omitempty"`
}
