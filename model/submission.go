package model

import (
	"time"
)

const (
	SubmissionStatusPending   = "pending"
	SubmissionStatusCompleted = "completed"
)

// The unique index on (assignment_id, examinee_email) is what actually
// enforces one submission per examinee per assignment; the handler-level
// existence check only exists to produce a friendlier message.
type Submission struct {
	SubmissionID  int       `gorm:"column:submission_id;primaryKey;autoIncrement" json:"id"`
	AssignmentID  int       `gorm:"column:assignment_id;not null;uniqueIndex:uniq_assignment_examinee" json:"assignmentId"`
	ExamineeEmail string    `gorm:"column:examinee_email;type:varchar(255);not null;uniqueIndex:uniq_assignment_examinee" json:"examinee_email"`
	DocLink       string    `gorm:"column:doc_link;type:text" json:"doc_link"`
	Note          string    `gorm:"column:note;type:text" json:"note"`
	Status        string    `gorm:"column:status;type:varchar(16);default:'pending';not null" json:"status"`
	ObtainedMarks float64   `gorm:"column:obtained_marks" json:"obtained_marks,omitempty"`
	Feedback      string    `gorm:"column:feedback;type:text" json:"feedback,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Submission) TableName() string {
	return "submissions"
}
