package services

import (
	"context"
	"log"
	"strconv"

	"assignmenthub/model"

	"cloud.google.com/go/firestore"
)

// MirrorSubmission pushes a submission's current state into Firestore so the
// Firebase-hosted frontend can watch evaluation progress live. Best-effort:
// a nil client (development mode) or a failed write only logs.
func MirrorSubmission(ctx context.Context, firestoreClient *firestore.Client, submission model.Submission) {
	if firestoreClient == nil {
		return
	}

	_, err := firestoreClient.Collection("submissions").
		Doc(strconv.Itoa(submission.SubmissionID)).
		Set(ctx, map[string]interface{}{
			"assignmentId":  submission.AssignmentID,
			"examineeEmail": submission.ExamineeEmail,
			"status":        submission.Status,
			"obtainedMarks": submission.ObtainedMarks,
			"updatedAt":     firestore.ServerTimestamp,
		}, firestore.MergeAll)
	if err != nil {
		log.Printf("Failed to mirror submission %d to Firestore: %v", submission.SubmissionID, err)
	}
}
