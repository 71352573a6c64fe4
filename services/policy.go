package services

// Reason codes carried alongside business refusals so clients can branch
// without parsing the human-readable message.
const (
	ReasonNotOwner            = "not_owner"
	ReasonSelfSubmission      = "self_submission"
	ReasonDuplicateSubmission = "duplicate_submission"
	ReasonSelfEvaluation      = "self_evaluation"
	ReasonAlreadyEvaluated    = "already_evaluated"
)

// Relation is the relationship a caller must hold to a record's owner field
// for an operation to proceed.
type Relation int

const (
	// OwnerOf allows only the identity stored on the record (update/delete).
	OwnerOf Relation = iota
	// NotOwnerOf allows everyone except that identity (submitting to or
	// evaluating someone's work must come from a third party).
	NotOwnerOf
)

// Allowed is the single ownership policy shared by every mutation route.
func Allowed(rel Relation, recordEmail, callerEmail string) bool {
	switch rel {
	case OwnerOf:
		return recordEmail == callerEmail
	case NotOwnerOf:
		return recordEmail != callerEmail
	}
	return false
}
