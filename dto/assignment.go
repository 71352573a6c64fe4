package dto

type CreateAssignmentRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Thumbnail    string  `json:"thumbnail"`
	Difficulty   string  `json:"difficulty"`
	Marks        float64 `json:"marks"`
	DueDate      string  `json:"dueDate"`
	CreatorEmail string  `json:"creator_email" binding:"required"`
}

// Pointer fields so that absent keys are left untouched on update.
type UpdateAssignmentRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Difficulty  *string  `json:"difficulty"`
	Marks       *float64 `json:"marks"`
	DueDate     *string  `json:"dueDate"`
}
