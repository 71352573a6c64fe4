package model

import (
	"time"
)

type Assignment struct {
	AssignmentID int       `gorm:"column:assignment_id;primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	Thumbnail    string    `gorm:"column:thumbnail;type:text" json:"thumbnail"`
	Difficulty   string    `gorm:"column:difficulty;type:varchar(32)" json:"difficulty"`
	Marks        float64   `gorm:"column:marks" json:"marks"`
	DueDate      string    `gorm:"column:due_date;type:varchar(64)" json:"dueDate"`
	CreatorEmail string    `gorm:"column:creator_email;type:varchar(255);not null" json:"creator_email"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}
