package models

import (
	"time"

	"gorm.io/gorm"
)

// LogType identifies the kind of log a user submits for analysis.
type LogType string

const (
	LogTypeJava   LogType = "JAVA"
	LogTypeSpring LogType = "SPRING"
)

func (t LogType) Valid() bool {
	return t == LogTypeJava || t == LogTypeSpring
}

// Depth selects how thorough the suggested-fixes list is.
type Depth string

const (
	DepthFast Depth = "FAST"
	DepthDeep Depth = "DEEP"
)

func (d Depth) Valid() bool {
	return d == DepthFast || d == DepthDeep
}

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`

	// Analysis preferences, used to pre-fill submissions.
	DefaultSanitize bool    `json:"defaultSanitize" gorm:"not null;default:true"`
	DefaultLogType  LogType `json:"defaultLogType" gorm:"not null;default:'JAVA'"`
	DefaultDepth    Depth   `json:"defaultDepth" gorm:"not null;default:'FAST'"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
