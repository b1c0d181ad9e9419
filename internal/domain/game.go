package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus tracks a submitted game through moderation
type GameStatus string

const (
	GameStatusPending   GameStatus = "pending"
	GameStatusApproved  GameStatus = "approved"
	GameStatusTesting   GameStatus = "testing"
	GameStatusCompleted GameStatus = "completed"
	GameStatusRejected  GameStatus = "rejected"
)

func (s GameStatus) IsValid() bool {
	switch s {
	case GameStatusPending, GameStatusApproved, GameStatusTesting, GameStatusCompleted, GameStatusRejected:
		return true
	}
	return false
}

// Game is a community game submission awaiting or past moderation.
type Game struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Title       string     `json:"title" gorm:"not null"`
	Developer   string     `json:"developer" gorm:"not null"`
	Genre       string     `json:"genre" gorm:"not null"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Status      GameStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	SubmittedBy uuid.UUID  `json:"submitted_by" gorm:"type:uuid;not null"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
