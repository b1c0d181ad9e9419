package domain

import (
	"time"

	"github.com/google/uuid"
)

// TournamentStatus represents where a tournament is in its lifecycle
type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "upcoming"
	TournamentStatusOngoing   TournamentStatus = "ongoing"
	TournamentStatusCompleted TournamentStatus = "completed"
	TournamentStatusCancelled TournamentStatus = "cancelled"
)

// DefaultMaxParticipants applies when a tournament is created without a cap.
const DefaultMaxParticipants = 100

// IsValid checks if a status is one of the known lifecycle states
func (s TournamentStatus) IsValid() bool {
	switch s {
	case TournamentStatusUpcoming, TournamentStatusOngoing, TournamentStatusCompleted, TournamentStatusCancelled:
		return true
	}
	return false
}

type Tournament struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	Title           string           `json:"title" gorm:"not null"`
	GameName        string           `json:"game_name" gorm:"not null"`
	Description     string           `json:"description"`
	StartDate       time.Time        `json:"start_date" gorm:"not null"`
	EndDate         time.Time        `json:"end_date" gorm:"not null"`
	PrizePool       string           `json:"prize_pool"`
	MaxParticipants int              `json:"max_participants" gorm:"not null;default:100"`
	Status          TournamentStatus `json:"status" gorm:"type:varchar(20);not null;default:'upcoming'"`
	CreatedBy       uuid.UUID        `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	Participants []Participation `json:"participants,omitempty" gorm:"foreignKey:TournamentID"`
}

// IsOpen reports whether registration is still accepted.
func (t *Tournament) IsOpen() bool {
	return t.Status == TournamentStatusUpcoming
}

// Participation links a user to a tournament they registered for.
type Participation struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	TournamentID uuid.UUID `json:"tournament_id" gorm:"type:uuid;not null"`
	JoinedAt     time.Time `json:"joined_at" gorm:"not null"`

	Tournament *Tournament `json:"tournament,omitempty" gorm:"foreignKey:TournamentID"`
}

// TableName returns the table name for GORM
func (Participation) TableName() string {
	return "user_tournaments"
}
