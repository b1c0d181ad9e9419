package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityType names the kind of action recorded in the activity log
type ActivityType string

const (
	ActivityRegistration    ActivityType = "registration"
	ActivityLogin           ActivityType = "login"
	ActivityProfileUpdate   ActivityType = "profile_update"
	ActivityRewardClaim     ActivityType = "reward_claim"
	ActivityTournamentJoin  ActivityType = "tournament_join"
	ActivityTournamentLeave ActivityType = "tournament_leave"
)

// ActivityLogEntry is an append-only audit record. Entries are never
// updated or deleted.
type ActivityLogEntry struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_user_activity_user_created,priority:1"`
	ActivityType ActivityType   `json:"activity_type" gorm:"type:varchar(40);not null"`
	Description  string         `json:"description"`
	PointsChange int            `json:"points_change" gorm:"not null;default:0"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index:idx_user_activity_user_created,priority:2"`
}

// TableName returns the table name for GORM
func (ActivityLogEntry) TableName() string {
	return "user_activity"
}
