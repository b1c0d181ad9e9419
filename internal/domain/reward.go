package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reward is an item in the points store.
type Reward struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Points      int       `json:"points" gorm:"not null"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RewardClaim records a user exchanging points for a reward.
type RewardClaim struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	RewardID  uuid.UUID `json:"reward_id" gorm:"type:uuid;not null"`
	ClaimedAt time.Time `json:"claimed_at" gorm:"not null"`

	Reward *Reward `json:"reward,omitempty" gorm:"foreignKey:RewardID"`
}

// TableName returns the table name for GORM
func (RewardClaim) TableName() string {
	return "user_rewards"
}

// RewardUpdate carries optional admin changes to a reward.
type RewardUpdate struct {
	Title       *string
	Description *string
	Points      *int
	Stock       *int
	IsActive    *bool
}

// CheckClaim applies the claim rules to the current balance and reward
// state. Points are checked before stock.
func CheckClaim(balance int, reward *Reward) error {
	if balance < reward.Points {
		return ErrInsufficientPoints
	}
	if reward.Stock <= 0 {
		return ErrOutOfStock
	}
	return nil
}
