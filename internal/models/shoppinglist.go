package models

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingList holds every item on a user's list. Version increments on each
// save and guards against lost updates.
type ShoppingList struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	Items     ListItems `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
