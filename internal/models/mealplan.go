package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
)

// MealPlan is one user's plan for one week. WeekStart is the Monday as YYYY-MM-DD.
type MealPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meal_plans_user_week" json:"userId"`
	WeekStart string    `gorm:"size:10;not null;uniqueIndex:idx_meal_plans_user_week" json:"weekStart"`
	Days      PlanDays  `gorm:"type:jsonb;not null;default:'[]'" json:"days"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Weekly returns the plan in the shape the consolidator consumes
func (p *MealPlan) Weekly() shopping.WeeklyMealPlan {
	return shopping.WeeklyMealPlan{
		WeekStart: p.WeekStart,
		Days:      []shopping.DayPlan(p.Days),
	}
}

// Day returns a pointer to the named day, or nil
func (p *MealPlan) Day(name string) *shopping.DayPlan {
	for i := range p.Days {
		if p.Days[i].Day == name {
			return &p.Days[i]
		}
	}
	return nil
}
