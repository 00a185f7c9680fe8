package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-mealplan/backend/config"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/calendar"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/database"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/logging"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/service"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/shopping"
)

// seedNamespace derives stable user IDs so reruns target the same users
var seedNamespace = uuid.MustParse("6f1c3a52-8d0e-4d8e-9a8c-2f5b7c1e9d40")

type seededMeal struct {
	week int
	day  string
	meal shopping.Meal
}

func ing(name string, qty float64, unit string) shopping.MealIngredient {
	return shopping.MealIngredient{Name: name, Quantity: qty, Unit: unit}
}

var sampleWeek = []seededMeal{
	{0, "Monday", shopping.Meal{Name: "Overnight oats", Time: "Breakfast", Servings: 2,
		Ingredients: []shopping.MealIngredient{ing("rolled oats", 1, "cup"), ing("milk", 1, "cup"), ing("banana", 2, "")},
		Seasonings:  []shopping.MealIngredient{ing("cinnamon", 0.5, "tsp")}}},
	{0, "Wednesday", shopping.Meal{Name: "Chicken stir fry", Time: "Dinner", Servings: 4,
		Ingredients: []shopping.MealIngredient{ing("chicken breast", 1.5, "lb"), ing("rice", 2, "cups"), ing("broccoli", 1, "head")},
		Seasonings:  []shopping.MealIngredient{ing("soy sauce", 3, "tbsp"), ing("garlic", 2, "cloves")}}},
	{0, "Friday", shopping.Meal{Name: "Tacos", Time: "Dinner", Servings: 4,
		Ingredients: []shopping.MealIngredient{ing("ground beef", 1, "lb"), ing("tortillas", 8, ""), ing("onion", 1, "")},
		Seasonings:  []shopping.MealIngredient{ing("cumin", 1, "tsp"), ing("salt", 1, "tsp")}}},
	{1, "Monday", shopping.Meal{Name: "Fried rice", Time: "Lunch", Servings: 2,
		Ingredients: []shopping.MealIngredient{ing("rice", 2, "cups"), ing("egg", 2, ""), ing("onion", 1, "")},
		Seasonings:  []shopping.MealIngredient{ing("soy sauce", 2, "tbsp")}}},
	{1, "Thursday", shopping.Meal{Name: "Lentil soup", Time: "Dinner", Servings: 6,
		Ingredients: []shopping.MealIngredient{ing("lentils", 2, "cups"), ing("carrot", 3, ""), ing("onion", 1, "")},
		Seasonings:  []shopping.MealIngredient{ing("salt", 1, "tsp"), ing("bay leaf", 2, "")}}},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, ServiceName: "seed"})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	plans := service.NewMealPlanService(db, nil, logger)
	tokens := service.NewTokenService(cfg.JWTSecret)
	now := time.Now()

	for _, username := range []string{"johndoe", "janesmith"} {
		userID := uuid.NewSHA1(seedNamespace, []byte(username))

		for _, offset := range []int{0, 1} {
			weekStart := calendar.WeekStart(now, offset)
			existing, err := plans.GetWeek(ctx, userID, weekStart)
			if err != nil {
				logger.Fatal("Failed to read meal plan", zap.Error(err))
			}
			if existing.ID != uuid.Nil {
				logger.Info("Meal plan already exists, skipping",
					zap.String("user", username), zap.String("week", existing.WeekStart))
				continue
			}

			for _, m := range sampleWeek {
				if m.week != offset {
					continue
				}
				if _, err := plans.AddMeal(ctx, userID, weekStart, m.day, m.meal); err != nil {
					logger.Fatal("Failed to add meal", zap.String("meal", m.meal.Name), zap.Error(err))
				}
			}
			logger.Info("Seeded meal plan", zap.String("user", username), zap.String("week", calendar.FormatWeekStart(weekStart)))
		}

		token, err := tokens.GenerateToken(userID, username)
		if err != nil {
			logger.Fatal("Failed to issue token", zap.Error(err))
		}
		fmt.Printf("%s (%s)\n  Authorization: Bearer %s\n", username, userID, token)
	}
}
