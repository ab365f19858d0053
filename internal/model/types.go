package model

import (
	"time"
)

// User is the server's user record. Lists keep their empty-versus-null
// distinction so a cached snapshot reads back exactly as written.
type User struct {
	ID                  int64      `json:"id"`
	Age                 int        `json:"age"`
	Sex                 string     `json:"sex"`
	Weight              Number     `json:"weight"`
	HeightFeet          int        `json:"heightFeet"`
	HeightInches        int        `json:"heightInches"`
	FitnessGoals        []string   `json:"fitnessGoals"`
	HealthConditions    []string   `json:"healthConditions"`
	ActivityLevel       string     `json:"activityLevel"`
	ExercisePreferences []string   `json:"exercisePreferences"`
	EquipmentAccess     []string   `json:"equipmentAccess"`
	WorkoutDuration     int        `json:"workoutDuration"`
	WorkoutFrequency    int        `json:"workoutFrequency"`
	DietaryRestrictions []string   `json:"dietaryRestrictions"`
	FoodAllergies       []string   `json:"foodAllergies"`
	MealsPerDay         int        `json:"mealsPerDay"`
	CookingTime         string     `json:"cookingTime"`
	BudgetRange         string     `json:"budgetRange"`
	CreatedAt           *time.Time `json:"createdAt,omitempty"`
}

// OnboardingInput is the body of a create-user request. List fields are
// always sent, as empty arrays when nothing was selected.
type OnboardingInput struct {
	Age                 int      `json:"age"`
	Sex                 string   `json:"sex"`
	Weight              float64  `json:"weight"`
	HeightFeet          int      `json:"heightFeet"`
	HeightInches        int      `json:"heightInches"`
	FitnessGoals        []string `json:"fitnessGoals"`
	HealthConditions    []string `json:"healthConditions"`
	ActivityLevel       string   `json:"activityLevel"`
	ExercisePreferences []string `json:"exercisePreferences"`
	EquipmentAccess     []string `json:"equipmentAccess"`
	WorkoutDuration     int      `json:"workoutDuration"`
	WorkoutFrequency    int      `json:"workoutFrequency"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	FoodAllergies       []string `json:"foodAllergies"`
	MealsPerDay         int      `json:"mealsPerDay"`
	CookingTime         string   `json:"cookingTime"`
	BudgetRange         string   `json:"budgetRange"`
}

// ProfileUpdate carries only the fields being changed.
type ProfileUpdate struct {
	Age           *int     `json:"age,omitempty"`
	Sex           *string  `json:"sex,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	ActivityLevel *string  `json:"activityLevel,omitempty"`
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.Age == nil && p.Sex == nil && p.Weight == nil && p.ActivityLevel == nil
}

type SubscriptionStatus struct {
	HasActiveSubscription bool       `json:"hasActiveSubscription"`
	IsTrialExpired        bool       `json:"isTrialExpired"`
	TrialEndsAt           *time.Time `json:"trialEndsAt"`
	CanUpdateProfile      bool       `json:"canUpdateProfile"`
	LastProfileUpdate     *time.Time `json:"lastProfileUpdate"`
}

type SubscriptionRequest struct {
	UserID        string `json:"userId,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
	Plan          string `json:"plan,omitempty"`
}

type WorkoutPlan struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	PlanData  WorkoutPlanData `json:"planData"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

type WorkoutPlanData struct {
	WeeklySchedule []WorkoutDay `json:"weeklySchedule"`
	Guidelines     []string     `json:"guidelines,omitempty"`
}

type WorkoutDay struct {
	Day           string     `json:"day"`
	TotalDuration Text       `json:"totalDuration,omitempty"`
	Exercises     []Exercise `json:"exercises"`
}

type Exercise struct {
	Name          string `json:"name"`
	Sets          Text   `json:"sets,omitempty"`
	Reps          Text   `json:"reps,omitempty"`
	Duration      Text   `json:"duration,omitempty"`
	Instructions  string `json:"instructions,omitempty"`
	Modifications string `json:"modifications,omitempty"`
}

type NutritionPlan struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"userId"`
	PlanData  NutritionPlanData `json:"planData"`
	CreatedAt *time.Time        `json:"createdAt,omitempty"`
}

type NutritionPlanData struct {
	DailyCalories  Number          `json:"dailyCalories,omitempty"`
	Macronutrients *Macronutrients `json:"macronutrients,omitempty"`
	MealPlan       []MealDay       `json:"mealPlan"`
}

type Macronutrients struct {
	Protein Number `json:"protein"`
	Carbs   Number `json:"carbs"`
	Fat     Number `json:"fat"`
}

type MealDay struct {
	Day   string `json:"day"`
	Meals []Meal `json:"meals"`
}

type Meal struct {
	Name         string   `json:"name"`
	Calories     Number   `json:"calories"`
	PrepTime     Text     `json:"prepTime,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

type ProgressEntry struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	Weight            Number    `json:"weight"`
	BodyFatPercentage *Number   `json:"bodyFatPercentage"`
	MuscleMass        *Number   `json:"muscleMass"`
	Notes             *string   `json:"notes"`
	EntryDate         time.Time `json:"entryDate"`
}

// ProgressInput is the body of a create-progress request. Absent optional
// values are sent as explicit JSON nulls.
type ProgressInput struct {
	Weight            float64  `json:"weight"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage"`
	MuscleMass        *float64 `json:"muscleMass"`
	Notes             *string  `json:"notes"`
}
