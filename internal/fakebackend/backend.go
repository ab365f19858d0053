// Package fakebackend is an in-memory stand-in for the coaching REST API.
// It serves every endpoint the client uses, records each request, and can
// be told to fail a route with a given status.
package fakebackend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/mux"

	"github.com/saadjs/fitcoach-cli/internal/model"
)

const (
	RouteCreateUser         = "createUser"
	RouteGetUser            = "getUser"
	RouteUpdateProfile      = "updateProfile"
	RouteSubscription       = "subscription"
	RouteCreateSubscription = "createSubscription"
	RouteGenerateWorkout    = "generateWorkout"
	RouteGetWorkout         = "getWorkout"
	RouteGenerateNutrition  = "generateNutrition"
	RouteGetNutrition       = "getNutrition"
	RouteListProgress       = "listProgress"
	RouteCreateProgress     = "createProgress"

	trialLength = 7 * 24 * time.Hour
)

type Recorded struct {
	Route  string
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type Backend struct {
	// Now is the backend clock; tests may pin it.
	Now func() time.Time
	// AbsentAsNoContent answers missing plans with 204 instead of 200 null.
	AbsentAsNoContent bool

	mu        sync.Mutex
	ids       *snowflake.Node
	nextID    int64
	users     map[int64]model.User
	subs      map[int64]model.SubscriptionStatus
	workouts  map[int64]model.WorkoutPlan
	nutrition map[int64]model.NutritionPlan
	progress  map[int64][]model.ProgressEntry
	failures  map[string]int
	requests  []Recorded
}

func New() *Backend {
	// Node 1 is always within snowflake's node range.
	node, _ := snowflake.NewNode(1)
	return &Backend{
		Now:       time.Now,
		ids:       node,
		nextID:    1,
		users:     map[int64]model.User{},
		subs:      map[int64]model.SubscriptionStatus{},
		workouts:  map[int64]model.WorkoutPlan{},
		nutrition: map[int64]model.NutritionPlan{},
		progress:  map[int64][]model.ProgressEntry{},
		failures:  map[string]int{},
	}
}

func (b *Backend) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(b.record)

	r.HandleFunc("/api/users", b.createUser).Methods(http.MethodPost).Name(RouteCreateUser)
	r.HandleFunc("/api/create-subscription", b.createSubscription).Methods(http.MethodPost).Name(RouteCreateSubscription)

	r.HandleFunc("/api/users/{id}", b.getUser).Methods(http.MethodGet).Name(RouteGetUser)
	r.HandleFunc("/api/users/{id}/profile", b.updateProfile).Methods(http.MethodPut).Name(RouteUpdateProfile)
	r.HandleFunc("/api/users/{id}/subscription", b.subscription).Methods(http.MethodGet).Name(RouteSubscription)
	r.HandleFunc("/api/users/{id}/workout-plan", b.generateWorkout).Methods(http.MethodPost).Name(RouteGenerateWorkout)
	r.HandleFunc("/api/users/{id}/workout-plan", b.getWorkout).Methods(http.MethodGet).Name(RouteGetWorkout)
	r.HandleFunc("/api/users/{id}/nutrition-plan", b.generateNutrition).Methods(http.MethodPost).Name(RouteGenerateNutrition)
	r.HandleFunc("/api/users/{id}/nutrition-plan", b.getNutrition).Methods(http.MethodGet).Name(RouteGetNutrition)
	r.HandleFunc("/api/users/{id}/progress", b.listProgress).Methods(http.MethodGet).Name(RouteListProgress)
	r.HandleFunc("/api/users/{id}/progress", b.createProgress).Methods(http.MethodPost).Name(RouteCreateProgress)
	return r
}

// FailRoute makes every request to route answer with status until cleared
// with status 0.
func (b *Backend) FailRoute(route string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if status == 0 {
		delete(b.failures, route)
		return
	}
	b.failures[route] = status
}

func (b *Backend) Requests(route string) []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Recorded, 0)
	for _, r := range b.requests {
		if route == "" || r.Route == route {
			out = append(out, r)
		}
	}
	return out
}

func (b *Backend) Count(route string) int {
	return len(b.Requests(route))
}

// SeedUser stores u with the next id and the given subscription state.
func (b *Backend) SeedUser(u model.User, status model.SubscriptionStatus) model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	u.ID = b.nextID
	b.nextID++
	b.users[u.ID] = u
	b.subs[u.ID] = status
	return u
}

func (b *Backend) SetSubscription(userID int64, status model.SubscriptionStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[userID] = status
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}

		b.mu.Lock()
		b.requests = append(b.requests, Recorded{
			Route:  name,
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		status, fail := b.failures[name]
		b.mu.Unlock()

		if fail {
			writeMessage(w, status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user payload")
		return
	}
	now := b.Now().UTC()
	trialEnds := now.Add(trialLength)
	u.CreatedAt = &now
	u = b.SeedUser(u, model.SubscriptionStatus{TrialEndsAt: &trialEnds, CanUpdateProfile: true})
	writeJSON(w, http.StatusCreated, u)
}

func (b *Backend) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := b.userID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	u := b.users[id]
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (b *Backend) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := b.userID(w, r)
	if !ok {
		return
	}
	var in model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid profile payload")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	status := b.subs[id]
	if !status.HasActiveSubscription {
		writeMessage(w, http.StatusForbidden, "Active subscription required to update profile")
		return
	}
	if !status.CanUpdateProfile {
		writeMessage(w, http.StatusTooManyRequests, "Profile can only be updated once every 3 months")
		return
	}
	u := b.users[id]
	if in.Age != nil {
		u.Age = *in.Age
	}
	if in.Sex != nil {
		u.Sex = *in.Sex
	}
	if in.Weight != nil {
		u.Weight = model.Number(*in.Weight)
	}
	if in.ActivityLevel != nil {
		u.ActivityLevel = *in.ActivityLevel
	}
	b.users[id] = u
	now := b.Now().UTC()
	status.LastProfileUpdate = &now
	status.CanUpdateProfile = false
	b.subs[id] = status
	writeJSON(w, http.StatusOK, u)
}

func (b *Backend) subscription(w http.ResponseWriter, r *http.Request) {
	id, ok := b.userID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	status := b.subs[id]
	b.mu.Unlock()
	if !status.HasActiveSubscription && status.TrialEndsAt != nil && b.Now().After(*status.TrialEndsAt) {
		status.IsTrialExpired = true
	}
	writeJSON(w, http.StatusOK, status)
}

func (b *Backend) createSubscription(w http.ResponseWriter, r *http.Request) {
	var in model.SubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.PaymentMethod == "" {
		writeMessage(w, http.StatusBadRequest, "paymentMethod is required")
		return
	}
	out := map[string]any{"status": "pending", "paymentMethod": in.PaymentMethod}
	if id, err := strconv.ParseInt(in.UserID, 10, 64); err == nil {
		b.mu.Lock()
		if _, ok := b.users[id]; ok {
			status := b.subs[id]
			status.HasActiveSubscription = true
			status.IsTrialExpired = false
			b.subs[id] = status
			out["status"] = "active"
			out["subscriptionId"] = fmt.Sprintf("sub_%d", id)
		}
		b.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) generateWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := b.userID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[id]
	days := u.WorkoutFrequency
	if days <= 0 {
		days = 3
	}
	now := b.Now().UTC()
	plan := model.WorkoutPlan{ID: b.ids.Generate().Int64(), UserID: id, CreatedAt: &now}
	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i := 0; i < days && i < len(weekdays); i++ {
		plan.PlanData.WeeklySchedule = append(plan.PlanData.WeeklySchedule, model.WorkoutDay{
			Day:           weekdays[i],
			TotalDuration: model.Text(strconv.Itoa(max(u.WorkoutDuration, 30))),
			Exercises: []model.Exercise{
				{Name: "Goblet Squat", Sets: "3", Reps: "10-12", Instructions: "Keep your chest up."},
				{Name: "Plank", Duration: "45 seconds", Instructions: "Brace your core.", Modifications: "Drop to knees."},
			},
		})
	}
	plan.PlanData.Guidelines = []string{"Warm up for 5 minutes.", "Rest 60-90 seconds between sets."}
	b.workouts[id] = plan
	writeJSON(w, http.StatusOK, plan)
}

func (b *Backend) getWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := b.userID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	plan, found := b.workouts[id]
	b.mu.Unlock()
	if !found {
		b.writeAbsent(w)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (b *Backend) generateNutrition(w http.ResponseWriter, r *http.Request) {
	id, ok := b.userID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[id]
	meals := u.MealsPerDay
	if meals <= 0 {
		meals = 3
	}
	calories := model.Number(float64(u.Weight) * 14)
	if calories == 0 {
		calories = 2000
	}
	now := b.Now().UTC()
	plan := model.NutritionPlan{ID: b.ids.Generate().Int64(), UserID: id, CreatedAt: &now}
	plan.PlanData.DailyCalories = calories
	plan.PlanData.Macronutrients = &model.Macronutrients{
		Protein: model.Number(float64(calories) * 0.3 / 4),
		Carbs:   model.Number(float64(calories) * 0.4 / 4),
		Fat:     model.Number(float64(calories) * 0.3 / 9),
	}
	day := model.MealDay{Day: "Day 1"}
	for i := 0; i < meals; i++ {
		day.Meals = append(day.Meals, model.Meal{
			Name:         fmt.Sprintf("Meal %d", i+1),
			Calories:     calories / model.Number(meals),
			PrepTime:     "20",
			Ingredients:  []string{"chicken breast", "brown rice", "broccoli"},
			Instructions: []string{"Cook the rice.", "Grill the chicken.", "Steam the broccoli."},
		})
	}
	plan.PlanData.MealPlan = []model.MealDay{day}
	b.nutrition[id] = plan
	writeJSON(w, http.StatusOK, plan)
}

func (b *Backend) getNutrition(w http.ResponseWriter, r *http.Request) {
	id, ok := b.userID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	plan, found := b.nutrition[id]
	b.mu.Unlock()
	if !found {
		b.writeAbsent(w)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (b *Backend) listProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := b.userID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	entries := append([]model.ProgressEntry(nil), b.progress[id]...)
	b.mu.Unlock()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EntryDate.After(entries[j].EntryDate)
	})
	writeJSON(w, http.StatusOK, entries)
}

func (b *Backend) createProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := b.userID(w, r)
	if !ok {
		return
	}
	var in model.ProgressInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Weight <= 0 {
		writeMessage(w, http.StatusBadRequest, "weight is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	entry := model.ProgressEntry{
		ID:        int64(len(b.progress[id]) + 1),
		UserID:    id,
		Weight:    model.Number(in.Weight),
		Notes:     in.Notes,
		EntryDate: b.Now().UTC(),
	}
	if in.BodyFatPercentage != nil {
		v := model.Number(*in.BodyFatPercentage)
		entry.BodyFatPercentage = &v
	}
	if in.MuscleMass != nil {
		v := model.Number(*in.MuscleMass)
		entry.MuscleMass = &v
	}
	b.progress[id] = append(b.progress[id], entry)
	writeJSON(w, http.StatusCreated, entry)
}

func (b *Backend) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	b.mu.Lock()
	_, found := b.users[id]
	b.mu.Unlock()
	if !found {
		writeMessage(w, http.StatusNotFound, "User not found")
		return 0, false
	}
	return id, true
}

func (b *Backend) writeAbsent(w http.ResponseWriter) {
	if b.AbsentAsNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("null"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
