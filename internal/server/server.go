package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/franckalain/fitplan/internal/models"
	"github.com/franckalain/fitplan/internal/planner"
	"github.com/franckalain/fitplan/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, this should be more restrictive
	},
}

type Server struct {
	store   store.Store
	planner *planner.Planner
	clients sync.Map // clientID -> *wsClient
	debug   bool
}

type wsClient struct {
	conn   *websocket.Conn
	userID string
	mu     sync.Mutex
}

func New(st store.Store, pl *planner.Planner, debug bool) *Server {
	if debug {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Println("Debug logging enabled")
	}
	return &Server{
		store:   st,
		planner: pl,
		debug:   debug,
	}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/goals", s.handleCreateGoal).Methods("POST")
	r.HandleFunc("/api/users/{id}/goal", s.handleActiveGoal).Methods("GET")
	r.HandleFunc("/api/users/{id}/profile", s.handleSaveProfile).Methods("PUT")
	r.HandleFunc("/api/users/{id}/profile", s.handleGetProfile).Methods("GET")
	r.HandleFunc("/api/foods", s.handleCreateFood).Methods("POST")
	r.HandleFunc("/api/foods", s.handleListFoods).Methods("GET")
	r.HandleFunc("/api/exercises", s.handleCreateExercise).Methods("POST")
	r.HandleFunc("/api/exercises", s.handleListExercises).Methods("GET")
	r.HandleFunc("/api/users/{id}/plans/nutrition", s.handleGenerateNutritionPlan).Methods("POST")
	r.HandleFunc("/api/users/{id}/plans/workout", s.handleGenerateWorkoutPlan).Methods("POST")
	r.HandleFunc("/api/users/{id}/nutrition/{date}/meals", s.handleLogMeal).Methods("POST")
	r.HandleFunc("/api/users/{id}/nutrition/{date}", s.handleGetDay).Methods("GET")
	r.HandleFunc("/api/users/{id}/nutrition", s.handleRecentDays).Methods("GET")
	r.HandleFunc("/api/users/{id}/sessions", s.handleLogSession).Methods("POST")
	r.HandleFunc("/ws", s.handleWebSocket)
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(loggingMiddleware(r))
}

func (s *Server) Start(port string) error {
	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.Router(),
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down server...")
	return srv.Close()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapper, r)
		log.Printf("%d - %s %s - %v", wrapper.statusCode, r.Method, r.URL.Path, time.Since(start))
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var goal models.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		http.Error(w, "Invalid goal payload", http.StatusBadRequest)
		return
	}
	if goal.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	if goal.WeeklyWorkoutFrequency < 1 || goal.WeeklyWorkoutFrequency > 7 {
		http.Error(w, "weekly_workout_frequency must be between 1 and 7", http.StatusBadRequest)
		return
	}
	if err := s.store.CreateGoal(r.Context(), &goal); err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleActiveGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.store.ActiveGoal(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid profile payload", http.StatusBadRequest)
		return
	}
	profile.ID = mux.Vars(r)["id"]
	if err := s.store.SaveProfile(r.Context(), &profile); err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.Profile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleCreateFood(w http.ResponseWriter, r *http.Request) {
	var item models.FoodItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid food item payload", http.StatusBadRequest)
		return
	}
	if err := s.store.CreateFoodItem(r.Context(), &item); err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListFoods(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListFoodItems(r.Context(), r.URL.Query()["restriction"])
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		http.Error(w, "Invalid exercise payload", http.StatusBadRequest)
		return
	}
	if err := s.store.CreateExercise(r.Context(), &ex); err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	var equipment []models.Equipment
	for _, e := range r.URL.Query()["equipment"] {
		equipment = append(equipment, models.Equipment(e))
	}
	exercises, err := s.store.ListExercises(r.Context(), equipment)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGenerateNutritionPlan(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	goal, err := s.store.ActiveGoal(r.Context(), userID)
	if err != nil {
		s.storeError(w, err)
		return
	}
	profile := s.profileOrDefault(r, userID)

	items, err := s.store.ListFoodItems(r.Context(), profile.DietaryRestrictions)
	if err != nil {
		s.storeError(w, err)
		return
	}

	plan := s.planner.GenerateNutritionPlan(*goal, profile, planner.GroupFoodItems(items))
	if err := s.store.SaveMealPlan(r.Context(), plan); err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleGenerateWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	goal, err := s.store.ActiveGoal(r.Context(), userID)
	if err != nil {
		s.storeError(w, err)
		return
	}
	profile := s.profileOrDefault(r, userID)

	exercises, err := s.store.ListExercises(r.Context(), nil)
	if err != nil {
		s.storeError(w, err)
		return
	}

	program := s.planner.GenerateWorkoutPlan(*goal, profile, exercises)
	if err := s.store.SaveWorkoutProgram(r.Context(), program); err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, program)
}

func (s *Server) handleLogMeal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, date := vars["id"], vars["date"]
	if _, err := time.Parse("2006-01-02", date); err != nil {
		http.Error(w, "Invalid date format", http.StatusBadRequest)
		return
	}

	var meal models.LoggedMeal
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		http.Error(w, "Invalid meal payload", http.StatusBadRequest)
		return
	}
	if meal.Name == "" {
		http.Error(w, "meal name is required", http.StatusBadRequest)
		return
	}

	// Targets snapshot only applies the first time a date is logged;
	// later goal changes never touch an existing day.
	var targets planner.Targets
	if goal, err := s.store.ActiveGoal(r.Context(), userID); err == nil {
		targets = planner.CalculateTargets(*goal, s.profileOrDefault(r, userID))
	} else if !errors.Is(err, store.ErrNotFound) {
		s.storeError(w, err)
		return
	}

	day, err := s.store.LogMeal(r.Context(), userID, date, meal, targets)
	if err != nil {
		s.storeError(w, err)
		return
	}

	s.broadcastSummary(userID, day)
	s.writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if _, err := time.Parse("2006-01-02", vars["date"]); err != nil {
		http.Error(w, "Invalid date format", http.StatusBadRequest)
		return
	}
	day, err := s.store.NutritionDay(r.Context(), vars["id"], vars["date"])
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleRecentDays(w http.ResponseWriter, r *http.Request) {
	days, err := s.store.RecentNutritionDays(r.Context(), mux.Vars(r)["id"], 20)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleLogSession(w http.ResponseWriter, r *http.Request) {
	var session models.WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		http.Error(w, "Invalid session payload", http.StatusBadRequest)
		return
	}
	session.UserID = mux.Vars(r)["id"]
	if err := s.store.SaveWorkoutSession(r.Context(), &session); err != nil {
		s.storeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, session)
}

// handleWebSocket subscribes a client to live daily-summary updates for
// one user. Every meal logged for that user pushes the recomputed day.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	defer conn.Close()

	clientID := uuid.New().String()
	client := &wsClient{conn: conn, userID: userID}
	s.clients.Store(clientID, client)
	defer s.clients.Delete(clientID)

	// Hold the connection open; the read loop only detects closure.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (s *Server) broadcastSummary(userID string, day *models.NutritionDay) {
	msg := map[string]any{
		"type": "daily_summary",
		"data": day,
	}
	s.clients.Range(func(_, value any) bool {
		client := value.(*wsClient)
		if client.userID != userID {
			return true
		}
		client.mu.Lock()
		if err := client.conn.WriteJSON(msg); err != nil {
			log.Println("Error sending summary update:", err)
		}
		client.mu.Unlock()
		return true
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// profileOrDefault loads the user's profile, falling back to an empty one;
// the engine treats every profile field as optional.
func (s *Server) profileOrDefault(r *http.Request, userID string) models.UserProfile {
	profile, err := s.store.Profile(r.Context(), userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Error loading profile %s: %v", userID, err)
		}
		return models.UserProfile{ID: userID}
	}
	return *profile
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, store.ErrDataUnavailable):
		log.Printf("Data source error: %v", err)
		http.Error(w, "Data source unavailable", http.StatusServiceUnavailable)
	default:
		log.Printf("Unexpected error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
