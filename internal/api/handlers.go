package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vigor-health/vigor/internal/app/achievement"
	"github.com/vigor-health/vigor/internal/app/tracker"
	"github.com/vigor-health/vigor/internal/domain"
)

// --- /health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- /api/catalog ---

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks":                 s.tracker.Catalog().All(),
		"total_positive_impact": s.tracker.Catalog().TotalPositiveImpact(),
		"total_negative_impact": s.tracker.Catalog().TotalNegativeImpact(),
	})
}

// --- /api/tiers ---

func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"tiers": domain.Tiers()})
}

// --- /api/users (create program) ---

type createUserRequest struct {
	BaselineScore float64 `json:"baseline_score"`
	StartDate     string  `json:"start_date"` // "2006-01-02", empty → today
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var start time.Time
	if req.StartDate != "" {
		var err error
		start, err = time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
	}

	p, err := s.tracker.CreateProgram(req.BaselineScore, start)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// --- /api/users/{userID} ---

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	p, err := s.tracker.Program(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- /api/users/{userID}/tasks/{taskID}/log ---

type logTaskRequest struct {
	Date         string             `json:"date"` // "2006-01-02", empty → today
	RawProgress  *float64           `json:"raw_progress,omitempty"`
	CheckedItems []string           `json:"checked_items,omitempty"`
	Meal         *tracker.MealInput `json:"meal,omitempty"`
}

func (s *Server) handleLogTask(w http.ResponseWriter, r *http.Request) {
	var req logTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.ParseInLocation("2006-01-02", req.Date, time.UTC)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	result, err := s.tracker.UpdateTask(tracker.UpdateRequest{
		UserID:       chi.URLParam(r, "userID"),
		TaskID:       domain.TaskID(chi.URLParam(r, "taskID")),
		Date:         date,
		RawProgress:  req.RawProgress,
		CheckedItems: req.CheckedItems,
		Meal:         req.Meal,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- /api/users/{userID}/tasks/{taskID}/meals/{entryID} ---

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	err := s.tracker.DeleteMealEntry(
		chi.URLParam(r, "userID"),
		domain.TaskID(chi.URLParam(r, "taskID")),
		chi.URLParam(r, "entryID"),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- /api/users/{userID}/stats ---

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.RecomputeStatistics(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- /api/users/{userID}/rank ---

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.RecomputeStatistics(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current_score": stats.Timeline.CurrentScore,
		"rank":          stats.Rank,
	})
}

// --- /api/users/{userID}/achievements ---

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, err := s.tracker.Program(userID); err != nil {
		writeDomainError(w, err)
		return
	}
	unlocked, err := s.db.ListUnlockedAchievements(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"unlocked": unlocked,
		"catalog":  achievement.Catalog(),
	})
}

// --- /api/users/{userID}/notifications ---

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}
	notifs, err := s.db.ListPendingNotifications(chi.URLParam(r, "userID"), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifs})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "notifID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.db.MarkNotificationShown(id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
