package recommend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gathrhq/gathr-backend/internal/activities"
	"github.com/gathrhq/gathr-backend/internal/common/utils"
	"github.com/gathrhq/gathr-backend/internal/matching"
	"github.com/gathrhq/gathr-backend/internal/users"
)

type Handler struct {
	service           Service
	recommendDefaults matching.RecommendOptions
	matchDefaults     matching.MatchOptions
}

// NewHandler builds the HTTP surface. The option defaults apply when a
// request does not override them via query parameters.
func NewHandler(service Service, recommendDefaults matching.RecommendOptions, matchDefaults matching.MatchOptions) *Handler {
	return &Handler{
		service:           service,
		recommendDefaults: recommendDefaults,
		matchDefaults:     matchDefaults,
	}
}

func (h *Handler) RecommendActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id", "Invalid user ID")
	if !ok {
		return
	}

	opts, err := parseRecommendOptions(r, h.recommendDefaults)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ranked, err := h.service.RecommendActivities(r.Context(), userID, opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": ranked,
		"count":           len(ranked),
	})
}

func (h *Handler) RecommendUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id", "Invalid user ID")
	if !ok {
		return
	}

	opts, err := parseMatchOptions(r, h.matchDefaults)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	matches, err := h.service.RecommendUsers(r.Context(), userID, opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}

func (h *Handler) ScoreActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id", "Invalid user ID")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityId", "Invalid activity ID")
	if !ok {
		return
	}

	breakdown, err := h.service.ScoreActivity(r.Context(), userID, activityID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, breakdown)
}

func (h *Handler) ExplainMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id", "Invalid user ID")
	if !ok {
		return
	}
	otherID, ok := pathID(w, r, "otherId", "Invalid user ID")
	if !ok {
		return
	}

	explanation, err := h.service.ExplainMatch(r.Context(), userID, otherID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, explanation)
}

func parseRecommendOptions(r *http.Request, opts matching.RecommendOptions) (matching.RecommendOptions, error) {
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New("limit must be an integer")
		}
		opts.Limit = limit
	}
	if v := q.Get("min_score"); v != "" {
		minScore, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New("min_score must be an integer")
		}
		opts.MinScore = minScore
	}
	if v := q.Get("exclude_joined"); v != "" {
		excludeJoined, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New("exclude_joined must be a boolean")
		}
		opts.ExcludeJoined = excludeJoined
	}
	if v := q.Get("exclude_past"); v != "" {
		excludePast, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New("exclude_past must be a boolean")
		}
		opts.ExcludePast = excludePast
	}

	return opts, nil
}

func parseMatchOptions(r *http.Request, opts matching.MatchOptions) (matching.MatchOptions, error) {
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New("limit must be an integer")
		}
		opts.Limit = limit
	}
	if v := q.Get("min_overlap"); v != "" {
		minOverlap, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New("min_overlap must be an integer")
		}
		opts.MinOverlap = minOverlap
	}

	return opts, nil
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, activities.ErrActivityNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, matching.ErrInvalidOptions):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute recommendations")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, key, msg string) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars[key], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}
