package activities

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gathrhq/gathr-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := pathID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	var dto CreateActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	activity, err := h.service.CreateActivity(r.Context(), creatorID, &dto)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, activity)
}

func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id", "Invalid activity ID")
	if !ok {
		return
	}

	activity, err := h.service.GetActivity(r.Context(), activityID)
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activity")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, activity)
}

func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id", "Invalid activity ID")
	if !ok {
		return
	}
	requesterID, ok := pathID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	var dto UpdateActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	activity, err := h.service.UpdateActivity(r.Context(), activityID, requesterID, &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrActivityNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotCreator):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, activity)
}

func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id", "Invalid activity ID")
	if !ok {
		return
	}
	requesterID, ok := pathID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	if err := h.service.DeleteActivity(r.Context(), activityID, requesterID); err != nil {
		switch {
		case errors.Is(err, ErrActivityNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotCreator):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete activity")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Activity deleted"})
}

func (h *Handler) ListByCreator(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := pathID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	filters := &ListFilters{
		Status: r.URL.Query().Get("status"),
		Sort:   r.URL.Query().Get("sort"),
	}

	list, err := h.service.ListByCreator(r.Context(), creatorID, filters)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list activities")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"activities": list,
		"count":      len(list),
	})
}

func (h *Handler) JoinActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id", "Invalid activity ID")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	activity, err := h.service.JoinActivity(r.Context(), activityID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrActivityNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrActivityFull), errors.Is(err, ErrAlreadyJoined):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to join activity")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, activity)
}

func (h *Handler) LeaveActivity(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id", "Invalid activity ID")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	activity, err := h.service.LeaveActivity(r.Context(), activityID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrActivityNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrCreatorCannotLeave), errors.Is(err, ErrNotParticipant):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to leave activity")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, activity)
}

func (h *Handler) GetCreatorStats(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := pathID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	stats, err := h.service.GetCreatorStats(r.Context(), creatorID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
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
