package recommend

import "github.com/gorilla/mux"

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/users/{id}/recommendations/activities", handler.RecommendActivities).Methods("GET")
	api.HandleFunc("/users/{id}/recommendations/users", handler.RecommendUsers).Methods("GET")
	api.HandleFunc("/users/{id}/activities/{activityId}/score", handler.ScoreActivity).Methods("GET")
	api.HandleFunc("/users/{id}/matches/{otherId}/explanation", handler.ExplainMatch).Methods("GET")
}
