package activities

import "github.com/gorilla/mux"

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/activities/{id}", handler.GetActivity).Methods("GET")

	api.HandleFunc("/users/{userId}/activities", handler.CreateActivity).Methods("POST")
	api.HandleFunc("/users/{userId}/activities", handler.ListByCreator).Methods("GET")
	api.HandleFunc("/users/{userId}/activities/stats", handler.GetCreatorStats).Methods("GET")
	api.HandleFunc("/users/{userId}/activities/{id}", handler.UpdateActivity).Methods("PUT")
	api.HandleFunc("/users/{userId}/activities/{id}", handler.DeleteActivity).Methods("DELETE")
	api.HandleFunc("/users/{userId}/activities/{id}/join", handler.JoinActivity).Methods("POST")
	api.HandleFunc("/users/{userId}/activities/{id}/leave", handler.LeaveActivity).Methods("POST")
}
