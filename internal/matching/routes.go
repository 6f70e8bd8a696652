package matching

import (
	"github.com/gorilla/mux"
	"github.com/yogeshsaini7172/flingzz-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/swipe", handler.SwipeAction).Methods("POST")
	api.HandleFunc("/swipe/remaining", handler.GetSwipesRemaining).Methods("GET")
	api.HandleFunc("/matches", handler.GetMatches).Methods("GET")
	api.HandleFunc("/matches/{id}/ack", handler.AckMatch).Methods("POST")
}
