package feed

import (
	"github.com/gorilla/mux"
	"github.com/yogeshsaini7172/flingzz-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/feed").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetFeed).Methods("POST")
	api.HandleFunc("/pairing", handler.PairingFeed).Methods("POST")
}
