package scoring

import (
	"github.com/gorilla/mux"
	"github.com/yogeshsaini7172/flingzz-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/qcs").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/compute", handler.ComputeQCS).Methods("POST")
	api.HandleFunc("", handler.GetQCS).Methods("GET")
}
