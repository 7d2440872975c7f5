package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/pliu/parley/internal/config"
	"github.com/pliu/parley/internal/metrics"
	"github.com/pliu/parley/internal/middleware"
	"github.com/pliu/parley/internal/service"
	"github.com/pliu/parley/internal/store"
)

// NewRouter wires middleware, services and routes. Registration and
// token issuance are the only open endpoints besides health and
// metrics; everything else requires a bearer token.
func NewRouter(cfg config.Config, s store.Store) *mux.Router {
	users := service.NewUserService(s)
	chats := service.NewChatService(s)

	authHandler := &AuthHandler{Users: users, Cfg: cfg}
	userHandler := &UserHandler{Users: users}
	chatHandler := &ChatHandler{Chats: chats}

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(metrics.Middleware)
	r.Use(middleware.CORS(cfg.Env))
	r.Use(middleware.RateLimit(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/auth/registration", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/token", authHandler.Token).Methods("POST")

	api := r.PathPrefix("/").Subrouter()
	api.Use(middleware.RequireUser(s, cfg.JWTSecret))

	api.HandleFunc("/users", userHandler.List).Methods("GET")
	api.HandleFunc("/users/me", userHandler.Me).Methods("GET")
	api.HandleFunc("/users/me", userHandler.UpdateMe).Methods("PUT")
	api.HandleFunc("/users/{id:[0-9]+}", userHandler.Get).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}/chats", userHandler.Chats).Methods("GET")

	api.HandleFunc("/chats", chatHandler.List).Methods("GET")
	api.HandleFunc("/chats", chatHandler.Create).Methods("POST")
	api.HandleFunc("/chats/{id:[0-9]+}", chatHandler.Get).Methods("GET")
	api.HandleFunc("/chats/{id:[0-9]+}", chatHandler.Update).Methods("PUT")
	api.HandleFunc("/chats/{id:[0-9]+}/messages", chatHandler.Messages).Methods("GET")
	api.HandleFunc("/chats/{id:[0-9]+}/messages", chatHandler.PostMessage).Methods("POST")
	api.HandleFunc("/chats/{id:[0-9]+}/messages/{message_id:[0-9]+}", chatHandler.UpdateMessage).Methods("PUT")
	api.HandleFunc("/chats/{id:[0-9]+}/messages/{message_id:[0-9]+}", chatHandler.DeleteMessage).Methods("DELETE")
	api.HandleFunc("/chats/{id:[0-9]+}/users", chatHandler.Members).Methods("GET")
	api.HandleFunc("/chats/{id:[0-9]+}/users", chatHandler.AddMember).Methods("POST")

	return r
}
