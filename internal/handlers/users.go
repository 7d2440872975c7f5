package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pliu/parley/internal/middleware"
	"github.com/pliu/parley/internal/models"
	"github.com/pliu/parley/internal/service"
)

type UserHandler struct {
	Users *service.UserService
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"meta":  meta{Count: len(users)},
		"users": users,
	})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	current := middleware.UserFrom(r.Context())

	var patch service.UserPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	user, err := h.Users.UpdateSelf(current, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	user, err := h.Users.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) Chats(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	chats, err := h.Users.Chats(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if chats == nil {
		chats = []models.Chat{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"meta":  meta{Count: len(chats)},
		"chats": chats,
	})
}
