package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pliu/parley/internal/metrics"
	"github.com/pliu/parley/internal/middleware"
	"github.com/pliu/parley/internal/models"
	"github.com/pliu/parley/internal/service"
)

type ChatHandler struct {
	Chats *service.ChatService
}

type CreateChatRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

type AddMemberRequest struct {
	UserID int `json:"user_id" validate:"required"`
}

type CreateMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// chatWithOwner is the detail projection: the owner record replaces the
// bare owner_id.
type chatWithOwner struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Owner     models.User `json:"owner"`
	CreatedAt time.Time   `json:"created_at"`
}

type chatDetailMeta struct {
	MessageCount int `json:"message_count"`
	UserCount    int `json:"user_count"`
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	chats, err := h.Chats.List()
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

func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := middleware.UserFrom(r.Context())

	var req CreateChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	chat, err := h.Chats.Create(req.Name, owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"chat": chat})
}

func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	includeMessages, includeUsers := false, false
	for _, inc := range r.URL.Query()["include"] {
		switch inc {
		case "messages":
			includeMessages = true
		case "users":
			includeUsers = true
		}
	}

	detail, err := h.Chats.Detail(id, includeMessages, includeUsers)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]any{
		"meta": chatDetailMeta{
			MessageCount: detail.MessageCount,
			UserCount:    detail.UserCount,
		},
		"chat": chatWithOwner{
			ID:        detail.Chat.ID,
			Name:      detail.Chat.Name,
			Owner:     detail.Owner,
			CreatedAt: detail.Chat.CreatedAt,
		},
	}
	if includeMessages {
		msgs := detail.Messages
		if msgs == nil {
			msgs = []models.Message{}
		}
		resp["messages"] = msgs
	}
	if includeUsers {
		users := detail.Users
		if users == nil {
			users = []models.User{}
		}
		resp["users"] = users
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ChatHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var patch service.ChatPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	chat, err := h.Chats.Update(id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"chat": chat})
}

func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	messages, err := h.Chats.Messages(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"meta":     meta{Count: len(messages)},
		"messages": messages,
	})
}

func (h *ChatHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	users, err := h.Chats.Members(id)
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

func (h *ChatHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req AddMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Chats.AddMember(id, req.UserID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	author := middleware.UserFrom(r.Context())

	var req CreateMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := h.Chats.PostMessage(id, author, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	metrics.MessagesCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"message": msg})
}

func (h *ChatHandler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	chatID, _ := strconv.Atoi(vars["id"])
	messageID, _ := strconv.Atoi(vars["message_id"])
	author := middleware.UserFrom(r.Context())

	var patch service.MessagePatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	msg, err := h.Chats.UpdateMessage(chatID, messageID, author, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}

func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	chatID, _ := strconv.Atoi(vars["id"])
	messageID, _ := strconv.Atoi(vars["message_id"])
	author := middleware.UserFrom(r.Context())

	if err := h.Chats.DeleteMessage(chatID, messageID, author); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
