package service

import (
	"database/sql"
	"errors"

	"github.com/pliu/parley/internal/models"
	"github.com/pliu/parley/internal/store"
)

// ChatService owns the chat and message domain rules: existence checks,
// membership links and author-only message mutation. Chat ownership is
// recorded but grants no extra rights.
type ChatService struct {
	store store.Store
}

func NewChatService(s store.Store) *ChatService {
	return &ChatService{store: s}
}

type ChatPatch struct {
	Name *string `json:"name"`
}

type MessagePatch struct {
	Text *string `json:"text"`
}

// ChatDetail is a chat plus its collection counts and, on request, the
// embedded collections themselves.
type ChatDetail struct {
	Chat         models.Chat
	Owner        models.User
	MessageCount int
	UserCount    int
	Messages     []models.Message // nil unless requested
	Users        []models.User    // nil unless requested
}

// List returns every chat, unfiltered by membership, ordered by name.
func (s *ChatService) List() ([]models.Chat, error) {
	return s.store.GetAllChats()
}

// Create records a new chat owned by the caller. The owner is not
// enrolled as a member; membership is linked separately.
func (s *ChatService) Create(name string, owner *models.User) (*models.Chat, error) {
	chat := &models.Chat{Name: name, OwnerID: owner.ID}
	if err := s.store.CreateChat(chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) Get(id int) (*models.Chat, error) {
	chat, err := s.store.GetChatByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{EntityName: "Chat", EntityID: id}
		}
		return nil, err
	}
	return chat, nil
}

// Detail loads a chat with its counts, embedding the message and member
// lists when asked for.
func (s *ChatService) Detail(id int, includeMessages, includeUsers bool) (*ChatDetail, error) {
	chat, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	owner, err := s.store.GetUserByID(chat.OwnerID)
	if err != nil {
		return nil, err
	}

	detail := &ChatDetail{Chat: *chat, Owner: *owner}
	if detail.MessageCount, err = s.store.CountChatMessages(id); err != nil {
		return nil, err
	}
	if detail.UserCount, err = s.store.CountChatMembers(id); err != nil {
		return nil, err
	}
	if includeMessages {
		if detail.Messages, err = s.store.GetChatMessages(id); err != nil {
			return nil, err
		}
	}
	if includeUsers {
		if detail.Users, err = s.store.GetChatMembers(id); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// Update applies the present patch fields to the chat.
func (s *ChatService) Update(id int, patch ChatPatch) (*models.Chat, error) {
	chat, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		chat.Name = *patch.Name
	}
	if err := s.store.UpdateChat(chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// Messages returns the chat's messages ordered by creation time.
func (s *ChatService) Messages(chatID int) ([]models.Message, error) {
	if _, err := s.Get(chatID); err != nil {
		return nil, err
	}
	return s.store.GetChatMessages(chatID)
}

// Members returns the chat's member users.
func (s *ChatService) Members(chatID int) ([]models.User, error) {
	if _, err := s.Get(chatID); err != nil {
		return nil, err
	}
	return s.store.GetChatMembers(chatID)
}

// AddMember links a user into the chat's membership set. The link is
// unique per (chat, user).
func (s *ChatService) AddMember(chatID, userID int) error {
	if _, err := s.Get(chatID); err != nil {
		return err
	}
	if _, err := s.store.GetUserByID(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{EntityName: "User", EntityID: userID}
		}
		return err
	}
	member, err := s.store.IsMember(chatID, userID)
	if err != nil {
		return err
	}
	if member {
		return &DuplicateError{EntityName: "Membership", EntityID: userID}
	}
	return s.store.AddMember(chatID, userID)
}

// PostMessage records a message attributed to the authenticated author,
// never to a caller-supplied user id.
func (s *ChatService) PostMessage(chatID int, author *models.User, text string) (*models.Message, error) {
	if _, err := s.Get(chatID); err != nil {
		return nil, err
	}
	msg := &models.Message{ChatID: chatID, UserID: author.ID, Text: text}
	if err := s.store.CreateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// UpdateMessage applies the patch to a message. Only the author may do
// this.
func (s *ChatService) UpdateMessage(chatID, messageID int, author *models.User, patch MessagePatch) (*models.Message, error) {
	msg, err := s.getMessage(chatID, messageID)
	if err != nil {
		return nil, err
	}
	if msg.UserID != author.ID {
		return nil, &PermissionError{Action: "update", EntityName: "Message", EntityID: messageID}
	}
	if patch.Text != nil {
		msg.Text = *patch.Text
	}
	if err := s.store.UpdateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// DeleteMessage removes a message. Only the author may do this.
func (s *ChatService) DeleteMessage(chatID, messageID int, author *models.User) error {
	msg, err := s.getMessage(chatID, messageID)
	if err != nil {
		return err
	}
	if msg.UserID != author.ID {
		return &PermissionError{Action: "delete", EntityName: "Message", EntityID: messageID}
	}
	return s.store.DeleteMessage(chatID, messageID)
}

func (s *ChatService) getMessage(chatID, messageID int) (*models.Message, error) {
	if _, err := s.Get(chatID); err != nil {
		return nil, err
	}
	msg, err := s.store.GetMessage(chatID, messageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{EntityName: "Message", EntityID: messageID}
		}
		return nil, err
	}
	return msg, nil
}
