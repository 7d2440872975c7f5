package store

import "github.com/pliu/parley/internal/models"

// Store is the record-store contract the domain services run against.
// Implementations return sql.ErrNoRows (or a wrapper of it) when a
// single-entity lookup finds nothing; the service layer turns that into
// its own not-found error.
type Store interface {
	// User operations
	CreateUser(user *models.User) error
	GetUserByID(id int) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	GetUserChats(userID int) ([]models.Chat, error)

	// Chat operations
	CreateChat(chat *models.Chat) error
	GetChatByID(id int) (*models.Chat, error)
	GetAllChats() ([]models.Chat, error)
	UpdateChat(chat *models.Chat) error
	AddMember(chatID, userID int) error
	IsMember(chatID, userID int) (bool, error)
	GetChatMembers(chatID int) ([]models.User, error)
	CountChatMembers(chatID int) (int, error)

	// Message operations
	CreateMessage(msg *models.Message) error
	GetMessage(chatID, messageID int) (*models.Message, error)
	GetChatMessages(chatID int) ([]models.Message, error)
	UpdateMessage(msg *models.Message) error
	DeleteMessage(chatID, messageID int) error
	CountChatMessages(chatID int) (int, error)
}
