package sqlstore

import (
	"github.com/pliu/parley/internal/models"
)

func (s *SQLStore) CreateChat(chat *models.Chat) error {
	query := s.rebind("INSERT INTO chats (name, owner_id) VALUES (?, ?) RETURNING id, created_at")
	return s.db.QueryRow(query, chat.Name, chat.OwnerID).Scan(&chat.ID, &chat.CreatedAt)
}

func (s *SQLStore) GetChatByID(id int) (*models.Chat, error) {
	var chat models.Chat
	query := s.rebind("SELECT id, name, owner_id, created_at FROM chats WHERE id = ?")
	err := s.db.QueryRow(query, id).Scan(&chat.ID, &chat.Name, &chat.OwnerID, &chat.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (s *SQLStore) GetAllChats() ([]models.Chat, error) {
	rows, err := s.db.Query("SELECT id, name, owner_id, created_at FROM chats ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		var c models.Chat
		if err := rows.Scan(&c.ID, &c.Name, &c.OwnerID, &c.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (s *SQLStore) UpdateChat(chat *models.Chat) error {
	query := s.rebind("UPDATE chats SET name = ? WHERE id = ?")
	_, err := s.db.Exec(query, chat.Name, chat.ID)
	return err
}

func (s *SQLStore) AddMember(chatID, userID int) error {
	query := s.rebind("INSERT INTO chat_users (chat_id, user_id) VALUES (?, ?)")
	_, err := s.db.Exec(query, chatID, userID)
	return err
}

func (s *SQLStore) IsMember(chatID, userID int) (bool, error) {
	var exists bool
	query := s.rebind("SELECT EXISTS(SELECT 1 FROM chat_users WHERE chat_id = ? AND user_id = ?)")
	err := s.db.QueryRow(query, chatID, userID).Scan(&exists)
	return exists, err
}

func (s *SQLStore) GetChatMembers(chatID int) ([]models.User, error) {
	query := s.rebind(`
		SELECT u.id, u.username, u.email, u.password_hash, u.created_at
		FROM users u
		JOIN chat_users cu ON u.id = cu.user_id
		WHERE cu.chat_id = ?
		ORDER BY u.id ASC
	`)
	rows, err := s.db.Query(query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLStore) CountChatMembers(chatID int) (int, error) {
	var count int
	query := s.rebind("SELECT COUNT(*) FROM chat_users WHERE chat_id = ?")
	err := s.db.QueryRow(query, chatID).Scan(&count)
	return count, err
}
