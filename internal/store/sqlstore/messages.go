package sqlstore

import (
	"github.com/pliu/parley/internal/models"
)

func (s *SQLStore) CreateMessage(msg *models.Message) error {
	query := s.rebind("INSERT INTO messages (chat_id, user_id, text) VALUES (?, ?, ?) RETURNING id, created_at")
	return s.db.QueryRow(query, msg.ChatID, msg.UserID, msg.Text).Scan(&msg.ID, &msg.CreatedAt)
}

func (s *SQLStore) GetMessage(chatID, messageID int) (*models.Message, error) {
	var m models.Message
	query := s.rebind("SELECT id, chat_id, user_id, text, created_at FROM messages WHERE id = ? AND chat_id = ?")
	err := s.db.QueryRow(query, messageID, chatID).Scan(&m.ID, &m.ChatID, &m.UserID, &m.Text, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *SQLStore) GetChatMessages(chatID int) ([]models.Message, error) {
	// Ties on created_at break by insertion order.
	query := s.rebind(`
		SELECT id, chat_id, user_id, text, created_at
		FROM messages
		WHERE chat_id = ?
		ORDER BY created_at ASC, id ASC
	`)
	rows, err := s.db.Query(query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.UserID, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *SQLStore) UpdateMessage(msg *models.Message) error {
	query := s.rebind("UPDATE messages SET text = ? WHERE id = ? AND chat_id = ?")
	_, err := s.db.Exec(query, msg.Text, msg.ID, msg.ChatID)
	return err
}

func (s *SQLStore) DeleteMessage(chatID, messageID int) error {
	query := s.rebind("DELETE FROM messages WHERE id = ? AND chat_id = ?")
	_, err := s.db.Exec(query, messageID, chatID)
	return err
}

func (s *SQLStore) CountChatMessages(chatID int) (int, error) {
	var count int
	query := s.rebind("SELECT COUNT(*) FROM messages WHERE chat_id = ?")
	err := s.db.QueryRow(query, chatID).Scan(&count)
	return count, err
}
