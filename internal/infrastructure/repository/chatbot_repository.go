package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
)

type chatbotRepository struct {
	db *sql.DB
}

// NewChatbotRepository creates a new instance of chatbotRepository
func NewChatbotRepository(db *sql.DB) domain.ChatbotRepository {
	return &chatbotRepository{db: db}
}

// SaveConversation implements domain.ChatbotRepository
func (r *chatbotRepository) SaveConversation(conversation *domain.ConversationHistory) error {
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}

	messagesJSON, err := json.Marshal(conversation.Messages)
	if err != nil {
		return fmt.Errorf("error marshaling messages: %w", err)
	}

	query := `
		INSERT INTO conversation_history (id, user_id, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.Exec(query,
		conversation.ID,
		nullIntPtr(conversation.UserID),
		messagesJSON,
		conversation.CreatedAt,
		conversation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting conversation: %w", err)
	}
	return nil
}

// GetConversation implements domain.ChatbotRepository
func (r *chatbotRepository) GetConversation(conversationID string) (*domain.ConversationHistory, error) {
	query := `
		SELECT id, user_id, messages, created_at, updated_at
		FROM conversation_history
		WHERE id = $1`

	var conversation domain.ConversationHistory
	var userID sql.NullInt64
	var messagesJSON []byte

	err := r.db.QueryRow(query, conversationID).Scan(
		&conversation.ID,
		&userID,
		&messagesJSON,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("conversation %s not found", conversationID)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying conversation: %w", err)
	}

	if userID.Valid {
		v := int(userID.Int64)
		conversation.UserID = &v
	}
	if err := json.Unmarshal(messagesJSON, &conversation.Messages); err != nil {
		return nil, fmt.Errorf("error unmarshaling messages: %w", err)
	}

	return &conversation, nil
}

// UpdateConversation implements domain.ChatbotRepository
func (r *chatbotRepository) UpdateConversation(conversation *domain.ConversationHistory) error {
	messagesJSON, err := json.Marshal(conversation.Messages)
	if err != nil {
		return fmt.Errorf("error marshaling messages: %w", err)
	}

	result, err := r.db.Exec(`
		UPDATE conversation_history
		SET messages = $1, updated_at = $2
		WHERE id = $3`,
		messagesJSON, time.Now(), conversation.ID)
	if err != nil {
		return fmt.Errorf("error updating conversation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking conversation update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("conversation %s not found", conversation.ID)
	}
	return nil
}

// GetUserConversations implements domain.ChatbotRepository
func (r *chatbotRepository) GetUserConversations(userID int) ([]domain.ConversationHistory, error) {
	query := `
		SELECT id, user_id, messages, created_at, updated_at
		FROM conversation_history
		WHERE user_id = $1
		ORDER BY updated_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying conversations: %w", err)
	}
	defer rows.Close()

	var conversations []domain.ConversationHistory
	for rows.Next() {
		var conversation domain.ConversationHistory
		var uid sql.NullInt64
		var messagesJSON []byte

		err := rows.Scan(
			&conversation.ID,
			&uid,
			&messagesJSON,
			&conversation.CreatedAt,
			&conversation.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning conversation: %w", err)
		}

		if uid.Valid {
			v := int(uid.Int64)
			conversation.UserID = &v
		}
		if err := json.Unmarshal(messagesJSON, &conversation.Messages); err != nil {
			return nil, fmt.Errorf("error unmarshaling messages: %w", err)
		}
		conversations = append(conversations, conversation)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return conversations, nil
}

func nullIntPtr(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
