package domain

import "time"

// ChatMessage is a single turn in a concierge conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is an inbound message to the concierge
type ChatRequest struct {
	Message        string  `json:"message"`
	ConversationID *string `json:"conversationId,omitempty"`
	UserID         *int    `json:"userId,omitempty"`
}

// ChatResponse is the concierge's reply
type ChatResponse struct {
	Message          string   `json:"message"`
	ConversationID   string   `json:"conversationId"`
	SuggestedActions []string `json:"suggestedActions,omitempty"`
	RequiresHuman    bool     `json:"requiresHuman"`
}

// ConversationHistory is a stored concierge conversation
type ConversationHistory struct {
	ID        string        `json:"id"`
	UserID    *int          `json:"userId,omitempty"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ChatbotRepository defines the interface for conversation persistence
type ChatbotRepository interface {
	SaveConversation(conversation *ConversationHistory) error
	GetConversation(conversationID string) (*ConversationHistory, error)
	UpdateConversation(conversation *ConversationHistory) error
	GetUserConversations(userID int) ([]ConversationHistory, error)
}
