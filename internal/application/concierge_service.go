package application

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anshuman365/hotel-royal-orchid-management/internal/domain"
	"github.com/anshuman365/hotel-royal-orchid-management/internal/openai"
)

const (
	conciergeModel       = "llama-3.1-8b-instant"
	conciergeMaxTokens   = 500
	conciergeTemperature = 0.7
	conciergeHistoryMax  = 10
)

// ConciergeService answers guest questions over a chat interface, grounded
// in the live room catalog and offer list.
type ConciergeService struct {
	chatbotRepo  domain.ChatbotRepository
	roomRepo     domain.RoomRepository
	offerRepo    domain.OfferRepository
	openaiClient *openai.Client
	rateLimiter  *RateLimiter
}

// NewConciergeService creates a new instance of the concierge service
func NewConciergeService(
	chatbotRepo domain.ChatbotRepository,
	roomRepo domain.RoomRepository,
	offerRepo domain.OfferRepository,
	openaiClient *openai.Client,
) *ConciergeService {
	return &ConciergeService{
		chatbotRepo:  chatbotRepo,
		roomRepo:     roomRepo,
		offerRepo:    offerRepo,
		openaiClient: openaiClient,
		rateLimiter:  NewRateLimiter(1*time.Minute, 10),
	}
}

// ProcessMessage handles one guest message: rate-limits the conversation,
// loads or starts its history, calls the model with live hotel context, and
// persists both turns.
func (s *ConciergeService) ProcessMessage(req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message is required")
	}

	limiterKey := "anonymous"
	if req.ConversationID != nil {
		limiterKey = *req.ConversationID
	}
	if allowed, err := s.rateLimiter.Allow(limiterKey); !allowed {
		return nil, err
	}

	conversation, err := s.loadOrCreateConversation(req)
	if err != nil {
		return nil, err
	}

	conversation.Messages = append(conversation.Messages, domain.ChatMessage{
		Role:    "user",
		Content: req.Message,
	})

	hotelContext, err := s.buildHotelContext()
	if err != nil {
		log.Printf("concierge: error building hotel context: %v", err)
		hotelContext = ""
	}

	messages := []openai.Message{
		{Role: "system", Content: s.buildSystemPrompt(hotelContext)},
	}

	// Only the most recent turns go to the model to stay under token limits
	startIdx := 0
	if len(conversation.Messages) > conciergeHistoryMax {
		startIdx = len(conversation.Messages) - conciergeHistoryMax
	}
	for _, msg := range conversation.Messages[startIdx:] {
		messages = append(messages, openai.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	completion, err := s.openaiClient.CreateChatCompletion(openai.ChatCompletionRequest{
		Model:       conciergeModel,
		Messages:    messages,
		Temperature: conciergeTemperature,
		MaxTokens:   conciergeMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("error calling chat model: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no response from chat model")
	}

	reply := completion.Choices[0].Message.Content
	conversation.Messages = append(conversation.Messages, domain.ChatMessage{
		Role:    "assistant",
		Content: reply,
	})
	conversation.UpdatedAt = time.Now()

	if err := s.chatbotRepo.UpdateConversation(conversation); err != nil {
		log.Printf("concierge: error saving conversation %s: %v", conversation.ID, err)
	}

	return &domain.ChatResponse{
		Message:          reply,
		ConversationID:   conversation.ID,
		SuggestedActions: suggestActions(req.Message),
		RequiresHuman:    requiresHuman(req.Message),
	}, nil
}

// GetConversation returns a stored conversation by id
func (s *ConciergeService) GetConversation(conversationID string) (*domain.ConversationHistory, error) {
	return s.chatbotRepo.GetConversation(conversationID)
}

func (s *ConciergeService) loadOrCreateConversation(req *domain.ChatRequest) (*domain.ConversationHistory, error) {
	if req.ConversationID != nil && *req.ConversationID != "" {
		conversation, err := s.chatbotRepo.GetConversation(*req.ConversationID)
		if err == nil {
			return conversation, nil
		}
		log.Printf("concierge: conversation %s not found, starting a new one", *req.ConversationID)
	}

	conversation := &domain.ConversationHistory{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Messages:  []domain.ChatMessage{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.chatbotRepo.SaveConversation(conversation); err != nil {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}
	return conversation, nil
}

// buildHotelContext renders the live room catalog and active offers into a
// plain-text block the model can quote from.
func (s *ConciergeService) buildHotelContext() (string, error) {
	var sb strings.Builder

	rooms, err := s.roomRepo.GetAllRooms()
	if err != nil {
		return "", fmt.Errorf("error loading rooms: %w", err)
	}
	sb.WriteString("AVAILABLE ROOMS:\n")
	for _, room := range rooms {
		if room.Status != domain.RoomAvailable {
			continue
		}
		sb.WriteString(fmt.Sprintf("- %s (%s): ₹%.2f per night, up to %d adults and %d children\n",
			room.Name, room.RoomType, room.Price, room.MaxAdults, room.MaxChildren))
	}

	offers, err := s.offerRepo.ListPublicActive()
	if err != nil {
		return sb.String(), fmt.Errorf("error loading offers: %w", err)
	}
	if len(offers) > 0 {
		sb.WriteString("\nCURRENT OFFERS:\n")
		for _, offer := range offers {
			sb.WriteString(fmt.Sprintf("- %s (code %s): %s\n", offer.Name, offer.Code, offer.Description))
		}
	}

	return sb.String(), nil
}

func (s *ConciergeService) buildSystemPrompt(hotelContext string) string {
	return fmt.Sprintf(`You are the virtual concierge of Hotel Royal Orchid. Answer guest
questions about rooms, prices, offers, and bookings using only the hotel
information below. Be warm and concise. If you do not know something, say so
and suggest contacting the front desk. Never invent prices or availability.

%s`, hotelContext)
}

// suggestActions derives quick-reply suggestions from the guest's message
func suggestActions(message string) []string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "book") || strings.Contains(lower, "reserv"):
		return []string{"Check room availability", "View current offers"}
	case strings.Contains(lower, "offer") || strings.Contains(lower, "discount") || strings.Contains(lower, "coupon"):
		return []string{"View current offers", "Book a room"}
	case strings.Contains(lower, "room") || strings.Contains(lower, "price"):
		return []string{"View rooms", "Check availability"}
	default:
		return nil
	}
}

// requiresHuman flags messages the bot should hand off to staff
func requiresHuman(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range []string{"complaint", "refund", "emergency", "manager", "urgent"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
