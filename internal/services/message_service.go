package services

import (
	"context"
	"errors"
	"strings"

	"stitch-backend/internal/models"
	"stitch-backend/internal/realtime"
	"stitch-backend/internal/repositories"
)

const maxMessageLength = 5000

type MessageService struct {
	MessageRepo *repositories.MessageRepository
	UserRepo    *repositories.UserRepository
	Hub         *realtime.Hub
}

func NewMessageService(messageRepo *repositories.MessageRepository, userRepo *repositories.UserRepository, hub *realtime.Hub) *MessageService {
	return &MessageService{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Hub:         hub,
	}
}

func (s *MessageService) Send(ctx context.Context, senderID int, req *models.SendMessageRequest) (*models.Message, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" && req.AttachmentURL == "" {
		return nil, errors.New("message body is required")
	}
	if len(body) > maxMessageLength {
		return nil, errors.New("message is too long")
	}
	if _, err := s.UserRepo.Get(ctx, req.RecipientID); err != nil {
		return nil, errors.New("recipient not found")
	}

	msg := &models.Message{
		OrderID:       req.OrderID,
		SenderID:      senderID,
		RecipientID:   req.RecipientID,
		Body:          body,
		AttachmentURL: req.AttachmentURL,
	}
	if err := s.MessageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.Hub.Publish(realtime.Change{
		EventType: realtime.EventInsert,
		Table:     "messages",
		New:       msg,
	})
	return msg, nil
}

func (s *MessageService) Conversation(ctx context.Context, userA, userB int) ([]*models.Message, error) {
	return s.MessageRepo.ListConversation(ctx, userA, userB)
}

func (s *MessageService) ByOrder(ctx context.Context, orderID int) ([]*models.Message, error) {
	return s.MessageRepo.ListByOrder(ctx, orderID)
}

func (s *MessageService) MarkRead(ctx context.Context, id, recipientID int) error {
	return s.MessageRepo.MarkRead(ctx, id, recipientID)
}
