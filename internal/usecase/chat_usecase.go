package usecase

import (
	"context"
	"errors"
	"strings"

	"career-portal/internal/chatbot"
	"career-portal/internal/domain/user"

	"github.com/google/uuid"
)

type ChatUsecase interface {
	Message(ctx context.Context, userID uuid.UUID, message string) (chatbot.Reply, error)
}

type Chat struct {
	bot   *chatbot.Bot
	store UserStore
}

func NewChatUsecase(bot *chatbot.Bot, store UserStore) *Chat {
	return &Chat{bot: bot, store: store}
}

func (c *Chat) Message(ctx context.Context, userID uuid.UUID, message string) (chatbot.Reply, error) {
	if strings.TrimSpace(message) == "" {
		return chatbot.Reply{}, ErrInvalidInput
	}

	u, err := c.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return chatbot.Reply{}, ErrUserNotFound
		}
		return chatbot.Reply{}, ErrInternal
	}
	hasResume := true
	if _, err := c.store.Resumes.Get(ctx, userID); err != nil {
		if !errors.Is(err, user.ErrNoResume) {
			return chatbot.Reply{}, ErrInternal
		}
		hasResume = false
	}

	reply, err := c.bot.Respond(message, chatbot.Context{FirstName: u.FirstName, HasResume: hasResume})
	if err != nil {
		if errors.Is(err, chatbot.ErrEmptyMessage) {
			return chatbot.Reply{}, ErrInvalidInput
		}
		return chatbot.Reply{}, ErrInternal
	}
	return reply, nil
}
