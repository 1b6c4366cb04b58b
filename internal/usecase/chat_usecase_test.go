package usecase

import (
	"context"
	"testing"

	"career-portal/internal/chatbot"
	"career-portal/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_Message(t *testing.T) {
	h := newHarness()
	u := h.addUser("Ana")
	bot, err := chatbot.New()
	require.NoError(t, err)
	uc := NewChatUsecase(bot, h.store)

	reply, err := uc.Message(context.Background(), u.ID, "hello")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "Ana")

	missing, err := uc.Message(context.Background(), u.ID, "what about my resume")
	require.NoError(t, err)

	h.resumes.byUser[u.ID] = user.Resume{FileName: "cv.pdf"}
	uploaded, err := uc.Message(context.Background(), u.ID, "what about my resume")
	require.NoError(t, err)
	assert.NotEqual(t, missing.Text, uploaded.Text)
}

func TestChat_Errors(t *testing.T) {
	h := newHarness()
	u := h.addUser("Ana")
	bot, err := chatbot.New()
	require.NoError(t, err)
	uc := NewChatUsecase(bot, h.store)

	_, err = uc.Message(context.Background(), u.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.Message(context.Background(), uuid.New(), "hello")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
