package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"career-portal/internal/domain/activity"
	"career-portal/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func fakeClient(h *Hub, userID uuid.UUID) *Client {
	return &Client{hub: h, userID: userID, send: make(chan []byte, sendBuffer)}
}

func TestHub_NotifyActivityTargetsOwner(t *testing.T) {
	h := startHub(t)
	ana, budi := uuid.New(), uuid.New()
	c1, c2, other := fakeClient(h, ana), fakeClient(h, ana), fakeClient(h, budi)
	h.Register(c1)
	h.Register(c2)
	h.Register(other)
	require.Eventually(t, func() bool { return h.ClientCount() == 3 }, time.Second, 5*time.Millisecond)

	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	h.NotifyActivity(context.Background(), activity.Activity{
		UserID: ana, Action: activity.ActionJobApplied, Description: "Applied to Backend", Timestamp: at,
	})

	for _, c := range []*Client{c1, c2} {
		select {
		case raw := <-c.send:
			var evt ActivityEvent
			require.NoError(t, json.Unmarshal(raw, &evt))
			assert.Equal(t, EventActivity, evt.Type)
			assert.Equal(t, activity.ActionJobApplied, evt.Action)
			assert.Equal(t, "Applied to Backend", evt.Description)
			assert.True(t, at.Equal(evt.Timestamp))
		case <-time.After(time.Second):
			t.Fatal("no event delivered")
		}
	}
	select {
	case <-other.send:
		t.Fatal("event leaked to another user")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	id := uuid.New()
	c := fakeClient(h, id)
	h.Register(c)
	require.Eventually(t, func() bool { return h.Connected(id) }, time.Second, 5*time.Millisecond)

	h.Unregister(c)
	require.Eventually(t, func() bool { return !h.Connected(id) }, time.Second, 5*time.Millisecond)
	_, open := <-c.send
	assert.False(t, open)

	// notifying a user without sockets is a no-op
	h.NotifyActivity(context.Background(), activity.Activity{UserID: id, Action: activity.ActionUserLogin})
}

func TestHandler_RejectsMissingOrBadToken(t *testing.T) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	app := fiber.New()
	NewHandler(NewHub(nil), svc, nil, nil).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	refresh, err := svc.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	resp, err = app.Test(httptest.NewRequest("GET", "/ws?token="+refresh, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
