package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBot(t *testing.T) *Bot {
	t.Helper()
	b, err := New()
	require.NoError(t, err)
	return b
}

func TestRespond_Greeting(t *testing.T) {
	r, err := newBot(t).Respond("Hi there!", Context{FirstName: "Ana"})
	require.NoError(t, err)
	assert.Contains(t, r.Text, "Hello Ana!")
	assert.Len(t, r.Suggestions, 4)
	assert.Empty(t, r.Actions)
}

func TestRespond_WholeWordOnly(t *testing.T) {
	// "this" and "shipping" contain "hi" but are not greetings.
	r, err := newBot(t).Respond("this shipping thing", Context{})
	require.NoError(t, err)
	assert.Contains(t, r.Text, "I'm here to help you with your career development")
}

func TestRespond_FirstMatchWins(t *testing.T) {
	r, err := newBot(t).Respond("which job needs which skills", Context{})
	require.NoError(t, err)
	require.Len(t, r.Actions, 1)
	assert.Equal(t, "/opportunities", r.Actions[0].Target)
}

func TestRespond_ResumeBranches(t *testing.T) {
	b := newBot(t)

	with, err := b.Respond("check my CV", Context{HasResume: true})
	require.NoError(t, err)
	assert.Contains(t, with.Text, "uploaded your resume")
	assert.Empty(t, with.Actions)

	without, err := b.Respond("check my resume", Context{HasResume: false})
	require.NoError(t, err)
	assert.Contains(t, without.Text, "haven't uploaded")
	require.Len(t, without.Actions, 1)
	assert.Equal(t, "/profile", without.Actions[0].Target)
}

func TestRespond_NavigateTargets(t *testing.T) {
	b := newBot(t)
	cases := map[string]string{
		"what should I learn":    "/skills",
		"any training available": "/courses",
		"track my progress":      "/track",
	}
	for msg, target := range cases {
		r, err := b.Respond(msg, Context{})
		require.NoError(t, err, msg)
		require.Len(t, r.Actions, 1, msg)
		assert.Equal(t, target, r.Actions[0].Target, msg)
	}
}

func TestRespond_EmptyMessage(t *testing.T) {
	_, err := newBot(t).Respond("   ", Context{})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestRespond_GreetingWithoutName(t *testing.T) {
	r, err := newBot(t).Respond("hello", Context{})
	require.NoError(t, err)
	assert.Contains(t, r.Text, "Hello there!")
}

func TestParse_Validation(t *testing.T) {
	_, err := Parse([]byte("rules: []\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("rules:\n  - name: x\n    keywords: [a]\n    when: sometimes\nfallback:\n  text: ok\n"))
	assert.Error(t, err)

	b, err := Parse([]byte("rules:\n  - name: x\n    keywords: [Ping]\n    response: {text: pong}\nfallback:\n  text: ok\n"))
	require.NoError(t, err)
	r, err := b.Respond("PING", Context{})
	require.NoError(t, err)
	assert.Equal(t, "pong", r.Text)
}
