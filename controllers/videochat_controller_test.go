package controllers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-api/models"
)

func TestCreateVideoChatSession(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "user-a", "alice")

	// No body: preferences are optional.
	w := ts.request(t, http.MethodPost, "/api/v1/video-chat/sessions", user.ID, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	session := decodeBody(t, w)["session"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(session["session_id"].(string), "session_"))
	assert.Equal(t, true, session["is_active"])

	var stored models.VideoChatSession
	require.NoError(t, ts.db.First(&stored, "id = ?", session["id"]).Error)

	var participants []models.VideoChatParticipant
	require.NoError(t, json.Unmarshal([]byte(stored.Participants), &participants))
	require.Len(t, participants, 1)
	assert.Equal(t, user.ID, participants[0].UserID)
	assert.Nil(t, participants[0].Preferences)
}

func TestCreateVideoChatSessionWithPreferences(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "user-a", "alice")

	w := ts.request(t, http.MethodPost, "/api/v1/video-chat/sessions", user.ID, map[string]interface{}{
		"preferences": map[string]interface{}{
			"language": "en",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	sessionID := decodeBody(t, w)["session"].(map[string]interface{})["id"].(string)

	var stored models.VideoChatSession
	require.NoError(t, ts.db.First(&stored, "id = ?", sessionID).Error)

	var participants []models.VideoChatParticipant
	require.NoError(t, json.Unmarshal([]byte(stored.Participants), &participants))
	require.Len(t, participants, 1)
	require.NotNil(t, participants[0].Preferences)
	require.NotNil(t, participants[0].Preferences.Language)
	assert.Equal(t, "en", *participants[0].Preferences.Language)
}

func TestGetVideoChatSessions(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "user-a", "alice")

	ts.request(t, http.MethodPost, "/api/v1/video-chat/sessions", user.ID, nil)
	ts.request(t, http.MethodPost, "/api/v1/video-chat/sessions", user.ID, nil)

	// One finished session should not be listed.
	require.NoError(t, ts.db.Create(&models.VideoChatSession{
		ID:           "done-session",
		SessionID:    "session_0_done",
		Participants: "[]",
		IsActive:     false,
	}).Error)

	w := ts.request(t, http.MethodGet, "/api/v1/video-chat/sessions", user.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	sessions := decodeBody(t, w)["sessions"].([]interface{})
	assert.Len(t, sessions, 2)

	w = ts.request(t, http.MethodGet, "/api/v1/video-chat/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
