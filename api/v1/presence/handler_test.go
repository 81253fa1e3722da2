package presence

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_backoffice/api/v1/middleware"
	"go_backoffice/internal/audit"
	"go_backoffice/internal/presence"

	"github.com/gin-gonic/gin"
)

func setupPresenceRouter(tracker *presence.Tracker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(nil, tracker)

	withActor := func(c *gin.Context) {
		middleware.SetActorForTest(c, audit.Actor{ID: 7, Role: "user"})
	}

	r.POST("/api/presence/login", withActor, h.Login)
	r.POST("/api/presence/logout", withActor, h.Logout)
	return r
}

type markResponse struct {
	Code int `json:"code"`
	Data struct {
		Presence presence.Record `json:"presence"`
	} `json:"data"`
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_DefaultsToActor(t *testing.T) {
	tracker := presence.NewTracker(nil)
	r := setupPresenceRouter(tracker)

	w := post(r, "/api/presence/login", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp markResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !resp.Data.Presence.Online {
		t.Error("Expected online presence after login")
	}

	if rec, ok := tracker.Get(7); !ok || !rec.Online {
		t.Error("Actor's record should exist and be online")
	}
}

func TestLogin_ExplicitUserID(t *testing.T) {
	tracker := presence.NewTracker(nil)
	r := setupPresenceRouter(tracker)

	w := post(r, "/api/presence/login", `{"userId":42}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	if rec, ok := tracker.Get(42); !ok || !rec.Online {
		t.Error("Explicit user's record should exist and be online")
	}
}

func TestLogin_RejectsNonPositiveUserID(t *testing.T) {
	r := setupPresenceRouter(presence.NewTracker(nil))

	w := post(r, "/api/presence/login", `{"userId":-1}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestLogout_UnknownUserIsNotAnError(t *testing.T) {
	tracker := presence.NewTracker(nil)
	r := setupPresenceRouter(tracker)

	w := post(r, "/api/presence/logout", `{"userId":999}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for never-seen user, got %d", w.Code)
	}

	var resp markResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Data.Presence.Online {
		t.Error("Unknown user logout should report offline zero record")
	}
}

func TestLoginThenLogout(t *testing.T) {
	tracker := presence.NewTracker(nil)
	r := setupPresenceRouter(tracker)

	post(r, "/api/presence/login", "")
	w := post(r, "/api/presence/logout", "")

	var resp markResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Data.Presence.Online {
		t.Error("Expected offline after logout")
	}
	if resp.Data.Presence.LastLogoutAt == nil {
		t.Error("Expected LastLogoutAt set after logout")
	}
}
