package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/response"
)

type envelope struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func next(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return env
}

func TestNewDisplayReceivesCurrentState(t *testing.T) {
	h := NewHub(0, nil, 0)
	h.SetState(domain.AvatarListening)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	env := next(t, conn)
	if env.Type != "state" || env.Payload["state"] != "listening" {
		t.Fatalf("got %+v", env)
	}
}

func TestBroadcastsStateCaptionAndReply(t *testing.T) {
	h := NewHub(0, []string{"*"}, 0)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	if env := next(t, conn); env.Payload["state"] != "idle" {
		t.Fatalf("initial state: %+v", env)
	}

	h.SetState(domain.AvatarSpeaking)
	h.Caption("Good morning")
	h.ShowReply(response.Reply{
		Format: domain.FormatStructured,
		Text:   "Raj Patel, Engineering",
		Fields: []response.Field{{Key: "Department", Value: "Engineering"}},
	})

	if env := next(t, conn); env.Type != "state" || env.Payload["state"] != "speaking" {
		t.Errorf("state: %+v", env)
	}
	if env := next(t, conn); env.Type != "caption" || env.Payload["text"] != "Good morning" {
		t.Errorf("caption: %+v", env)
	}
	env := next(t, conn)
	if env.Type != "reply" || env.Payload["text"] != "Raj Patel, Engineering" {
		t.Errorf("reply: %+v", env)
	}
	if h.State() != domain.AvatarSpeaking {
		t.Errorf("State() = %s", h.State())
	}
}

func TestPingControlGetsPong(t *testing.T) {
	h := NewHub(0, nil, 0)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	next(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"control","payload":{"action":"ping"}}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	env := next(t, conn)
	if env.Type != "status" || env.Payload["status"] != "pong" {
		t.Fatalf("got %+v", env)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`not json`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	env = next(t, conn)
	if env.Type != "error" || env.Payload["code"] != "INVALID_MESSAGE" {
		t.Fatalf("got %+v", env)
	}
}

func TestRejectsDisallowedOrigin(t *testing.T) {
	h := NewHub(0, []string{"http://kiosk.local"}, 0)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}
}

func TestClientLimit(t *testing.T) {
	h := NewHub(0, nil, 1)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	first := dial(t, srv)
	next(t, first)

	second := dial(t, srv)
	env := next(t, second)
	if env.Type != "error" || env.Payload["code"] != "TOO_MANY_CLIENTS" {
		t.Fatalf("got %+v", env)
	}
}

func TestHealth(t *testing.T) {
	h := NewHub(0, nil, 0)
	h.SetState(domain.AvatarThinking)
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	var got map[string]interface{}
	if err := sonic.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["status"] != "ok" || got["state"] != "thinking" {
		t.Fatalf("got %v", got)
	}
}
