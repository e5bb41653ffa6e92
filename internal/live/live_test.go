package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/adamavenir/murmur/internal/types"
)

var upgrader = websocket.Upgrader{}

func TestSocketURL(t *testing.T) {
	tests := []struct {
		base    string
		room    string
		want    string
		wantErr bool
	}{
		{"http://localhost:8080", "room-1", "ws://localhost:8080/ws/rooms/room-1?clientId=c1", false},
		{"https://chat.example.com/", "room 2", "wss://chat.example.com/ws/rooms/room%202?clientId=c1", false},
		{"ftp://nope", "room-1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got, err := socketURL(tt.base, tt.room, "c1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("socketURL(%q) error = %v, wantErr %v", tt.base, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("socketURL(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestEventsDeliveredInOrder(t *testing.T) {
	frames := []string{
		`{"messageId":"m1","sender":"alice","content":"first","timeStamp":1}`,
		`{"messageId":"m2","sender":"bob","content":"second","timeStamp":2}`,
		`{"messageId":"m3","sender":"carol","content":"third","timeStamp":3}`,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/ws/rooms/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Fatalf("upgrade: %v", err)
		}
		defer ws.Close()
		for _, frame := range frames {
			if err := ws.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// Hold the connection open until the client closes.
		ws.ReadMessage()
	}))
	defer server.Close()

	conn, err := Dial(context.Background(), server.URL, "room-1", "c1")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	for i, want := range frames {
		select {
		case got := <-conn.Events():
			if string(got) != want {
				t.Errorf("frame %d = %s, want %s", i, got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for frame %d", i)
		}
	}
}

func TestSendPublishesOutgoingMessage(t *testing.T) {
	received := make(chan types.OutgoingMessage, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Fatalf("upgrade: %v", err)
		}
		defer ws.Close()
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var out types.OutgoingMessage
		if err := json.Unmarshal(data, &out); err != nil {
			t.Errorf("decode outgoing: %v", err)
			return
		}
		received <- out
	}))
	defer server.Close()

	conn, err := Dial(context.Background(), server.URL, "room-1", "c1")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	replyTo := "m9"
	out := types.OutgoingMessage{
		Sender:           "alice",
		Content:          "a < b & c",
		RoomID:           "room-1",
		MentionedUsers:   []string{},
		ReplyToMessageID: &replyTo,
	}
	if err := conn.Send(out); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case got := <-received:
		if got.Sender != "alice" || got.RoomID != "room-1" {
			t.Errorf("server received %+v", got)
		}
		if got.Content != "a < b & c" {
			t.Errorf("content = %q, want unescaped text", got.Content)
		}
		if got.ReplyToMessageID == nil || *got.ReplyToMessageID != "m9" {
			t.Errorf("replyToMessageId = %v, want m9", got.ReplyToMessageID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never received the published message")
	}
}

func TestEventsChannelClosesWhenServerHangsUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		ws.Close()
	}))
	defer server.Close()

	conn, err := Dial(context.Background(), server.URL, "room-1", "c1")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	select {
	case _, ok := <-conn.Events():
		if ok {
			t.Error("expected closed channel, got a payload")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel never closed")
	}
}
