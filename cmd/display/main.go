// Command display mirrors the receptionist avatar from a running hub onto
// this terminal.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/room4-2/frontdesk/avatar"
	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/messages"
	"github.com/room4-2/frontdesk/response"
)

type serverMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func main() {
	serverURL := flag.String("server", "ws://localhost:8080/ws", "Presenter hub URL")
	flag.Parse()

	log.Printf("🔌 Connecting to %s...", *serverURL)
	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()
	log.Println("✅ Connected!")

	term := avatar.NewTerminal(os.Stdout)
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			var msg serverMessage
			if err := sonic.Unmarshal(data, &msg); err != nil {
				log.Println("Parse error:", err)
				continue
			}
			render(term, msg)
		}
	}()

	ping, _ := sonic.Marshal(messages.ClientMessage{Type: "control", Payload: json.RawMessage(`{"action":"ping"}`)})
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			log.Println("Connection closed")
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				log.Printf("Send error: %v", err)
				return
			}
		case <-interrupt:
			log.Println("\n👋 Interrupted, closing...")
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func render(term *avatar.Terminal, msg serverMessage) {
	switch msg.Type {
	case messages.TypeState:
		var p messages.StatePayload
		if sonic.Unmarshal(msg.Payload, &p) == nil {
			term.SetState(p.State)
		}
	case messages.TypeCaption:
		var p messages.CaptionPayload
		if sonic.Unmarshal(msg.Payload, &p) == nil {
			term.Caption(p.Text)
		}
	case messages.TypeReply:
		var r response.Reply
		if sonic.Unmarshal(msg.Payload, &r) == nil && r.Format == domain.FormatStructured {
			term.ShowReply(r)
		}
	case messages.TypeStatus:
		var p messages.StatusPayload
		if sonic.Unmarshal(msg.Payload, &p) == nil && p.Status != "pong" {
			log.Printf("📊 Status: %s %s", p.Status, p.Message)
		}
	case messages.TypeError:
		log.Printf("❌ Error: %s", string(msg.Payload))
	}
}
