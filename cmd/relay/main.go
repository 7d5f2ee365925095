package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/config"
	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/relay"
	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the game client is served from anywhere
	},
}

func main() {
	cfg := config.Load()
	config.SetupLogger(cfg)

	hub := ws.NewHub()
	rm := relay.NewManager()
	router := relay.NewRouter(rm)

	hub.OnMessage = router.HandleMessage
	hub.OnDisconnect = router.HandleDisconnect

	go hub.Run()

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(hub, w, r)
	})
	http.HandleFunc("/invite", func(w http.ResponseWriter, r *http.Request) {
		handleInvite(cfg, w, r)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("relay starting", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("relay failed", "error", err)
		os.Exit(1)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func handleWebSocket(hub *ws.Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(uuid.New().String(), hub, conn)
	hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

// handleInvite renders a QR code for a room's join link so a second
// player can scan it instead of typing the code.
func handleInvite(cfg *config.Config, w http.ResponseWriter, r *http.Request) {
	room := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("room")))
	if len(room) != 4 {
		http.Error(w, "room code must be 4 letters", http.StatusBadRequest)
		return
	}

	joinURL := fmt.Sprintf("%s/join?room=%s", cfg.PublicURL, room)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		slog.Error("failed to encode invite QR", "error", err)
		http.Error(w, "failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
