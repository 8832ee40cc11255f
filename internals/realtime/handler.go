package realtime

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"coachingku_backend/internals/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
	sendBuffer = 32
)

type authenticateMsg struct {
	Event string `json:"event"`
	Data  struct {
		UserID    string `json:"userId"`
		StudentID string `json:"studentId"`
		Role      string `json:"role"`
		Class     string `json:"class"`
		Section   string `json:"section"`
	} `json:"data"`
}

// Upgrade rejects non-websocket requests before the handler runs.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler serves /ws. The client's first message must be an `authenticate`
// frame; rooms are derived from it. Everything after that is server→client.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		cl := h.register(sendBuffer)
		defer func() {
			h.unregister(cl)
			_ = conn.Close()
		}()

		// writer
		done := make(chan struct{})
		go func() {
			defer close(done)
			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()
			for {
				select {
				case msg, ok := <-cl.send:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if !ok {
						_ = conn.WriteMessage(websocket.CloseMessage, nil)
						return
					}
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				case <-ticker.C:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				}
			}
		}()

		// reader: only the authenticate frame matters
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))

			var msg authenticateMsg
			if err := json.Unmarshal(raw, &msg); err != nil || msg.Event != "authenticate" {
				continue
			}
			rooms := RoomsForAuth(msg.Data.Role, msg.Data.UserID, msg.Data.StudentID, msg.Data.Class, msg.Data.Section)
			h.join(cl, rooms...)
			logger.Log.WithField("rooms", rooms).Debug("websocket client authenticated")
		}
		<-done
	})
}

// RoomsForAuth maps an authenticate payload to room names.
func RoomsForAuth(role, userID, studentID, class, section string) []string {
	var rooms []string
	if studentID != "" {
		rooms = append(rooms, StudentRoom(studentID))
		if class != "" {
			rooms = append(rooms, ClassRoom(class, ""))
			if section != "" {
				rooms = append(rooms, ClassRoom(class, section))
			}
		}
	}
	if userID != "" && (role == "admin" || role == "staff" || role == "user") {
		rooms = append(rooms, UserRoom(userID))
	}
	return rooms
}
