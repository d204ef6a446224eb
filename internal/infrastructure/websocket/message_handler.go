package websocket

import (
	"encoding/json"
	"time"

	"barangku/pkg/logger"
)

// WebSocket message types exchanged with the mobile client.
const (
	MessageTypePing           = "ping"
	MessageTypePong           = "pong"
	MessageTypeNewMessage     = "new_message"
	MessageTypeChatListUpdate = "chat_list_update"
	MessageTypeNotification   = "notification"
	MessageTypeJoinChatRoom   = "join_chat_room"
	MessageTypeLeaveChatRoom  = "leave_chat_room"
	MessageTypeError          = "error"
)

// WSMessage is the envelope for everything crossing the socket.
type WSMessage struct {
	Type      string      `json:"type"`
	ChatID    string      `json:"chat_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// HandleClientMessage processes incoming WebSocket messages
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var wsMessage WSMessage

	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		logger.Warn("WebSocket: failed to unmarshal message from client %s: %v", client.UserID, err)
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch wsMessage.Type {
	case MessageTypePing:
		m.RefreshRooms(client.UserID)
		m.sendToClient(client, WSMessage{
			Type:      MessageTypePong,
			Data:      map[string]string{"status": "alive"},
			Timestamp: time.Now().Format(time.RFC3339),
		})

	case MessageTypeJoinChatRoom:
		if wsMessage.ChatID == "" {
			m.sendErrorToClient(client, "chat_id is required")
			return
		}
		m.JoinRoom(client.UserID, wsMessage.ChatID)

	case MessageTypeLeaveChatRoom:
		if wsMessage.ChatID == "" {
			m.sendErrorToClient(client, "chat_id is required")
			return
		}
		m.LeaveRoom(client.UserID, wsMessage.ChatID)

	default:
		logger.Debug("WebSocket: unknown message type '%s' from client %s", wsMessage.Type, client.UserID)
		m.sendErrorToClient(client, "Unknown message type")
	}
}

func (m *Manager) sendToClient(client *Client, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("WebSocket: failed to marshal message: %v", err)
		return
	}

	select {
	case client.Send <- data:
	default:
		logger.Warn("Dropping message for slow client %s", client.UserID)
	}
}

func (m *Manager) sendErrorToClient(client *Client, errorMsg string) {
	m.sendToClient(client, WSMessage{
		Type:      MessageTypeError,
		Data:      map[string]string{"message": errorMsg},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
