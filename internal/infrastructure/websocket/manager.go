package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"barangku/pkg/logger"
)

// Client represents a WebSocket connection client
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// RoomHooks is notified when a user enters or leaves a conversation room.
// The presence side-channel hangs off these callbacks.
type RoomHooks interface {
	OnJoin(userID, chatID string)
	OnLeave(userID, chatID string)
}

// Manager manages all active WebSocket connections and their room membership.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]bool // chatID -> set of userIDs
	userRooms  map[string]map[string]bool // userID -> set of chatIDs
	Register   chan *Client
	Unregister chan *Client
	hooks      RoomHooks
	mutex      sync.RWMutex
}

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]bool),
		userRooms:  make(map[string]map[string]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// SetRoomHooks wires the presence side-channel. Must be called before Start.
func (m *Manager) SetRoomHooks(hooks RoomHooks) {
	m.hooks = hooks
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Debug("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.removeClient(client)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// removeClient drops the connection and leaves every joined room. Leaving on
// disconnect is what guarantees the presence announcement is cleared on every
// exit path, including abnormal closes. A stale connection whose user already
// reconnected only tears itself down; the fresh connection's state stays.
func (m *Manager) removeClient(client *Client) {
	m.mutex.Lock()
	if current, ok := m.clients[client.UserID]; !ok || current != client {
		m.mutex.Unlock()
		close(client.Send)
		logger.Debug("Stale connection dropped: %s", client.UserID)
		return
	}

	var left []string
	for chatID := range m.userRooms[client.UserID] {
		delete(m.rooms[chatID], client.UserID)
		if len(m.rooms[chatID]) == 0 {
			delete(m.rooms, chatID)
		}
		left = append(left, chatID)
	}
	delete(m.userRooms, client.UserID)
	delete(m.clients, client.UserID)
	close(client.Send)
	m.mutex.Unlock()

	if m.hooks != nil {
		for _, chatID := range left {
			m.hooks.OnLeave(client.UserID, chatID)
		}
	}
	logger.Debug("Client unregistered: %s", client.UserID)
}

// JoinRoom marks the user as actively viewing the conversation.
func (m *Manager) JoinRoom(userID, chatID string) {
	m.mutex.Lock()
	if m.rooms[chatID] == nil {
		m.rooms[chatID] = make(map[string]bool)
	}
	m.rooms[chatID][userID] = true
	if m.userRooms[userID] == nil {
		m.userRooms[userID] = make(map[string]bool)
	}
	m.userRooms[userID][chatID] = true
	m.mutex.Unlock()

	if m.hooks != nil {
		m.hooks.OnJoin(userID, chatID)
	}
}

// RefreshRooms re-announces every room the user is currently in. Clients ping
// periodically, which keeps the presence TTL from expiring while a
// conversation stays open.
func (m *Manager) RefreshRooms(userID string) {
	m.mutex.RLock()
	var joined []string
	for chatID := range m.userRooms[userID] {
		joined = append(joined, chatID)
	}
	m.mutex.RUnlock()

	if m.hooks == nil {
		return
	}
	for _, chatID := range joined {
		m.hooks.OnJoin(userID, chatID)
	}
}

// LeaveRoom clears the active-viewing mark.
func (m *Manager) LeaveRoom(userID, chatID string) {
	m.mutex.Lock()
	delete(m.rooms[chatID], userID)
	if len(m.rooms[chatID]) == 0 {
		delete(m.rooms, chatID)
	}
	delete(m.userRooms[userID], chatID)
	m.mutex.Unlock()

	if m.hooks != nil {
		m.hooks.OnLeave(userID, chatID)
	}
}

// SendToUser sends a message to a specific user
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		logger.Warn("Dropping message for slow client %s", userID)
	}
}

// SendToChatRoom broadcasts to every user currently viewing the conversation,
// optionally excluding the sender.
func (m *Manager) SendToChatRoom(chatID string, message []byte, excludeUserID string) {
	m.mutex.RLock()
	var targets []*Client
	for userID := range m.rooms[chatID] {
		if userID == excludeUserID {
			continue
		}
		if client, ok := m.clients[userID]; ok {
			targets = append(targets, client)
		}
	}
	m.mutex.RUnlock()

	for _, client := range targets {
		select {
		case client.Send <- message:
		default:
			logger.Warn("Dropping room message for slow client %s", client.UserID)
		}
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read: %v", err)
			}
			break
		}

		m.HandleClientMessage(c, message)
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("websocket write: %v", err)
			return
		}
	}
}
