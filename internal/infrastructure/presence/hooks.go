package presence

import (
	"context"
	"time"

	"barangku/pkg/logger"
)

// RoomHooks bridges WebSocket room membership to the presence store: joining
// a conversation room announces "actively viewing", leaving clears it. Leave
// fires on every exit path, including dropped connections.
type RoomHooks struct {
	store *Store
}

func NewRoomHooks(store *Store) *RoomHooks {
	return &RoomHooks{store: store}
}

func (h *RoomHooks) OnJoin(userID, chatID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := h.store.Announce(ctx, userID, chatID); err != nil {
		logger.SideEffect("presence_announce", err)
	}
}

func (h *RoomHooks) OnLeave(userID, chatID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := h.store.Clear(ctx, userID, chatID); err != nil {
		logger.SideEffect("presence_clear", err)
	}
}
