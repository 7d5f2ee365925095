package relay

import (
	"log/slog"
	"sync"
)

// Manager manages all active rooms.
type Manager struct {
	rooms map[string]*Room // code -> room
	mu    sync.RWMutex
}

// NewManager creates a new room manager.
func NewManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

// Create creates a room with a fresh code.
func (m *Manager) Create() *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]bool, len(m.rooms))
	for code := range m.rooms {
		existing[code] = true
	}

	code := GenerateCode(existing)
	room := NewRoom(code)
	m.rooms[code] = room

	slog.Info("room created", "code", code)
	return room
}

// GetOrCreate returns the room with the given code, creating it if
// needed. Joining by code is how invited peers arrive.
func (m *Manager) GetOrCreate(code string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	if room, ok := m.rooms[code]; ok {
		return room
	}
	room := NewRoom(code)
	m.rooms[code] = room
	slog.Info("room created", "code", code)
	return room
}

// Get returns a room by its code, or nil.
func (m *Manager) Get(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// Remove removes a room by its code.
func (m *Manager) Remove(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, code)
	slog.Info("room removed", "code", code)
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
