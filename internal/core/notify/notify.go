// Package notify holds the user-facing messages produced while the store
// changes.
package notify

import (
	"sync"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	ID        int64     `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Log keeps notifications in memory in arrival order. The zero value is ready
// to use.
type Log struct {
	mu     sync.Mutex
	nextID int64
	items  []Notification

	// Now stamps CreatedAt; defaults to time.Now.
	Now func() time.Time
}

// Add records n, assigning its ID and timestamp, and returns the stored copy.
func (l *Log) Add(n Notification) Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	n.ID = l.nextID
	if n.CreatedAt.IsZero() {
		now := time.Now
		if l.Now != nil {
			now = l.Now
		}
		n.CreatedAt = now()
	}
	l.items = append(l.items, n)
	return n
}

// List returns a copy of every recorded notification.
func (l *Log) List() []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Notification, len(l.items))
	copy(out, l.items)
	return out
}

// Count returns the number of recorded notifications.
func (l *Log) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Clear drops every notification.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}
