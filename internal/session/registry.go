package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry holds the live session of every chat
type Registry struct {
	clock  Clock
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[int64]*Controller
}

// NewRegistry creates an empty registry
func NewRegistry(clock Clock, logger *zap.Logger) *Registry {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Registry{
		clock:    clock,
		logger:   logger,
		sessions: make(map[int64]*Controller),
	}
}

// Get returns the session of a chat
func (r *Registry) Get(chatID int64) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.sessions[chatID]
	return c, ok
}

// Put installs c as the session of its chat, closing any previous one
func (r *Registry) Put(c *Controller) {
	r.mu.Lock()
	previous := r.sessions[c.ID()]
	r.sessions[c.ID()] = c
	r.mu.Unlock()

	if previous != nil && previous != c {
		previous.Close()
	}
}

// Remove closes and forgets the session of a chat
func (r *Registry) Remove(chatID int64) {
	r.mu.Lock()
	c := r.sessions[chatID]
	delete(r.sessions, chatID)
	r.mu.Unlock()

	if c != nil {
		c.Close()
	}
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle closes sessions that saw no event for longer than maxIdle
// and returns how many were removed
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	now := r.clock.Now()

	var idle []*Controller
	r.mu.Lock()
	for id, c := range r.sessions {
		if now.Sub(c.LastActive()) > maxIdle {
			idle = append(idle, c)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, c := range idle {
		c.Close()
		r.logger.Debug("Evicted idle session", zap.Int64("session_id", c.ID()))
	}
	return len(idle)
}

// CloseAll closes and forgets every session, returning how many there were
func (r *Registry) CloseAll() int {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[int64]*Controller)
	r.mu.Unlock()

	for _, c := range sessions {
		c.Close()
	}
	return len(sessions)
}
