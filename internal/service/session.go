package service

import (
	"sync"
	"time"

	"github.com/Rajyalaxmi29/incamp-dept-hub/internal/model"
)

// SessionSlot 进程内唯一的会话槽位，同一时刻至多一个有效会话
type SessionSlot struct {
	mu      sync.RWMutex
	current *model.Session
}

// NewSessionSlot 创建空槽位
func NewSessionSlot() *SessionSlot {
	return &SessionSlot{}
}

// Replace 写入新会话，返回被替换的旧会话（可能为 nil）
func (s *SessionSlot) Replace(sess *model.Session) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.current
	cp := *sess
	s.current = &cp
	return old
}

// Clear 仅当槽位中的会话 JTI 匹配时清空，返回是否清空
func (s *SessionSlot) Clear(jti string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.JTI != jti {
		return false
	}
	s.current = nil
	return true
}

// Lookup 返回 JTI 对应且未过期的会话
func (s *SessionSlot) Lookup(jti string, now time.Time) (*model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil || s.current.JTI != jti || s.current.Expired(now) {
		return nil, false
	}
	cp := *s.current
	return &cp, true
}
