package storage

import "sync"

type ChatSession struct {
	Preset     string
	Processing bool
}

// RenderStateStore tracks per-chat canvas presets and guards against a chat
// starting a second render while one is running.
type RenderStateStore struct {
	sessions      map[int64]*ChatSession
	defaultPreset string
	mu            sync.RWMutex
}

func NewRenderStateStore(defaultPreset string) *RenderStateStore {
	return &RenderStateStore{
		sessions:      make(map[int64]*ChatSession),
		defaultPreset: defaultPreset,
	}
}

func (s *RenderStateStore) session(chatID int64) *ChatSession {
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &ChatSession{Preset: s.defaultPreset}
		s.sessions[chatID] = sess
	}
	return sess
}

func (s *RenderStateStore) SetPreset(chatID int64, preset string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(chatID).Preset = preset
}

func (s *RenderStateStore) Preset(chatID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[chatID]; ok {
		return sess.Preset
	}
	return s.defaultPreset
}

func (s *RenderStateStore) TryStart(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(chatID)
	if sess.Processing {
		return false
	}
	sess.Processing = true
	return true
}

func (s *RenderStateStore) IsProcessing(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[chatID]; ok {
		return sess.Processing
	}
	return false
}

// Finish ends the running render. Chats still on the default preset have
// nothing left to remember and are dropped.
func (s *RenderStateStore) Finish(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		return
	}
	if sess.Preset == s.defaultPreset {
		delete(s.sessions, chatID)
		return
	}
	sess.Processing = false
}

func (s *RenderStateStore) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
