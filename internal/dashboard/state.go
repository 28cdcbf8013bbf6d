package dashboard

import (
	"encoding/json"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/san-kum/sweepsim/internal/arena"
)

// Status is the wire snapshot pushed to dashboard clients.
type Status struct {
	arena.Snapshot
	Team    string  `json:"teamName"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Yaw     float64 `json:"yaw"`
	Running bool    `json:"running"`
}

// State holds the latest status and remembers a content hash of the last
// broadcast, so the push loop only sends when something actually changed.
type State struct {
	mu       sync.Mutex
	status   Status
	lastHash uint64
}

func (s *State) Set(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

func (s *State) Get() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Changed marshals the current status and reports whether it differs from
// the last payload it returned. The payload is only valid when ok is true.
func (s *State) Changed() (payload []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(s.status)
	if err != nil {
		return nil, false
	}
	h := xxhash.Sum64(data)
	if h == s.lastHash {
		return nil, false
	}
	s.lastHash = h
	return data, true
}
