package world

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// State is the room registry: one entry per live join code. Rooms are
// created on first join and destroyed when their player map empties.
// Accessed only from the game loop goroutine; join/leave handlers and the
// simulation tick never interleave for a given room.
type State struct {
	rooms     map[string]*RoomInfo
	bySession map[uint64]*PlayerInfo // live participants keyed by session id
	roomOf    map[uint64]string      // session id → room code
	rng       *rand.Rand
	log       *zap.Logger
}

func NewState(rng *rand.Rand, log *zap.Logger) *State {
	return &State{
		rooms:     make(map[string]*RoomInfo, 16),
		bySession: make(map[uint64]*PlayerInfo, 64),
		roomOf:    make(map[uint64]string, 64),
		rng:       rng,
		log:       log,
	}
}

// Room returns the room for a code, or nil.
func (s *State) Room(code string) *RoomInfo {
	return s.rooms[code]
}

// GetOrCreate returns the room for a code, creating it on first sight.
// An invalid or empty code gets a fresh generated one. Both racers of a
// check-then-create converge here because the game loop serializes joins.
func (s *State) GetOrCreate(code string, now time.Time) (room *RoomInfo, created bool) {
	if !ValidRoomCode(code) {
		code = NewRoomCode(s.rng)
	}
	if r, ok := s.rooms[code]; ok {
		return r, false
	}
	r := NewRoom(code, s.rng, now)
	s.rooms[code] = r
	s.log.Info("房間已建立", zap.String("room", code))
	return r, true
}

// Attach binds a player to its session for reverse lookup on inbound
// messages and disconnects.
func (s *State) Attach(sessionID uint64, room *RoomInfo, p *PlayerInfo) {
	room.AddPlayer(p)
	s.bySession[sessionID] = p
	s.roomOf[sessionID] = room.Code
}

// Detach removes a session's player from its room and reports the room it
// was in. Destroys the room when the last player leaves.
func (s *State) Detach(sessionID uint64) (*PlayerInfo, *RoomInfo) {
	p, ok := s.bySession[sessionID]
	if !ok {
		return nil, nil
	}
	code := s.roomOf[sessionID]
	delete(s.bySession, sessionID)
	delete(s.roomOf, sessionID)

	room := s.rooms[code]
	if room == nil {
		return p, nil
	}
	room.RemovePlayer(p.ID)
	return p, room
}

// DestroyIfEmpty drops a room with no players, along with every entity in it.
func (s *State) DestroyIfEmpty(code string) bool {
	room, ok := s.rooms[code]
	if !ok || !room.Empty() {
		return false
	}
	delete(s.rooms, code)
	s.log.Info("房間已銷毀", zap.String("room", code), zap.Int("wave", room.Wave))
	return true
}

// BySession returns the participant bound to a session, or nil.
func (s *State) BySession(sessionID uint64) *PlayerInfo {
	return s.bySession[sessionID]
}

// RoomBySession returns the room a session's participant is in, or nil.
func (s *State) RoomBySession(sessionID uint64) *RoomInfo {
	return s.rooms[s.roomOf[sessionID]]
}

// ForEachRoom visits every live room. Callers must not create or destroy
// rooms during iteration.
func (s *State) ForEachRoom(fn func(*RoomInfo)) {
	for _, r := range s.rooms {
		fn(r)
	}
}

// RoomCodes returns a snapshot of live codes, for cleanup passes that
// mutate the registry while iterating.
func (s *State) RoomCodes() []string {
	codes := make([]string, 0, len(s.rooms))
	for code := range s.rooms {
		codes = append(codes, code)
	}
	return codes
}

func (s *State) RoomCount() int {
	return len(s.rooms)
}
