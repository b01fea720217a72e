package world

import (
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestState() *State {
	return NewState(rand.New(rand.NewSource(5)), zap.NewNop())
}

func TestGetOrCreateGeneratesCodeForInvalid(t *testing.T) {
	s := newTestState()
	now := time.Now()

	room, created := s.GetOrCreate("", now)
	if !created {
		t.Fatal("empty code should create a room")
	}
	if !ValidRoomCode(room.Code) {
		t.Fatalf("generated code %q is invalid", room.Code)
	}

	// Same code now joins instead of creating.
	again, created2 := s.GetOrCreate(room.Code, now)
	if created2 || again != room {
		t.Fatal("existing code should return the same room")
	}
}

func TestAttachDetachDestroy(t *testing.T) {
	s := newTestState()
	room, _ := s.GetOrCreate("ROOM01", time.Now())

	p := &PlayerInfo{ID: "p1", SessionID: 42}
	s.Attach(42, room, p)

	if s.BySession(42) != p {
		t.Fatal("BySession should find the attached player")
	}
	if s.RoomBySession(42) != room {
		t.Fatal("RoomBySession should find the room")
	}

	got, gotRoom := s.Detach(42)
	if got != p || gotRoom != room {
		t.Fatal("Detach should return the player and its room")
	}
	if s.BySession(42) != nil {
		t.Fatal("player should be gone after Detach")
	}
	if !room.Empty() {
		t.Fatal("room should be empty after the only player detaches")
	}

	if !s.DestroyIfEmpty(room.Code) {
		t.Fatal("empty room should be destroyed")
	}
	if s.Room(room.Code) != nil {
		t.Fatal("destroyed room should not be found")
	}
}

func TestDetachUnknownSession(t *testing.T) {
	s := newTestState()
	if p, room := s.Detach(999); p != nil || room != nil {
		t.Fatal("detaching an unknown session should be a no-op")
	}
}

func TestDestroyIfEmptySkipsOccupied(t *testing.T) {
	s := newTestState()
	room, _ := s.GetOrCreate("ROOM02", time.Now())
	s.Attach(1, room, &PlayerInfo{ID: "p1", SessionID: 1})

	if s.DestroyIfEmpty(room.Code) {
		t.Fatal("occupied room must not be destroyed")
	}
	if s.Room(room.Code) == nil {
		t.Fatal("room should still exist")
	}
}

func TestRemovePlayerClearsIntents(t *testing.T) {
	room := NewRoom("ROOM03", rand.New(rand.NewSource(1)), time.Now())
	p := &PlayerInfo{ID: "p1"}
	room.AddPlayer(p)
	room.QueueMove("p1", MoveIntent{X: 5, Y: 5})
	room.QueueFire(FireIntent{PlayerID: "p1", Angle: 1})
	room.QueueFire(FireIntent{PlayerID: "p2", Angle: 2})

	room.RemovePlayer("p1")

	moves, fires := room.TakeIntents()
	if len(moves) != 0 {
		t.Fatalf("removed player's move intent survived: %v", moves)
	}
	if len(fires) != 1 || fires[0].PlayerID != "p2" {
		t.Fatalf("fire queue after removal = %v, want only p2", fires)
	}
}

func TestTakeIntentsResetsQueues(t *testing.T) {
	room := NewRoom("ROOM04", rand.New(rand.NewSource(1)), time.Now())
	room.QueueMove("p1", MoveIntent{X: 1, Y: 1})
	room.QueueMove("p1", MoveIntent{X: 2, Y: 2}) // latest wins

	moves, _ := room.TakeIntents()
	if got := moves["p1"]; got.X != 2 || got.Y != 2 {
		t.Fatalf("latest intent should win, got %v", got)
	}

	moves2, fires2 := room.TakeIntents()
	if len(moves2) != 0 || len(fires2) != 0 {
		t.Fatal("queues should be empty after TakeIntents")
	}
}
