// arenabot is a headless client for load and smoke testing: it joins a
// room, wanders, and shoots at the nearest hostile, exercising the same
// prediction and reconciliation path a rendering client would.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/arenago/server/internal/client"
	"github.com/arenago/server/internal/net/proto"
)

const botSpeed = 5.0

func main() {
	addr := flag.String("addr", "ws://127.0.0.1:8714/ws", "server websocket URL")
	room := flag.String("room", "", "room code to join (empty = create)")
	name := flag.String("name", "bot", "display name")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := runBot(*addr, *room, *name, log); err != nil {
		log.Fatal("bot 結束於錯誤", zap.Error(err))
	}
}

func runBot(addr, room, name string, log *zap.Logger) error {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if err := send(conn, proto.MsgJoin, proto.JoinData{Room: room, Name: name}); err != nil {
		return err
	}

	// First reply must be the welcome with our identity and initial state.
	var welcome proto.WelcomeData
	if err := expect(conn, proto.MsgWelcome, &welcome); err != nil {
		return err
	}
	log.Info("已加入房間",
		zap.String("room", welcome.Room),
		zap.String("player", welcome.PlayerID),
	)

	rep := client.NewReplica(welcome.PlayerID)
	rep.ApplySnapshot(welcome.Snapshot)

	// Reader goroutine feeds frames to the decision loop.
	frames := make(chan []byte, 64)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			frames <- payload
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	wanderX, wanderY := 1.0, 0.0
	for {
		select {
		case frame := <-frames:
			if err := apply(rep, frame, log); err != nil {
				log.Debug("略過無法解析的訊息", zap.Error(err))
			}
		case err := <-readErr:
			return fmt.Errorf("read: %w", err)
		case <-ticker.C:
			rep.Interpolate()

			// Re-roll the wander heading occasionally.
			if rng.Intn(120) == 0 {
				a := rng.Float64() * 2 * math.Pi
				wanderX, wanderY = math.Cos(a), math.Sin(a)
			}
			if x, y, ok := rep.PredictMove(wanderX, wanderY, botSpeed); ok {
				if err := send(conn, proto.MsgMove, proto.MoveData{X: x, Y: y}); err != nil {
					return err
				}
			}

			if self := rep.Self(); self != nil && !self.Dead {
				if h := nearestHostile(rep, self.X, self.Y); h != nil {
					angle := math.Atan2(h.Y-self.Y, h.X-self.X)
					if err := send(conn, proto.MsgFire, proto.FireData{Weapon: self.Weapon, Angle: angle}); err != nil {
						return err
					}
				}
			}

			if rep.Phase == "buy" && rng.Intn(300) == 0 {
				if err := send(conn, proto.MsgStartWave, nil); err != nil {
					return err
				}
			}
		case <-stopCh:
			log.Info("收到關閉信號，離開房間")
			send(conn, proto.MsgLeave, nil)
			return nil
		}
	}
}

func nearestHostile(rep *client.Replica, x, y float64) *client.Hostile {
	var best *client.Hostile
	bestDist := 0.0
	for _, h := range rep.Hostiles {
		d := math.Hypot(h.X-x, h.Y-y)
		if best == nil || d < bestDist {
			best = h
			bestDist = d
		}
	}
	return best
}

// apply routes one server frame into the replica.
func apply(rep *client.Replica, frame []byte, log *zap.Logger) error {
	var env proto.Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return err
	}
	switch env.Type {
	case proto.MsgSnapshot:
		var d proto.SnapshotData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		rep.ApplySnapshot(d)
	case proto.MsgPlayerJoined:
		var d proto.PlayerJoinedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		rep.ApplyPlayerJoined(d)
	case proto.MsgPlayerLeft:
		var d proto.PlayerLeftData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		rep.ApplyPlayerLeft(d)
	case proto.MsgProjectileFired:
		var d proto.ProjectileFiredData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		rep.ApplyProjectileFired(d)
	case proto.MsgHostileDamaged:
		var d proto.HostileDamagedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		rep.ApplyHostileDamaged(d)
	case proto.MsgHostileKilled:
		var d proto.HostileKilledData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		rep.ApplyHostileKilled(d)
	case proto.MsgPlayerDamaged:
		var d proto.PlayerDamagedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		rep.ApplyPlayerDamaged(d)
	case proto.MsgPlayerDied:
		var d proto.PlayerDiedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		rep.ApplyPlayerDied(d)
	case proto.MsgWeaponChanged:
		var d proto.WeaponChangedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		rep.ApplyWeaponChanged(d)
	case proto.MsgWaveAdvanced:
		var d proto.WaveAdvancedData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return err
		}
		rep.ApplyWaveAdvanced(d)
		log.Info("波次推進", zap.Int("wave", d.Wave), zap.Int("hostiles", len(d.Hostiles)))
	}
	return nil
}

func send(conn *websocket.Conn, msgType string, payload any) error {
	frame, err := proto.Encode(msgType, payload)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, frame)
}

// expect reads frames until one of the wanted type arrives, decoding its
// payload into out. Other message types arriving first are skipped.
func expect(conn *websocket.Conn, msgType string, out any) error {
	deadline := time.Now().Add(10 * time.Second)
	conn.SetReadDeadline(deadline)
	defer conn.SetReadDeadline(time.Time{})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("waiting for %s: %w", msgType, err)
		}
		var env proto.Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			continue
		}
		if env.Type != msgType {
			continue
		}
		return json.Unmarshal(env.Data, out)
	}
}
