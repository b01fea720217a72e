package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Network   NetworkConfig   `toml:"network"`
	Game      GameConfig      `toml:"game"`
	Logging   LoggingConfig   `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	ID        int    `toml:"id"`
	StartTime int64  // set at boot, not from config
}

type NetworkConfig struct {
	BindAddress        string        `toml:"bind_address"`
	TickRate           time.Duration `toml:"tick_rate"`
	SnapshotInterval   time.Duration `toml:"snapshot_interval"`
	InQueueSize        int           `toml:"in_queue_size"`
	OutQueueSize       int           `toml:"out_queue_size"`
	MaxMessagesPerTick int           `toml:"max_messages_per_tick"`
	WriteTimeout       time.Duration `toml:"write_timeout"`
	ReadTimeout        time.Duration `toml:"read_timeout"`
}

// GameConfig tunes the simulation. PlayerAuthority selects who owns player
// position truth: "remote" = the server validates every move intent against
// the displacement cap; "local" = the mover is trusted (practice mode:
// death resets the player instead of leaving a corpse).
type GameConfig struct {
	WorldWidth      float64 `toml:"world_width"`
	WorldHeight     float64 `toml:"world_height"`
	SpawnEdgeOffset float64 `toml:"spawn_edge_offset"`
	StartCash       int     `toml:"start_cash"`
	KillReward      int     `toml:"kill_reward"`
	WaveBase        int     `toml:"wave_base"`
	WaveGrowth      int     `toml:"wave_growth"`
	BuyPhaseSeconds int     `toml:"buy_phase_seconds"`
	PlayerAuthority string  `toml:"player_authority"` // "remote" or "local"
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	MessagesPerSecond int  `toml:"messages_per_second"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Defaults returns the built-in configuration. Exported so tests can build a
// runnable config without a file on disk.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "ArenaGO",
			ID:   1,
		},
		Network: NetworkConfig{
			BindAddress:        "0.0.0.0:8714",
			TickRate:           time.Second / 60,
			SnapshotInterval:   50 * time.Millisecond,
			InQueueSize:        128,
			OutQueueSize:       256,
			MaxMessagesPerTick: 32,
			WriteTimeout:       10 * time.Second,
			ReadTimeout:        60 * time.Second,
		},
		Game: GameConfig{
			WorldWidth:      1280,
			WorldHeight:     720,
			SpawnEdgeOffset: 50,
			StartCash:       500,
			KillReward:      25,
			WaveBase:        5,
			WaveGrowth:      2,
			BuyPhaseSeconds: 10,
			PlayerAuthority: "remote",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			MessagesPerSecond: 120,
		},
	}
}
