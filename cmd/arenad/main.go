package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arenago/server/internal/config"
	coresys "github.com/arenago/server/internal/core/system"
	"github.com/arenago/server/internal/data"
	"github.com/arenago/server/internal/handler"
	gonet "github.com/arenago/server/internal/net"
	"github.com/arenago/server/internal/net/proto"
	"github.com/arenago/server/internal/scripting"
	"github.com/arenago/server/internal/sim"
	"github.com/arenago/server/internal/system"
	"github.com/arenago/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            ArenaGO  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      波次生存競技場 · Go 遊戲伺服器       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1m伺服器:\033[0m %s \033[90m(編號: %d)\033[0m\n\n", serverName, serverID)
}

func printSection(title string) {
	// Use rune count for CJK width calculation (each CJK char = 2 columns)
	displayWidth := 0
	for _, r := range title {
		if r > 0x7F {
			displayWidth += 2
		} else {
			displayWidth++
		}
	}
	lineLen := 46 - displayWidth - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	displayWidth := 0
	for _, r := range label {
		if r > 0x7F {
			displayWidth += 2
		} else {
			displayWidth++
		}
	}
	dotsLen := 42 - displayWidth - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	// 3. Load data tables
	printSection("資料載入")

	weaponTable, err := data.LoadWeaponTable("data/yaml/weapon_list.yaml")
	if err != nil {
		return fmt.Errorf("load weapon table: %w", err)
	}
	printStat("武器模板", weaponTable.Count())

	hostileTable, err := data.LoadHostileTable("data/yaml/hostile_list.yaml")
	if err != nil {
		return fmt.Errorf("load hostile table: %w", err)
	}
	printStat("敵人模板", hostileTable.Count())

	// 4. Initialize Lua scripting engine (wave tuning)
	luaEngine, err := scripting.NewEngine("scripts/wave", log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("Lua 腳本載入完成")
	fmt.Println()

	// 5. Create world state and simulator
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rooms := world.NewState(rng, log)
	simulator := sim.NewSimulator(cfg, weaponTable, hostileTable, luaEngine, log)

	// 6. Create message registry and register handlers
	registry := proto.NewRegistry(log)
	deps := &handler.Deps{
		Config:   cfg,
		Log:      log,
		Rooms:    rooms,
		Weapons:  weaponTable,
		Hostiles: hostileTable,
		Sim:      simulator,
	}
	handler.RegisterAll(registry, deps)

	// 7. Create network server
	msgPerSec := 0
	if cfg.RateLimit.Enabled {
		msgPerSec = cfg.RateLimit.MessagesPerSecond
	}
	netServer, err := gonet.NewServer(
		cfg.Network.BindAddress,
		cfg.Network.InQueueSize,
		cfg.Network.OutQueueSize,
		msgPerSec,
		cfg.Network.ReadTimeout,
		log,
	)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go netServer.Serve()

	// 8. Create systems and register with runner
	store := gonet.NewSessionStore()
	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(netServer, registry, store, deps, cfg.Network.MaxMessagesPerTick, log))
	runner.Register(system.NewSimSystem(rooms, simulator))
	runner.Register(system.NewSnapshotSystem(rooms, deps, cfg.Network.SnapshotInterval))
	runner.Register(system.NewOutputSystem(store))
	runner.Register(system.NewCleanupSystem(rooms))

	// 9. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Network.TickRate)
	defer ticker.Stop()

	printSection("伺服器就緒")
	printReady(fmt.Sprintf("監聽位址 ws://%s/ws", netServer.Addr().String()))
	printReady(fmt.Sprintf("遊戲迴圈啟動 (tick: %s)", cfg.Network.TickRate))
	fmt.Println()

	// Measure real elapsed time per frame; the simulator's accumulator turns
	// it into fixed steps, so a late ticker fire never slows game time down.
	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			runner.Tick(dt)
		case sig := <-shutdownCh:
			log.Info("收到關閉信號", zap.String("signal", sig.String()))
			netServer.Shutdown()
			log.Info("伺服器已停止", zap.Int("rooms", rooms.RoomCount()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
