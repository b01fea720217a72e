package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for wave tuning. Operators can reshape
// difficulty (hostile counts, per-wave hooks) without rebuilding the server.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. A missing directory is not an error; every scripted value has
// a built-in fallback.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load wave scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// WaveHostileCount calls the Lua wave_hostile_count(wave) function. Falls
// back to base + wave*growth when the function is absent or errors out.
func (e *Engine) WaveHostileCount(wave, base, growth int) int {
	fallback := base + wave*growth
	fn := e.vm.GetGlobal("wave_hostile_count")
	if fn == lua.LNil {
		return fallback
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(wave)); err != nil {
		e.log.Error("lua wave_hostile_count error", zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n := int(lua.LVAsNumber(result))
	if n <= 0 {
		e.log.Error("lua wave_hostile_count returned non-positive count",
			zap.Int("wave", wave), zap.Int("count", n))
		return fallback
	}
	return n
}

// OnWaveStart calls the optional Lua wave_started(wave, count) hook.
func (e *Engine) OnWaveStart(wave, count int) {
	fn := e.vm.GetGlobal("wave_started")
	if fn == lua.LNil {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(wave), lua.LNumber(count)); err != nil {
		e.log.Error("lua wave_started error", zap.Error(err))
	}
}
