package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newEngineWithScript(t *testing.T, script string) *Engine {
	t.Helper()
	dir := t.TempDir()
	if script != "" {
		if err := os.WriteFile(filepath.Join(dir, "waves.lua"), []byte(script), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestWaveHostileCountFromLua(t *testing.T) {
	e := newEngineWithScript(t, `
function wave_hostile_count(wave)
    return wave * 100
end
`)
	if got := e.WaveHostileCount(3, 5, 2); got != 300 {
		t.Fatalf("count = %d, want the scripted 300", got)
	}
}

func TestWaveHostileCountFallbackWhenAbsent(t *testing.T) {
	e := newEngineWithScript(t, "")
	if got := e.WaveHostileCount(3, 5, 2); got != 11 {
		t.Fatalf("count = %d, want fallback 5 + 3*2 = 11", got)
	}
}

func TestWaveHostileCountFallbackOnNonPositive(t *testing.T) {
	e := newEngineWithScript(t, `
function wave_hostile_count(wave)
    return 0
end
`)
	if got := e.WaveHostileCount(4, 5, 2); got != 13 {
		t.Fatalf("count = %d, want fallback 13 for a non-positive script result", got)
	}
}

func TestWaveHostileCountFallbackOnError(t *testing.T) {
	e := newEngineWithScript(t, `
function wave_hostile_count(wave)
    error("nope")
end
`)
	if got := e.WaveHostileCount(2, 5, 2); got != 9 {
		t.Fatalf("count = %d, want fallback 9 when the script errors", got)
	}
}

func TestMissingScriptDirIsFine(t *testing.T) {
	e, err := NewEngine("no/such/dir", zap.NewNop())
	if err != nil {
		t.Fatalf("missing script dir should not be an error: %v", err)
	}
	defer e.Close()
	if got := e.WaveHostileCount(1, 5, 2); got != 7 {
		t.Fatalf("count = %d, want fallback 7", got)
	}
}

func TestOnWaveStartHook(t *testing.T) {
	e := newEngineWithScript(t, `
seen_wave = 0
function wave_started(wave, count)
    seen_wave = wave
end
`)
	e.OnWaveStart(6, 17)
	// The hook has no Go-visible return; absence of a panic or error is the
	// contract. Calling with no hook defined must also be safe.
	e2 := newEngineWithScript(t, "")
	e2.OnWaveStart(1, 1)
}
