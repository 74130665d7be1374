package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIdleSession(t *testing.T) {
	if (Config{}).Enabled() {
		t.Fatal("empty config reports enabled")
	}
	s, err := Start(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	var nilSession *Session
	if err := nilSession.Stop(); err != nil {
		t.Fatal(err)
	}
}

func TestWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:       filepath.Join(dir, "cpu.pprof"),
		Mem:       filepath.Join(dir, "mem.pprof"),
		ExecTrace: filepath.Join(dir, "exec.trace"),
	}
	s, err := Start(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	// повторный Stop ничего не пишет
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{cfg.CPU, cfg.Mem, cfg.ExecTrace} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", filepath.Base(p))
		}
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	_, err := Start(Config{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	if err == nil {
		t.Fatal("expected error")
	}
}
