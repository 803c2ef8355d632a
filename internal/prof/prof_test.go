package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	tr := filepath.Join(dir, "trace.out")

	s, err := Start(cpu, mem, tr)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	// повторный Stop ничего не делает
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, p := range []string{cpu, mem, tr} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("profile %s missing: %v", filepath.Base(p), err)
		}
	}
}

func TestStartNothing(t *testing.T) {
	s, err := Start("", "", "")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	var nilSession *Session
	if err := nilSession.Stop(); err != nil {
		t.Fatalf("nil Stop: %v", err)
	}
}

func TestStartBadPath(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing", "cpu.out")
	if _, err := Start(bad, "", ""); err == nil {
		t.Fatalf("expected error for unwritable cpu profile path")
	}
	// CPU-профиль должен быть остановлен, иначе следующий Start упадёт
	s, err := Start(filepath.Join(t.TempDir(), "cpu.out"), "", filepath.Join(t.TempDir(), "missing", "t.out"))
	if err == nil {
		_ = s.Stop()
		t.Fatalf("expected error for unwritable trace path")
	}
	s, err = Start(filepath.Join(t.TempDir(), "cpu.out"), "", "")
	if err != nil {
		t.Fatalf("cpu profiler left running: %v", err)
	}
	_ = s.Stop()
}
