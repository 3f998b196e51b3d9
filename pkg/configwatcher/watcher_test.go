package configwatcher

import (
	"career_advisor_backend/internal/config"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("matching:\n  ai_bonus: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	if err := WatchConfig(ctx, file, func(cfg *config.Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}); err != nil {
		t.Fatalf("watch: %v", err)
	}

	// 同目录下的其他文件不触发
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	if err := os.WriteFile(file, []byte("matching:\n  ai_bonus: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Matching.AIBonus != 5 {
			t.Fatalf("expected reloaded ai_bonus 5, got %v", cfg.Matching.AIBonus)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}
