package browser

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestChromeLauncher_MissingBinary(t *testing.T) {
	launcher := ChromeLauncher{ExecPath: filepath.Join(t.TempDir(), "no-such-chrome")}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := NewAcquirer(Config{LoginURL: "https://timetable.sevsu.ru/timetablestudent"}, WithLauncher(launcher))
	s, err := a.Acquire(ctx, goodCreds)
	if !errors.Is(err, ErrLaunch) {
		t.Fatalf("expected ErrLaunch for a missing browser, got %v", err)
	}
	if !s.Token.Empty() {
		t.Errorf("expected no token, got %+v", s.Token)
	}
}
