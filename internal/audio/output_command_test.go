package audio

import (
	"testing"
	"time"
)

func TestCommandOutputPlaysToCompletion(t *testing.T) {
	out, err := NewCommandOutputWith([]PlayerCommand{
		{Name: "celebcast-missing-player"},
		{Name: "sh", Args: []string{"-c", "cat > /dev/null"}},
	})
	if err != nil {
		t.Skipf("no shell available: %v", err)
	}
	defer out.Close()

	buf, _ := BuildBuffer(make([]byte, 4800), Channels, SampleRate)
	src, err := out.Start(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-src.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("player did not finish")
	}
}

func TestCommandOutputStopIsImmediate(t *testing.T) {
	out, err := NewCommandOutputWith([]PlayerCommand{
		{Name: "sh", Args: []string{"-c", "sleep 30"}},
	})
	if err != nil {
		t.Skipf("no shell available: %v", err)
	}
	defer out.Close()

	buf, _ := BuildBuffer(make([]byte, 4800), Channels, SampleRate)
	src, err := out.Start(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src.Stop()
	src.Stop()

	select {
	case <-src.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("stopped player still running")
	}
}

func TestCommandOutputNoPlayer(t *testing.T) {
	if _, err := NewCommandOutputWith([]PlayerCommand{{Name: "celebcast-missing-player"}}); err == nil {
		t.Fatal("expected error when no player is available")
	}
}

func TestCommandOutputClosed(t *testing.T) {
	out, err := NewCommandOutputWith([]PlayerCommand{{Name: "sh", Args: []string{"-c", "cat > /dev/null"}}})
	if err != nil {
		t.Skipf("no shell available: %v", err)
	}
	out.Close()
	if out.State() != StateClosed {
		t.Fatalf("expected closed state, got %s", out.State())
	}
	buf, _ := BuildBuffer([]byte{0, 0}, Channels, SampleRate)
	if _, err := out.Start(buf); err == nil {
		t.Fatal("expected start on closed output to fail")
	}
}
