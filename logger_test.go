package compositor

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler_Enabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestNopHandler_Handle(t *testing.T) {
	h := nopHandler{}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
}

func TestNopHandler_WithAttrsAndGroup(t *testing.T) {
	h := nopHandler{}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("key", "val")}).(nopHandler); !ok {
		t.Error("nopHandler.WithAttrs() should return nopHandler")
	}
	if _, ok := h.WithGroup("group").(nopHandler); !ok {
		t.Error("nopHandler.WithGroup() should return nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	SetLogger(custom)

	got := Logger()
	if got != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}

	got.Info("test message", "key", "value")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestNewPropagatesLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)

	tiles := newMockTiles(100)
	scenes := &mockScenes{}
	images := &mockImages{}
	if _, err := New(tiles, scenes, WithImageManager(images)); err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if tiles.logger != custom {
		t.Error("New did not propagate the logger to the tile manager")
	}
	if images.logger != custom {
		t.Error("New did not propagate the logger to the image manager")
	}
}

func TestFrameLogging(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	st := MustNew(newMockTiles(100), &mockScenes{})
	st.DrawFrame(FrameParams{
		ViewRect:   image.Rect(0, 0, 320, 480),
		Viewport:   RectXYWH(0, 0, 320, 480),
		Scale:      1,
		ShouldDraw: true,
	})

	out := buf.String()
	for _, want := range []string{"compositor: frame", "compositor: new viewport", "reinit shader"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	const goroutines = 100

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := Logger()
			if l == nil {
				t.Error("Logger() returned nil during concurrent access")
			}
			l.Debug("concurrent read")
		}()
	}

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}

	wg.Wait()
}

func BenchmarkLoggerDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}
