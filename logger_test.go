package plotgpu

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/plotgpu/geom"
)

// captureLogger installs a debug-level text logger for the test.
func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("n", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs() did not return a nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup() did not return a nopHandler")
	}
}

func TestSetLogger(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("default logger is enabled")
	}

	buf := captureLogger(t)
	Logger().Info("hello", "key", "value")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output = %q, want it to contain hello", buf.String())
	}

	SetLogger(nil)
	if l := Logger(); l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore a silent logger")
	}
}

func TestCanvasSetLoggerPropagates(t *testing.T) {
	dev := newRecordingDevice(8, 8)
	c, err := NewCanvas(8, 8, WithDevice(dev))
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	c.SetLogger(custom)
	if dev.logger != custom {
		t.Error("SetLogger did not reach the device")
	}

	c.SetLogger(nil)
	if dev.logger == nil || dev.logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not pass a silent logger to the device")
	}
}

func TestCanvasLogs(t *testing.T) {
	buf := captureLogger(t)

	c, err := NewCanvas(8, 8)
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}
	defer c.Close()

	if err := c.DrawPath(rect(1, 1, 6, 6), new(PathStyle).SetFace(Red), geom.NoClip); err != nil {
		t.Fatalf("DrawPath() error = %v", err)
	}
	flush(t, c)
	if err := c.Resize(16, 16); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}

	out := buf.String()
	for _, msg := range []string{"backend selected", "batch: allocated", "batch: flushed", "buffer=shape", "plotgpu: resized"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log output lacks %q:\n%s", msg, out)
		}
	}
}

func TestWithLoggerOverridesPackageLogger(t *testing.T) {
	pkg := captureLogger(t)

	var own bytes.Buffer
	l := slog.New(slog.NewTextHandler(&own, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := NewCanvas(8, 8, WithLogger(l))
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}
	defer c.Close()

	if pkg.Len() != 0 {
		t.Errorf("package logger received %q", pkg.String())
	}
	if !strings.Contains(own.String(), "backend selected") {
		t.Errorf("canvas logger output = %q", own.String())
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("concurrent read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("message", "key", "value")
	}
}
