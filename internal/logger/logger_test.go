package logger

import (
	"bytes"
	"strings"
	"testing"
)

func bufferConfig(buf *bytes.Buffer, level Level) Config {
	return Config{
		Level:  level,
		Format: FormatText,
		Outputs: []OutputConfig{
			{Type: OutputStdout, Writer: buf},
		},
	}
}

func TestLogger_InitAndGet(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Init(bufferConfig(buf, LevelInfo)); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Shutdown()

	Get().Info("listed clients", "count", 3)

	output := buf.String()
	if !strings.Contains(output, "listed clients") {
		t.Errorf("log output missing message: %s", output)
	}
	if !strings.Contains(output, "count=3") {
		t.Errorf("log output missing attribute: %s", output)
	}
}

func TestLogger_DoubleInit(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Init(bufferConfig(buf, LevelInfo)); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Shutdown()

	if err := Init(bufferConfig(buf, LevelInfo)); err == nil {
		t.Error("second Init() should fail")
	}
}

func TestLogger_NullLogger(t *testing.T) {
	Shutdown() // make sure nothing is initialized

	logger := Get()
	if _, ok := logger.(*NullLogger); !ok {
		t.Fatalf("Get() before Init = %T, want *NullLogger", logger)
	}
	logger.Info("should not crash")
	logger.With("k", "v").Error("should not crash")
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(bufferConfig(buf, LevelInfo))
	defer Shutdown()

	With("component", "engine").Info("message")

	if !strings.Contains(buf.String(), "component=engine") {
		t.Errorf("output missing context: %s", buf.String())
	}
}

func TestLogger_Shutdown(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(bufferConfig(buf, LevelInfo))
	Get().Info("before shutdown")

	if err := Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
	if err := Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if err := Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestLogger_LegacyFallback(t *testing.T) {
	t.Setenv(LegacyLoggerEnv, "true")

	if err := Init(Config{Level: LevelWarn}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Shutdown()

	legacy, ok := Get().(*LegacyLogger)
	if !ok {
		t.Fatalf("Get() = %T, want *LegacyLogger", Get())
	}
	if legacy.shouldLog(LevelInfo) {
		t.Error("legacy logger should honor the configured level")
	}
}

func TestLegacyLogger_Output(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	l := NewLegacyLogger()
	l.out, l.errOut = out, errOut

	l.With("root", "desenhos").Info("created", "path", "123-0001")
	l.Debug("hidden")
	l.Error("failed", "reason", "disk full")

	if got := out.String(); got != "[INFO] created root=desenhos path=123-0001\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); !strings.Contains(got, "[ERROR] failed reason=disk full") {
		t.Errorf("stderr = %q", got)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("DEBUG") != LevelDebug || ParseLevel("warning") != LevelWarn || ParseLevel("bogus") != LevelInfo {
		t.Error("ParseLevel mismatch")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("x") != FormatText {
		t.Error("ParseFormat mismatch")
	}
	if LevelError.String() != "error" || FormatJSON.String() != "json" {
		t.Error("String() mismatch")
	}
}
