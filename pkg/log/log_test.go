package log

import (
	"bytes"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, name string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	return ForService(name), buf
}

func TestInfoPrefix(t *testing.T) {
	SetGlobalDebug(false)

	l, buf := newTestLogger(t, "prefix_test")
	l.Infof("hello %s", "world")

	out := buf.String()
	if !strings.Contains(out, "[prefix_test]") {
		t.Fatalf("expected service prefix in output, got %q", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Fatalf("expected INFO level in output, got %q", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Fatalf("expected formatted message in output, got %q", out)
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	SetGlobalDebug(false)

	l, buf := newTestLogger(t, "debug_default_test")
	l.Debugf("hidden")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug output should be suppressed by default, got %q", buf.String())
	}
}

func TestGlobalDebug(t *testing.T) {
	SetGlobalDebug(true)
	defer SetGlobalDebug(false)

	l, buf := newTestLogger(t, "global_debug_test")
	l.Debugf("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug output with global debug enabled, got %q", buf.String())
	}
}

func TestPerServiceDebug(t *testing.T) {
	SetGlobalDebug(false)

	buf := &bytes.Buffer{}
	SetOutput(buf)

	EnableDebugFor("selective_on")
	on := ForService("selective_on")
	off := ForService("selective_off")

	on.Debugf("service-on message")
	off.Debugf("service-off message")

	out := buf.String()
	if !strings.Contains(out, "service-on message") {
		t.Fatalf("expected debug output for enabled service, got %q", out)
	}
	if strings.Contains(out, "service-off message") {
		t.Fatalf("unexpected debug output for disabled service, got %q", out)
	}
}

func TestForServiceMemoizes(t *testing.T) {
	a := ForService("memo_test")
	b := ForService("memo_test")
	if a != b {
		t.Fatal("expected ForService to return the same logger instance")
	}
}
