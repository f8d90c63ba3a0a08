package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "")
	log.Info().Msg("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("info line leaked through warn level: %s", buf.String())
	}
	log.Warn().Msg("should appear")
	if buf.Len() == 0 {
		t.Fatal("warn line did not appear")
	}
}

func TestNewAppliesPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "[wlveil] ")
	log.Info().Msg("hi")
	if !strings.Contains(buf.String(), "wlveil") {
		t.Fatalf("log line missing prefix field: %s", buf.String())
	}
}

func TestObjectFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", "")
	Object(base, 3, 10, 0xff000001, "wl_surface", 1).Info().Msg("commit")
	out := buf.String()
	for _, want := range []string{"\"client\":3", "\"obj_client_id\":10", "wl_surface"} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q: %s", want, out)
		}
	}
}

func TestClockFormat(t *testing.T) {
	tm := time.Unix(100, 250000)
	if got, want := Clock(tm), "100.000250"; got != want {
		t.Errorf("Clock(%v) = %q, want %q", tm, got, want)
	}
}
