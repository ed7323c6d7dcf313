package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_Level(t *testing.T) {
	if got := New("debug").GetLevel(); got != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", got)
	}
	if got := New("nonsense").GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("level = %v, want info fallback", got)
	}
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newWithOutput("info", &buf)
	l.WithField("user_id", 7).Info("login")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "login" || rec["user_id"] != float64(7) {
		t.Fatalf("unexpected record: %v", rec)
	}
}
