package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		" WARN ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"verbose": logrus.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q)=%s, want %s", in, got, want)
		}
	}
}

func TestNewTagsService(t *testing.T) {
	log := New("cafe-api", "debug")
	if log.Data["service"] != "cafe-api" {
		t.Fatalf("service field=%v", log.Data["service"])
	}
	if log.Logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level=%s", log.Logger.GetLevel())
	}
}
