package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestConfigureLevels(t *testing.T) {
	originalENV, hadENV := os.LookupEnv("ENV")
	originalLevelEnv, hadLevel := os.LookupEnv("LOGLEVEL")
	originalLevel := zerolog.GlobalLevel()
	originalLogger := log.Logger
	defer func() {
		restore("ENV", originalENV, hadENV)
		restore("LOGLEVEL", originalLevelEnv, hadLevel)
		zerolog.SetGlobalLevel(originalLevel)
		log.Logger = originalLogger
	}()

	testCases := []struct {
		name          string
		env           string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{"ProductionDebug", "production", "debug", zerolog.DebugLevel},
		{"ProductionWarning", "production", "warning", zerolog.WarnLevel},
		{"ProductionDefault", "production", "", zerolog.WarnLevel},
		{"ProductionDisabled", "production", "disabled", zerolog.Disabled},
		{"DevelopmentDefault", "development", "", zerolog.InfoLevel},
		{"DevelopmentError", "", "error", zerolog.ErrorLevel},
		{"DevelopmentUnknown", "", "verbose", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			restore("ENV", tc.env, tc.env != "")
			restore("LOGLEVEL", tc.logLevel, tc.logLevel != "")

			configure(&bytes.Buffer{})

			if zerolog.GlobalLevel() != tc.expectedLevel {
				t.Errorf("Expected log level %v, got %v", tc.expectedLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestProductionWritesJSON(t *testing.T) {
	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
	}()
	t.Setenv("ENV", "production")
	t.Setenv("LOGLEVEL", "info")

	var buf bytes.Buffer
	configure(&buf)
	log.Info().Str("sheet", "요약").Msg("Extracted table")

	if !bytes.HasPrefix(buf.Bytes(), []byte("{")) || !bytes.Contains(buf.Bytes(), []byte(`"sheet":"요약"`)) {
		t.Errorf("expected a JSON log line, got %q", buf.String())
	}
}

func restore(key, value string, set bool) {
	if set {
		os.Setenv(key, value)
	} else {
		os.Unsetenv(key)
	}
}
