package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/minekvitteringer/skribent/pkg/utils/logging"
)

func TestLevelFiltering(t *testing.T) {
	cases := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"ERROR", false, false},
		{"bogus", false, true}, // falls back to info
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.New(tc.level, buf)

			logger.Debug("debug line")
			logger.Info("info line")
			logger.Error("error line")

			out := buf.String()
			gt.Equal(t, bytes.Contains(buf.Bytes(), []byte("debug line")), tc.wantDebug)
			gt.Equal(t, bytes.Contains(buf.Bytes(), []byte("info line")), tc.wantInfo)
			gt.S(t, out).Contains("error line")
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New("debug", buf).With("component", "research")

	ctx := logging.With(context.Background(), logger)
	gt.Equal(t, logging.From(ctx), logger)

	logging.From(ctx).Info("hello")
	gt.S(t, buf.String()).Contains("hello")
	gt.S(t, buf.String()).Contains("research")
}

func TestFromFallsBackToDefault(t *testing.T) {
	orig := logging.Default()
	defer logging.SetDefault(orig)

	buf := &bytes.Buffer{}
	logging.SetDefault(logging.New("warn", buf))

	logger := logging.From(context.Background())
	gt.V(t, logger).NotNil()
	logger.Warn("fallback warning")
	gt.S(t, buf.String()).Contains("fallback warning")
}
