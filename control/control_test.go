package control_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-wepoll/control"
)

func TestMetricsRegistryConcurrentAdd(t *testing.T) {
	mr := control.NewMetricsRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mr.Add("events", 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(800), mr.Get("events"))

	mr.Set("sockets", 3)
	snap := mr.GetSnapshot()
	assert.Equal(t, map[string]int64{"events": 800, "sockets": 3}, snap)
	assert.False(t, mr.Updated().IsZero())
}

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	control.RegisterPlatformProbes(dp)
	dp.RegisterProbe("answer", func() any { return 42 })

	state := dp.DumpState()
	assert.Equal(t, 42, state["answer"])
	assert.Contains(t, state, "platform.cpus")
	assert.Contains(t, state, "platform.completion")

	dp.UnregisterProbe("answer")
	assert.NotContains(t, dp.DumpState(), "answer")
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := control.NewLogger(&buf, logiface.LevelInformational)
	require.NotNil(t, l)

	l.Debug().Log("hidden")
	assert.Zero(t, buf.Len())

	l.Info().Str("component", "port").Log("hello")
	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"component":"port"`)
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *control.Logger
	assert.NotPanics(t, func() {
		l.Err().Str("k", "v").Log("dropped")
	})
}
