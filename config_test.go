package mosaic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	require.NoError(t, ProcessConfigDefaults(cfg))

	assert.Equal(t, "#app", cfg.MountSelector)
	assert.Equal(t, ModeHistory, cfg.Mode)
	assert.Equal(t, "modules/", cfg.ModuleBase)
	assert.False(t, cfg.Lazy)
	assert.Equal(t, "mosaic event", cfg.LogLabel)
}

func TestProcessConfigDefaultsKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{MountSelector: "#root", Mode: ModeHash}
	require.NoError(t, ProcessConfigDefaults(cfg))

	assert.Equal(t, "#root", cfg.MountSelector)
	assert.Equal(t, ModeHash, cfg.Mode)
}

func TestProcessConfigDefaultsRejectsNonPointers(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, ProcessConfigDefaults(nil), ErrConfigNil)
	require.ErrorIs(t, ProcessConfigDefaults(Config{}), ErrConfigNotPointer)
	var s string
	require.ErrorIs(t, ProcessConfigDefaults(&s), ErrConfigNotPointer)
}

func TestProcessConfigDefaultsSupportedKinds(t *testing.T) {
	t.Parallel()

	type sample struct {
		S  string        `default:"hello"`
		B  bool          `default:"true"`
		I  int           `default:"-3"`
		U  uint          `default:"7"`
		F  float64       `default:"1.5"`
		D  time.Duration `default:"250ms"`
		L  []string      `default:"a, b,c"`
		No string
	}

	var s sample
	require.NoError(t, ProcessConfigDefaults(&s))

	assert.Equal(t, "hello", s.S)
	assert.True(t, s.B)
	assert.Equal(t, -3, s.I)
	assert.Equal(t, uint(7), s.U)
	assert.Equal(t, 1.5, s.F)
	assert.Equal(t, 250*time.Millisecond, s.D)
	assert.Equal(t, []string{"a", "b", "c"}, s.L)
	assert.Empty(t, s.No)
}

func TestProcessConfigDefaultsBadValue(t *testing.T) {
	t.Parallel()

	type bad struct {
		N int `default:"not-a-number"`
	}
	var b bad
	require.ErrorIs(t, ProcessConfigDefaults(&b), ErrDefaultValueParse)
}

func TestConfigValidateMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{ModeHistory, ModeHash, ModeHashbang} {
		cfg := &Config{Mode: mode}
		assert.NoError(t, cfg.Validate())
	}

	cfg := &Config{Mode: "browser"}
	require.ErrorIs(t, cfg.Validate(), ErrInvalidRouterMode)

	_, err := New(&Config{Mode: "browser"})
	require.ErrorIs(t, err, ErrInvalidRouterMode)
}
