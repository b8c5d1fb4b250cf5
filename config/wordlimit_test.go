package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitForKnownTypes(t *testing.T) {
	cfg := LoadWordLimits()

	assert.Equal(t, 500, cfg.LimitFor("Free Paper Presentation"))
	assert.Equal(t, 500, cfg.LimitFor("E-Poster Presentation"))
	assert.Equal(t, 250, cfg.LimitFor("Award Paper"))
	assert.Equal(t, 300, cfg.LimitFor("Case Report"))
}

func TestLimitForFallsBackToBase(t *testing.T) {
	cfg := LoadWordLimits()

	limit := cfg.LimitFor("Interpretive Dance")
	assert.Equal(t, cfg.Default, limit)
	assert.Greater(t, limit, 0, "fallback must never be zero or unlimited")
}

func TestLimitForIsCaseInsensitive(t *testing.T) {
	cfg := LoadWordLimits()
	assert.Equal(t, cfg.LimitFor("award paper"), cfg.LimitFor("AWARD PAPER"))
}

func TestLoadWordLimitsEnvOverrides(t *testing.T) {
	t.Setenv("WORD_LIMIT_DEFAULT", "350")
	t.Setenv("WORD_LIMITS", `{"Oral Presentation": 200, "Award Paper": 400}`)

	cfg := LoadWordLimits()

	assert.Equal(t, 350, cfg.Default)
	assert.Equal(t, 200, cfg.LimitFor("Oral Presentation"))
	assert.Equal(t, 400, cfg.LimitFor("Award Paper"))
	assert.Equal(t, 350, cfg.LimitFor("unknown type"))
}

func TestLoadWordLimitsIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("WORD_LIMIT_DEFAULT", "not-a-number")
	t.Setenv("WORD_LIMITS", "{broken json")

	cfg := LoadWordLimits()

	assert.Equal(t, 300, cfg.Default)
	assert.Equal(t, 250, cfg.LimitFor("Award Paper"))
}
