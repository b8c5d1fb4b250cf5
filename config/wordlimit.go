package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"
)

// WordLimitConfig maps presentation types to their maximum abstract word
// counts. The limits changed between conference editions, so they are
// configuration, not code: WORD_LIMITS takes a JSON object of
// type -> limit overrides, WORD_LIMIT_DEFAULT replaces the base limit
// applied to unknown types.
type WordLimitConfig struct {
	Default int
	Limits  map[string]int
}

const baseWordLimit = 300

func defaultWordLimits() map[string]int {
	return map[string]int{
		"free paper presentation": 500,
		"e-poster presentation":   500,
		"award paper":             250,
		"case report":             300,
	}
}

// LoadWordLimits builds the active word-limit table from the environment.
func LoadWordLimits() WordLimitConfig {
	cfg := WordLimitConfig{
		Default: baseWordLimit,
		Limits:  defaultWordLimits(),
	}

	if v := os.Getenv("WORD_LIMIT_DEFAULT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Default = n
		} else {
			log.Println("Ignoring invalid WORD_LIMIT_DEFAULT:", v)
		}
	}

	if raw := os.Getenv("WORD_LIMITS"); raw != "" {
		overrides := map[string]int{}
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			log.Println("Ignoring invalid WORD_LIMITS:", err)
		} else {
			for k, v := range overrides {
				if v > 0 {
					cfg.Limits[strings.ToLower(strings.TrimSpace(k))] = v
				}
			}
		}
	}

	return cfg
}

// LimitFor returns the word ceiling for a presentation type, falling back to
// the base limit when the type is unrecognized. Never zero, never unlimited.
func (c WordLimitConfig) LimitFor(presentationType string) int {
	key := strings.ToLower(strings.TrimSpace(presentationType))
	if limit, ok := c.Limits[key]; ok {
		return limit
	}
	return c.Default
}
