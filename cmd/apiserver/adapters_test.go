package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/Resilience-Insights/internal/config"
)

func TestChangedSections(t *testing.T) {
	a := &config.Config{}
	config.ApplyDefaults(a)
	b := *a

	assert.Empty(t, changedSections(a, &b))

	b.RateLimit.Burst = 99
	b.Redis.Enabled = true
	b.Log.Level = "debug"
	assert.Equal(t, []string{"redis", "rate_limit"}, changedSections(a, &b))
}

//Personal.AI order the ending
