package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgeFor(t *testing.T) {
	// Thresholds are strictly-greater, not >=.
	assert.Equal(t, BadgeFoodHero, BadgeFor(0))
	assert.Equal(t, BadgeFoodHero, BadgeFor(20))
	assert.Equal(t, BadgeFoodNinja, BadgeFor(21))
	assert.Equal(t, BadgeFoodNinja, BadgeFor(50))
	assert.Equal(t, BadgeHungerSlayer, BadgeFor(51))
	assert.Equal(t, BadgeFoodHero, BadgeFor(-20))
}
