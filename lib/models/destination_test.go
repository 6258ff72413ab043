package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestDestination_IsEnabled(t *testing.T) {
	assert.True(t, Destination{Phone: "+1"}.IsEnabled(), "enabled defaults to true")
	assert.True(t, Destination{Phone: "+1", Enabled: boolPtr(true)}.IsEnabled())
	assert.False(t, Destination{Phone: "+1", Enabled: boolPtr(false)}.IsEnabled())
}

func TestDestination_Platform(t *testing.T) {
	assert.Equal(t, PlatformSignal, Destination{Phone: "+1"}.Platform())
	assert.Equal(t, PlatformSignal, Destination{Username: "alice"}.Platform())
	assert.Equal(t, PlatformSignal, Destination{Group: "G"}.Platform())
	assert.Equal(t, PlatformEmail, Destination{Email: "a@b.c"}.Platform())
	assert.Equal(t, "", Destination{}.Platform(), "malformed destination has no platform")

	// A signal identifier wins over an email on the same record.
	assert.Equal(t, PlatformSignal, Destination{Group: "G", Email: "a@b.c"}.Platform())
}

func TestDestination_SignalArgs_Precedence(t *testing.T) {
	tests := []struct {
		name string
		dest Destination
		want []string
	}{
		{"phone", Destination{Phone: "+15550100"}, []string{"+15550100"}},
		{"username", Destination{Username: "alice"}, []string{"-u", "alice"}},
		{"group", Destination{Group: "G"}, []string{"-g", "G"}},
		{"phone wins over username", Destination{Phone: "+15550100", Username: "alice"}, []string{"+15550100"}},
		{"username wins over group", Destination{Username: "alice", Group: "G"}, []string{"-u", "alice"}},
		{"none", Destination{}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.dest.SignalArgs())
		})
	}
}
