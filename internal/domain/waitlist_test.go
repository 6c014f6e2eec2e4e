package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitlistEntry_MatchesFreedInterval(t *testing.T) {
	freedStart := mustTime(t, "2025-11-03 10:00")
	freedEnd := mustTime(t, "2025-11-03 12:00")

	tests := []struct {
		name     string
		start    string
		end      string
		expected bool
	}{
		{
			name:     "identical interval matches",
			start:    "2025-11-03 10:00",
			end:      "2025-11-03 12:00",
			expected: true,
		},
		{
			name:     "strictly contained interval matches",
			start:    "2025-11-03 10:30",
			end:      "2025-11-03 11:30",
			expected: true,
		},
		{
			name:     "overlap extending beyond end does not match",
			start:    "2025-11-03 11:00",
			end:      "2025-11-03 13:00",
			expected: false,
		},
		{
			name:     "overlap starting before does not match",
			start:    "2025-11-03 09:00",
			end:      "2025-11-03 11:00",
			expected: false,
		},
		{
			name:     "disjoint interval does not match",
			start:    "2025-11-03 14:00",
			end:      "2025-11-03 15:00",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &WaitlistEntry{
				DesiredStart: mustTime(t, tt.start),
				DesiredEnd:   mustTime(t, tt.end),
			}
			assert.Equal(t, tt.expected, entry.MatchesFreedInterval(freedStart, freedEnd))
		})
	}
}

func TestWaitlistEntry_IsExpiredAt(t *testing.T) {
	expiresAt := mustTime(t, "2025-11-10 00:00")
	entry := &WaitlistEntry{ExpiresAt: expiresAt}

	assert.False(t, entry.IsExpiredAt(expiresAt.Add(-time.Minute)))
	assert.True(t, entry.IsExpiredAt(expiresAt))
	assert.True(t, entry.IsExpiredAt(expiresAt.Add(time.Minute)))
}
