package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TicketPriority
	}{
		{name: "low passthrough", in: "low", want: TicketPriorityLow},
		{name: "medium passthrough", in: "medium", want: TicketPriorityMedium},
		{name: "high passthrough", in: "high", want: TicketPriorityHigh},
		{name: "mixed case lowered", in: "Low", want: TicketPriorityLow},
		{name: "critical maps to high", in: "critical", want: TicketPriorityHigh},
		{name: "critical mixed case", in: "Critical", want: TicketPriorityHigh},
		{name: "empty defaults to medium", in: "", want: TicketPriorityMedium},
		{name: "whitespace defaults to medium", in: "   ", want: TicketPriorityMedium},
		{name: "unknown defaults to medium", in: "urgent", want: TicketPriorityMedium},
		{name: "surrounding whitespace trimmed", in: "  HIGH ", want: TicketPriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePriority(tt.in))
		})
	}
}

func TestParseTicketStatus(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   TicketStatus
		wantOK bool
	}{
		{name: "open", in: "Open", want: TicketStatusOpen, wantOK: true},
		{name: "in progress", in: "In Progress", want: TicketStatusInProgress, wantOK: true},
		{name: "pending", in: "Pending", want: TicketStatusPending, wantOK: true},
		{name: "resolved", in: "Resolved", want: TicketStatusResolved, wantOK: true},
		{name: "closed", in: "Closed", want: TicketStatusClosed, wantOK: true},
		{name: "lowercase rejected", in: "open", wantOK: false},
		{name: "uppercase rejected", in: "RESOLVED", wantOK: false},
		{name: "unknown rejected", in: "Done", wantOK: false},
		{name: "empty rejected", in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTicketStatus(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
