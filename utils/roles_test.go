package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAnyRole(t *testing.T) {
	tests := []struct {
		name     string
		held     []string
		required []string
		want     bool
	}{
		{
			name:     "plain user lacks approver",
			held:     []string{"user"},
			required: []string{"approver"},
			want:     false,
		},
		{
			name:     "user holding approver passes",
			held:     []string{"user", "approver"},
			required: []string{"approver"},
			want:     true,
		},
		{
			name:     "any one of several required tags is enough",
			held:     []string{"posuser"},
			required: []string{"Admin", "posuser"},
			want:     true,
		},
		{
			name:     "empty held set never passes",
			held:     nil,
			required: []string{"user"},
			want:     false,
		},
		{
			name:     "empty required set never passes",
			held:     []string{"user"},
			required: nil,
			want:     false,
		},
		{
			name:     "role tags are case sensitive",
			held:     []string{"admin"},
			required: []string{"Admin"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasAnyRole(tt.held, tt.required))
		})
	}
}
