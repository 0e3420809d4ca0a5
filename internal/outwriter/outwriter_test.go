package outwriter

import (
	"testing"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
)

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *contract.Config
		expected int
	}{
		{
			name:     "wide terminal plain columns",
			cfg:      &contract.Config{Width: 200},
			expected: 70, // capped
		},
		{
			name:     "default columns at 80",
			cfg:      &contract.Config{Width: 80},
			expected: 35,
		},
		{
			name:     "detail columns eat the budget",
			cfg:      &contract.Config{Width: 80, Detail: true},
			expected: 15, // floor
		},
		{
			name:     "detail and explain on a wide terminal",
			cfg:      &contract.Config{Width: 200, Detail: true, Explain: true},
			expected: 70,
		},
		{
			name:     "narrow terminal hits the floor",
			cfg:      &contract.Config{Width: 40},
			expected: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getMaxTablePathWidth(tt.cfg)
			if result != tt.expected {
				t.Errorf("getMaxTablePathWidth() = %d, expected %d", result, tt.expected)
			}
		})
	}
}
