package ttyguard

import "testing"

func TestShouldSuppressTTYQueries(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		envTest bool
		want    bool
	}{
		{"tui", nil, false, false},
		{"tui with data", []string{"--data", "orders.csv"}, false, false},
		{"version", []string{"--version"}, false, true},
		{"help short", []string{"-h"}, false, true},
		{"export path", []string{"--export", "out/chart"}, false, true},
		{"export equals", []string{"-export=out/chart.png"}, false, true},
		{"export prompt", []string{"--export", "-"}, false, false},
		{"export missing value", []string{"--export"}, false, false},
		{"test mode", nil, true, true},
		{"positional version", []string{"version"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldSuppressTTYQueries(tt.args, tt.envTest); got != tt.want {
				t.Errorf("shouldSuppressTTYQueries(%v, %v) = %v, want %v", tt.args, tt.envTest, got, tt.want)
			}
		})
	}
}
