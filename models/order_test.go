package models

import "testing"

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"pc", PlatformPC, false},
		{"PS4", PlatformPS4, false},
		{" xbox ", PlatformXbox, false},
		{"switch", PlatformSwitch, false},
		{"dreamcast", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePlatform(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePlatform(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePlatform(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePlatform(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseStatisticKind(t *testing.T) {
	for _, kind := range StatisticKinds {
		got, err := ParseStatisticKind(string(kind))
		if err != nil {
			t.Errorf("ParseStatisticKind(%q): unexpected error %v", kind, err)
		}
		if got != kind {
			t.Errorf("ParseStatisticKind(%q) = %s", kind, got)
		}
	}

	if _, err := ParseStatisticKind("variance"); err == nil {
		t.Error("expected error for unsupported statistic")
	}
	if got, err := ParseStatisticKind("  MEDIAN "); err != nil || got != StatMedian {
		t.Errorf("case/space normalisation failed: got %s, %v", got, err)
	}
}

func TestStatisticDisplayNames(t *testing.T) {
	tests := []struct {
		kind StatisticKind
		want string
	}{
		{StatMedian, "Median"},
		{StatMean, "Mean"},
		{StatMode, "Mode"},
		{StatHarmonic, "Harmonic Mean"},
		{StatGeometric, "Geometric Mean"},
	}
	for _, tt := range tests {
		if got := tt.kind.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
