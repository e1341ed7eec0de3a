package filter

import "testing"

func TestRangeContains(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		v    float64
		want bool
	}{
		{"unbounded", Range{}, -1e9, true},
		{"min inclusive", Range{Min: fptr(5)}, 5, true},
		{"below min", Range{Min: fptr(5)}, 4.999, false},
		{"max inclusive", Range{Max: fptr(10)}, 10, true},
		{"above max", Range{Max: fptr(10)}, 10.001, false},
		{"both bounds", Range{Min: fptr(5), Max: fptr(10)}, 7, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.v); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestRangeActive(t *testing.T) {
	if (Range{}).Active() {
		t.Error("zero Range reported active")
	}
	if !(Range{Min: fptr(0)}).Active() {
		t.Error("Range with a zero min bound reported inactive")
	}
}

func TestTimeRangeContains(t *testing.T) {
	tests := []struct {
		name string
		r    TimeRange
		hhmm string
		want bool
	}{
		{"inside", TimeRange{From: "09:30", To: "11:00"}, "10:15", true},
		{"at from", TimeRange{From: "09:30", To: "11:00"}, "09:30", true},
		{"at to", TimeRange{From: "09:30", To: "11:00"}, "11:00", true},
		{"before", TimeRange{From: "09:30", To: "11:00"}, "09:29", false},
		{"after", TimeRange{From: "09:30", To: "11:00"}, "11:01", false},
		{"open from", TimeRange{To: "11:00"}, "00:00", true},
		{"open to", TimeRange{From: "09:30"}, "23:59", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.hhmm); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.hhmm, got, tt.want)
			}
		})
	}
}

func TestLogicDefault(t *testing.T) {
	s := State{}
	if !s.and() {
		t.Error("unset Logic should combine conjunctively")
	}
	s.Logic = LogicOr
	if s.and() {
		t.Error("LogicOr should combine disjunctively")
	}
}
