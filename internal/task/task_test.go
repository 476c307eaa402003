//nolint:testpackage // Tests require internal access for thorough testing
package task

import (
	"testing"
	"time"
)

func TestIsValidFilter(t *testing.T) {
	tests := []struct {
		filter Filter
		valid  bool
	}{
		{FilterAll, true},
		{FilterActive, true},
		{FilterCompleted, true},
		{Filter("done"), false},
		{Filter(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			if got := IsValidFilter(tt.filter); got != tt.valid {
				t.Errorf("IsValidFilter(%q) = %v, want %v", tt.filter, got, tt.valid)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input string
		want  Filter
		ok    bool
	}{
		{"all", FilterAll, true},
		{"active", FilterActive, true},
		{"completed", FilterCompleted, true},
		{"  Active ", FilterActive, true},
		{"COMPLETED", FilterCompleted, true},
		{"pending", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseFilter(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseFilter(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFilterMatches(t *testing.T) {
	open := Task{ID: 1, Title: "open"}
	done := Task{ID: 2, Title: "done", Completed: true}

	tests := []struct {
		name   string
		filter Filter
		task   Task
		want   bool
	}{
		{"all matches open", FilterAll, open, true},
		{"all matches done", FilterAll, done, true},
		{"active matches open", FilterActive, open, true},
		{"active rejects done", FilterActive, done, false},
		{"completed rejects open", FilterCompleted, open, false},
		{"completed matches done", FilterCompleted, done, true},
		{"unknown matches nothing", Filter("bogus"), open, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.task); got != tt.want {
				t.Errorf("%q.Matches(%+v) = %v, want %v", tt.filter, tt.task, got, tt.want)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Buy milk", "Buy milk", true},
		{"  padded  ", "padded", true},
		{"", "", false},
		{"   ", "", false},
		{"\t\n", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeTitle(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeTitle(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIDGeneratorMonotonic(t *testing.T) {
	// Frozen clock: every call sees the same millisecond
	frozen := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	gen := NewIDGenerator(func() time.Time { return frozen })

	first := gen.Next(nil)
	if first != frozen.UnixMilli() {
		t.Errorf("first ID = %d, want %d", first, frozen.UnixMilli())
	}

	prev := first
	for range 5 {
		id := gen.Next(nil)
		if id <= prev {
			t.Fatalf("ID %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestIDGeneratorSkipsExisting(t *testing.T) {
	frozen := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	gen := NewIDGenerator(func() time.Time { return frozen })

	base := frozen.UnixMilli()
	existing := map[int64]bool{base: true, base + 1: true}
	id := gen.Next(func(id int64) bool { return existing[id] })
	if id != base+2 {
		t.Errorf("ID = %d, want %d", id, base+2)
	}
}

func TestIDGeneratorObserve(t *testing.T) {
	frozen := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	gen := NewIDGenerator(func() time.Time { return frozen })

	future := frozen.UnixMilli() + 1000
	gen.Observe(future)
	gen.Observe(5) // older IDs do not move the floor back

	if id := gen.Next(nil); id != future+1 {
		t.Errorf("ID = %d, want %d", id, future+1)
	}
}
