package family

import "testing"

func TestBirthYear(t *testing.T) {
	tests := []struct {
		date   string
		want   int
		wantOK bool
	}{
		{"", 0, false},
		{"1931", 1931, true},
		{"1931-04-02", 1931, true},
		{"02/04/1931", 1931, true},
		{"c. 1850", 1850, true},
		{"spring", 0, false},
		{"31-04-02", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, ok := BirthYear(tt.date)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("BirthYear(%q) = (%d, %v), want (%d, %v)", tt.date, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSortYear(t *testing.T) {
	if got := SortYear("1990-01-01"); got != 1990 {
		t.Errorf("SortYear = %d, want 1990", got)
	}
	if got := SortYear(""); got != UnknownYear {
		t.Errorf("SortYear(empty) = %d, want %d", got, UnknownYear)
	}
	if got := SortYear("unknown"); got != UnknownYear {
		t.Errorf("SortYear(malformed) = %d, want %d", got, UnknownYear)
	}
}

func TestMalformedDate(t *testing.T) {
	if MalformedDate("") {
		t.Error("empty date must not be malformed")
	}
	if MalformedDate("1931") {
		t.Error("bare year must not be malformed")
	}
	if !MalformedDate("last winter") {
		t.Error("date without a year must be malformed")
	}
}
