package particle

import (
	"testing"
)

// TestParseRange_FixedValue tests parsing of fixed value format
func TestParseRange_FixedValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
	}{
		{"Integer", "1500", 1500, 1500},
		{"Float", "3.14", 3.14, 3.14},
		{"Negative", "-10.5", -10.5, -10.5},
		{"Zero", "0", 0, 0},
		{"Padded", "  7 ", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) error: %v", tt.input, err)
			}
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("ParseRange(%q) = (%v, %v), want (%v, %v)", tt.input, min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

// TestParseRange_Range tests parsing of range format
func TestParseRange_Range(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
	}{
		{"Float range", "[0.7 0.9]", 0.7, 0.9},
		{"Integer range", "[10 20]", 10, 20},
		{"Negative range", "[-5 -2]", -5, -2},
		{"Single value", "[5]", 5, 5},
		{"Inverted kept as written", "[9 1]", 9, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, err := ParseRange(tt.input)
			if err != nil {
				t.Fatalf("ParseRange(%q) error: %v", tt.input, err)
			}
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("ParseRange(%q) = (%v, %v), want (%v, %v)", tt.input, min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

// TestParseRange_Invalid 缺失或格式错误的值必须报错，不能静默返回 0
func TestParseRange_Invalid(t *testing.T) {
	inputs := []string{"", "   ", "[", "[1 2", "[1 2 3]", "[a b]", "abc", "[]"}
	for _, in := range inputs {
		if _, _, err := ParseRange(in); err == nil {
			t.Errorf("ParseRange(%q) expected error", in)
		}
	}
}

func TestParseFloat(t *testing.T) {
	if v, err := ParseFloat(" 0.05 "); err != nil || v != 0.05 {
		t.Errorf("ParseFloat(0.05) = %v, %v", v, err)
	}
	if _, err := ParseFloat(""); err == nil {
		t.Error("ParseFloat(\"\") expected error")
	}
	if _, err := ParseFloat("1e"); err == nil {
		t.Error("ParseFloat(1e) expected error")
	}
}
