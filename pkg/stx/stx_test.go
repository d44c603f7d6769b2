package stx

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		micro uint64
		want  string
	}{
		{0, "0 STX"},
		{1, "0.000001 STX"},
		{1500000, "1.5 STX"},
		{2000000, "2 STX"},
		{123456789, "123.456789 STX"},
	}

	for _, tt := range tests {
		if got := Format(tt.micro); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.micro, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSigned(-250000); got != "-0.25 STX" {
		t.Errorf("expected -0.25 STX, got %q", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr error
	}{
		{"1.5", 1500000, nil},
		{"1.5 STX", 1500000, nil},
		{" 0.000001 ", 1, nil},
		{"42", 42000000, nil},
		{"-1", 0, ErrNegative},
		{"0.0000001", 0, ErrPrecision},
		{"10000000000000", 0, ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}

	if _, err := Parse("one"); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}
