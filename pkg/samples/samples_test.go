package samples

import (
	"errors"
	"strings"
	"testing"

	"github.com/ifro-labs/ferro/pkg/calibration"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []calibration.Sample
	}{
		{
			name: "bare values",
			text: "0.052 0.118\n0.2",
			want: []calibration.Sample{{Absorbance: 0.052}, {Absorbance: 0.118}, {Absorbance: 0.2}},
		},
		{
			name: "trailing separators",
			text: "0.1, 0.2; 0.3",
			want: []calibration.Sample{{Absorbance: 0.1}, {Absorbance: 0.2}, {Absorbance: 0.3}},
		},
		{
			name: "labels",
			text: `tap=0.031, "well 3"=0.12`,
			want: []calibration.Sample{{Label: "tap", Absorbance: 0.031}, {Label: "well 3", Absorbance: 0.12}},
		},
		{
			name: "negative and zero readings",
			text: "0 -0.004",
			want: []calibration.Sample{{Absorbance: 0}, {Absorbance: -0.004}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("sample %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "   ", ErrInvalidCount},
		{"decimal comma", "0,052", ErrInvalidValue},
		{"not a number", "0.1 abc", ErrInvalidValue},
		{"nan", "NaN", ErrInvalidValue},
		{"unterminated quote", `"well 3=0.1`, ErrInvalidValue},
		{"too many", strings.Repeat("0.1 ", MaxCount+1), ErrInvalidCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.text); !errors.Is(err, tt.want) {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.text, err, tt.want)
			}
		})
	}
}

func TestFromStrings(t *testing.T) {
	got, err := FromStrings([]string{"0.1000", " 0.0500 "}, []string{"", "river"})
	if err != nil {
		t.Fatalf("FromStrings() error = %v", err)
	}
	if got[0] != (calibration.Sample{Absorbance: 0.1}) || got[1] != (calibration.Sample{Label: "river", Absorbance: 0.05}) {
		t.Fatalf("FromStrings() = %+v", got)
	}

	if _, err := FromStrings(nil, nil); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("FromStrings(nil) error = %v, want %v", err, ErrInvalidCount)
	}
	if _, err := FromStrings([]string{""}, nil); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("FromStrings(empty) error = %v, want %v", err, ErrInvalidValue)
	}
}

func TestParseArgs(t *testing.T) {
	got, err := ParseArgs([]string{"0.1", "well 3=0.12", "", "x=y=0.2"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	want := []calibration.Sample{
		{Absorbance: 0.1},
		{Label: "well 3", Absorbance: 0.12},
		{Label: "x=y", Absorbance: 0.2},
	}
	if len(got) != len(want) {
		t.Fatalf("ParseArgs() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
