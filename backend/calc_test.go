package main

import (
	"math"
	"testing"
	"time"
)

func TestEvaluateExpression(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"1+1", 2},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/4", 2.5},
		{"-5+3", -2},
		{"2*-3", -6},
		{"  7 - 2 - 1 ", 4},
		{"100/10/2", 5},
		{"3.5*2", 7},
		{"((1+2)*(3+4))", 21},
	}
	for _, tc := range cases {
		got, err := EvaluateExpression(tc.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.input, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%q: expected %v, got %v", tc.input, tc.want, got)
		}
	}
}

func TestEvaluateExpressionErrors(t *testing.T) {
	inputs := []string{
		"",
		"1+",
		"*3",
		"(1+2",
		"1/0",
		"two+2",
		"1+2)",
		"4//2",
	}
	for _, input := range inputs {
		if _, err := EvaluateExpression(input); err == nil {
			t.Fatalf("%q: expected error", input)
		}
	}
}

func TestComputeBMICategories(t *testing.T) {
	cases := []struct {
		weightKg float64
		heightM  float64
		category string
	}{
		{50, 1.75, "underweight"},
		{68, 1.75, "normal"},
		{85, 1.75, "overweight"},
		{100, 1.75, "obese"},
	}
	for _, tc := range cases {
		bmi, category, err := ComputeBMI(tc.weightKg, tc.heightM)
		if err != nil {
			t.Fatalf("bmi(%v, %v): unexpected error: %v", tc.weightKg, tc.heightM, err)
		}
		if category != tc.category {
			t.Fatalf("bmi(%v, %v)=%v: expected category %q, got %q", tc.weightKg, tc.heightM, bmi, tc.category, category)
		}
	}
	if _, _, err := ComputeBMI(0, 1.75); err == nil {
		t.Fatalf("expected error for zero weight")
	}
	if _, _, err := ComputeBMI(70, 0); err == nil {
		t.Fatalf("expected error for zero height")
	}
}

func TestAgeOn(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	birth := time.Date(1990, time.June, 16, 0, 0, 0, 0, time.UTC)
	if age, err := AgeOn(birth, now); err != nil || age != 33 {
		t.Fatalf("expected 33 the day before the birthday, got %d (%v)", age, err)
	}
	birthday := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	if age, err := AgeOn(birthday, now); err != nil || age != 34 {
		t.Fatalf("expected 34 on the birthday, got %d (%v)", age, err)
	}
	future := now.AddDate(1, 0, 0)
	if _, err := AgeOn(future, now); err == nil {
		t.Fatalf("expected error for future birth date")
	}
}

func TestConvertTemperature(t *testing.T) {
	cases := []struct {
		value float64
		from  string
		to    string
		want  float64
	}{
		{0, "c", "f", 32},
		{100, "celsius", "fahrenheit", 212},
		{32, "F", "C", 0},
		{0, "c", "k", 273.15},
		{273.15, "kelvin", "celsius", 0},
		{25, "c", "c", 25},
	}
	for _, tc := range cases {
		got, err := ConvertTemperature(tc.value, tc.from, tc.to)
		if err != nil {
			t.Fatalf("%v %s->%s: unexpected error: %v", tc.value, tc.from, tc.to, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%v %s->%s: expected %v, got %v", tc.value, tc.from, tc.to, tc.want, got)
		}
	}
	if _, err := ConvertTemperature(1, "x", "c"); err == nil {
		t.Fatalf("expected error for unknown source unit")
	}
	if _, err := ConvertTemperature(1, "c", "rankine"); err == nil {
		t.Fatalf("expected error for unknown target unit")
	}
}

func TestASCIIRange(t *testing.T) {
	entries, err := ASCIIRange(65, 67)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 || entries[0].Char != "A" || entries[2].Char != "C" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	full, err := ASCIIRange(asciiPrintableMin, asciiPrintableMax)
	if err != nil {
		t.Fatalf("unexpected error for full range: %v", err)
	}
	if len(full) != asciiPrintableMax-asciiPrintableMin+1 {
		t.Fatalf("unexpected full range length %d", len(full))
	}

	for _, bad := range [][2]int{{31, 40}, {40, 127}, {90, 80}} {
		if _, err := ASCIIRange(bad[0], bad[1]); err == nil {
			t.Fatalf("expected error for range %v", bad)
		}
	}
}
