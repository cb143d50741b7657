package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// EvaluateExpression evaluates an infix arithmetic expression with the four
// basic operators, parentheses and unary minus. Malformed input and division
// by zero are reported as errors; nothing is ever appended to the history
// for a failed evaluation.
func EvaluateExpression(input string) (float64, error) {
	parser := exprParser{input: []rune(input)}
	value, err := parser.parseSum()
	if err != nil {
		return 0, err
	}
	parser.skipSpaces()
	if !parser.done() {
		return 0, fmt.Errorf("unexpected character %q", parser.peek())
	}
	return value, nil
}

type exprParser struct {
	input []rune
	pos   int
}

func (p *exprParser) parseSum() (float64, error) {
	value, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		case p.accept('+'):
			right, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			value += right
		case p.accept('-'):
			right, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			value -= right
		default:
			return value, nil
		}
	}
}

func (p *exprParser) parseProduct() (float64, error) {
	value, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		case p.accept('*'):
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			value *= right
		case p.accept('/'):
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			value /= right
		default:
			return value, nil
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	p.skipSpaces()
	if p.accept('-') {
		value, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	if p.accept('(') {
		value, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if !p.accept(')') {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		return value, nil
	}
	return p.parseNumber()
}

func (p *exprParser) parseNumber() (float64, error) {
	p.skipSpaces()
	start := p.pos
	for !p.done() && (unicode.IsDigit(p.peek()) || p.peek() == '.') {
		p.pos++
	}
	if start == p.pos {
		if p.done() {
			return 0, fmt.Errorf("unexpected end of expression")
		}
		return 0, fmt.Errorf("unexpected character %q", p.peek())
	}
	value, err := strconv.ParseFloat(string(p.input[start:p.pos]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", string(p.input[start:p.pos]))
	}
	return value, nil
}

func (p *exprParser) skipSpaces() {
	for !p.done() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

func (p *exprParser) accept(r rune) bool {
	if !p.done() && p.input[p.pos] == r {
		p.pos++
		return true
	}
	return false
}

func (p *exprParser) peek() rune {
	return p.input[p.pos]
}

func (p *exprParser) done() bool {
	return p.pos >= len(p.input)
}

// ComputeBMI returns the body mass index for a weight in kilograms and a
// height in meters, with its standard category label.
func ComputeBMI(weightKg, heightM float64) (float64, string, error) {
	if weightKg <= 0 {
		return 0, "", fmt.Errorf("weight must be positive")
	}
	if heightM <= 0 {
		return 0, "", fmt.Errorf("height must be positive")
	}
	bmi := weightKg / (heightM * heightM)
	category := "obese"
	switch {
	case bmi < 18.5:
		category = "underweight"
	case bmi < 25:
		category = "normal"
	case bmi < 30:
		category = "overweight"
	}
	return bmi, category, nil
}

// AgeOn returns full years elapsed between a birth date and a reference
// instant.
func AgeOn(birth, now time.Time) (int, error) {
	if birth.After(now) {
		return 0, fmt.Errorf("birth date is in the future")
	}
	age := now.Year() - birth.Year()
	anniversary := time.Date(now.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		age--
	}
	return age, nil
}

// ConvertTemperature converts between celsius, fahrenheit and kelvin. Units
// accept one-letter or full spellings, case-insensitive.
func ConvertTemperature(value float64, from, to string) (float64, error) {
	celsius, err := toCelsius(value, from)
	if err != nil {
		return 0, err
	}
	switch normalizeUnit(to) {
	case "c":
		return celsius, nil
	case "f":
		return celsius*9/5 + 32, nil
	case "k":
		return celsius + 273.15, nil
	default:
		return 0, fmt.Errorf("unknown temperature unit %q", to)
	}
}

func toCelsius(value float64, unit string) (float64, error) {
	switch normalizeUnit(unit) {
	case "c":
		return value, nil
	case "f":
		return (value - 32) * 5 / 9, nil
	case "k":
		return value - 273.15, nil
	default:
		return 0, fmt.Errorf("unknown temperature unit %q", unit)
	}
}

func normalizeUnit(unit string) string {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "c", "celsius":
		return "c"
	case "f", "fahrenheit":
		return "f"
	case "k", "kelvin":
		return "k"
	default:
		return ""
	}
}

const (
	asciiPrintableMin = 32
	asciiPrintableMax = 126
)

type ASCIIEntry struct {
	Code int    `json:"code"`
	Char string `json:"char"`
}

// ASCIIRange returns the printable ASCII table slice between two codes,
// inclusive.
func ASCIIRange(from, to int) ([]ASCIIEntry, error) {
	if from < asciiPrintableMin || to > asciiPrintableMax || from > to {
		return nil, fmt.Errorf("range must satisfy %d <= from <= to <= %d", asciiPrintableMin, asciiPrintableMax)
	}
	entries := make([]ASCIIEntry, 0, to-from+1)
	for code := from; code <= to; code++ {
		entries = append(entries, ASCIIEntry{Code: code, Char: string(rune(code))})
	}
	return entries, nil
}
