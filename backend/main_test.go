package main

import (
	"net/url"
	"testing"
)

func TestQueryIntParsesAndValidates(t *testing.T) {
	values := url.Values{}
	if got, err := queryInt(values, "from", 32); err != nil || got != 32 {
		t.Fatalf("expected fallback for missing key, got %d (%v)", got, err)
	}

	values.Set("from", "65")
	if got, err := queryInt(values, "from", 32); err != nil || got != 65 {
		t.Fatalf("expected parsed value, got %d (%v)", got, err)
	}

	values.Set("from", "abc")
	if _, err := queryInt(values, "from", 32); err == nil {
		t.Fatalf("expected error for non-integer value")
	} else if err.Error() != "from must be an integer" {
		t.Fatalf("unexpected error message %q", err)
	}
}
