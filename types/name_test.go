package types

import (
	"errors"
	"testing"
)

func TestNameIsValid(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"alice", true},
		{"eosio.token", true},
		{"a", true},
		{"abcde1234512", true},
		{"", false},
		{"abcde12345123", false},
		{"Alice", false},
		{"bob6", false},
		{"trailing.", false},
		{"with space", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.name).IsValid(); got != tt.valid {
				t.Errorf("IsValid(%q): got %v, want %v", tt.name, got, tt.valid)
			}
		})
	}
}

func TestParseName(t *testing.T) {
	if _, err := ParseName("Nope"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	n, err := ParseName("carol")
	if err != nil || n != "carol" {
		t.Errorf("ParseName: got %q, %v", n, err)
	}
}

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  Symbol
		ok    bool
	}{
		{"2,TKN", NewSymbol("TKN", 2), true},
		{"0,EOS", NewSymbol("EOS", 0), true},
		{"18,MAXP", NewSymbol("MAXP", 18), true},
		{"19,TKN", Symbol{}, false},
		{"TKN", Symbol{}, false},
		{"2,tkn", Symbol{}, false},
		{"x,TKN", Symbol{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSymbol(tt.input)
			if tt.ok {
				if err != nil {
					t.Fatalf("ParseSymbol(%q): %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("got %v, want %v", got, tt.want)
				}
				if got.String() != tt.input {
					t.Errorf("String: got %s, want %s", got.String(), tt.input)
				}
				return
			}
			if !errors.Is(err, ErrInvalidSymbol) {
				t.Errorf("ParseSymbol(%q): got %v, want ErrInvalidSymbol", tt.input, err)
			}
		})
	}
}

func TestSymbolEquality(t *testing.T) {
	if NewSymbol("TKN", 2) == NewSymbol("TKN", 4) {
		t.Error("symbols with different precision must differ")
	}
	if NewSymbol("TKN", 2) != MustSymbol("2,TKN") {
		t.Error("identical symbols must be equal")
	}
}
