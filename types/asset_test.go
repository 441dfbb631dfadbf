package types

import (
	"encoding/json"
	"errors"
	"testing"
)

var tkn = NewSymbol("TKN", 2)

func TestParseAsset(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		amount int64
		symbol Symbol
	}{
		{"two decimals", "1000.00 TKN", 100000, tkn},
		{"no decimals", "42 EOS", 42, NewSymbol("EOS", 0)},
		{"four decimals", "0.0001 SYS", 1, NewSymbol("SYS", 4)},
		{"negative", "-5.50 TKN", -550, tkn},
		{"surrounding space", "  7.10 TKN ", 710, tkn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseAsset(tt.input)
			if err != nil {
				t.Fatalf("ParseAsset(%q): %v", tt.input, err)
			}
			if a.Amount != tt.amount {
				t.Errorf("Amount: got %d, want %d", a.Amount, tt.amount)
			}
			if a.Symbol != tt.symbol {
				t.Errorf("Symbol: got %v, want %v", a.Symbol, tt.symbol)
			}
		})
	}
}

func TestParseAssetErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"missing code", "10.00", ErrInvalidAsset},
		{"not a number", "ten TKN", ErrInvalidAsset},
		{"exponent", "1e3 TKN", ErrInvalidAsset},
		{"lowercase code", "1.00 tkn", ErrInvalidSymbol},
		{"code too long", "1.00 ABCDEFGH", ErrInvalidSymbol},
		{"out of range", "4611686018427387904 TKN", ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAsset(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseAsset(%q): got %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestAssetString(t *testing.T) {
	tests := []struct {
		asset Asset
		want  string
	}{
		{NewAsset(100000, tkn), "1000.00 TKN"},
		{NewAsset(5, tkn), "0.05 TKN"},
		{NewAsset(-550, tkn), "-5.50 TKN"},
		{NewAsset(42, NewSymbol("EOS", 0)), "42 EOS"},
		{Zero(NewSymbol("SYS", 4)), "0.0000 SYS"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.asset.String(); got != tt.want {
				t.Errorf("String: got %s, want %s", got, tt.want)
			}
			parsed, err := ParseAsset(tt.want)
			if err != nil {
				t.Fatalf("ParseAsset: %v", err)
			}
			if parsed != tt.asset {
				t.Errorf("round trip: got %v, want %v", parsed, tt.asset)
			}
		})
	}
}

func TestAssetArithmetic(t *testing.T) {
	a := NewAsset(500, tkn)
	b := NewAsset(200, tkn)

	sum, err := a.Add(b)
	if err != nil || sum.Amount != 700 {
		t.Errorf("Add: got %v, %v", sum, err)
	}
	diff, err := a.Sub(b)
	if err != nil || diff.Amount != 300 {
		t.Errorf("Sub: got %v, %v", diff, err)
	}

	t.Run("precision mismatch", func(t *testing.T) {
		other := NewAsset(200, NewSymbol("TKN", 3))
		if _, err := a.Add(other); !errors.Is(err, ErrSymbolMismatch) {
			t.Errorf("Add: got %v, want ErrSymbolMismatch", err)
		}
		if _, err := a.Sub(other); !errors.Is(err, ErrSymbolMismatch) {
			t.Errorf("Sub: got %v, want ErrSymbolMismatch", err)
		}
	})

	t.Run("overflow", func(t *testing.T) {
		max := NewAsset(MaxAmount, tkn)
		if _, err := max.Add(NewAsset(1, tkn)); !errors.Is(err, ErrOverflow) {
			t.Errorf("Add: got %v, want ErrOverflow", err)
		}
		if _, err := NewAsset(-MaxAmount, tkn).Sub(NewAsset(1, tkn)); !errors.Is(err, ErrOverflow) {
			t.Errorf("Sub: got %v, want ErrOverflow", err)
		}
	})
}

func TestAssetValidity(t *testing.T) {
	tests := []struct {
		name  string
		asset Asset
		valid bool
	}{
		{"max", NewAsset(MaxAmount, tkn), true},
		{"min", NewAsset(-MaxAmount, tkn), true},
		{"above max", NewAsset(MaxAmount+1, tkn), false},
		{"below min", NewAsset(-MaxAmount-1, tkn), false},
		{"bad symbol", NewAsset(1, NewSymbol("tkn", 2)), false},
		{"precision too large", NewAsset(1, NewSymbol("TKN", 19)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.asset.IsValid(); got != tt.valid {
				t.Errorf("IsValid: got %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestAssetJSON(t *testing.T) {
	a := NewAsset(123456, tkn)
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"1234.56 TKN"` {
		t.Errorf("Marshal: got %s", data)
	}

	var decoded Asset
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != a {
		t.Errorf("Unmarshal: got %v, want %v", decoded, a)
	}
}

func TestAssetJSONIsAlwaysAString(t *testing.T) {
	row := struct {
		Quantity Asset `json:"quantity"`
	}{Quantity: NewAsset(150, tkn)}

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"quantity":"1.50 TKN"}` {
		t.Errorf("Marshal: got %s", data)
	}

	var a Asset
	if err := json.Unmarshal([]byte(`{"Amount":150,"Symbol":{"Code":"TKN","Precision":2}}`), &a); err == nil {
		t.Errorf("object form decoded as %v, want an error", a)
	}
}
