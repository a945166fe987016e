// internal/cli/prompt_test.go
package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseSolAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "Valid amount", input: "0.5", want: 0.5},
		{name: "Whole number", input: "2", want: 2},
		{name: "Whitespace trimmed", input: " 1.25 ", want: 1.25},
		{name: "Zero rejected", input: "0", wantErr: true},
		{name: "Negative rejected", input: "-1", wantErr: true},
		{name: "Garbage rejected", input: "abc", wantErr: true},
		{name: "Empty rejected", input: "", wantErr: true},
		{name: "NaN rejected", input: "NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSolAmount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSolAmount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("ParseSolAmount(%q) error type = %T, want *ValidationError", tt.input, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseSolAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSlippageBps(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       int
		wantWarned bool
	}{
		{name: "Blank uses default silently", input: "", want: 100},
		{name: "Whitespace only uses default silently", input: "   ", want: 100},
		{name: "One percent", input: "1", want: 100},
		{name: "Half percent", input: "0.5", want: 50},
		{name: "Two and a half percent", input: "2.5", want: 250},
		{name: "Rounded", input: "0.333", want: 33},
		{name: "Garbage warns and uses default", input: "lots", want: 100, wantWarned: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warned := ParseSlippageBps(tt.input, 100)
			if got != tt.want {
				t.Errorf("ParseSlippageBps(%q) = %d, want %d", tt.input, got, tt.want)
			}
			if warned != tt.wantWarned {
				t.Errorf("ParseSlippageBps(%q) warned = %v, want %v", tt.input, warned, tt.wantWarned)
			}
		})
	}
}

func TestReadTradeInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("TokenMintAAA111\n0.5\n\n"), NewPrinter(&out))

	input, err := p.ReadTradeInput(100)
	if err != nil {
		t.Fatalf("ReadTradeInput() error = %v", err)
	}
	if input.TokenMint != "TokenMintAAA111" {
		t.Errorf("TokenMint = %q", input.TokenMint)
	}
	if input.SolAmount != 0.5 {
		t.Errorf("SolAmount = %v, want 0.5", input.SolAmount)
	}
	if input.SlippageBps != 100 {
		t.Errorf("SlippageBps = %d, want 100", input.SlippageBps)
	}
	if strings.Contains(out.String(), "Invalid slippage") {
		t.Error("Blank slippage should not warn")
	}
}

func TestReadTradeInputBadSlippageWarns(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("TokenMintAAA111\n0.5\nmuch\n"), NewPrinter(&out))

	input, err := p.ReadTradeInput(100)
	if err != nil {
		t.Fatalf("ReadTradeInput() error = %v", err)
	}
	if input.SlippageBps != 100 {
		t.Errorf("SlippageBps = %d, want default 100", input.SlippageBps)
	}
	if !strings.Contains(out.String(), "Invalid slippage, using default 1%") {
		t.Errorf("Expected slippage warning in output, got %q", out.String())
	}
}

func TestReadTradeInputRejectsBadAmount(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
	}{
		{name: "Non-positive amount", stdin: "TokenMintAAA111\n-3\n\n"},
		{name: "Unparsable amount", stdin: "TokenMintAAA111\nabc\n\n"},
		{name: "Empty mint", stdin: "\n0.5\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.stdin), NewPrinter(&out))

			_, err := p.ReadTradeInput(100)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("ReadTradeInput() error = %v, want *ValidationError", err)
			}
		})
	}
}
