package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func mustMoney(t *testing.T, s string) Money {
	t.Helper()
	d, err := stddec.NewFromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return NewMoneyFromDecimal(d)
}

func TestConstructors(t *testing.T) {
	d := stddec.NewFromFloat(10.125)
	m := NewMoneyFromDecimal(d)
	if !m.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m.Decimal, d)
	}
	if m.String() != "10.13" { // rounded for display
		t.Fatalf("display mismatch: got %s", m.String())
	}
	if !Zero().IsZero() {
		t.Fatalf("Zero is not zero")
	}
}

func TestRounding(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.355", "2.36"},
		{"2.365", "2.37"},
		{"-2.345", "-2.35"},
	}
	for _, c := range cases {
		got := mustMoney(t, c.in).Round().String()
		if got != c.out {
			t.Fatalf("round(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestPeriodConversions(t *testing.T) {
	m := mustMoney(t, "100")
	if got := m.Annual().String(); got != "1200.00" {
		t.Fatalf("Annual got %s", got)
	}
	if got := m.Annual().Monthly().String(); got != "100.00" {
		t.Fatalf("Monthly after Annual got %s", got)
	}
	// 5% of 2310 a year, paid monthly
	income := mustMoney(t, "2310").Mul(stddec.NewFromFloat(0.05)).Monthly().Round()
	if got := income.String(); got != "9.63" {
		t.Fatalf("monthly income got %s", got)
	}
}

func TestShareAndGrow(t *testing.T) {
	m := mustMoney(t, "1100")
	if got := m.Share(stddec.NewFromInt(50)).String(); got != "550.00" {
		t.Fatalf("Share got %s", got)
	}
	if got := m.Grow(stddec.NewFromInt(5)).String(); got != "1155.00" {
		t.Fatalf("Grow got %s", got)
	}
	if got := m.Grow(stddec.NewFromFloat(-12.5)).String(); got != "962.50" {
		t.Fatalf("Grow negative got %s", got)
	}
	if got := m.Share(stddec.Zero); !got.IsZero() {
		t.Fatalf("Share(0) got %s", got)
	}
}

func TestArithmetic(t *testing.T) {
	a := mustMoney(t, "10")
	b := mustMoney(t, "2.5")
	if got := a.Add(b).String(); got != "12.50" {
		t.Fatalf("Add got %s", got)
	}
	if got := a.Mul(stddec.NewFromInt(3)).String(); got != "30.00" {
		t.Fatalf("Mul got %s", got)
	}
	if got := Zero().Add(a).Mul(stddec.NewFromInt(15)).String(); got != "150.00" {
		t.Fatalf("accumulate got %s", got)
	}
}
