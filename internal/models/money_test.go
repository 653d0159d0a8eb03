package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalFixedTwoDecimals(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.RequireFromString("19.9"))
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"19.90"` {
		t.Fatalf(`want "19.90" got %s`, data)
	}

	zero := Money{}
	data, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("marshal zero failed: %v", err)
	}
	if string(data) != `"0.00"` {
		t.Fatalf(`want "0.00" got %s`, data)
	}
}

func TestMoneyUnmarshalStringAndNumber(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"12.345"`), &m); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if m.String() != "12.35" {
		t.Fatalf("want 12.35 got %s", m.String())
	}

	if err := json.Unmarshal([]byte(`7`), &m); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if m.String() != "7.00" {
		t.Fatalf("want 7.00 got %s", m.String())
	}
}

func TestMoneyRoundsOnConstruction(t *testing.T) {
	m := NewMoneyFromFloat(9.999)
	if m.String() != "10.00" {
		t.Fatalf("want 10.00 got %s", m.String())
	}
}
