package query

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type testStatus int

type testLabel string

type testRatio float32

type testPriority int

func (p testPriority) String() string { return "high" }

type testName struct{ first, last string }

func (n testName) String() string { return n.first + " " + n.last }

func TestValueRender(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	n := 7
	var nilInt *int

	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"null", Null(), "NULL"},
		{"zero value", Value{}, "NULL"},
		{"int", Int(-42), "-42"},
		{"uint", Uint(42), "42"},
		{"float", Float(3.25), "3.25"},
		{"integral float", Float(2), "2.0"},
		{"nan", Float(math.NaN()), "NULL"},
		{"inf", Float(math.Inf(1)), "NULL"},
		{"true", Bool(true), "1"},
		{"false", Bool(false), "0"},
		{"text", Text("hello"), "'hello'"},
		{"quoted text", Text("O'Brien"), "'O''Brien'"},
		{"numeric", Numeric(decimal.RequireFromString("12.34")), "12.34"},
		{"time", Time(ts), "'2024-03-09T14:30:00Z'"},
		{"placeholder", Param(NewPlaceholder("id")), ":id"},
		{"of int8", ValueOf(int8(5)), "5"},
		{"of uint32", ValueOf(uint32(7)), "7"},
		{"of float32", ValueOf(float32(0.5)), "0.5"},
		{"of float32 shortest", ValueOf(float32(0.1)), "0.1"},
		{"float32 integral", Float32(2), "2.0"},
		{"of named float32", ValueOf(testRatio(0.3)), "0.3"},
		{"of bytes", ValueOf([]byte("raw")), "'raw'"},
		{"of time pointer", ValueOf(&ts), "'2024-03-09T14:30:00Z'"},
		{"of uuid", ValueOf(uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")), "'123e4567-e89b-12d3-a456-426614174000'"},
		{"of decimal", ValueOf(decimal.NewFromInt(99)), "99"},
		{"of enum", ValueOf(testStatus(2)), "2"},
		{"of enum with String", ValueOf(testPriority(3)), "3"},
		{"of named string", ValueOf(testLabel("x'y")), "'x''y'"},
		{"of stringer", ValueOf(testName{"Ada", "Lovelace"}), "'Ada Lovelace'"},
		{"of pointer", ValueOf(&n), "7"},
		{"of nil pointer", ValueOf(nilInt), "NULL"},
		{"of nil", ValueOf(nil), "NULL"},
		{"of unsupported", ValueOf(struct{}{}), "NULL"},
		{"of placeholder", ValueOf(Positional()), "?"},
		{"of value", ValueOf(Int(3)), "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestTextEscapingOnlyDoublesQuotes(t *testing.T) {
	inputs := []string{
		"",
		"'",
		"''",
		"a'b'c",
		`back\slash "double" 'single'`,
		"line\nbreak\ttab",
		"'; DROP TABLE users; --",
		"ünïcödé '字'",
	}
	for _, s := range inputs {
		want := "'" + strings.ReplaceAll(s, "'", "''") + "'"
		assert.Equal(t, want, Text(s).String(), "input %q", s)
	}
}

func TestValuePredicates(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.False(t, Int(0).IsNull())
	assert.True(t, Param(Positional()).IsPlaceholder())
	assert.False(t, Text("?").IsPlaceholder())
}
