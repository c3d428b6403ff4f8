package query

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type valueKind uint8

const (
	valueNull valueKind = iota
	valueInt
	valueFloat
	valueBool
	valueText
	valueNumeric
	valuePlaceholder
	valueTime
)

// Value is a SQL literal: NULL, an integer, a float, a boolean, text, an
// exact numeric, a placeholder or a timestamp. The zero Value is NULL.
type Value struct {
	kind valueKind
	i    int64
	f    float64
	f32  bool // f came from a float32
	b    bool
	s    string
	t    time.Time
	ph   Placeholder
}

// Null returns the NULL literal.
func Null() Value { return Value{} }

// Int returns an integer literal.
func Int(v int64) Value { return Value{kind: valueInt, i: v} }

// Uint returns an integer literal. The value is converted to int64.
func Uint(v uint64) Value { return Value{kind: valueInt, i: int64(v)} }

// Float returns a floating point literal.
func Float(v float64) Value { return Value{kind: valueFloat, f: v} }

// Float32 returns a floating point literal in the shortest form that
// round-trips at 32-bit precision.
func Float32(v float32) Value { return Value{kind: valueFloat, f: float64(v), f32: true} }

// Bool returns a boolean literal, rendered as 1 or 0.
func Bool(v bool) Value { return Value{kind: valueBool, b: v} }

// Text returns a quoted string literal.
func Text(v string) Value { return Value{kind: valueText, s: v} }

// Numeric returns an exact numeric literal rendered without quotes.
func Numeric(d decimal.Decimal) Value { return Value{kind: valueNumeric, s: d.String()} }

// Time returns a timestamp literal rendered in RFC 3339 form.
func Time(t time.Time) Value { return Value{kind: valueTime, t: t} }

// Param returns a Value that renders as the given placeholder.
func Param(p Placeholder) Value { return Value{kind: valuePlaceholder, ph: p} }

// ValueOf converts a Go value to a Value. Every integer width, named types
// over integer, float, bool and string kinds, time.Time, uuid.UUID,
// decimal.Decimal, Placeholder and other fmt.Stringer types are recognized.
// Nil and unrecognized types become NULL.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case Placeholder:
		return Param(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Uint(uint64(x))
	case uint8:
		return Uint(uint64(x))
	case uint16:
		return Uint(uint64(x))
	case uint32:
		return Uint(uint64(x))
	case uint64:
		return Uint(x)
	case float32:
		return Float32(x)
	case float64:
		return Float(x)
	case bool:
		return Bool(x)
	case string:
		return Text(x)
	case []byte:
		return Text(string(x))
	case time.Time:
		return Time(x)
	case *time.Time:
		if x == nil {
			return Null()
		}
		return Time(*x)
	case uuid.UUID:
		return Text(x.String())
	case decimal.Decimal:
		return Numeric(x)
	}

	// Named types go by their underlying kind, so an enum with a String
	// method still renders as its number.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint(rv.Uint())
	case reflect.Float32:
		return Float32(float32(rv.Float()))
	case reflect.Float64:
		return Float(rv.Float())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.String:
		return Text(rv.String())
	case reflect.Pointer:
		if rv.IsNil() {
			return Null()
		}
		return ValueOf(rv.Elem().Interface())
	}
	if s, ok := v.(fmt.Stringer); ok {
		return Text(s.String())
	}
	return Null()
}

// IsNull reports whether the value is the NULL literal.
func (v Value) IsNull() bool { return v.kind == valueNull }

// IsPlaceholder reports whether the value is a parameter marker.
func (v Value) IsPlaceholder() bool { return v.kind == valuePlaceholder }

// String renders the value as a SQL literal.
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case valueInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case valueFloat:
		bits := 64
		if v.f32 {
			bits = 32
		}
		sb.WriteString(formatFloat(v.f, bits))
	case valueBool:
		if v.b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	case valueText:
		writeQuoted(sb, v.s)
	case valueNumeric:
		sb.WriteString(v.s)
	case valuePlaceholder:
		sb.WriteString(v.ph.String())
	case valueTime:
		writeQuoted(sb, v.t.Format(time.RFC3339))
	default:
		sb.WriteString("NULL")
	}
}

// formatFloat renders the shortest decimal form that round-trips, always
// with a digit on each side of the radix point.
func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "NULL"
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// writeQuoted writes s as a single-quoted literal, doubling embedded quotes.
func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('\'')
	for {
		i := strings.IndexByte(s, '\'')
		if i < 0 {
			break
		}
		sb.WriteString(s[:i+1])
		sb.WriteByte('\'')
		s = s[i+1:]
	}
	sb.WriteString(s)
	sb.WriteByte('\'')
}
