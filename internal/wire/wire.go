// Package wire translates domain values to and from their JSON wire form.
//
// Field names are camelCase on the wire. Money is written as a number with
// two decimals; decimals are accepted as JSON numbers or numeric strings.
package wire

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

func money(e *jx.Encoder, name string, v decimal.Decimal) {
	e.Field(name, func(e *jx.Encoder) {
		e.Num(jx.Num(v.StringFixed(2)))
	})
}

func number(e *jx.Encoder, name string, v decimal.Decimal) {
	e.Field(name, func(e *jx.Encoder) {
		e.Num(jx.Num(v.String()))
	})
}

func str(e *jx.Encoder, name, v string) {
	e.Field(name, func(e *jx.Encoder) {
		e.Str(v)
	})
}

func integer(e *jx.Encoder, name string, v int) {
	e.Field(name, func(e *jx.Encoder) {
		e.Int(v)
	})
}

func timestamp(e *jx.Encoder, name string, t time.Time) {
	e.Field(name, func(e *jx.Encoder) {
		if t.IsZero() {
			e.Null()
			return
		}
		e.Str(t.UTC().Format(time.RFC3339))
	})
}

func optTimestamp(e *jx.Encoder, name string, t *time.Time) {
	if t == nil {
		e.Field(name, func(e *jx.Encoder) { e.Null() })
		return
	}
	timestamp(e, name, *t)
}

// Bounds for decimals read from the wire. Anything larger or more precise
// than this is not a monetary amount or a rate.
const (
	maxDecimalExponent = 20
	maxDecimalDigits   = 30
)

// Decimal reads a JSON number, numeric string or null (zero).
func Decimal(d *jx.Decoder) (decimal.Decimal, error) {
	switch tt := d.Next(); tt {
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return decimal.Zero, err
		}
		return parseDecimal(n.String())
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return decimal.Zero, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return decimal.Zero, nil
		}
		return parseDecimal(s)
	case jx.Null:
		return decimal.Zero, d.Null()
	default:
		return decimal.Zero, errors.Errorf("expected number, got %s", tt)
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if exp := v.Exponent(); exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return decimal.Zero, errors.Errorf("number %q is out of range", s)
	}
	if v.NumDigits() > maxDecimalDigits {
		return decimal.Zero, errors.Errorf("number %q has too many digits", s)
	}
	return v, nil
}

func optDecimal(d *jx.Decoder) (*decimal.Decimal, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}
	v, err := Decimal(d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Int reads a JSON integer. Null reads as zero.
func Int(d *jx.Decoder) (int, error) {
	if d.Next() == jx.Null {
		return 0, d.Null()
	}
	return d.Int()
}

// String reads a JSON string. Null reads as empty.
func String(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}
	return d.Str()
}

func readTime(d *jx.Decoder) (time.Time, error) {
	s, err := String(d)
	if err != nil || s == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Back-office forms submit bare dates.
		if day, dateErr := time.Parse(time.DateOnly, s); dateErr == nil {
			return day, nil
		}
		return time.Time{}, errors.Wrap(err, "parse time")
	}
	return t, nil
}

func optTime(d *jx.Decoder) (*time.Time, error) {
	t, err := readTime(d)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}

func field(key string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "field %q", key)
}
