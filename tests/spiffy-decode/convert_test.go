package tests

import (
	bigmath "math/big"
	"testing"

	cbor "github.com/cbor-spiffy/spiffy/runtime"
)

func TestGetInt64PlainRejectsFloat(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendFloat64(nil, 5))
	var v int64
	dc.GetInt64(&v)
	if dc.GetError() == nil {
		t.Fatalf("expected error decoding a float as plain int64")
	}
}

func TestGetInt64ConvertFromFloat(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendFloat64(nil, 5))
	var v int64
	dc.GetInt64Convert(cbor.ConvertTypeDouble, &v)
	if err := dc.GetError(); err != nil {
		t.Fatalf("GetInt64Convert: %v", err)
	}
	if v != 5 {
		t.Fatalf("got %d want 5", v)
	}
}

func TestGetInt64ConvertOverflow(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendFloat64(nil, 1e300))
	var v int64
	dc.GetInt64Convert(cbor.ConvertTypeDouble, &v)
	if dc.GetError() == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestGetUint64ConvertNegativeRejected(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendInt64(nil, -1))
	var v uint64
	dc.GetUint64(&v)
	if dc.GetError() == nil {
		t.Fatalf("expected sign-conversion error for negative source")
	}
}

func TestGetDoubleConvertFromBignum(t *testing.T) {
	z := new(bigmath.Int).SetInt64(123456789)
	z.Mul(z, z)
	dc := cbor.NewDecodeContext(cbor.AppendBigInt(nil, z))

	var f float64
	dc.GetDoubleConvertAll(cbor.ConvertTypeBigNum, &f)
	if err := dc.GetError(); err != nil {
		t.Fatalf("GetDoubleConvertAll: %v", err)
	}
	want, _ := new(bigmath.Float).SetInt(z).Float64()
	if f != want {
		t.Fatalf("got %v want %v", f, want)
	}
}

func TestGetDoubleConvertAllFromDecimalFraction(t *testing.T) {
	// 125 * 10^-2 = 1.25
	b := cbor.AppendDecimalFraction(nil, -2, bigmath.NewInt(125))
	dc := cbor.NewDecodeContext(b)

	var f float64
	dc.GetDoubleConvertAll(cbor.ConvertTypeDecimalFraction, &f)
	if err := dc.GetError(); err != nil {
		t.Fatalf("GetDoubleConvertAll: %v", err)
	}
	if f != 1.25 {
		t.Fatalf("got %v want 1.25", f)
	}
}

func TestGetInt64ConvertAllFromBigfloat(t *testing.T) {
	// 3 * 2^1 = 6
	b := cbor.AppendBigfloat(nil, 1, bigmath.NewInt(3))
	dc := cbor.NewDecodeContext(b)

	var v int64
	dc.GetInt64ConvertAll(cbor.ConvertTypeBigfloat, &v)
	if err := dc.GetError(); err != nil {
		t.Fatalf("GetInt64ConvertAll: %v", err)
	}
	if v != 6 {
		t.Fatalf("got %d want 6", v)
	}
}

func TestGetInt64ConvertAllRequiresOptBit(t *testing.T) {
	b := cbor.AppendDecimalFraction(nil, -1, bigmath.NewInt(5))
	dc := cbor.NewDecodeContext(b)

	var v int64
	dc.GetInt64ConvertAll(cbor.ConvertTypeBigfloat, &v) // wrong bit: decimal fraction needs ConvertTypeDecimalFraction
	if dc.GetError() == nil {
		t.Fatalf("expected error when the matching opt bit is absent")
	}
}
