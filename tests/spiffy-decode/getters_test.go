package tests

import (
	bigmath "math/big"
	"testing"
	"time"

	cbor "github.com/cbor-spiffy/spiffy/runtime"
)

func TestGetURIMatchTag(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendURI(nil, "https://example.com"))
	var s string
	dc.GetURI(cbor.MatchTag, &s)
	if err := dc.GetError(); err != nil {
		t.Fatalf("GetURI: %v", err)
	}
	if s != "https://example.com" {
		t.Fatalf("got %q", s)
	}
}

func TestGetURIMatchTagRejectsPlainText(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendString(nil, "https://example.com"))
	var s string
	dc.GetURI(cbor.MatchTag, &s)
	if dc.GetError() == nil {
		t.Fatalf("expected error for untagged text under MatchTag")
	}
}

func TestGetURIMatchTagContentTypeAcceptsPlainText(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendString(nil, "https://example.com"))
	var s string
	dc.GetURI(cbor.MatchTagContentType, &s)
	if err := dc.GetError(); err != nil {
		t.Fatalf("GetURI MatchTagContentType: %v", err)
	}
	if s != "https://example.com" {
		t.Fatalf("got %q", s)
	}
}

func TestGetDateStringMatchTagContentTypeRejectsTaggedValue(t *testing.T) {
	b := cbor.AppendTag(nil, 0)
	b = cbor.AppendString(b, "2021-04-30T09:00:00Z")

	dc := cbor.NewDecodeContext(b)
	var s string
	dc.GetDateString(cbor.MatchTagContentType, &s)
	if dc.GetError() == nil {
		t.Fatalf("expected ErrUnexpectedType for tag(0) text under MatchTagContentType, got success with %q", s)
	}
}

func TestGetBinaryUUID(t *testing.T) {
	var id [16]byte
	for i := range id {
		id[i] = byte(i)
	}
	dc := cbor.NewDecodeContext(cbor.AppendUUID(nil, id))
	var out [16]byte
	dc.GetBinaryUUID(cbor.MatchTag, &out)
	if err := dc.GetError(); err != nil {
		t.Fatalf("GetBinaryUUID: %v", err)
	}
	if out != id {
		t.Fatalf("uuid mismatch: got %v want %v", out, id)
	}
}

func TestGetBignumPositiveAndNegative(t *testing.T) {
	pos := new(bigmath.Int).SetInt64(1)
	pos.Lsh(pos, 100)
	dc := cbor.NewDecodeContext(cbor.AppendBigInt(nil, pos))
	var out bigmath.Int
	dc.GetBignum(cbor.MatchTag, &out)
	if err := dc.GetError(); err != nil {
		t.Fatalf("positive bignum: %v", err)
	}
	if out.Cmp(pos) != 0 {
		t.Fatalf("positive bignum mismatch: got %v want %v", &out, pos)
	}

	neg := new(bigmath.Int).Neg(pos)
	dc = cbor.NewDecodeContext(cbor.AppendBigInt(nil, neg))
	var out2 bigmath.Int
	dc.GetBignum(cbor.MatchTag, &out2)
	if err := dc.GetError(); err != nil {
		t.Fatalf("negative bignum: %v", err)
	}
	if out2.Cmp(neg) != 0 {
		t.Fatalf("negative bignum mismatch: got %v want %v", &out2, neg)
	}
}

func TestGetDecimalFractionInt64Mantissa(t *testing.T) {
	b := cbor.AppendDecimalFraction(nil, -3, bigmath.NewInt(-5000))
	dc := cbor.NewDecodeContext(b)
	var mant, exp int64
	dc.GetDecimalFraction(cbor.MatchTag, &mant, &exp)
	if err := dc.GetError(); err != nil {
		t.Fatalf("GetDecimalFraction: %v", err)
	}
	if mant != -5000 || exp != -3 {
		t.Fatalf("got mant=%d exp=%d", mant, exp)
	}
}

func TestGetBigFloatBigMantissa(t *testing.T) {
	big := new(bigmath.Int).SetInt64(1)
	big.Lsh(big, 80)
	b := cbor.AppendBigfloat(nil, 4, big)
	dc := cbor.NewDecodeContext(b)
	var mant bigmath.Int
	var exp int64
	dc.GetBigFloatBig(cbor.MatchTag, &mant, &exp)
	if err := dc.GetError(); err != nil {
		t.Fatalf("GetBigFloatBig: %v", err)
	}
	if mant.Cmp(big) != 0 || exp != 4 {
		t.Fatalf("got mant=%v exp=%d", &mant, exp)
	}
}

func TestGetEpochDateIntAndFloat(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendTagged(nil, 1, cbor.AppendInt64(nil, 1700000000)))
	var ts time.Time
	dc.GetEpochDate(cbor.MatchTag, &ts)
	if err := dc.GetError(); err != nil {
		t.Fatalf("int epoch: %v", err)
	}
	if !ts.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Fatalf("int epoch mismatch: %v", ts)
	}

	dc = cbor.NewDecodeContext(cbor.AppendTagged(nil, 1, cbor.AppendFloat64(nil, 1700000000.5)))
	dc.GetEpochDate(cbor.MatchTag, &ts)
	if err := dc.GetError(); err != nil {
		t.Fatalf("float epoch: %v", err)
	}
	want := time.Unix(1700000000, 500_000_000).UTC()
	if d := ts.Sub(want); d > time.Millisecond || d < -time.Millisecond {
		t.Fatalf("float epoch mismatch: got %v want %v", ts, want)
	}
}

func TestGetRegexAndMIME(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendRegexpString(nil, "^a+$"))
	var pat string
	dc.GetRegex(cbor.MatchTag, &pat)
	if err := dc.GetError(); err != nil || pat != "^a+$" {
		t.Fatalf("GetRegex: %q err=%v", pat, err)
	}

	mime := "Content-Type: text/plain\r\n\r\nhi"
	dc = cbor.NewDecodeContext(cbor.AppendMIMEString(nil, mime))
	var got string
	dc.GetMIMEMessage(cbor.MatchTag, &got)
	if err := dc.GetError(); err != nil || got != mime {
		t.Fatalf("GetMIMEMessage: %q err=%v", got, err)
	}
}

func TestGetB64AndB64URL(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	dc := cbor.NewDecodeContext(cbor.AppendBase64(nil, data))
	var out []byte
	dc.GetB64(cbor.MatchTag, &out)
	if err := dc.GetError(); err != nil || string(out) != string(data) {
		t.Fatalf("GetB64: %v err=%v", out, err)
	}

	dc = cbor.NewDecodeContext(cbor.AppendBase64URL(nil, data))
	dc.GetB64URL(cbor.MatchTag, &out)
	if err := dc.GetError(); err != nil || string(out) != string(data) {
		t.Fatalf("GetB64URL: %v err=%v", out, err)
	}
}

func TestGetDateString(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendRFC3339Time(nil, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	var s string
	dc.GetDateString(cbor.MatchTag, &s)
	if err := dc.GetError(); err != nil {
		t.Fatalf("GetDateString: %v", err)
	}
	if s == "" {
		t.Fatalf("expected a non-empty RFC 3339 string")
	}
}
