package tests

import (
	"testing"

	cbor "github.com/cbor-spiffy/spiffy/runtime"
)

func TestGetNextWithTagsScalars(t *testing.T) {
	b := cbor.AppendInt64(nil, -42)
	b = cbor.AppendUint64(b, 7)
	b = cbor.AppendFloat64(b, 3.5)
	b = cbor.AppendBool(b, true)
	b = cbor.AppendString(b, "hi")
	b = cbor.AppendBytes(b, []byte{1, 2, 3})
	b = cbor.AppendNil(b)

	dc := cbor.NewDecodeContext(b)

	it, err := dc.GetNextWithTags()
	if err != nil || it.Type != cbor.IntItemType || it.Int64 != -42 {
		t.Fatalf("int item: %+v err=%v", it, err)
	}
	it, err = dc.GetNextWithTags()
	if err != nil || it.Type != cbor.UintItemType || it.Uint64 != 7 {
		t.Fatalf("uint item: %+v err=%v", it, err)
	}
	it, err = dc.GetNextWithTags()
	if err != nil || it.Type != cbor.DoubleType || it.Float64 != 3.5 {
		t.Fatalf("double item: %+v err=%v", it, err)
	}
	it, err = dc.GetNextWithTags()
	if err != nil || it.Type != cbor.BoolItemType || it.SimpleValue != 1 {
		t.Fatalf("bool item: %+v err=%v", it, err)
	}
	it, err = dc.GetNextWithTags()
	if err != nil || it.Type != cbor.TextStringType || it.Text != "hi" {
		t.Fatalf("text item: %+v err=%v", it, err)
	}
	it, err = dc.GetNextWithTags()
	if err != nil || it.Type != cbor.ByteStringType || len(it.Bytes) != 3 {
		t.Fatalf("bytes item: %+v err=%v", it, err)
	}
	it, err = dc.GetNextWithTags()
	if err != nil || it.Type != cbor.NilItemType {
		t.Fatalf("nil item: %+v err=%v", it, err)
	}

	if err := dc.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestStickyErrorStopsFurtherReads(t *testing.T) {
	b := cbor.AppendInt64(nil, 1)
	dc := cbor.NewDecodeContext(b)

	dc.EnterMap() // wrong shape: the item is an int, not a map
	if dc.GetError() == nil {
		t.Fatalf("expected sticky error after EnterMap on non-map")
	}

	var v int64
	dc.GetInt64(&v)
	if v != 0 {
		t.Fatalf("GetInt64 should no-op once sticky, got %d", v)
	}
	dc.ExitMap()

	err := dc.Finish()
	if err == nil {
		t.Fatalf("Finish should surface the sticky error")
	}

	recovered := dc.GetAndResetError()
	if recovered == nil {
		t.Fatalf("GetAndResetError should return the recorded error")
	}
	if dc.GetError() != nil {
		t.Fatalf("error should be cleared after GetAndResetError")
	}
}

func TestFinishDetectsExtraBytes(t *testing.T) {
	b := cbor.AppendInt64(nil, 1)
	b = append(b, cbor.AppendInt64(nil, 2)...)

	dc := cbor.NewDecodeContext(b)
	var v int64
	dc.GetInt64(&v)
	if v != 1 {
		t.Fatalf("expected 1, got %d", v)
	}
	if err := dc.Finish(); err == nil {
		t.Fatalf("expected Finish to report unconsumed trailing bytes")
	}
}

func TestFinishDetectsUnclosedRegion(t *testing.T) {
	b := cbor.AppendMapHeader(nil, 1)
	b = cbor.AppendString(b, "a")
	b = cbor.AppendInt64(b, 1)

	dc := cbor.NewDecodeContext(b)
	dc.EnterMap()
	if err := dc.Finish(); err == nil {
		t.Fatalf("expected Finish to report an unclosed map")
	}
}

func TestEnterMapExitSkipsUnreadEntries(t *testing.T) {
	b := cbor.AppendMapHeader(nil, 3)
	b = cbor.AppendString(b, "a")
	b = cbor.AppendInt64(b, 1)
	b = cbor.AppendString(b, "b")
	b = cbor.AppendInt64(b, 2)
	b = cbor.AppendString(b, "c")
	b = cbor.AppendInt64(b, 3)
	b = cbor.AppendString(b, "after")

	dc := cbor.NewDecodeContext(b)
	dc.EnterMap()

	key, err := dc.GetNextWithTags()
	if err != nil || key.Text != "a" {
		t.Fatalf("first key: %+v err=%v", key, err)
	}
	var v int64
	dc.GetInt64(&v) // consumes "a"'s value; leaves "b"/"c" pairs unread

	dc.ExitMap()

	var s string
	dc.GetText(&s)
	if s != "after" {
		t.Fatalf("expected 'after', got %q (err=%v)", s, dc.GetError())
	}
	if err := dc.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestEnterArrayRoundTrip(t *testing.T) {
	b := cbor.AppendArrayHeader(nil, 3)
	b = cbor.AppendInt64(b, 10)
	b = cbor.AppendInt64(b, 20)
	b = cbor.AppendInt64(b, 30)

	dc := cbor.NewDecodeContext(b)
	dc.EnterArray()
	var sum int64
	for i := 0; i < 3; i++ {
		var v int64
		dc.GetInt64(&v)
		sum += v
	}
	dc.ExitArray()
	if err := dc.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if sum != 60 {
		t.Fatalf("sum: got %d want 60", sum)
	}
}

func TestEnterBstrWrapped(t *testing.T) {
	inner := cbor.AppendString(nil, "wrapped")
	outer := cbor.AppendTagged(nil, 24, inner)

	dc := cbor.NewDecodeContext(outer)
	dc.EnterBstrWrapped(cbor.MatchTag)
	var s string
	dc.GetText(&s)
	dc.ExitBstrWrapped()
	if err := dc.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if s != "wrapped" {
		t.Fatalf("got %q want wrapped", s)
	}
}

func TestEnterBstrWrappedRequiresTagUnderMatchTag(t *testing.T) {
	inner := cbor.AppendString(nil, "bare")
	outer := cbor.AppendBytes(nil, inner)

	dc := cbor.NewDecodeContext(outer)
	dc.EnterBstrWrapped(cbor.MatchTag)
	if dc.GetError() == nil {
		t.Fatalf("expected error requiring tag 24/63 under MatchTag")
	}
}

func TestEnterBstrWrappedMatchEitherAcceptsBare(t *testing.T) {
	inner := cbor.AppendString(nil, "bare")
	outer := cbor.AppendBytes(nil, inner)

	dc := cbor.NewDecodeContext(outer)
	dc.EnterBstrWrapped(cbor.MatchEither)
	var s string
	dc.GetText(&s)
	dc.ExitBstrWrapped()
	if err := dc.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if s != "bare" {
		t.Fatalf("got %q want bare", s)
	}
}

func TestMaxNestingEnforced(t *testing.T) {
	var b []byte
	for i := 0; i < cbor.MaxNesting+1; i++ {
		b = cbor.AppendArrayHeader(b, 1)
	}
	b = cbor.AppendInt64(b, 1)

	dc := cbor.NewDecodeContext(b)
	for i := 0; i < cbor.MaxNesting+1; i++ {
		dc.EnterArray()
	}
	if dc.GetError() == nil {
		t.Fatalf("expected nesting-too-deep error")
	}
}
