package tests

import (
	"errors"
	"testing"

	cbor "github.com/cbor-spiffy/spiffy/runtime"
)

func buildPersonMap() []byte {
	b := cbor.AppendMapHeader(nil, 3)
	b = cbor.AppendString(b, "name")
	b = cbor.AppendString(b, "ada")
	b = cbor.AppendString(b, "age")
	b = cbor.AppendInt64(b, 36)
	b = cbor.AppendString(b, "active")
	b = cbor.AppendBool(b, true)
	return b
}

func TestGetItemInMapSZ(t *testing.T) {
	dc := cbor.NewDecodeContext(buildPersonMap())
	dc.EnterMap()

	item, err := dc.GetItemInMapSZ("age", cbor.IntItemType)
	if err != nil {
		t.Fatalf("age lookup: %v", err)
	}
	if item.Int64 != 36 {
		t.Fatalf("age: got %d want 36", item.Int64)
	}

	item, err = dc.GetItemInMapSZ("name", cbor.TextStringType)
	if err != nil || item.Text != "ada" {
		t.Fatalf("name lookup: %+v err=%v", item, err)
	}

	dc.ExitMap()
	if err := dc.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestGetItemInMapSZNotFound(t *testing.T) {
	dc := cbor.NewDecodeContext(buildPersonMap())
	dc.EnterMap()
	_, err := dc.GetItemInMapSZ("missing", cbor.AnyType)
	if !errors.Is(err, cbor.ErrLabelNotFound) {
		t.Fatalf("expected ErrLabelNotFound, got %v", err)
	}
}

func TestGetItemInMapSZWrongType(t *testing.T) {
	dc := cbor.NewDecodeContext(buildPersonMap())
	dc.EnterMap()
	_, err := dc.GetItemInMapSZ("name", cbor.IntItemType)
	if !errors.Is(err, cbor.ErrUnexpectedType) {
		t.Fatalf("expected ErrUnexpectedType, got %v", err)
	}
}

func TestDuplicateLabelDetected(t *testing.T) {
	b := cbor.AppendMapHeader(nil, 2)
	b = cbor.AppendString(b, "x")
	b = cbor.AppendInt64(b, 1)
	b = cbor.AppendString(b, "x")
	b = cbor.AppendInt64(b, 2)

	dc := cbor.NewDecodeContext(b)
	dc.EnterMap()
	_, err := dc.GetItemInMapSZ("x", cbor.AnyType)
	if !errors.Is(err, cbor.ErrDuplicateLabel) {
		t.Fatalf("expected ErrDuplicateLabel, got %v", err)
	}
}

func TestMapSearchIsRepeatableAndIndependentOfCursor(t *testing.T) {
	dc := cbor.NewDecodeContext(buildPersonMap())
	dc.EnterMap()

	// Label lookups never move the sequential cursor.
	if _, err := dc.GetItemInMapSZ("active", cbor.BoolItemType); err != nil {
		t.Fatalf("active lookup: %v", err)
	}
	if _, err := dc.GetItemInMapSZ("active", cbor.BoolItemType); err != nil {
		t.Fatalf("repeated active lookup: %v", err)
	}

	key, err := dc.GetNextWithTags()
	if err != nil || key.Text != "name" {
		t.Fatalf("sequential cursor should still start at 'name': %+v err=%v", key, err)
	}
}

func TestGetItemsInMapMultipleSpecs(t *testing.T) {
	dc := cbor.NewDecodeContext(buildPersonMap())
	dc.EnterMap()

	specs := []cbor.MapSearchSpec{
		cbor.TextSearchSpec("name", cbor.TextStringType),
		cbor.TextSearchSpec("age", cbor.IntItemType),
		cbor.TextSearchSpec("nickname", cbor.AnyType),
	}
	if err := dc.GetItemsInMap(specs); err != nil {
		t.Fatalf("GetItemsInMap: %v", err)
	}
	if !specs[0].Found || specs[0].Item.Text != "ada" {
		t.Fatalf("name spec: %+v", specs[0])
	}
	if !specs[1].Found || specs[1].Item.Int64 != 36 {
		t.Fatalf("age spec: %+v", specs[1])
	}
	if specs[2].Found {
		t.Fatalf("nickname should not be found")
	}
}

func TestGetItemsInMapSkipsPastContainerValuedEntries(t *testing.T) {
	// "tags" holds an array value; if the scan under-advances past it,
	// the next key ("age") gets misread as one of the array's elements.
	b := cbor.AppendMapHeader(nil, 3)
	b = cbor.AppendString(b, "tags")
	b = cbor.AppendArrayHeader(b, 2)
	b = cbor.AppendString(b, "a")
	b = cbor.AppendString(b, "b")
	b = cbor.AppendString(b, "age")
	b = cbor.AppendInt64(b, 36)
	b = cbor.AppendString(b, "name")
	b = cbor.AppendString(b, "ada")

	dc := cbor.NewDecodeContext(b)
	dc.EnterMap()

	specs := []cbor.MapSearchSpec{
		cbor.TextSearchSpec("age", cbor.IntItemType),
		cbor.TextSearchSpec("name", cbor.TextStringType),
	}
	if err := dc.GetItemsInMap(specs); err != nil {
		t.Fatalf("GetItemsInMap: %v", err)
	}
	if !specs[0].Found || specs[0].Item.Int64 != 36 {
		t.Fatalf("age spec: %+v", specs[0])
	}
	if !specs[1].Found || specs[1].Item.Text != "ada" {
		t.Fatalf("name spec: %+v", specs[1])
	}

	dc.ExitMap()
	if err := dc.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestGetItemsInMapWithCallback(t *testing.T) {
	dc := cbor.NewDecodeContext(buildPersonMap())
	dc.EnterMap()

	seen := map[string]bool{}
	specs := []cbor.MapSearchSpec{
		cbor.TextSearchSpec("age", cbor.IntItemType),
	}
	cb := func(_ any, label cbor.Label, item cbor.Item) error {
		seen[label.Text] = true
		return nil
	}
	if err := dc.GetItemsInMapWithCallback(specs, nil, cb); err != nil {
		t.Fatalf("GetItemsInMapWithCallback: %v", err)
	}
	if !seen["name"] || !seen["active"] {
		t.Fatalf("expected callback for unmatched labels, got %v", seen)
	}
	if seen["age"] {
		t.Fatalf("matched label should not reach callback")
	}
}

func TestEnterMapFromMapNRestoresOuterCursor(t *testing.T) {
	inner := cbor.AppendMapHeader(nil, 1)
	inner = cbor.AppendString(inner, "z")
	inner = cbor.AppendInt64(inner, 99)

	b := cbor.AppendMapHeader(nil, 2)
	b = cbor.AppendString(b, "nested")
	b = append(b, inner...)
	b = cbor.AppendString(b, "after")
	b = cbor.AppendInt64(b, 7)

	dc := cbor.NewDecodeContext(b)
	dc.EnterMap()

	dc.EnterMapFromMapSZ("nested")
	var z int64
	dc.GetInt64InMapSZ("z", &z)
	dc.ExitMap()

	key, err := dc.GetNextWithTags()
	if err != nil || key.Text != "nested" {
		t.Fatalf("outer cursor should resume at 'nested' key: %+v err=%v", key, err)
	}

	dc.EnterMapFromMapSZ("nested")
	dc.ExitMap()

	key, err = dc.GetNextWithTags()
	if err != nil || key.Text != "after" {
		t.Fatalf("outer cursor should reach 'after': %+v err=%v", key, err)
	}

	if z != 99 {
		t.Fatalf("z: got %d want 99", z)
	}
}

func TestRewindMap(t *testing.T) {
	dc := cbor.NewDecodeContext(buildPersonMap())
	dc.EnterMap()

	first, _ := dc.GetNextWithTags()
	if first.Text != "name" {
		t.Fatalf("expected first key 'name', got %+v", first)
	}
	dc.RewindMap()
	again, err := dc.GetNextWithTags()
	if err != nil || again.Text != "name" {
		t.Fatalf("after RewindMap expected 'name' again, got %+v err=%v", again, err)
	}
}

func TestGetItemInMapSZIndefiniteLength(t *testing.T) {
	b := cbor.AppendMapHeaderIndefinite(nil)
	b = cbor.AppendString(b, "name")
	b = cbor.AppendString(b, "ada")
	b = cbor.AppendString(b, "age")
	b = cbor.AppendInt64(b, 36)
	b = cbor.AppendBreak(b)

	dc := cbor.NewDecodeContext(b)
	dc.EnterMap()

	item, err := dc.GetItemInMapSZ("age", cbor.IntItemType)
	if err != nil || item.Int64 != 36 {
		t.Fatalf("age lookup on indefinite map: %+v err=%v", item, err)
	}
	item, err = dc.GetItemInMapSZ("name", cbor.TextStringType)
	if err != nil || item.Text != "ada" {
		t.Fatalf("name lookup on indefinite map: %+v err=%v", item, err)
	}

	dc.ExitMap()
	if err := dc.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestDuplicateLabelDetectedIndefiniteLength(t *testing.T) {
	b := cbor.AppendMapHeaderIndefinite(nil)
	b = cbor.AppendString(b, "x")
	b = cbor.AppendInt64(b, 1)
	b = cbor.AppendString(b, "x")
	b = cbor.AppendInt64(b, 2)
	b = cbor.AppendBreak(b)

	dc := cbor.NewDecodeContext(b)
	dc.EnterMap()
	_, err := dc.GetItemInMapSZ("x", cbor.AnyType)
	if !errors.Is(err, cbor.ErrDuplicateLabel) {
		t.Fatalf("expected ErrDuplicateLabel on indefinite map, got %v", err)
	}
}

func TestRewindMapOnNonMapSetsError(t *testing.T) {
	dc := cbor.NewDecodeContext(cbor.AppendArrayHeader(nil, 0))
	dc.EnterArray()
	dc.RewindMap()
	if !errors.Is(dc.GetError(), cbor.ErrMapNotEntered) {
		t.Fatalf("expected ErrMapNotEntered, got %v", dc.GetError())
	}
}
