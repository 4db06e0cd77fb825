package cbor

import (
	"math"
	bigmath "math/big"
)

// DecodeContext is a single-threaded, bounded, cursor-based CBOR decoder.
// It walks a []byte buffer in pre-order, letting callers Enter/Exit maps,
// arrays, and byte-string-wrapped regions to turn the cursor into a
// bounded sub-cursor, and records the first error encountered so that a
// straight-line sequence of Get* calls can be written without checking
// an error after every single one - callers check once, at Finish.
//
// A DecodeContext owns only its fixed-size nesting stack and scalar
// state; it never allocates on the Enter/Exit/Get path except where a
// getter's own return type requires it (e.g. *big.Int results).
type DecodeContext struct {
	orig []byte
	cur  []byte

	nesting    [MaxNesting]nestingFrame
	nestingTop int

	err error

	maxNesting int
}

// NewDecodeContext allocates and initializes a DecodeContext over buf.
func NewDecodeContext(buf []byte) *DecodeContext {
	dc := &DecodeContext{}
	dc.Init(buf)
	return dc
}

// Init (re)initializes dc to decode buf from the start, clearing any
// prior nesting state and sticky error.
func (dc *DecodeContext) Init(buf []byte) {
	dc.orig = buf
	dc.cur = buf
	dc.nestingTop = 0
	dc.err = nil
	dc.maxNesting = MaxNesting
	for i := range dc.nesting {
		dc.nesting[i] = nestingFrame{}
	}
}

// InitValidate initializes dc and runs the well-formedness validator over
// the whole buffer before any items are decoded. A validation failure is
// both returned and recorded as the sticky error.
func (dc *DecodeContext) InitValidate(buf []byte) error {
	dc.Init(buf)
	if err := ValidateDocument(buf); err != nil {
		dc.err = err
		return err
	}
	return nil
}

// SetMaxNesting overrides the nesting depth this context enforces, up to
// the fixed MaxNesting capacity of the backing array.
func (dc *DecodeContext) SetMaxNesting(n int) {
	if n < 0 {
		n = 0
	}
	if n > MaxNesting {
		n = MaxNesting
	}
	dc.maxNesting = n
}

// GetError returns the sticky error, if any, without clearing it.
func (dc *DecodeContext) GetError() error {
	return dc.err
}

// GetAndResetError returns the sticky error and clears it, letting
// decoding resume - used after an error the caller has decided is
// acceptable to recover from, such as ErrLabelNotFound for an optional
// map entry.
func (dc *DecodeContext) GetAndResetError() error {
	err := dc.err
	dc.err = nil
	return err
}

func (dc *DecodeContext) setError(err error) {
	if dc.err == nil {
		dc.err = err
	}
}

func (dc *DecodeContext) ok() bool {
	return dc.err == nil
}

// Finish checks that every Entered region was Exited and that the whole
// buffer was consumed. It must be called on every decode path; its
// result folds in any sticky error recorded earlier.
func (dc *DecodeContext) Finish() error {
	if dc.err != nil {
		return dc.err
	}
	if dc.nestingTop != 0 {
		dc.err = ErrCloseMismatch
		return dc.err
	}
	if len(dc.cur) != 0 {
		dc.err = errExtraBytes{}
		return dc.err
	}
	return nil
}

// decodeOneFrom reads exactly one tagged item from the front of b,
// without touching dc.cur. It is the one place that turns wire bytes
// into an Item; every getter and map-search routine bottoms out here.
func (dc *DecodeContext) decodeOneFrom(b []byte) (Item, []byte, error) {
	tags, n, afterTags, err := peekTags(b)
	if err != nil {
		return Item{}, b, err
	}
	if len(afterTags) < 1 {
		return Item{}, b, ErrShortBytes
	}

	if n > 0 && tags[n-1] == tagEpochDateTime {
		sec, ns, rest, e := parseEpochSeconds(afterTags)
		if e != nil {
			return Item{}, b, e
		}
		it := Item{Type: DateEpochType, Int64: sec, Float64: float64(ns), Tags: tags, NumTags: n}
		return it, rest, nil
	}

	if n > 0 && (tags[n-1] == tagDecimalFrac || tags[n-1] == tagBigfloat) {
		exp, mant, rest, e := parseExpMantissaArray(afterTags)
		if e != nil {
			return Item{}, b, e
		}
		it := Item{Int64: exp, Tags: tags, NumTags: n}
		if tags[n-1] == tagDecimalFrac {
			it.Type = DecimalFractionType
		} else {
			it.Type = BigfloatType
		}
		if mant.Sign() < 0 {
			it.SimpleValue = 1
			mant = new(bigmath.Int).Neg(mant)
		}
		it.Bytes = mant.Bytes()
		return it, rest, nil
	}

	lead := afterTags[0]
	major := getMajorType(lead)
	add := getAddInfo(lead)

	var it Item
	var rest []byte

	switch major {
	case majorTypeUint:
		u, o, e := readUintCore(afterTags, majorTypeUint)
		if e != nil {
			return Item{}, b, e
		}
		it, rest = Item{Type: UintItemType, Uint64: u}, o

	case majorTypeNegInt:
		i, o, e := ReadInt64Bytes(afterTags)
		if e != nil {
			return Item{}, b, e
		}
		it, rest = Item{Type: IntItemType, Int64: i}, o

	case majorTypeBytes:
		bs, o, e := ReadBytesBytes(afterTags, nil)
		if e != nil {
			return Item{}, b, e
		}
		cp := make([]byte, len(bs))
		copy(cp, bs)
		it, rest = Item{Type: ByteStringType, Bytes: cp, Indefinite: add == addInfoIndefinite}, o

	case majorTypeText:
		s, o, e := ReadStringBytes(afterTags)
		if e != nil {
			return Item{}, b, e
		}
		it, rest = Item{Type: TextStringType, Text: s, Indefinite: add == addInfoIndefinite}, o

	case majorTypeArray:
		sz, indef, o, e := ReadArrayStartBytes(afterTags)
		if e != nil {
			return Item{}, b, e
		}
		it, rest = Item{Type: ArrayItemType, ArrayCount: sz, Indefinite: indef}, o

	case majorTypeMap:
		sz, indef, o, e := ReadMapStartBytes(afterTags)
		if e != nil {
			return Item{}, b, e
		}
		it, rest = Item{Type: MapItemType, MapCount: sz, Indefinite: indef}, o

	case majorTypeSimple:
		switch add {
		case simpleFalse:
			it, rest = Item{Type: BoolItemType}, afterTags[1:]
		case simpleTrue:
			it, rest = Item{Type: BoolItemType, SimpleValue: 1}, afterTags[1:]
		case simpleNull:
			it, rest = Item{Type: NilItemType}, afterTags[1:]
		case simpleUndefined:
			it, rest = Item{Type: UndefinedType}, afterTags[1:]
		case simpleFloat16:
			f, o, e := ReadFloat16Bytes(afterTags)
			if e != nil {
				return Item{}, b, e
			}
			it, rest = Item{Type: Float32ItemType, Float64: float64(f)}, o
		case simpleFloat32:
			f, o, e := ReadFloat32Bytes(afterTags)
			if e != nil {
				return Item{}, b, e
			}
			it, rest = Item{Type: Float32ItemType, Float64: float64(f)}, o
		case simpleFloat64:
			f, o, e := ReadFloat64Bytes(afterTags)
			if e != nil {
				return Item{}, b, e
			}
			it, rest = Item{Type: DoubleType, Float64: f}, o
		default:
			val, o, e := ReadSimpleValue(afterTags)
			if e != nil {
				return Item{}, b, e
			}
			it, rest = Item{Type: UndefinedType, SimpleValue: val}, o
		}

	default:
		return Item{}, b, &ErrUnsupportedType{}
	}

	it.NumTags = n
	it.Tags = tags
	if n > 0 {
		if semType, ok := itemTypeForTag(tags[n-1]); ok {
			it.Type = semType
		}
	}

	return it, rest, nil
}

// accountConsumed decrements the innermost frame's sequential item
// budget after a GetNextWithTags-style read. Label-based lookups never
// call this - they scan mapBody directly and never move dc.cur.
func (dc *DecodeContext) accountConsumed() {
	f := dc.topFrame()
	if f == nil || f.indefinite {
		return
	}
	if f.remaining > 0 {
		f.remaining--
	}
}

// atFrameBoundary reports whether the innermost frame's sequential
// budget is exhausted, meaning a sequential read must not cross into
// whatever follows the entered container in the buffer. Indefinite-length
// frames are exhausted when the cursor sits on their break byte, and a
// byte-string-wrapped frame when its wrapped bytes are used up.
func (dc *DecodeContext) atFrameBoundary() bool {
	f := dc.topFrame()
	if f == nil {
		return false
	}
	if f.kind == frameBstrWrapped {
		return len(dc.cur) == 0
	}
	if f.indefinite {
		return len(dc.cur) > 0 && dc.cur[0] == makeByte(majorTypeSimple, simpleBreak)
	}
	return f.remaining == 0
}

// GetNextWithTags advances the cursor by exactly one item, in pre-order,
// and returns it with its leading tags attached. It is the general
// sequential-walk primitive used outside of label-based map access, e.g.
// by a caller printing every item in an entered array.
func (dc *DecodeContext) GetNextWithTags() (Item, error) {
	if !dc.ok() {
		return Item{}, dc.err
	}
	if dc.atFrameBoundary() {
		dc.setError(ErrNoMoreItems)
		return Item{}, dc.err
	}
	it, rest, err := dc.decodeOneFrom(dc.cur)
	if err != nil {
		dc.setError(err)
		return Item{}, err
	}
	dc.cur = rest
	dc.accountConsumed()
	return it, nil
}

// PeekType reports the type of the next item at the cursor without
// advancing it. It exists for callers that must decide between entering
// a container (EnterMap/EnterArray) and reading a scalar in place
// (GetNextWithTags) before knowing which applies - a generic tree walker
// being the main case, since GetNextWithTags itself already advances past
// a container's header and EnterMap/EnterArray require the header still
// be there to read.
func (dc *DecodeContext) PeekType() (ItemType, error) {
	if !dc.ok() {
		return NoneType, dc.err
	}
	if dc.atFrameBoundary() {
		return NoneType, ErrNoMoreItems
	}
	it, _, err := dc.decodeOneFrom(dc.cur)
	if err != nil {
		return NoneType, err
	}
	return it.Type, nil
}

// skipRestOfFrame consumes whatever items remain unread in f, leaving
// dc.cur positioned immediately after the container - this is what lets
// Exit be called before every entry has been read.
func (dc *DecodeContext) skipRestOfFrame(f *nestingFrame) error {
	if f.indefinite {
		for {
			if len(dc.cur) < 1 {
				return ErrShortBytes
			}
			if dc.cur[0] == makeByte(majorTypeSimple, simpleBreak) {
				dc.cur = dc.cur[1:]
				return nil
			}
			rest, err := Skip(dc.cur)
			if err != nil {
				return err
			}
			dc.cur = rest
		}
	}
	for f.remaining > 0 {
		rest, err := Skip(dc.cur)
		if err != nil {
			return err
		}
		dc.cur = rest
		f.remaining--
	}
	return nil
}

// EnterMap enters the map at the cursor, turning it into a bounded
// sub-cursor. Map-search operations (GetItemInMapN, ...) become valid
// only while such a frame is on top of the stack.
func (dc *DecodeContext) EnterMap() {
	if !dc.ok() {
		return
	}
	sz, indef, rest, err := ReadMapStartBytes(dc.cur)
	if err != nil {
		dc.setError(err)
		return
	}
	f := nestingFrame{kind: frameMap, indefinite: indef, mapBody: rest, mapPairCount: sz}
	if !indef {
		f.remaining = sz * 2
	}
	if dc.nestingTop >= dc.maxNesting {
		dc.setError(ErrArrayNestingTooDeep)
		return
	}
	if err := dc.pushFrame(f); err != nil {
		dc.setError(err)
		return
	}
	dc.cur = rest
}

// ExitMap closes the innermost frame, which must be a map entered by
// EnterMap (or EnterMapFromMapN/SZ). Any entries the caller did not
// consume are silently skipped.
func (dc *DecodeContext) ExitMap() {
	dc.exitContainer(frameMap)
}

// EnterArray enters the array at the cursor, turning it into a bounded
// sub-cursor whose elements are read sequentially via GetNextWithTags or
// the at-cursor typed getters.
func (dc *DecodeContext) EnterArray() {
	if !dc.ok() {
		return
	}
	sz, indef, rest, err := ReadArrayStartBytes(dc.cur)
	if err != nil {
		dc.setError(err)
		return
	}
	f := nestingFrame{kind: frameArray, indefinite: indef, mapBody: rest}
	if !indef {
		f.remaining = sz
	}
	if dc.nestingTop >= dc.maxNesting {
		dc.setError(ErrArrayNestingTooDeep)
		return
	}
	if err := dc.pushFrame(f); err != nil {
		dc.setError(err)
		return
	}
	dc.cur = rest
}

// ExitArray closes the innermost frame, which must be an array entered
// by EnterArray (or EnterArrayFromMapN/SZ).
func (dc *DecodeContext) ExitArray() {
	dc.exitContainer(frameArray)
}

func (dc *DecodeContext) exitContainer(kind frameKind) {
	if !dc.ok() {
		return
	}
	f := dc.topFrame()
	if f == nil || f.kind != kind {
		dc.setError(ErrCloseMismatch)
		return
	}
	if err := dc.skipRestOfFrame(f); err != nil {
		dc.setError(err)
		return
	}
	fromLookup, resumeAfter := f.fromLookup, f.resumeAfter
	dc.popFrame()
	if fromLookup {
		dc.cur = resumeAfter
	} else {
		dc.accountConsumed()
	}
}

// EnterBstrWrapped treats the byte string at the cursor as embedded CBOR
// and re-aims the cursor at its contents, returning the wrapped bytes.
// Per this implementation's tag-24-vs-63 policy, either tag (or neither,
// under MatchTagContentType/MatchEither) is accepted; callers that must
// distinguish RFC 8742 sequences from plain embedded CBOR should inspect
// GetNextWithTags' Item.Tags instead.
func (dc *DecodeContext) EnterBstrWrapped(tagReq TagRequirement) []byte {
	if !dc.ok() {
		return nil
	}
	tags, n, afterTags, err := peekTags(dc.cur)
	if err != nil {
		dc.setError(err)
		return nil
	}
	hasWrapTag := false
	for i := 0; i < n; i++ {
		if tags[i] == tagCBOR || tags[i] == tagCBORSequence {
			hasWrapTag = true
			break
		}
	}
	if tagReq == MatchTag && !hasWrapTag {
		dc.setError(ErrUnexpectedType)
		return nil
	}
	bs, rest, err := ReadBytesBytes(afterTags, nil)
	if err != nil {
		dc.setError(err)
		return nil
	}
	if dc.nestingTop >= dc.maxNesting {
		dc.setError(ErrArrayNestingTooDeep)
		return nil
	}
	if err := dc.pushFrame(nestingFrame{kind: frameBstrWrapped, resumeAfter: rest}); err != nil {
		dc.setError(err)
		return nil
	}
	dc.cur = bs
	return bs
}

// ExitBstrWrapped leaves the wrapped region, positioning the cursor
// immediately after the outer byte string regardless of how much of the
// wrapped content was actually consumed.
func (dc *DecodeContext) ExitBstrWrapped() {
	if !dc.ok() {
		return
	}
	f := dc.topFrame()
	if f == nil || f.kind != frameBstrWrapped {
		dc.setError(ErrCloseMismatch)
		return
	}
	resume := f.resumeAfter
	dc.popFrame()
	dc.cur = resume
	dc.accountConsumed()
}

// EnterMapFromMapN looks up label in the currently entered map and
// enters it as a map, without disturbing the outer map's own sequential
// cursor position - ExitMap restores it exactly. When the outer cursor
// already sits at that very value, the entry behaves like EnterMap and
// ExitMap leaves the cursor just past the value.
func (dc *DecodeContext) EnterMapFromMapN(label int64) {
	dc.enterContainerFromMap(IntLabel(label), frameMap)
}

// EnterMapFromMapSZ is the text-label form of EnterMapFromMapN.
func (dc *DecodeContext) EnterMapFromMapSZ(label string) {
	dc.enterContainerFromMap(TextLabel(label), frameMap)
}

// EnterArrayFromMapN looks up label in the currently entered map and
// enters it as an array.
func (dc *DecodeContext) EnterArrayFromMapN(label int64) {
	dc.enterContainerFromMap(IntLabel(label), frameArray)
}

// EnterArrayFromMapSZ is the text-label form of EnterArrayFromMapN.
func (dc *DecodeContext) EnterArrayFromMapSZ(label string) {
	dc.enterContainerFromMap(TextLabel(label), frameArray)
}

func (dc *DecodeContext) enterContainerFromMap(label Label, kind frameKind) {
	if !dc.ok() {
		return
	}
	f := dc.topFrame()
	if f == nil || f.kind != frameMap {
		dc.setError(ErrMapNotEntered)
		return
	}
	valueBytes, err := dc.scanMapForLabel(f, label)
	if err != nil {
		dc.setError(err)
		return
	}
	saved := dc.cur
	// Both slices end where the enclosing buffer ends, so equal lengths
	// mean the value starts exactly at the outer cursor.
	valueAtCursor := len(valueBytes) == len(saved)
	dc.cur = valueBytes
	if kind == frameMap {
		dc.EnterMap()
	} else {
		dc.EnterArray()
	}
	if !dc.ok() {
		return
	}
	if nf := dc.topFrame(); nf != nil && !valueAtCursor {
		nf.fromLookup = true
		nf.resumeAfter = saved
	}
}

// RewindMap resets the current map frame's sequential read position back
// to its first entry, so GetNextWithTags can walk it again (e.g. after
// several targeted InMapN/InMapSZ lookups). Called on a frame that is
// not a map, it sets ErrMapNotEntered and leaves the frame untouched.
func (dc *DecodeContext) RewindMap() {
	if !dc.ok() {
		return
	}
	f := dc.topFrame()
	if f == nil || f.kind != frameMap {
		dc.setError(ErrMapNotEntered)
		return
	}
	dc.cur = f.mapBody
	f.remaining = f.mapPairCount * 2
}

// parseEpochSeconds reads a tag(1) epoch date's content - an integer or
// floating-point number of seconds since the Unix epoch - normalizing it
// to whole seconds plus a nanosecond remainder, the same split
// ReadTimeBytes uses.
func parseEpochSeconds(o []byte) (sec int64, ns int64, rest []byte, err error) {
	if len(o) < 1 {
		return 0, 0, o, ErrShortBytes
	}
	switch getMajorType(o[0]) {
	case majorTypeUint, majorTypeNegInt:
		s, r, e := ReadInt64Bytes(o)
		if e != nil {
			return 0, 0, o, e
		}
		return s, 0, r, nil
	case majorTypeSimple:
		switch getAddInfo(o[0]) {
		case simpleFloat64:
			f, r, e := ReadFloat64Bytes(o)
			if e != nil {
				return 0, 0, o, e
			}
			s, n := splitEpochFloat(f)
			return s, n, r, nil
		case simpleFloat32:
			f, r, e := ReadFloat32Bytes(o)
			if e != nil {
				return 0, 0, o, e
			}
			s, n := splitEpochFloat(float64(f))
			return s, n, r, nil
		case simpleFloat16:
			f, r, e := ReadFloat16Bytes(o)
			if e != nil {
				return 0, 0, o, e
			}
			s, n := splitEpochFloat(float64(f))
			return s, n, r, nil
		}
	}
	return 0, 0, o, &ErrUnsupportedType{}
}

// splitEpochFloat splits a fractional Unix timestamp into whole seconds
// (floor) and a nanosecond remainder in [0, 1e9).
func splitEpochFloat(f float64) (sec int64, ns int64) {
	whole := math.Floor(f)
	n := int64(math.Round((f - whole) * 1e9))
	s := int64(whole)
	if n >= 1e9 {
		s++
		n -= 1e9
	}
	return s, n
}

// floatToInt64RoundEven converts a float64 to int64, rounding to nearest
// even, and reports overflow if the rounded value doesn't fit.
func floatToInt64RoundEven(f float64) (int64, error) {
	r := math.RoundToEven(f)
	if r >= 1<<63 || r < math.MinInt64 || math.IsNaN(r) {
		return 0, ErrConversionOverUnder
	}
	return int64(r), nil
}

// floatToUint64RoundEven converts a float64 to uint64, rounding to
// nearest even, and reports overflow or a sign error as appropriate.
func floatToUint64RoundEven(f float64) (uint64, error) {
	r := math.RoundToEven(f)
	if math.IsNaN(r) {
		return 0, ErrConversionOverUnder
	}
	if r < 0 {
		return 0, ErrNumberSignConversion
	}
	if r >= 1<<64 {
		return 0, ErrConversionOverUnder
	}
	return uint64(r), nil
}
