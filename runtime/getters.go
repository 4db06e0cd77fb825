package cbor

import (
	bigmath "math/big"
	"time"
)

// locator names where a typed getter should pull its Item from: either
// the sequential cursor, or a non-destructive label scan of the
// currently entered map. Every Get* family bottoms out through one of
// these two paths, matching the "small number of core primitives, thin
// wrappers on top" design this package follows throughout.
type locator struct {
	atCursor bool
	label    Label
}

func atCursor() locator            { return locator{atCursor: true} }
func inMapN(label int64) locator   { return locator{label: IntLabel(label)} }
func inMapSZ(label string) locator { return locator{label: TextLabel(label)} }

func (dc *DecodeContext) resolve(loc locator, typeFilter ItemType) (Item, bool) {
	if loc.atCursor {
		return dc.getAtCursor(typeFilter)
	}
	return dc.getInMap(loc.label, typeFilter)
}

func (dc *DecodeContext) getAtCursor(typeFilter ItemType) (Item, bool) {
	if !dc.ok() {
		return Item{}, false
	}
	if dc.atFrameBoundary() {
		dc.setError(ErrNoMoreItems)
		return Item{}, false
	}
	item, rest, err := dc.decodeOneFrom(dc.cur)
	if err != nil {
		dc.setError(err)
		return Item{}, false
	}
	if typeFilter != AnyType && item.Type != typeFilter {
		dc.setError(ErrUnexpectedType)
		return Item{}, false
	}
	dc.cur = rest
	dc.accountConsumed()
	return item, true
}

// --- Int64 family ---

func (dc *DecodeContext) getInt64(loc locator, convert bool, opts uint32, allowBig bool, out *int64) {
	it, ok := dc.resolve(loc, AnyType)
	if !ok {
		return
	}
	v, err := dc.convertToInt64(it, convert, opts, allowBig)
	if err != nil {
		dc.setError(err)
		return
	}
	*out = v
}

// GetInt64 decodes the item at the cursor as a signed integer.
func (dc *DecodeContext) GetInt64(out *int64) { dc.getInt64(atCursor(), false, 0, false, out) }

// GetInt64InMapN decodes an integer-labeled map entry as a signed integer.
func (dc *DecodeContext) GetInt64InMapN(label int64, out *int64) {
	dc.getInt64(inMapN(label), false, 0, false, out)
}

// GetInt64InMapSZ decodes a text-labeled map entry as a signed integer.
func (dc *DecodeContext) GetInt64InMapSZ(label string, out *int64) {
	dc.getInt64(inMapSZ(label), false, 0, false, out)
}

// GetInt64Convert decodes the item at the cursor as a signed integer,
// additionally accepting the numeric representations named in opts
// (ConvertTypeFloat/Double). Use GetInt64ConvertAll to also accept
// bignum/decimal-fraction/bigfloat.
func (dc *DecodeContext) GetInt64Convert(opts uint32, out *int64) {
	dc.getInt64(atCursor(), true, opts, false, out)
}

// GetInt64ConvertInMapN is the InMapN form of GetInt64Convert.
func (dc *DecodeContext) GetInt64ConvertInMapN(label int64, opts uint32, out *int64) {
	dc.getInt64(inMapN(label), true, opts, false, out)
}

// GetInt64ConvertInMapSZ is the InMapSZ form of GetInt64Convert.
func (dc *DecodeContext) GetInt64ConvertInMapSZ(label string, opts uint32, out *int64) {
	dc.getInt64(inMapSZ(label), true, opts, false, out)
}

// GetInt64ConvertAll is GetInt64Convert plus bignum, decimal-fraction,
// and bigfloat sources when named in opts.
func (dc *DecodeContext) GetInt64ConvertAll(opts uint32, out *int64) {
	dc.getInt64(atCursor(), true, opts, true, out)
}

// GetInt64ConvertAllInMapN is the InMapN form of GetInt64ConvertAll.
func (dc *DecodeContext) GetInt64ConvertAllInMapN(label int64, opts uint32, out *int64) {
	dc.getInt64(inMapN(label), true, opts, true, out)
}

// GetInt64ConvertAllInMapSZ is the InMapSZ form of GetInt64ConvertAll.
func (dc *DecodeContext) GetInt64ConvertAllInMapSZ(label string, opts uint32, out *int64) {
	dc.getInt64(inMapSZ(label), true, opts, true, out)
}

// --- Uint64 family ---

func (dc *DecodeContext) getUint64(loc locator, convert bool, opts uint32, allowBig bool, out *uint64) {
	it, ok := dc.resolve(loc, AnyType)
	if !ok {
		return
	}
	v, err := dc.convertToUint64(it, convert, opts, allowBig)
	if err != nil {
		dc.setError(err)
		return
	}
	*out = v
}

// GetUint64 decodes the item at the cursor as an unsigned integer.
func (dc *DecodeContext) GetUint64(out *uint64) { dc.getUint64(atCursor(), false, 0, false, out) }

// GetUint64InMapN decodes an integer-labeled map entry as an unsigned integer.
func (dc *DecodeContext) GetUint64InMapN(label int64, out *uint64) {
	dc.getUint64(inMapN(label), false, 0, false, out)
}

// GetUint64InMapSZ decodes a text-labeled map entry as an unsigned integer.
func (dc *DecodeContext) GetUint64InMapSZ(label string, out *uint64) {
	dc.getUint64(inMapSZ(label), false, 0, false, out)
}

// GetUint64Convert is the unsigned counterpart of GetInt64Convert.
func (dc *DecodeContext) GetUint64Convert(opts uint32, out *uint64) {
	dc.getUint64(atCursor(), true, opts, false, out)
}

// GetUint64ConvertInMapN is the InMapN form of GetUint64Convert.
func (dc *DecodeContext) GetUint64ConvertInMapN(label int64, opts uint32, out *uint64) {
	dc.getUint64(inMapN(label), true, opts, false, out)
}

// GetUint64ConvertInMapSZ is the InMapSZ form of GetUint64Convert.
func (dc *DecodeContext) GetUint64ConvertInMapSZ(label string, opts uint32, out *uint64) {
	dc.getUint64(inMapSZ(label), true, opts, false, out)
}

// GetUint64ConvertAll is the unsigned counterpart of GetInt64ConvertAll.
func (dc *DecodeContext) GetUint64ConvertAll(opts uint32, out *uint64) {
	dc.getUint64(atCursor(), true, opts, true, out)
}

// GetUint64ConvertAllInMapN is the InMapN form of GetUint64ConvertAll.
func (dc *DecodeContext) GetUint64ConvertAllInMapN(label int64, opts uint32, out *uint64) {
	dc.getUint64(inMapN(label), true, opts, true, out)
}

// GetUint64ConvertAllInMapSZ is the InMapSZ form of GetUint64ConvertAll.
func (dc *DecodeContext) GetUint64ConvertAllInMapSZ(label string, opts uint32, out *uint64) {
	dc.getUint64(inMapSZ(label), true, opts, true, out)
}

// --- Double family ---

func (dc *DecodeContext) getDouble(loc locator, convert bool, opts uint32, allowBig bool, out *float64) {
	it, ok := dc.resolve(loc, AnyType)
	if !ok {
		return
	}
	v, err := dc.convertToDouble(it, convert, opts, allowBig)
	if err != nil {
		dc.setError(err)
		return
	}
	*out = v
}

// GetDouble decodes the item at the cursor as a float64.
func (dc *DecodeContext) GetDouble(out *float64) { dc.getDouble(atCursor(), false, 0, false, out) }

// GetDoubleInMapN decodes an integer-labeled map entry as a float64.
func (dc *DecodeContext) GetDoubleInMapN(label int64, out *float64) {
	dc.getDouble(inMapN(label), false, 0, false, out)
}

// GetDoubleInMapSZ decodes a text-labeled map entry as a float64.
func (dc *DecodeContext) GetDoubleInMapSZ(label string, out *float64) {
	dc.getDouble(inMapSZ(label), false, 0, false, out)
}

// GetDoubleConvert decodes the item at the cursor as a float64, also
// accepting integer sources named in opts.
func (dc *DecodeContext) GetDoubleConvert(opts uint32, out *float64) {
	dc.getDouble(atCursor(), true, opts, false, out)
}

// GetDoubleConvertInMapN is the InMapN form of GetDoubleConvert.
func (dc *DecodeContext) GetDoubleConvertInMapN(label int64, opts uint32, out *float64) {
	dc.getDouble(inMapN(label), true, opts, false, out)
}

// GetDoubleConvertInMapSZ is the InMapSZ form of GetDoubleConvert.
func (dc *DecodeContext) GetDoubleConvertInMapSZ(label string, opts uint32, out *float64) {
	dc.getDouble(inMapSZ(label), true, opts, false, out)
}

// GetDoubleConvertAll is GetDoubleConvert plus bignum/decimal-fraction/
// bigfloat sources named in opts.
func (dc *DecodeContext) GetDoubleConvertAll(opts uint32, out *float64) {
	dc.getDouble(atCursor(), true, opts, true, out)
}

// GetDoubleConvertAllInMapN is the InMapN form of GetDoubleConvertAll.
func (dc *DecodeContext) GetDoubleConvertAllInMapN(label int64, opts uint32, out *float64) {
	dc.getDouble(inMapN(label), true, opts, true, out)
}

// GetDoubleConvertAllInMapSZ is the InMapSZ form of GetDoubleConvertAll.
func (dc *DecodeContext) GetDoubleConvertAllInMapSZ(label string, opts uint32, out *float64) {
	dc.getDouble(inMapSZ(label), true, opts, true, out)
}

// --- Plain scalar getters ---

// GetBytes decodes the byte string at the cursor.
func (dc *DecodeContext) GetBytes(out *[]byte) {
	it, ok := dc.getAtCursor(ByteStringType)
	if !ok {
		return
	}
	*out = it.Bytes
}

// GetBytesInMapN decodes an integer-labeled byte string map entry.
func (dc *DecodeContext) GetBytesInMapN(label int64, out *[]byte) {
	it, ok := dc.getInMap(IntLabel(label), ByteStringType)
	if !ok {
		return
	}
	*out = it.Bytes
}

// GetBytesInMapSZ decodes a text-labeled byte string map entry.
func (dc *DecodeContext) GetBytesInMapSZ(label string, out *[]byte) {
	it, ok := dc.getInMap(TextLabel(label), ByteStringType)
	if !ok {
		return
	}
	*out = it.Bytes
}

// GetText decodes the text string at the cursor.
func (dc *DecodeContext) GetText(out *string) {
	it, ok := dc.getAtCursor(TextStringType)
	if !ok {
		return
	}
	*out = it.Text
}

// GetTextInMapN decodes an integer-labeled text string map entry.
func (dc *DecodeContext) GetTextInMapN(label int64, out *string) {
	it, ok := dc.getInMap(IntLabel(label), TextStringType)
	if !ok {
		return
	}
	*out = it.Text
}

// GetTextInMapSZ decodes a text-labeled text string map entry.
func (dc *DecodeContext) GetTextInMapSZ(label string, out *string) {
	it, ok := dc.getInMap(TextLabel(label), TextStringType)
	if !ok {
		return
	}
	*out = it.Text
}

// GetBool decodes the boolean at the cursor.
func (dc *DecodeContext) GetBool(out *bool) {
	it, ok := dc.getAtCursor(BoolItemType)
	if !ok {
		return
	}
	*out = it.SimpleValue == 1
}

// GetBoolInMapN decodes an integer-labeled boolean map entry.
func (dc *DecodeContext) GetBoolInMapN(label int64, out *bool) {
	it, ok := dc.getInMap(IntLabel(label), BoolItemType)
	if !ok {
		return
	}
	*out = it.SimpleValue == 1
}

// GetBoolInMapSZ decodes a text-labeled boolean map entry.
func (dc *DecodeContext) GetBoolInMapSZ(label string, out *bool) {
	it, ok := dc.getInMap(TextLabel(label), BoolItemType)
	if !ok {
		return
	}
	*out = it.SimpleValue == 1
}

// --- Tag-matched semantic getters ---

// GetDateString decodes a tag(0) RFC 3339 date/time text string.
func (dc *DecodeContext) GetDateString(tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(atCursor(), tagReq, []ItemType{TextStringType}, tagDateTimeString)
	if !ok {
		return
	}
	*out = it.Text
}

// GetDateStringInMapN is the InMapN form of GetDateString.
func (dc *DecodeContext) GetDateStringInMapN(label int64, tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(inMapN(label), tagReq, []ItemType{TextStringType}, tagDateTimeString)
	if !ok {
		return
	}
	*out = it.Text
}

// GetDateStringInMapSZ is the InMapSZ form of GetDateString.
func (dc *DecodeContext) GetDateStringInMapSZ(label string, tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(inMapSZ(label), tagReq, []ItemType{TextStringType}, tagDateTimeString)
	if !ok {
		return
	}
	*out = it.Text
}

// GetEpochDate decodes a tag(1) Unix timestamp (integer or float
// seconds). Fractional-second epoch values are split into whole seconds
// (floor) and a remainder rounded to the nearest nanosecond, so
// sub-second precision survives.
func (dc *DecodeContext) GetEpochDate(tagReq TagRequirement, out *time.Time) {
	dc.epochDate(atCursor(), tagReq, out)
}

// GetEpochDateInMapN is the InMapN form of GetEpochDate.
func (dc *DecodeContext) GetEpochDateInMapN(label int64, tagReq TagRequirement, out *time.Time) {
	dc.epochDate(inMapN(label), tagReq, out)
}

// GetEpochDateInMapSZ is the InMapSZ form of GetEpochDate.
func (dc *DecodeContext) GetEpochDateInMapSZ(label string, tagReq TagRequirement, out *time.Time) {
	dc.epochDate(inMapSZ(label), tagReq, out)
}

func (dc *DecodeContext) epochDate(loc locator, tagReq TagRequirement, out *time.Time) {
	it, ok := dc.matchTagged(loc, tagReq, []ItemType{IntItemType, UintItemType, DoubleType, Float32ItemType}, tagEpochDateTime)
	if !ok {
		return
	}
	switch it.Type {
	case DateEpochType:
		// Already normalized by decodeOneFrom into whole seconds (Int64)
		// plus a nanosecond remainder (Float64), regardless of whether the
		// wire content was an integer or a float.
		*out = time.Unix(it.Int64, int64(it.Float64)).UTC()
	case IntItemType:
		*out = time.Unix(it.Int64, 0).UTC()
	case UintItemType:
		*out = time.Unix(int64(it.Uint64), 0).UTC()
	case DoubleType, Float32ItemType:
		sec, ns := splitEpochFloat(it.Float64)
		*out = time.Unix(sec, ns).UTC()
	}
}

// GetURI decodes a tag(32) URI text string.
func (dc *DecodeContext) GetURI(tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(atCursor(), tagReq, []ItemType{TextStringType}, tagURI)
	if !ok {
		return
	}
	*out = it.Text
}

// GetURIInMapN is the InMapN form of GetURI.
func (dc *DecodeContext) GetURIInMapN(label int64, tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(inMapN(label), tagReq, []ItemType{TextStringType}, tagURI)
	if !ok {
		return
	}
	*out = it.Text
}

// GetURIInMapSZ is the InMapSZ form of GetURI.
func (dc *DecodeContext) GetURIInMapSZ(label string, tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(inMapSZ(label), tagReq, []ItemType{TextStringType}, tagURI)
	if !ok {
		return
	}
	*out = it.Text
}

// GetB64 decodes a tag(22)-hinted byte string expected to be base64.
func (dc *DecodeContext) GetB64(tagReq TagRequirement, out *[]byte) {
	it, ok := dc.matchTagged(atCursor(), tagReq, []ItemType{ByteStringType}, tagBase64, tagBase64String)
	if !ok {
		return
	}
	*out = it.Bytes
}

// GetB64InMapN is the InMapN form of GetB64.
func (dc *DecodeContext) GetB64InMapN(label int64, tagReq TagRequirement, out *[]byte) {
	it, ok := dc.matchTagged(inMapN(label), tagReq, []ItemType{ByteStringType}, tagBase64, tagBase64String)
	if !ok {
		return
	}
	*out = it.Bytes
}

// GetB64InMapSZ is the InMapSZ form of GetB64.
func (dc *DecodeContext) GetB64InMapSZ(label string, tagReq TagRequirement, out *[]byte) {
	it, ok := dc.matchTagged(inMapSZ(label), tagReq, []ItemType{ByteStringType}, tagBase64, tagBase64String)
	if !ok {
		return
	}
	*out = it.Bytes
}

// GetB64URL decodes a tag(21)-hinted byte string expected to be base64url.
func (dc *DecodeContext) GetB64URL(tagReq TagRequirement, out *[]byte) {
	it, ok := dc.matchTagged(atCursor(), tagReq, []ItemType{ByteStringType}, tagBase64URL, tagBase64URLString)
	if !ok {
		return
	}
	*out = it.Bytes
}

// GetB64URLInMapN is the InMapN form of GetB64URL.
func (dc *DecodeContext) GetB64URLInMapN(label int64, tagReq TagRequirement, out *[]byte) {
	it, ok := dc.matchTagged(inMapN(label), tagReq, []ItemType{ByteStringType}, tagBase64URL, tagBase64URLString)
	if !ok {
		return
	}
	*out = it.Bytes
}

// GetB64URLInMapSZ is the InMapSZ form of GetB64URL.
func (dc *DecodeContext) GetB64URLInMapSZ(label string, tagReq TagRequirement, out *[]byte) {
	it, ok := dc.matchTagged(inMapSZ(label), tagReq, []ItemType{ByteStringType}, tagBase64URL, tagBase64URLString)
	if !ok {
		return
	}
	*out = it.Bytes
}

// GetRegex decodes a tag(35) regular expression pattern as text.
func (dc *DecodeContext) GetRegex(tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(atCursor(), tagReq, []ItemType{TextStringType}, tagRegexp)
	if !ok {
		return
	}
	*out = it.Text
}

// GetRegexInMapN is the InMapN form of GetRegex.
func (dc *DecodeContext) GetRegexInMapN(label int64, tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(inMapN(label), tagReq, []ItemType{TextStringType}, tagRegexp)
	if !ok {
		return
	}
	*out = it.Text
}

// GetRegexInMapSZ is the InMapSZ form of GetRegex.
func (dc *DecodeContext) GetRegexInMapSZ(label string, tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(inMapSZ(label), tagReq, []ItemType{TextStringType}, tagRegexp)
	if !ok {
		return
	}
	*out = it.Text
}

// GetMIMEMessage decodes a tag(36) MIME message as text.
func (dc *DecodeContext) GetMIMEMessage(tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(atCursor(), tagReq, []ItemType{TextStringType}, tagMIME)
	if !ok {
		return
	}
	*out = it.Text
}

// GetMIMEMessageInMapN is the InMapN form of GetMIMEMessage.
func (dc *DecodeContext) GetMIMEMessageInMapN(label int64, tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(inMapN(label), tagReq, []ItemType{TextStringType}, tagMIME)
	if !ok {
		return
	}
	*out = it.Text
}

// GetMIMEMessageInMapSZ is the InMapSZ form of GetMIMEMessage.
func (dc *DecodeContext) GetMIMEMessageInMapSZ(label string, tagReq TagRequirement, out *string) {
	it, ok := dc.matchTagged(inMapSZ(label), tagReq, []ItemType{TextStringType}, tagMIME)
	if !ok {
		return
	}
	*out = it.Text
}

// GetBinaryUUID decodes a tag(37) UUID as its raw 16 bytes.
func (dc *DecodeContext) GetBinaryUUID(tagReq TagRequirement, out *[16]byte) {
	it, ok := dc.matchTagged(atCursor(), tagReq, []ItemType{ByteStringType}, tagUUID)
	if !ok {
		return
	}
	dc.fillUUID(it, out)
}

// GetBinaryUUIDInMapN is the InMapN form of GetBinaryUUID.
func (dc *DecodeContext) GetBinaryUUIDInMapN(label int64, tagReq TagRequirement, out *[16]byte) {
	it, ok := dc.matchTagged(inMapN(label), tagReq, []ItemType{ByteStringType}, tagUUID)
	if !ok {
		return
	}
	dc.fillUUID(it, out)
}

// GetBinaryUUIDInMapSZ is the InMapSZ form of GetBinaryUUID.
func (dc *DecodeContext) GetBinaryUUIDInMapSZ(label string, tagReq TagRequirement, out *[16]byte) {
	it, ok := dc.matchTagged(inMapSZ(label), tagReq, []ItemType{ByteStringType}, tagUUID)
	if !ok {
		return
	}
	dc.fillUUID(it, out)
}

func (dc *DecodeContext) fillUUID(it Item, out *[16]byte) {
	if len(it.Bytes) != 16 {
		dc.setError(ErrUnexpectedType)
		return
	}
	copy(out[:], it.Bytes)
}

// matchTagged resolves loc's item and checks that it carries one of
// tagNums, or (when tagReq allows an untagged form) that its raw type is
// one of rawTypes. Matching against the item's actual Tags rather than
// its (possibly tag-overridden) Type is what lets this same helper serve
// tags like epoch-date whose content's native type varies.
func (dc *DecodeContext) matchTagged(loc locator, tagReq TagRequirement, rawTypes []ItemType, tagNums ...uint64) (Item, bool) {
	it, ok := dc.resolve(loc, AnyType)
	if !ok {
		return Item{}, false
	}
	tagged := false
	for _, tag := range tagNums {
		if it.MatchesTag(tag) {
			tagged = true
			break
		}
	}
	if tagged {
		if tagReq == MatchTagContentType {
			// MATCH_CONTENT_TYPE only accepts the bare content type; a
			// present semantic tag is itself the mismatch.
			dc.setError(ErrUnexpectedType)
			return Item{}, false
		}
		return it, true
	}
	if tagReq == MatchTag {
		dc.setError(ErrUnexpectedType)
		return Item{}, false
	}
	for _, rt := range rawTypes {
		if it.Type == rt {
			return it, true
		}
	}
	dc.setError(ErrUnexpectedType)
	return Item{}, false
}

// --- Bignum / decimal-fraction / bigfloat getters ---

// GetBignum decodes a tag(2)/tag(3) positive or negative bignum.
func (dc *DecodeContext) GetBignum(tagReq TagRequirement, out *bigmath.Int) {
	dc.bignum(atCursor(), tagReq, out)
}

// GetBignumInMapN is the InMapN form of GetBignum.
func (dc *DecodeContext) GetBignumInMapN(label int64, tagReq TagRequirement, out *bigmath.Int) {
	dc.bignum(inMapN(label), tagReq, out)
}

// GetBignumInMapSZ is the InMapSZ form of GetBignum.
func (dc *DecodeContext) GetBignumInMapSZ(label string, tagReq TagRequirement, out *bigmath.Int) {
	dc.bignum(inMapSZ(label), tagReq, out)
}

func (dc *DecodeContext) bignum(loc locator, tagReq TagRequirement, out *bigmath.Int) {
	it, ok := dc.resolve(loc, AnyType)
	if !ok {
		return
	}
	if it.Type != PosBignumType && it.Type != NegBignumType {
		dc.setError(ErrUnexpectedType)
		return
	}
	_ = tagReq // bignums are always tag-carried; content alone can't imply sign
	z, err := bignumFromItem(it)
	if err != nil {
		dc.setError(err)
		return
	}
	out.Set(z)
}

// GetDecimalFraction decodes a tag(4) decimal fraction with an int64
// mantissa. Use GetDecimalFractionBig if the mantissa may be a bignum.
func (dc *DecodeContext) GetDecimalFraction(tagReq TagRequirement, outMantissa *int64, outExp *int64) {
	dc.decimalFraction(atCursor(), tagReq, outMantissa, outExp)
}

// GetDecimalFractionInMapN is the InMapN form of GetDecimalFraction.
func (dc *DecodeContext) GetDecimalFractionInMapN(label int64, tagReq TagRequirement, outMantissa *int64, outExp *int64) {
	dc.decimalFraction(inMapN(label), tagReq, outMantissa, outExp)
}

// GetDecimalFractionInMapSZ is the InMapSZ form of GetDecimalFraction.
func (dc *DecodeContext) GetDecimalFractionInMapSZ(label string, tagReq TagRequirement, outMantissa *int64, outExp *int64) {
	dc.decimalFraction(inMapSZ(label), tagReq, outMantissa, outExp)
}

func (dc *DecodeContext) decimalFraction(loc locator, tagReq TagRequirement, outMantissa *int64, outExp *int64) {
	it, ok := dc.resolve(loc, DecimalFractionType)
	if !ok {
		return
	}
	mant := new(bigmath.Int).SetBytes(it.Bytes)
	if it.SimpleValue == 1 {
		mant.Neg(mant)
	}
	if !mant.IsInt64() {
		dc.setError(ErrConversionOverUnder)
		return
	}
	*outMantissa = mant.Int64()
	*outExp = it.Int64
}

// GetDecimalFractionBig is GetDecimalFraction with a big.Int mantissa.
func (dc *DecodeContext) GetDecimalFractionBig(tagReq TagRequirement, outMantissa *bigmath.Int, outExp *int64) {
	dc.decimalFractionBig(atCursor(), tagReq, outMantissa, outExp)
}

// GetDecimalFractionBigInMapN is the InMapN form of GetDecimalFractionBig.
func (dc *DecodeContext) GetDecimalFractionBigInMapN(label int64, tagReq TagRequirement, outMantissa *bigmath.Int, outExp *int64) {
	dc.decimalFractionBig(inMapN(label), tagReq, outMantissa, outExp)
}

// GetDecimalFractionBigInMapSZ is the InMapSZ form of GetDecimalFractionBig.
func (dc *DecodeContext) GetDecimalFractionBigInMapSZ(label string, tagReq TagRequirement, outMantissa *bigmath.Int, outExp *int64) {
	dc.decimalFractionBig(inMapSZ(label), tagReq, outMantissa, outExp)
}

func (dc *DecodeContext) decimalFractionBig(loc locator, tagReq TagRequirement, outMantissa *bigmath.Int, outExp *int64) {
	it, ok := dc.resolve(loc, DecimalFractionType)
	if !ok {
		return
	}
	mant := new(bigmath.Int).SetBytes(it.Bytes)
	if it.SimpleValue == 1 {
		mant.Neg(mant)
	}
	outMantissa.Set(mant)
	*outExp = it.Int64
}

// GetBigFloat decodes a tag(5) bigfloat with an int64 mantissa.
func (dc *DecodeContext) GetBigFloat(tagReq TagRequirement, outMantissa *int64, outExp *int64) {
	dc.bigfloat(atCursor(), tagReq, outMantissa, outExp)
}

// GetBigFloatInMapN is the InMapN form of GetBigFloat.
func (dc *DecodeContext) GetBigFloatInMapN(label int64, tagReq TagRequirement, outMantissa *int64, outExp *int64) {
	dc.bigfloat(inMapN(label), tagReq, outMantissa, outExp)
}

// GetBigFloatInMapSZ is the InMapSZ form of GetBigFloat.
func (dc *DecodeContext) GetBigFloatInMapSZ(label string, tagReq TagRequirement, outMantissa *int64, outExp *int64) {
	dc.bigfloat(inMapSZ(label), tagReq, outMantissa, outExp)
}

func (dc *DecodeContext) bigfloat(loc locator, tagReq TagRequirement, outMantissa *int64, outExp *int64) {
	it, ok := dc.resolve(loc, BigfloatType)
	if !ok {
		return
	}
	mant := new(bigmath.Int).SetBytes(it.Bytes)
	if it.SimpleValue == 1 {
		mant.Neg(mant)
	}
	if !mant.IsInt64() {
		dc.setError(ErrConversionOverUnder)
		return
	}
	*outMantissa = mant.Int64()
	*outExp = it.Int64
}

// GetBigFloatBig is GetBigFloat with a big.Int mantissa.
func (dc *DecodeContext) GetBigFloatBig(tagReq TagRequirement, outMantissa *bigmath.Int, outExp *int64) {
	dc.bigfloatBig(atCursor(), tagReq, outMantissa, outExp)
}

// GetBigFloatBigInMapN is the InMapN form of GetBigFloatBig.
func (dc *DecodeContext) GetBigFloatBigInMapN(label int64, tagReq TagRequirement, outMantissa *bigmath.Int, outExp *int64) {
	dc.bigfloatBig(inMapN(label), tagReq, outMantissa, outExp)
}

// GetBigFloatBigInMapSZ is the InMapSZ form of GetBigFloatBig.
func (dc *DecodeContext) GetBigFloatBigInMapSZ(label string, tagReq TagRequirement, outMantissa *bigmath.Int, outExp *int64) {
	dc.bigfloatBig(inMapSZ(label), tagReq, outMantissa, outExp)
}

func (dc *DecodeContext) bigfloatBig(loc locator, tagReq TagRequirement, outMantissa *bigmath.Int, outExp *int64) {
	it, ok := dc.resolve(loc, BigfloatType)
	if !ok {
		return
	}
	mant := new(bigmath.Int).SetBytes(it.Bytes)
	if it.SimpleValue == 1 {
		mant.Neg(mant)
	}
	outMantissa.Set(mant)
	*outExp = it.Int64
}
