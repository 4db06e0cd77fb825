package cbor

// TagRequirement controls whether a typed getter demands, forbids, or
// tolerates the wrapping tag associated with a semantic type. Naming and
// the three-way split follow QCBOR's TagSpecification: a protocol that
// mandates tagging uses MatchTag, one that infers the type from context
// uses MatchTagContentType, and one that accepts either (not generally
// recommended, but sometimes unavoidable with deployed data) uses
// MatchEither.
type TagRequirement uint8

const (
	// MatchTag requires the exact tag number to be present.
	MatchTag TagRequirement = iota
	// MatchTagContentType accepts an untagged item if its raw content
	// type matches what the tag would have implied.
	MatchTagContentType
	// MatchEither accepts the item whether or not the tag is present.
	MatchEither
)

// peekTags reads and discards a run of leading tag heads from b, returning
// the tag numbers in the order read (outermost first) and the rest
// of the buffer positioned at the tagged content's own head byte. More
// than MaxTagsPerItem tags is rejected the same way QCBOR rejects it: as
// a malformed-input condition rather than silently truncating the list.
func peekTags(b []byte) (tags [MaxTagsPerItem]uint64, n int, rest []byte, err error) {
	rest = b
	for {
		if len(rest) < 1 {
			return tags, n, rest, ErrShortBytes
		}
		if getMajorType(rest[0]) != majorTypeTag {
			return tags, n, rest, nil
		}
		if n >= MaxTagsPerItem {
			return tags, n, rest, errTooManyTags{}
		}
		tag, o, err := ReadTagBytes(rest)
		if err != nil {
			return tags, n, rest, err
		}
		tags[n] = tag
		n++
		rest = o
	}
}

// itemTypeForTag returns the ItemType a bare tag number implies, used to
// populate Item.Type for GetNextWithTags when the content itself doesn't
// disambiguate it (e.g. a byte string under tag 2 means a positive
// bignum, not an ordinary byte string). It does not cover
// tagEpochDateTime, tagDecimalFrac, or tagBigfloat: those wrap content
// whose CBOR major type varies (int, uint, or float for an epoch date;
// an array for a decimal fraction or bigfloat), so decodeOneFrom
// special-cases them before generic dispatch ever reaches this table,
// producing their Item directly.
func itemTypeForTag(tag uint64) (ItemType, bool) {
	switch tag {
	case tagDateTimeString:
		return DateStringType, true
	case tagPosBignum:
		return PosBignumType, true
	case tagNegBignum:
		return NegBignumType, true
	case tagURI:
		return URIType, true
	case tagBase64URL, tagBase64URLString:
		return Base64URLType, true
	case tagBase64, tagBase64String:
		return Base64Type, true
	case tagRegexp:
		return RegexType, true
	case tagMIME:
		return MIMEType, true
	case tagUUID:
		return UUIDType, true
	default:
		return NoneType, false
	}
}

// errTooManyTags is returned when an item carries more leading tags than
// MaxTagsPerItem.
type errTooManyTags struct{}

func (errTooManyTags) Error() string   { return "cbor: too many tags on item" }
func (errTooManyTags) Resumable() bool { return false }
