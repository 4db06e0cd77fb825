package cbor

// ItemType discriminates the payload carried by an Item. It extends the
// existing Type enum with the tagged-content variants the spiffy decoder's
// typed getters and GetNextWithTags recognize.
type ItemType byte

// Item type discriminants. NoneType marks a zero-value Item and the result
// of a failed decode; AnyType matches anything and is the "don't care"
// wildcard for map search specs and type filters.
const (
	NoneType ItemType = iota
	IntItemType
	UintItemType
	DoubleType
	Float32ItemType
	BoolItemType
	TextStringType
	ByteStringType
	ArrayItemType
	MapItemType
	NilItemType
	UndefinedType
	DateStringType
	DateEpochType
	URIType
	Base64Type
	Base64URLType
	RegexType
	MIMEType
	UUIDType
	PosBignumType
	NegBignumType
	DecimalFractionType
	BigfloatType
	AnyType
)

var itemTypeNames = [...]string{
	NoneType:            "none",
	IntItemType:         "int",
	UintItemType:        "uint",
	DoubleType:          "double",
	Float32ItemType:     "float32",
	BoolItemType:        "bool",
	TextStringType:      "text",
	ByteStringType:      "bytes",
	ArrayItemType:       "array",
	MapItemType:         "map",
	NilItemType:         "null",
	UndefinedType:       "undefined",
	DateStringType:      "date-string",
	DateEpochType:       "date-epoch",
	URIType:             "uri",
	Base64Type:          "base64",
	Base64URLType:       "base64url",
	RegexType:           "regex",
	MIMEType:            "mime",
	UUIDType:            "uuid",
	PosBignumType:       "pos-bignum",
	NegBignumType:       "neg-bignum",
	DecimalFractionType: "decimal-fraction",
	BigfloatType:        "bigfloat",
	AnyType:             "any",
}

// String renders a human-readable name for t, used by diagnostics and
// the cborwalk CLI's item listing.
func (t ItemType) String() string {
	if int(t) < len(itemTypeNames) {
		return itemTypeNames[t]
	}
	return "unknown"
}

// MaxTagsPerItem bounds the number of leading tags a single item may carry.
// Matches the QCBOR spiffy decoder's documented minimum of 4.
const MaxTagsPerItem = 4

// Label identifies a map entry. A label is either a signed integer or
// UTF-8 text; it is never both, matching the two label forms CBOR maps
// actually use in practice (int-keyed and string-keyed protocols).
type Label struct {
	IsText bool
	Int    int64
	Text   string
}

// IntLabel builds an integer Label.
func IntLabel(n int64) Label { return Label{Int: n} }

// TextLabel builds a text Label.
func TextLabel(s string) Label { return Label{IsText: true, Text: s} }

func (l Label) equal(o Label) bool {
	if l.IsText != o.IsText {
		return false
	}
	if l.IsText {
		return l.Text == o.Text
	}
	return l.Int == o.Int
}

// Item is a single decoded CBOR data item: its type discriminant, any
// leading tags, and the payload field(s) that apply to that type. Only
// the fields relevant to Type are meaningful; the others are zero.
//
// Item intentionally uses a flat struct with a type tag rather than an
// interface hierarchy - there is one concrete shape for every CBOR item
// and no behavior varies by type, so a tagged union costs less and
// avoids allocation on every decode.
type Item struct {
	Type ItemType

	Label    Label
	HasLabel bool

	Tags    [MaxTagsPerItem]uint64
	NumTags int

	Int64   int64
	Uint64  uint64
	Float64 float64
	Bytes   []byte
	Text    string

	ArrayCount uint32
	MapCount   uint32
	Indefinite bool

	SimpleValue uint8
}

// MatchesTag reports whether tag is among the item's leading tags.
func (it *Item) MatchesTag(tag uint64) bool {
	for i := 0; i < it.NumTags; i++ {
		if it.Tags[i] == tag {
			return true
		}
	}
	return false
}

// OutermostTag returns the tag at position idx of the item's leading
// tags, counting from the outermost (first-encoded, leftmost) tag at
// idx 0, or ok=false if idx is out of range.
func (it *Item) OutermostTag(idx int) (tag uint64, ok bool) {
	if idx < 0 || idx >= it.NumTags {
		return 0, false
	}
	return it.Tags[idx], true
}
