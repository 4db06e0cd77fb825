package cbor

import (
	"math"
	bigmath "math/big"
)

// Conversion Ladder option bits, passed to the GetXxxConvert/ConvertAll
// family to say which of CBOR's several numeric representations a typed
// getter should accept in addition to the item's "native" type. Naming
// and values follow the original QCBOR_CONVERT_TYPE_* bitmask.
const (
	ConvertTypeInt64           uint32 = 0x01
	ConvertTypeUint64          uint32 = 0x02
	ConvertTypeFloat           uint32 = 0x04
	ConvertTypeBigfloat        uint32 = 0x08
	ConvertTypeDecimalFraction uint32 = 0x10
	ConvertTypeBigNum          uint32 = 0x20
	ConvertTypeDouble          uint32 = 0x40
	ConvertTypeXInt64          uint32 = 0x80 // either signed or unsigned integer
)

// bignumFromItem reconstructs the big.Int a PosBignumType/NegBignumType
// item's raw bytes encode (RFC 8949 §3.4.3: negative is -1-mag).
func bignumFromItem(it Item) (*bigmath.Int, error) {
	mag := new(bigmath.Int).SetBytes(it.Bytes)
	if it.Type == NegBignumType {
		mag.Add(mag, bigmath.NewInt(1))
		mag.Neg(mag)
	}
	return mag, nil
}

// scaledValue returns mantissa * base^exponent as a 200-bit big.Float
// rather than a rational; callers convert it to their destination scalar
// type.
func scaledValue(mantissa *bigmath.Int, exponent int64, base int64) *bigmath.Float {
	f := new(bigmath.Float).SetPrec(200).SetInt(mantissa)
	if exponent == 0 {
		return f
	}
	scale := new(bigmath.Float).SetPrec(200).SetInt64(base)
	pow := new(bigmath.Float).SetPrec(200).SetInt64(1)
	n := exponent
	neg := n < 0
	if neg {
		n = -n
	}
	for i := int64(0); i < n; i++ {
		pow.Mul(pow, scale)
	}
	if neg {
		pow.Quo(new(bigmath.Float).SetPrec(200).SetInt64(1), pow)
	}
	return f.Mul(f, pow)
}

func (dc *DecodeContext) convertToInt64(it Item, convert bool, opts uint32, allowBig bool) (int64, error) {
	switch it.Type {
	case IntItemType:
		return it.Int64, nil
	case UintItemType:
		if it.Uint64 > math.MaxInt64 {
			return 0, ErrConversionOverUnder
		}
		return int64(it.Uint64), nil
	}
	if !convert {
		return 0, ErrUnexpectedType
	}
	switch it.Type {
	case DoubleType, Float32ItemType:
		if opts&(ConvertTypeFloat|ConvertTypeDouble) == 0 {
			return 0, ErrUnexpectedType
		}
		return floatToInt64RoundEven(it.Float64)
	case PosBignumType, NegBignumType:
		if !allowBig || opts&ConvertTypeBigNum == 0 {
			return 0, ErrUnexpectedType
		}
		z, err := bignumFromItem(it)
		if err != nil {
			return 0, err
		}
		if !z.IsInt64() {
			return 0, ErrConversionOverUnder
		}
		return z.Int64(), nil
	case DecimalFractionType, BigfloatType:
		if !allowBig {
			return 0, ErrUnexpectedType
		}
		if it.Type == DecimalFractionType && opts&ConvertTypeDecimalFraction == 0 {
			return 0, ErrUnexpectedType
		}
		if it.Type == BigfloatType && opts&ConvertTypeBigfloat == 0 {
			return 0, ErrUnexpectedType
		}
		f, err := dc.scaledFromItem(it)
		if err != nil {
			return 0, err
		}
		ff, _ := f.Float64()
		return floatToInt64RoundEven(ff)
	default:
		return 0, ErrUnexpectedType
	}
}

func (dc *DecodeContext) convertToUint64(it Item, convert bool, opts uint32, allowBig bool) (uint64, error) {
	switch it.Type {
	case UintItemType:
		return it.Uint64, nil
	case IntItemType:
		if it.Int64 < 0 {
			return 0, ErrNumberSignConversion
		}
		return uint64(it.Int64), nil
	}
	if !convert {
		return 0, ErrUnexpectedType
	}
	switch it.Type {
	case DoubleType, Float32ItemType:
		if opts&(ConvertTypeFloat|ConvertTypeDouble) == 0 {
			return 0, ErrUnexpectedType
		}
		return floatToUint64RoundEven(it.Float64)
	case PosBignumType, NegBignumType:
		if !allowBig || opts&ConvertTypeBigNum == 0 {
			return 0, ErrUnexpectedType
		}
		z, err := bignumFromItem(it)
		if err != nil {
			return 0, err
		}
		if z.Sign() < 0 {
			return 0, ErrNumberSignConversion
		}
		if !z.IsUint64() {
			return 0, ErrConversionOverUnder
		}
		return z.Uint64(), nil
	case DecimalFractionType, BigfloatType:
		if !allowBig {
			return 0, ErrUnexpectedType
		}
		if it.Type == DecimalFractionType && opts&ConvertTypeDecimalFraction == 0 {
			return 0, ErrUnexpectedType
		}
		if it.Type == BigfloatType && opts&ConvertTypeBigfloat == 0 {
			return 0, ErrUnexpectedType
		}
		f, err := dc.scaledFromItem(it)
		if err != nil {
			return 0, err
		}
		ff, _ := f.Float64()
		return floatToUint64RoundEven(ff)
	default:
		return 0, ErrUnexpectedType
	}
}

func (dc *DecodeContext) convertToDouble(it Item, convert bool, opts uint32, allowBig bool) (float64, error) {
	switch it.Type {
	case DoubleType, Float32ItemType:
		return it.Float64, nil
	}
	if !convert {
		return 0, ErrUnexpectedType
	}
	switch it.Type {
	case IntItemType:
		if opts&(ConvertTypeInt64|ConvertTypeXInt64) == 0 {
			return 0, ErrUnexpectedType
		}
		return float64(it.Int64), nil
	case UintItemType:
		if opts&(ConvertTypeUint64|ConvertTypeXInt64) == 0 {
			return 0, ErrUnexpectedType
		}
		return float64(it.Uint64), nil
	case PosBignumType, NegBignumType:
		if !allowBig || opts&ConvertTypeBigNum == 0 {
			return 0, ErrUnexpectedType
		}
		z, err := bignumFromItem(it)
		if err != nil {
			return 0, err
		}
		f := new(bigmath.Float).SetPrec(200).SetInt(z)
		ff, _ := f.Float64()
		return ff, nil
	case DecimalFractionType, BigfloatType:
		if !allowBig {
			return 0, ErrUnexpectedType
		}
		if it.Type == DecimalFractionType && opts&ConvertTypeDecimalFraction == 0 {
			return 0, ErrUnexpectedType
		}
		if it.Type == BigfloatType && opts&ConvertTypeBigfloat == 0 {
			return 0, ErrUnexpectedType
		}
		f, err := dc.scaledFromItem(it)
		if err != nil {
			return 0, err
		}
		ff, _ := f.Float64()
		return ff, nil
	default:
		return 0, ErrUnexpectedType
	}
}

// parseExpMantissaArray parses a decimal-fraction/bigfloat's [exponent,
// mantissa] content, positioned immediately after its wrapping tag has
// already been consumed by the caller. The mantissa may itself be an
// integer or a bignum (tags 2/3), per RFC 8949 §3.4.4.
func parseExpMantissaArray(o []byte) (exp int64, mant *bigmath.Int, rest []byte, err error) {
	if len(o) < 1 {
		return 0, nil, o, ErrShortBytes
	}
	if o[0] == makeByte(majorTypeArray, addInfoIndefinite) {
		p := o[1:]
		exp, p, err = ReadInt64Bytes(p)
		if err != nil {
			return 0, nil, o, err
		}
		mant, p, err = readCBORIntegerAsBigInt(p)
		if err != nil {
			return 0, nil, o, err
		}
		if len(p) < 1 || p[0] != makeByte(majorTypeSimple, simpleBreak) {
			return 0, nil, o, ErrBadExpAndMantissa
		}
		return exp, mant, p[1:], nil
	}
	sz, p, err := ReadArrayHeaderBytes(o)
	if err != nil {
		return 0, nil, o, err
	}
	if sz != 2 {
		return 0, nil, o, ErrBadExpAndMantissa
	}
	exp, p, err = ReadInt64Bytes(p)
	if err != nil {
		return 0, nil, o, err
	}
	mant, p, err = readCBORIntegerAsBigInt(p)
	if err != nil {
		return 0, nil, o, err
	}
	return exp, mant, p, nil
}

// scaledFromItem reads the cached decimal-fraction/bigfloat payload off
// it (stashed in Int64/Bytes/SimpleValue by decodeOneFrom) and scales it.
func (dc *DecodeContext) scaledFromItem(it Item) (*bigmath.Float, error) {
	mant := new(bigmath.Int).SetBytes(it.Bytes)
	if it.SimpleValue == 1 {
		mant.Neg(mant)
	}
	base := int64(2)
	if it.Type == DecimalFractionType {
		base = 10
	}
	return scaledValue(mant, it.Int64, base), nil
}
