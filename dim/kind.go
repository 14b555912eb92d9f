package dim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKind is returned for a bit-coded kind value whose base type,
	// once the flag bits are stripped, falls outside 0–6.
	ErrInvalidKind = errors.New("invalid dimension kind")
	// ErrDuplicateRole is returned when a role tag is given more than once.
	ErrDuplicateRole = errors.New("duplicate definition point role")
	// ErrUnexpectedRole is returned when a definition point carries a role the
	// dimension kind does not use.
	ErrUnexpectedRole = errors.New("unexpected definition point role")
)

// Kind is the base dimension type.
type Kind uint8

const (
	KindRotated       Kind = 0 // horizontal, vertical or rotated linear dimension
	KindAligned       Kind = 1 // linear dimension parallel to its reference points
	KindAngular       Kind = 2 // angle between two lines
	KindDiametric     Kind = 3
	KindRadial        Kind = 4
	KindAngular3Point Kind = 5 // decoded and stored, not laid out
	KindOrdinate      Kind = 6 // decoded and stored, not laid out
)

func (k Kind) String() string {
	switch k {
	case KindRotated:
		return "rotated"
	case KindAligned:
		return "aligned"
	case KindAngular:
		return "angular"
	case KindDiametric:
		return "diametric"
	case KindRadial:
		return "radial"
	case KindAngular3Point:
		return "angular3point"
	case KindOrdinate:
		return "ordinate"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Flags are the bits stored on top of the base kind in the interchange type field.
type Flags uint8

const (
	BlockReferenced Flags = 32  // the dimension block is referenced by this dimension only
	OrdinateX       Flags = 64  // ordinate dimension measures X rather than Y
	UserText        Flags = 128 // the label was placed by the user at the text point
	flagMask              = int(BlockReferenced | OrdinateX | UserText)
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// DecodeType splits the bit-coded interchange type value into its kind and
// flags. Values whose base type is outside 0–6 are rejected, never coerced.
func DecodeType(code int) (Kind, Flags, error) {
	if code < 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidKind, code)
	}
	base := code &^ flagMask
	if base > int(KindOrdinate) {
		return 0, 0, fmt.Errorf("%w: base type %d of %d", ErrInvalidKind, base, code)
	}
	return Kind(base), Flags(code & flagMask), nil
}

// EncodeType is the inverse of DecodeType.
func EncodeType(k Kind, f Flags) int {
	return int(k) | int(f)
}
