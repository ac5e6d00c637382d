package matchtable

import "fmt"

// ParamType tags a single MatchKeyParam with one of the four field
// disciplines a composite match key can be built from.
type ParamType int

const (
	ParamExact ParamType = iota
	ParamLPM
	ParamTernary
	ParamValid
)

func (t ParamType) String() string {
	switch t {
	case ParamExact:
		return "EXACT"
	case ParamLPM:
		return "LPM"
	case ParamTernary:
		return "TERNARY"
	case ParamValid:
		return "VALID"
	default:
		return fmt.Sprintf("ParamType(%d)", int(t))
	}
}

// MatchKeyParam is a single field's contribution to a composite match key.
type MatchKeyParam struct {
	Type ParamType
	// Key is the field's raw bytes, required for every type.
	Key []byte
	// Mask is required iff Type == ParamTernary.
	Mask []byte
	// PrefixLength is required iff Type == ParamLPM.
	PrefixLength int
}

// Variant selects which per-type byte-emission rules key construction
// applies.
type Variant int

const (
	VariantExact Variant = iota
	VariantLPM
	VariantTernary
)

func (v Variant) String() string {
	switch v {
	case VariantExact:
		return "exact"
	case VariantLPM:
		return "lpm"
	case VariantTernary:
		return "ternary"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// builtKey is the canonicalized output of KeyBuilder: a fixed-length key,
// plus a mask (ternary only) and an accumulated prefix length (LPM only).
type builtKey struct {
	key          []byte
	mask         []byte // nil unless VariantTernary
	prefixLength int    // 0 unless VariantLPM
}

// CanonicalKey exposes KeyBuilder to callers that need a canonical key
// without constructing a table — e.g. an adapter translating a packet's
// header-value view into the same bytes a table would store. It returns
// the key, the mask (nil unless variant is VariantTernary), and the
// accumulated prefix length (0 unless variant is VariantLPM).
func CanonicalKey(variant Variant, nbytesKey int, params []MatchKeyParam) (key, mask []byte, prefixLength int, err error) {
	built, err := buildKey(variant, nbytesKey, params)
	if err != nil {
		return nil, nil, 0, err
	}
	return built.key, built.mask, built.prefixLength, nil
}

// buildKey canonicalizes params into a builtKey according to a fixed
// ordering discipline:
//
//  1. Emit bytes for every VALID parameter, in input order, first.
//  2. Then emit bytes for the remaining parameters, in input order.
//
// For VariantLPM, step 2 defers the single LPM parameter to the end
// regardless of its position in params ("the canonical LPM key places the
// LPM bytes last"); every other EXACT parameter in step 2 keeps its input
// order ahead of it.
func buildKey(variant Variant, nbytesKey int, params []MatchKeyParam) (builtKey, error) {
	key := make([]byte, 0, nbytesKey)
	var mask []byte
	if variant == VariantTernary {
		mask = make([]byte, 0, nbytesKey)
	}

	var lpmParam *MatchKeyParam
	prefixLength := 0

	appendMasked := func(fieldKey, fieldMask []byte) {
		key = append(key, fieldKey...)
		if mask != nil {
			mask = append(mask, fieldMask...)
		}
	}

	// Pass 1: VALID parameters, input order.
	for i := range params {
		p := &params[i]
		if p.Type != ParamValid {
			continue
		}
		appendMasked(p.Key, onesMask(len(p.Key)))
		if variant == VariantLPM {
			prefixLength += 8 * len(p.Key)
		}
	}

	// Pass 2: everything else, input order, except VariantLPM defers its
	// single LPM parameter to the very end.
	for i := range params {
		p := &params[i]
		switch p.Type {
		case ParamValid:
			continue // already emitted in pass 1

		case ParamExact:
			switch variant {
			case VariantExact, VariantLPM:
				appendMasked(p.Key, onesMask(len(p.Key)))
				if variant == VariantLPM {
					prefixLength += 8 * len(p.Key)
				}
			case VariantTernary:
				appendMasked(p.Key, onesMask(len(p.Key)))
			}

		case ParamLPM:
			if variant != VariantLPM && variant != VariantTernary {
				return builtKey{}, fmt.Errorf("%w: LPM parameter forbidden in %v key", ErrBadMatchKey, variant)
			}
			if variant == VariantLPM {
				if lpmParam != nil {
					return builtKey{}, fmt.Errorf("%w: more than one LPM parameter", ErrBadMatchKey)
				}
				lpmParam = p
				continue // deferred; emitted after this loop
			}
			// VariantTernary: LPM parameter becomes a masked field in place.
			appendMasked(p.Key, maskFromPrefixLength(p.PrefixLength, len(p.Key)))

		case ParamTernary:
			if variant != VariantTernary {
				return builtKey{}, fmt.Errorf("%w: TERNARY parameter forbidden in %v key", ErrBadMatchKey, variant)
			}
			if len(p.Mask) != len(p.Key) {
				return builtKey{}, fmt.Errorf("%w: TERNARY mask length %d does not match key length %d", ErrBadMatchKey, len(p.Mask), len(p.Key))
			}
			appendMasked(p.Key, p.Mask)

		default:
			return builtKey{}, fmt.Errorf("%w: unknown parameter type %v", ErrBadMatchKey, p.Type)
		}
	}

	if variant == VariantLPM {
		if lpmParam == nil {
			return builtKey{}, fmt.Errorf("%w: no LPM parameter in LPM key", ErrBadMatchKey)
		}
		key = append(key, lpmParam.Key...)
		prefixLength += lpmParam.PrefixLength
	}

	if len(key) != nbytesKey {
		return builtKey{}, fmt.Errorf("%w: built key length %d does not match nbytes_key %d", ErrBadMatchKey, len(key), nbytesKey)
	}
	if mask != nil && len(mask) != nbytesKey {
		return builtKey{}, fmt.Errorf("%w: built mask length %d does not match nbytes_key %d", ErrBadMatchKey, len(mask), nbytesKey)
	}

	return builtKey{key: key, mask: mask, prefixLength: prefixLength}, nil
}

// onesMask returns an all-0xFF mask of length n, used for VALID and EXACT
// fields in a ternary key (they must match exactly).
func onesMask(n int) []byte {
	m := make([]byte, n)
	for i := range m {
		m[i] = 0xff
	}
	return m
}

// maskFromPrefixLength derives a mask of n bytes where the first p bits
// (high-order) are set.
func maskFromPrefixLength(p, n int) []byte {
	m := make([]byte, n)
	fullBytes := p / 8
	for i := 0; i < fullBytes && i < n; i++ {
		m[i] = 0xff
	}
	if rem := p % 8; rem != 0 && fullBytes < n {
		m[fullBytes] = byte(0xff << (8 - rem))
	}
	return m
}
