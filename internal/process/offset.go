package process

import (
	"fmt"
	"strconv"
	"strings"
)

// Offset is one step of a pointer chain
type Offset int64

// OffsetChain is applied strictly left to right
type OffsetChain []Offset

// ParseHexOffset parses a hexadecimal offset such as "0x10", "10" or "-0x8"
func ParseHexOffset(s string) (Offset, error) {
	v := strings.TrimSpace(s)

	neg := false
	switch {
	case strings.HasPrefix(v, "-"):
		neg = true
		v = v[1:]
	case strings.HasPrefix(v, "+"):
		v = v[1:]
	}

	if len(v) > 1 && v[0] == '0' && (v[1] == 'x' || v[1] == 'X') {
		v = v[2:]
	}

	n, err := strconv.ParseUint(v, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hex offset %q: %w", s, err)
	}

	if neg {
		return -Offset(n), nil
	}

	return Offset(n), nil
}

// ParseOffsets normalizes integers and hex strings into an OffsetChain.
// Numbers are used as-is and strings are always read as hexadecimal,
// so 16 and "0x10" produce the same offset.
func ParseOffsets(values ...any) (OffsetChain, error) {
	chain := make(OffsetChain, 0, len(values))

	for i, value := range values {
		var off Offset

		switch v := value.(type) {
		case Offset:
			off = v
		case int:
			off = Offset(v)
		case int8:
			off = Offset(v)
		case int16:
			off = Offset(v)
		case int32:
			off = Offset(v)
		case int64:
			off = Offset(v)
		case uint:
			off = Offset(v)
		case uint8:
			off = Offset(v)
		case uint16:
			off = Offset(v)
		case uint32:
			off = Offset(v)
		case uint64:
			off = Offset(v)
		case uintptr:
			off = Offset(v)
		case string:
			parsed, err := ParseHexOffset(v)
			if err != nil {
				return nil, fmt.Errorf("offset %d: %w", i, err)
			}

			off = parsed
		default:
			return nil, fmt.Errorf("offset %d: unsupported type %T", i, value)
		}

		chain = append(chain, off)
	}

	return chain, nil
}

// MustParseOffsets is like ParseOffsets but panics on error
func MustParseOffsets(values ...any) OffsetChain {
	chain, err := ParseOffsets(values...)
	if err != nil {
		panic(err)
	}

	return chain
}

// apply returns value + o with two's complement wrap-around
func (o Offset) apply(value uint64) uintptr {
	return uintptr(value + uint64(o))
}

func (c OffsetChain) String() string {
	parts := make([]string, len(c))
	for i, o := range c {
		if o < 0 {
			parts[i] = fmt.Sprintf("-%#x", uint64(-o))
		} else {
			parts[i] = fmt.Sprintf("%#x", uint64(o))
		}
	}

	return "[" + strings.Join(parts, " ") + "]"
}
