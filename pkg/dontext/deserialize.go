package dontext

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/gvtret/don-go/pkg/dontag"
	"github.com/gvtret/don-go/pkg/donerr"
)

// scanner is a minimal hand-rolled cursor over the source string. The
// text grammar never needs to look more than one token ahead, so a
// single byte index plus skipWS is enough — no lexer-generator or
// parser-combinator library is introduced (see DESIGN.md).
type scanner struct {
	s string
	i int
}

func (sc *scanner) skipWS() {
	for sc.i < len(sc.s) {
		switch sc.s[sc.i] {
		case ' ', '\t', '\n':
			sc.i++
		default:
			return
		}
	}
}

func (sc *scanner) eof() bool {
	return sc.i >= len(sc.s)
}

func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.s[sc.i]
}

func (sc *scanner) hasPrefix(p string) bool {
	return strings.HasPrefix(sc.s[sc.i:], p)
}

func (sc *scanner) consume(p string) bool {
	if sc.hasPrefix(p) {
		sc.i += len(p)
		return true
	}
	return false
}

func (sc *scanner) parseErrorf(format string, a ...interface{}) error {
	return donerr.Newf(donerr.ErrParseError, format+" at position %d", append(a, sc.i)...)
}

// Deserialize parses exactly one object from s. Residual whitespace
// after the object is permitted; any residual non-whitespace is a
// TrailingCharacters error.
func Deserialize(s string) (dontag.TaggedObject, error) {
	sc := &scanner{s: s}
	obj, err := parseObject(sc)
	if err != nil {
		return dontag.TaggedObject{}, err
	}
	sc.skipWS()
	if !sc.eof() {
		return dontag.TaggedObject{}, donerr.Newf(donerr.ErrTrailingCharacters, "trailing characters %q", s[sc.i:])
	}
	return obj, nil
}

// parseObject tries, in order, the grammar's alternatives: the leading
// byte (after whitespace) deterministically selects exactly one, since
// null/true/false/numbers/quoted-literals/lists/dicts have disjoint
// first characters.
func parseObject(sc *scanner) (dontag.TaggedObject, error) {
	sc.skipWS()
	if sc.eof() {
		return dontag.TaggedObject{}, sc.parseErrorf("unexpected end of input")
	}

	switch c := sc.peek(); {
	case c == 'n':
		if sc.consume("null") {
			return dontag.Void, nil
		}
		return dontag.TaggedObject{}, sc.parseErrorf("expected 'null'")

	case c == 't':
		if sc.consume("true") {
			return dontag.True, nil
		}
		return dontag.TaggedObject{}, sc.parseErrorf("expected 'true'")

	case c == 'f':
		if sc.consume("false") {
			return dontag.False, nil
		}
		return dontag.TaggedObject{}, sc.parseErrorf("expected 'false'")

	case c == '"':
		return parseQuoted(sc)

	case c == '[':
		return parseList(sc)

	case c == '{':
		return parseDictionary(sc)

	case c == '-' || isDigit(c):
		return parseNumber(sc)

	default:
		return dontag.TaggedObject{}, sc.parseErrorf("unexpected character %q", c)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanDigits consumes a run of one or more ASCII digits, returning the
// matched substring.
func scanDigits(sc *scanner) (string, error) {
	start := sc.i
	for !sc.eof() && isDigit(sc.peek()) {
		sc.i++
	}
	if sc.i == start {
		return "", sc.parseErrorf("expected a digit")
	}
	return sc.s[start:sc.i], nil
}

// parseNumber parses the shared /-?\d+/ prefix of the integer, float,
// and double productions, then dispatches on the following suffix: 'i'
// followed by a width for integers, or '.' followed by digits and an
// 'f'/'d' suffix for floats/doubles.
func parseNumber(sc *scanner) (dontag.TaggedObject, error) {
	start := sc.i
	neg := sc.consume("-")
	intPart, err := scanDigits(sc)
	if err != nil {
		return dontag.TaggedObject{}, err
	}

	switch {
	case sc.consume("i"):
		return parseIntegerSuffix(sc, start, neg, intPart)
	case sc.peek() == '.':
		return parseDecimalSuffix(sc, start, neg, intPart)
	default:
		return dontag.TaggedObject{}, sc.parseErrorf("expected 'i' or '.' after numeric literal")
	}
}

func parseIntegerSuffix(sc *scanner, start int, neg bool, intPart string) (dontag.TaggedObject, error) {
	var tag dontag.Tag
	var bitSize int
	switch {
	case sc.consume("8"):
		tag, bitSize = dontag.INT8, 8
	case sc.consume("16"):
		tag, bitSize = dontag.INT16, 16
	case sc.consume("32"):
		tag, bitSize = dontag.INT32, 32
	case sc.consume("64"):
		tag, bitSize = dontag.INT64, 64
	default:
		return dontag.TaggedObject{}, sc.parseErrorf("expected integer width (8, 16, 32, or 64)")
	}

	literal := sc.s[start:sc.i]
	numeric := literal[:len(literal)-len("i")-len(strconv.Itoa(bitSize))]
	v, err := strconv.ParseInt(numeric, 10, bitSize)
	if err != nil {
		return dontag.TaggedObject{}, donerr.Newf(donerr.ErrParseError, "integer literal %q out of range for %s", literal, tag)
	}
	_ = neg
	_ = intPart
	return dontag.NewInt(tag, v), nil
}

func parseDecimalSuffix(sc *scanner, start int, neg bool, intPart string) (dontag.TaggedObject, error) {
	sc.i++ // consume '.'
	fracPart, err := scanDigits(sc)
	if err != nil {
		return dontag.TaggedObject{}, err
	}
	_ = neg
	_ = intPart
	_ = fracPart

	numeric := sc.s[start:sc.i]

	switch {
	case sc.consume("f"):
		f, err := strconv.ParseFloat(numeric, 32)
		if err != nil {
			return dontag.TaggedObject{}, donerr.Newf(donerr.ErrParseError, "float literal %q is invalid", numeric)
		}
		return dontag.NewFloat32(float32(f)), nil
	case sc.consume("d"):
		d, err := strconv.ParseFloat(numeric, 64)
		if err != nil {
			return dontag.TaggedObject{}, donerr.Newf(donerr.ErrParseError, "double literal %q is invalid", numeric)
		}
		return dontag.NewFloat64(d), nil
	default:
		return dontag.TaggedObject{}, sc.parseErrorf("expected 'f' or 'd' after decimal literal")
	}
}

// parseQuoted parses the shared '"' <content> '"' prefix of binary and
// the UTF* string tags, then dispatches on the following suffix.
func parseQuoted(sc *scanner) (dontag.TaggedObject, error) {
	sc.i++ // consume opening '"'
	start := sc.i
	for !sc.eof() && sc.peek() != '"' {
		sc.i++
	}
	if sc.eof() {
		return dontag.TaggedObject{}, sc.parseErrorf("unterminated quoted literal")
	}
	content := sc.s[start:sc.i]
	sc.i++ // consume closing '"'

	switch {
	case sc.consume("b"):
		if len(content)%2 != 0 {
			return dontag.TaggedObject{}, donerr.Newf(donerr.ErrBadLength, "hex literal %q has odd length", content)
		}
		data, err := hex.DecodeString(content)
		if err != nil {
			return dontag.TaggedObject{}, donerr.Wrap(donerr.ErrParseError, "invalid hex literal", err)
		}
		return dontag.NewBinary(data), nil
	case sc.consume("utf8"):
		return dontag.NewString(dontag.UTF8, content), nil
	case sc.consume("utf16"):
		return dontag.NewString(dontag.UTF16, content), nil
	case sc.consume("utf32"):
		return dontag.NewString(dontag.UTF32, content), nil
	default:
		return dontag.TaggedObject{}, sc.parseErrorf("expected 'b', 'utf8', 'utf16', or 'utf32' after quoted literal")
	}
}

func parseList(sc *scanner) (dontag.TaggedObject, error) {
	sc.i++ // consume '['
	sc.skipWS()
	if sc.consume("]") {
		return dontag.NewList(nil), nil
	}

	var items []dontag.TaggedObject
	for {
		item, err := parseObject(sc)
		if err != nil {
			return dontag.TaggedObject{}, err
		}
		items = append(items, item)

		sc.skipWS()
		switch {
		case sc.consume(","):
			sc.skipWS()
			if sc.peek() == ']' {
				return dontag.TaggedObject{}, donerr.New(donerr.ErrTrailingComma, "trailing comma before ']'")
			}
			continue
		case sc.consume("]"):
			if err := dontag.CheckHomogeneousList(items); err != nil {
				return dontag.TaggedObject{}, err
			}
			return dontag.NewList(items), nil
		default:
			return dontag.TaggedObject{}, sc.parseErrorf("expected ',' or ']'")
		}
	}
}

func parseDictionary(sc *scanner) (dontag.TaggedObject, error) {
	sc.i++ // consume '{'
	sc.skipWS()
	if sc.consume("}") {
		return dontag.NewDictionary(nil), nil
	}

	var pairs []dontag.DictPair
	for {
		pair, err := parsePair(sc)
		if err != nil {
			return dontag.TaggedObject{}, err
		}
		pairs = append(pairs, pair)

		sc.skipWS()
		switch {
		case sc.consume(","):
			sc.skipWS()
			if sc.peek() == '}' {
				return dontag.TaggedObject{}, donerr.New(donerr.ErrTrailingComma, "trailing comma before '}'")
			}
			continue
		case sc.consume("}"):
			return dontag.NewDictionary(pairs), nil
		default:
			return dontag.TaggedObject{}, sc.parseErrorf("expected ',' or '}'")
		}
	}
}

func parsePair(sc *scanner) (dontag.DictPair, error) {
	key, err := parseObject(sc)
	if err != nil {
		return dontag.DictPair{}, err
	}
	if !dontag.IsStringTag(key.Tag) {
		return dontag.DictPair{}, donerr.Newf(donerr.ErrInvalidDictKey, "dictionary key tag %s is not a text tag", key.Tag)
	}

	sc.skipWS()
	if !sc.consume(":") {
		return dontag.DictPair{}, sc.parseErrorf("expected ':'")
	}

	value, err := parseObject(sc)
	if err != nil {
		return dontag.DictPair{}, err
	}
	return dontag.DictPair{Key: key, Value: value}, nil
}
