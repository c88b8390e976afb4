// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Representer: converts Go values into node trees ready for the
// serializer.

package emit

import (
	"encoding"
	"encoding/base64"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"

	"go.yaml.in/emit/internal/libyaml"
)

// Representer is implemented by types that build their own node.
type Representer interface {
	RepresentYAML() (*Node, error)
}

// Represent converts v into a node tree.
//
// Strings that would read back as another type are single quoted, floats
// follow [Options.NumberFormat], maps are keyed in natural order and
// structs use their `yaml` field tags. Channels, functions and complex
// numbers fail with a [RepresentationError].
func Represent(v any, opts ...Option) (*Node, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return represent(v, &o)
}

func represent(v any, o *Options) (*Node, error) {
	r := &representer{format: o.NumberFormat}
	return r.represent(reflect.ValueOf(v))
}

type representer struct {
	format NumberFormat
	// flow is set by a ,flow struct field for the value that follows.
	flow bool
}

var (
	nodeType          = reflect.TypeOf(Node{})
	timeType          = reflect.TypeOf(time.Time{})
	durationType      = reflect.TypeOf(time.Duration(0))
	bigIntType        = reflect.TypeOf(big.Int{})
	bigFloatType      = reflect.TypeOf(big.Float{})
	decimalType       = reflect.TypeOf(apd.Decimal{})
	representerType   = reflect.TypeOf((*Representer)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

func (r *representer) represent(in reflect.Value) (*Node, error) {
	if !in.IsValid() || (in.Kind() == reflect.Pointer || in.Kind() == reflect.Interface) && in.IsNil() {
		return nullNode(), nil
	}
	if in.Type().Implements(representerType) {
		node, err := in.Interface().(Representer).RepresentYAML()
		if err != nil {
			return nil, errors.Wrapf(err, "%s.RepresentYAML", in.Type())
		}
		if node == nil {
			return nullNode(), nil
		}
		return node, nil
	}
	if in.Kind() == reflect.Pointer {
		switch in.Type().Elem() {
		case nodeType:
			return in.Interface().(*Node), nil
		case bigIntType, bigFloatType, decimalType, timeType:
			return r.represent(in.Elem())
		}
	}
	switch in.Type() {
	case nodeType:
		node := in.Interface().(Node)
		return &node, nil
	case timeType:
		t := in.Interface().(time.Time)
		return &Node{Kind: ScalarNode, Tag: TimestampTag, Value: t.Format(time.RFC3339Nano)}, nil
	case durationType:
		return r.stringv(in.Interface().(time.Duration).String()), nil
	case bigIntType:
		x := in.Interface().(big.Int)
		return &Node{Kind: ScalarNode, Tag: IntTag, Value: x.String()}, nil
	case bigFloatType:
		x := in.Interface().(big.Float)
		return r.bigFloatv(&x)
	case decimalType:
		d := in.Interface().(apd.Decimal)
		return &Node{Kind: ScalarNode, Tag: FloatTag, Value: formatDecimal(&d, 0, r.format)}, nil
	}
	if in.Type().Implements(textMarshalerType) {
		text, err := in.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, errors.Wrapf(err, "%s.MarshalText", in.Type())
		}
		return r.stringv(string(text)), nil
	}

	switch in.Kind() {
	case reflect.Interface, reflect.Pointer:
		return r.represent(in.Elem())
	case reflect.Map:
		return r.mapv(in)
	case reflect.Struct:
		return r.structv(in)
	case reflect.Slice, reflect.Array:
		if in.Type().Elem().Kind() == reflect.Uint8 {
			return r.binaryv(in), nil
		}
		return r.slicev(in)
	case reflect.String:
		return r.stringv(in.String()), nil
	case reflect.Bool:
		return &Node{Kind: ScalarNode, Tag: BoolTag, Value: strconv.FormatBool(in.Bool())}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &Node{Kind: ScalarNode, Tag: IntTag, Value: strconv.FormatInt(in.Int(), 10)}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return &Node{Kind: ScalarNode, Tag: IntTag, Value: strconv.FormatUint(in.Uint(), 10)}, nil
	case reflect.Float32, reflect.Float64:
		bits := 64
		if in.Kind() == reflect.Float32 {
			bits = 32
		}
		return &Node{Kind: ScalarNode, Tag: FloatTag, Value: formatFloat(in.Float(), bits, r.format)}, nil
	}
	return nil, &RepresentationError{Type: in.Type().String(), Problem: "unsupported kind " + in.Kind().String()}
}

func nullNode() *Node {
	return &Node{Kind: ScalarNode, Tag: NullTag, Value: "null"}
}

// collectionStyle consumes the pending ,flow request.
func (r *representer) collectionStyle() Style {
	if r.flow {
		r.flow = false
		return FlowStyle
	}
	return AnyStyle
}

// mapv converts a map into a mapping with keys in natural order.
func (r *representer) mapv(in reflect.Value) (*Node, error) {
	style := r.collectionStyle()
	keys := keyList(in.MapKeys())
	sort.Sort(keys)
	content := make([]*Node, 0, len(keys)*2)
	for _, k := range keys {
		key, err := r.represent(k)
		if err != nil {
			return nil, errors.Wrap(err, "map key")
		}
		value, err := r.represent(in.MapIndex(k))
		if err != nil {
			return nil, errors.Wrapf(err, "key %v", k.Interface())
		}
		content = append(content, key, value)
	}
	return &Node{Kind: MappingNode, Style: style, Content: content}, nil
}

// structv converts a struct into a mapping, honoring omitempty, inline
// structs and inline maps.
func (r *representer) structv(in reflect.Value) (*Node, error) {
	sinfo, err := getStructInfo(in.Type())
	if err != nil {
		return nil, &RepresentationError{Type: in.Type().String(), Problem: err.Error()}
	}
	style := r.collectionStyle()

	content := make([]*Node, 0, len(sinfo.FieldsList)*2)
	for _, info := range sinfo.FieldsList {
		var value reflect.Value
		if info.Inline == nil {
			value = in.Field(info.Num)
		} else {
			value = fieldByIndex(in, info.Inline)
			if !value.IsValid() {
				continue
			}
		}
		if info.OmitEmpty && isZero(value) {
			continue
		}
		r.flow = info.Flow
		node, err := r.represent(value)
		r.flow = false
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", info.Key)
		}
		content = append(content, r.stringv(info.Key), node)
	}
	if sinfo.InlineMap >= 0 {
		m := in.Field(sinfo.InlineMap)
		keys := keyList(m.MapKeys())
		sort.Sort(keys)
		for _, k := range keys {
			if _, found := sinfo.FieldsMap[k.String()]; found {
				return nil, &RepresentationError{
					Type:    in.Type().String(),
					Problem: "key " + strconv.Quote(k.String()) + " in inlined map conflicts with struct field",
				}
			}
			value, err := r.represent(m.MapIndex(k))
			if err != nil {
				return nil, errors.Wrapf(err, "key %s", k.String())
			}
			content = append(content, r.stringv(k.String()), value)
		}
	}
	return &Node{Kind: MappingNode, Style: style, Content: content}, nil
}

// slicev converts a slice or array into a sequence.
func (r *representer) slicev(in reflect.Value) (*Node, error) {
	style := r.collectionStyle()
	n := in.Len()
	content := make([]*Node, n)
	for i := 0; i < n; i++ {
		item, err := r.represent(in.Index(i))
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", i)
		}
		content[i] = item
	}
	return &Node{Kind: SequenceNode, Style: style, Content: content}, nil
}

// stringv converts a string into a scalar. Strings that are not valid
// UTF-8 become !!binary; strings a reader would take for another type are
// quoted.
func (r *representer) stringv(s string) *Node {
	if !utf8.ValidString(s) {
		return &Node{Kind: ScalarNode, Tag: BinaryTag, Value: encodeBase64([]byte(s))}
	}
	node := &Node{Kind: ScalarNode, Value: s}
	switch {
	case strings.Contains(s, "\n"):
		// The emitter falls back to double quotes where a block
		// scalar is not allowed.
		node.Style = LiteralStyle
	case libyaml.ResolvePlain(s) != StrTag:
		node.Style = SingleQuotedStyle
	}
	return node
}

// binaryv converts a byte slice or array into a !!binary scalar.
func (r *representer) binaryv(in reflect.Value) *Node {
	var b []byte
	if in.Kind() == reflect.Slice {
		b = in.Bytes()
	} else {
		b = make([]byte, in.Len())
		reflect.Copy(reflect.ValueOf(b), in)
	}
	node := &Node{Kind: ScalarNode, Tag: BinaryTag, Value: encodeBase64(b)}
	if strings.Contains(node.Value, "\n") {
		node.Style = LiteralStyle
	}
	return node
}

func (r *representer) bigFloatv(x *big.Float) (*Node, error) {
	if x.IsInf() {
		if x.Sign() < 0 {
			return &Node{Kind: ScalarNode, Tag: FloatTag, Value: "-.inf"}, nil
		}
		return &Node{Kind: ScalarNode, Tag: FloatTag, Value: ".inf"}, nil
	}
	d, _, err := apd.NewFromString(x.Text('e', -1))
	if err != nil {
		return nil, &RepresentationError{Type: "*big.Float", Problem: err.Error()}
	}
	return &Node{Kind: ScalarNode, Tag: FloatTag, Value: formatDecimal(d, 0, r.format)}, nil
}

// encodeBase64 encodes b as base64, split into lines of at most 70
// characters when it does not fit on one.
func encodeBase64(b []byte) string {
	const lineLen = 70
	encoded := base64.StdEncoding.EncodeToString(b)
	if len(encoded) <= lineLen {
		return encoded
	}
	var sb strings.Builder
	for len(encoded) > lineLen {
		sb.WriteString(encoded[:lineLen])
		sb.WriteByte('\n')
		encoded = encoded[lineLen:]
	}
	sb.WriteString(encoded)
	return sb.String()
}

// fieldByIndex navigates through struct fields using the given index path,
// dereferencing pointers as needed. It returns the zero Value when a nil
// pointer is on the path.
func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for _, num := range index {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		}
		v = v.Field(num)
	}
	return v
}

// keyList sorts map keys in natural order: numbers numerically, strings
// with embedded numbers compared by value, and mixed kinds by kind.
type keyList []reflect.Value

func (l keyList) Len() int      { return len(l) }
func (l keyList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

func (l keyList) Less(i, j int) bool {
	a := l[i]
	b := l[j]
	ak := a.Kind()
	bk := b.Kind()
	for (ak == reflect.Interface || ak == reflect.Pointer) && !a.IsNil() {
		a = a.Elem()
		ak = a.Kind()
	}
	for (bk == reflect.Interface || bk == reflect.Pointer) && !b.IsNil() {
		b = b.Elem()
		bk = b.Kind()
	}
	af, aok := keyFloat(a)
	bf, bok := keyFloat(b)
	if aok && bok {
		if af != bf {
			return af < bf
		}
		if ak != bk {
			return ak < bk
		}
		return numLess(a, b)
	}
	if ak != reflect.String || bk != reflect.String {
		return ak < bk
	}
	ar, br := []rune(a.String()), []rune(b.String())
	digits := false
	for i := 0; i < len(ar) && i < len(br); i++ {
		if ar[i] == br[i] {
			digits = unicode.IsDigit(ar[i])
			continue
		}
		al := unicode.IsLetter(ar[i])
		bl := unicode.IsLetter(br[i])
		if al && bl {
			return ar[i] < br[i]
		}
		if al || bl {
			if digits {
				return al
			}
			return bl
		}
		var ai, bi int
		var an, bn int64
		if ar[i] == '0' || br[i] == '0' {
			for j := i - 1; j >= 0 && unicode.IsDigit(ar[j]); j-- {
				if ar[j] != '0' {
					an = 1
					bn = 1
					break
				}
			}
		}
		for ai = i; ai < len(ar) && unicode.IsDigit(ar[ai]); ai++ {
			an = an*10 + int64(ar[ai]-'0')
		}
		for bi = i; bi < len(br) && unicode.IsDigit(br[bi]); bi++ {
			bn = bn*10 + int64(br[bi]-'0')
		}
		if an != bn {
			return an < bn
		}
		if ai != bi {
			return ai < bi
		}
		return ar[i] < br[i]
	}
	return len(ar) < len(br)
}

// keyFloat returns a float value for v if it is a number or bool.
func keyFloat(v reflect.Value) (f float64, ok bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Bool:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// numLess returns whether a < b. a and b must have the same kind.
func numLess(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() < b.Uint()
	case reflect.Bool:
		return !a.Bool() && b.Bool()
	}
	panic("not a number")
}
