package logsafe

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultStackLimit bounds the nesting of objects and collections expanded
// in one call, whatever the type's MaxDepth. Deeper values render as
// MarkerMaxDepth.
const DefaultStackLimit = 10000

// Serializer converts values into log-safe text.
//
// Serializers are safe for concurrent use. SetCodec, SetHasher and SetMasker
// may be called at any time.
type Serializer struct {
	mu         sync.RWMutex
	codec      Codec
	hashers    map[HashAlgo]Hasher
	maskers    map[MaskType]Masker
	stackLimit int
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithCodec sets the codec used for FormatStructured output.
func WithCodec(c Codec) Option {
	return func(s *Serializer) { s.codec = c }
}

// WithStackLimit bounds nested expansion per call. Values below one are ignored.
func WithStackLimit(n int) Option {
	return func(s *Serializer) {
		if n > 0 {
			s.stackLimit = n
		}
	}
}

// WithHasher replaces the hasher for an algorithm.
func WithHasher(algo HashAlgo, h Hasher) Option {
	return func(s *Serializer) { s.hashers[algo] = h }
}

// WithMasker replaces the masker for a mask type.
func WithMasker(mt MaskType, m Masker) Option {
	return func(s *Serializer) { s.maskers[mt] = m }
}

// New creates a Serializer with builtin hashers and maskers and JSON structured output.
func New(opts ...Option) *Serializer {
	s := &Serializer{
		codec:      JSONCodec(),
		hashers:    builtinHashers(),
		maskers:    builtinMaskers(),
		stackLimit: DefaultStackLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCodec replaces the structured codec.
// Returns the serializer for chaining. Safe for concurrent use.
func (s *Serializer) SetCodec(c Codec) *Serializer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codec = c
	return s
}

// SetHasher registers a hasher for the given algorithm.
// Returns the serializer for chaining. Safe for concurrent use.
func (s *Serializer) SetHasher(algo HashAlgo, h Hasher) *Serializer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashers[algo] = h
	return s
}

// SetMasker registers a masker for the given type.
// Returns the serializer for chaining. Safe for concurrent use.
func (s *Serializer) SetMasker(mt MaskType, m Masker) *Serializer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maskers[mt] = m
	return s
}

func (s *Serializer) hasher(algo HashAlgo) Hasher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hashers[algo]
}

func (s *Serializer) masker(fd *fieldDescriptor) Masker {
	if fd.maskType == "" {
		return SuffixMasker(fd.maskVisible)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maskers[fd.maskType]
}

var std = New()

// Default returns the package-level Serializer used by Serialize.
func Default() *Serializer {
	return std
}

// Serialize renders v with the default Serializer.
func Serialize(v any) any {
	return std.Serialize(v)
}

// Serialize renders v as log-safe text.
//
// The result is a string when v's type (or, for slices, arrays and maps, the
// type of its first non-nil element) is eligible. Otherwise, and whenever
// rendering fails, v itself is returned unchanged. Serialize never panics.
func (s *Serializer) Serialize(v any) any {
	return s.SerializeContext(context.Background(), v)
}

// SerializeContext is Serialize with a context for emitted signals.
func (s *Serializer) SerializeContext(ctx context.Context, v any) (out any) {
	if v == nil {
		return nil
	}

	start := time.Now()
	rv := reflect.ValueOf(v)
	typeName := rv.Type().String()

	defer func() {
		if r := recover(); r != nil {
			err := newRenderError(ErrPanic, typeName, fmt.Errorf("%v", r))
			emitSerializeFailed(ctx, typeName, time.Since(start), err)
			out = v
		}
	}()

	target := indirect(rv)
	if !target.IsValid() {
		return v
	}

	var (
		tree   any
		policy TypePolicy
	)
	if isCollection(target.Type()) {
		elem, ok := firstElement(target)
		if !ok {
			return v
		}
		desc := describe(elem.Type())
		if !desc.eligible {
			return v
		}
		policy = desc.policy
		tree = s.newWalk(policy.MaxDepth).processCollection(target, 0)
	} else {
		desc := describe(target.Type())
		if !desc.eligible {
			return v
		}
		policy = desc.policy
		tree = s.newWalk(policy.MaxDepth).processObject(rv, 0)
	}

	text, err := s.render(tree, policy.Format)
	if err != nil {
		emitSerializeFailed(ctx, typeName, time.Since(start), newRenderError(ErrRender, typeName, err))
		return v
	}

	emitSerializeComplete(ctx, typeName, policy.Format, len(text), time.Since(start))
	return text
}

// walk is the state of one Serialize call. It is never shared.
type walk struct {
	s          *Serializer
	maxDepth   int
	stackLimit int
	frames     int
	visiting   map[visitKey]struct{}
}

// visitKey identifies a referenced value for cycle detection.
type visitKey struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

func (s *Serializer) newWalk(maxDepth int) *walk {
	s.mu.RLock()
	limit := s.stackLimit
	s.mu.RUnlock()
	return &walk{
		s:          s,
		maxDepth:   maxDepth,
		stackLimit: limit,
		visiting:   make(map[visitKey]struct{}),
	}
}

// exceeds reports whether depth is beyond the walk's MaxDepth.
func (w *walk) exceeds(depth int) bool {
	return w.maxDepth >= 0 && depth > w.maxDepth
}

// enter records v as being on the current path. It returns a release func,
// or circular when v is already on the path. Values without identity
// always enter.
func (w *walk) enter(v reflect.Value) (release func(), circular bool) {
	key, ok := identity(v)
	if !ok {
		return func() {}, false
	}
	if _, seen := w.visiting[key]; seen {
		return nil, true
	}
	w.visiting[key] = struct{}{}
	return func() { delete(w.visiting, key) }, false
}

// processObject expands an eligible object at depth into an ordered object node.
func (w *walk) processObject(v reflect.Value, depth int) any {
	v = unwrap(v)
	if isNil(v) {
		return nil
	}
	if sv, ok := scalar(v); ok {
		return sv
	}

	w.frames++
	defer func() { w.frames-- }()
	if w.frames > w.stackLimit {
		return MarkerMaxDepth
	}

	release, circular := w.enter(v)
	if circular {
		return MarkerCircular
	}
	defer release()

	if w.exceeds(depth) {
		return MarkerMaxDepth
	}

	sv := indirect(v)
	if !sv.IsValid() {
		return nil
	}
	desc := describe(sv.Type())
	if !desc.eligible {
		return textOf(v)
	}

	obj := &object{entries: make([]entry, 0, len(desc.fields))}
	for i := range desc.fields {
		fd := &desc.fields[i]
		raw, readable := fieldValue(sv, fd)
		if val, keep := w.transform(raw, readable, fd, depth); keep {
			obj.set(fd.alias, val)
		}
	}
	return obj
}

// processCollection expands a slice, array, or map whose elements sit at depth.
// Maps become object nodes keyed by the textual key, in sorted key order.
func (w *walk) processCollection(v reflect.Value, depth int) any {
	w.frames++
	defer func() { w.frames-- }()
	if w.frames > w.stackLimit {
		return MarkerMaxDepth
	}

	release, circular := w.enter(v)
	if circular {
		return MarkerCircular
	}
	defer release()

	if v.Kind() == reflect.Map {
		obj := &object{entries: make([]entry, 0, v.Len())}
		for _, k := range sortedKeys(v) {
			obj.set(textOf(k), w.element(v.MapIndex(k), depth))
		}
		return obj
	}

	seq := make(sequence, v.Len())
	for i := range seq {
		seq[i] = w.element(v.Index(i), depth)
	}
	return seq
}

// element expands one collection element at depth.
func (w *walk) element(e reflect.Value, depth int) any {
	e = unwrap(e)
	if isNil(e) {
		return nil
	}
	if sv, ok := scalar(e); ok {
		return sv
	}

	target := indirect(e)
	if !target.IsValid() {
		return nil
	}
	if isCollection(target.Type()) {
		return w.processCollection(target, depth+1)
	}
	if target.Kind() == reflect.Struct && describe(target.Type()).eligible {
		return w.processObject(e, depth)
	}
	return textOf(e)
}

// fieldValue reads a field through its index path. readable is false when an
// embedded pointer on the path is nil or the value cannot be exposed.
func fieldValue(sv reflect.Value, fd *fieldDescriptor) (v reflect.Value, readable bool) {
	f, err := sv.FieldByIndexErr(fd.index)
	if err != nil || !f.CanInterface() {
		return reflect.Value{}, false
	}
	return f, true
}

// firstElement returns the first non-nil element of a collection, dereferenced.
func firstElement(v reflect.Value) (reflect.Value, bool) {
	if v.Kind() == reflect.Map {
		for _, k := range sortedKeys(v) {
			if e := indirect(v.MapIndex(k)); e.IsValid() {
				return e, true
			}
		}
		return reflect.Value{}, false
	}
	for i := 0; i < v.Len(); i++ {
		if e := indirect(v.Index(i)); e.IsValid() {
			return e, true
		}
	}
	return reflect.Value{}, false
}

// sortedKeys returns map keys ordered by their textual form.
func sortedKeys(v reflect.Value) []reflect.Value {
	keys := v.MapKeys()
	text := make([]string, len(keys))
	for i, k := range keys {
		text[i] = textOf(k)
	}
	sort.Sort(byText{keys: keys, text: text})
	return keys
}

type byText struct {
	keys []reflect.Value
	text []string
}

func (b byText) Len() int           { return len(b.keys) }
func (b byText) Less(i, j int) bool { return b.text[i] < b.text[j] }
func (b byText) Swap(i, j int) {
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
	b.text[i], b.text[j] = b.text[j], b.text[i]
}

var (
	timeType = reflect.TypeFor[time.Time]()
	uuidType = reflect.TypeFor[uuid.UUID]()
)

// isScalarType reports whether values of t are terminal leaves: numbers,
// booleans, text (including named enum types), timestamps, durations,
// UUIDs, and byte slices.
func isScalarType(t reflect.Type) bool {
	switch t {
	case timeType, uuidType:
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Slice:
		return t.Elem().Kind() == reflect.Uint8
	}
	return false
}

// isCollection reports whether t is expanded element by element.
func isCollection(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return !isScalarType(t)
	}
	return false
}

// scalar returns the value of v, following pointers, when it is a scalar kind.
func scalar(v reflect.Value) (any, bool) {
	target := indirect(v)
	if !target.IsValid() || !target.CanInterface() || !isScalarType(target.Type()) {
		return nil, false
	}
	return target.Interface(), true
}

// identity returns the visitation key of a reference-like value.
func identity(v reflect.Value) (visitKey, bool) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Map:
		if v.IsNil() {
			return visitKey{}, false
		}
		return visitKey{ptr: v.Pointer(), typ: v.Type()}, true
	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return visitKey{}, false
		}
		return visitKey{ptr: v.Pointer(), typ: v.Type(), n: v.Len()}, true
	}
	return visitKey{}, false
}

// unwrap strips interface wrappers, keeping pointers for identity.
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// indirect strips interfaces and pointers. It returns the zero Value for nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// isNil reports whether v is invalid or a nil reference.
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
