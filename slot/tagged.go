package slot

// Tagged holds a key or a value plus a flag saying which. The zero Tagged
// holds the zero key.
type Tagged[K, V any] struct {
	key      K
	value    V
	hasValue bool
}

// WithValue returns a slot holding v.
func WithValue[K, V any](v V) Tagged[K, V] {
	return Tagged[K, V]{value: v, hasValue: true}
}

// WithKey returns a slot holding the link k.
func WithKey[K, V any](k K) Tagged[K, V] {
	return Tagged[K, V]{key: k}
}

func (s *Tagged[K, V]) SetValue(v V) {
	var k K
	s.key = k
	s.value = v
	s.hasValue = true
}

func (s *Tagged[K, V]) Value() (*V, bool) {
	if !s.hasValue {
		return nil, false
	}
	return &s.value, true
}

func (s *Tagged[K, V]) RemoveValue() (V, bool) {
	var k K
	return s.SwapKey(k)
}

func (s *Tagged[K, V]) DeleteValue() {
	var k K
	s.SwapKey(k)
}

func (s *Tagged[K, V]) SetKey(k K) {
	var zero V
	s.value = zero
	s.key = k
	s.hasValue = false
}

func (s *Tagged[K, V]) Key() (K, bool) {
	if s.hasValue {
		var k K
		return k, false
	}
	return s.key, true
}

func (s *Tagged[K, V]) SwapKey(k K) (V, bool) {
	var zero V
	v, had := s.value, s.hasValue
	s.value = zero
	s.key = k
	s.hasValue = false
	if !had {
		return zero, false
	}
	return v, true
}

func (s *Tagged[K, V]) HasValue() bool { return s.hasValue }
func (s *Tagged[K, V]) HasKey() bool   { return !s.hasValue }

// Either returns the link or a pointer to the value. The bool is true when
// the slot holds a value.
func (s *Tagged[K, V]) Either() (K, *V, bool) {
	if s.hasValue {
		var k K
		return k, &s.value, true
	}
	return s.key, nil, false
}
