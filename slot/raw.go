package slot

// Default stores a raw T that serves as both value and link. Removing the
// value leaves the zero T behind.
type Default[T any] struct {
	Raw T
}

func (s *Default[T]) SetValue(v T)      { s.Raw = v }
func (s *Default[T]) Value() (*T, bool) { return &s.Raw, true }
func (s *Default[T]) SetKey(k T)        { s.Raw = k }
func (s *Default[T]) Key() (T, bool)    { return s.Raw, true }

func (s *Default[T]) RemoveValue() (T, bool) {
	var zero T
	return s.SwapKey(zero)
}

func (s *Default[T]) DeleteValue() {
	var zero T
	s.Raw = zero
}

func (s *Default[T]) SwapKey(k T) (T, bool) {
	old := s.Raw
	s.Raw = k
	return old, true
}

// Clone stores a raw T that is never cleared. Removing the value returns a
// copy and leaves the slot untouched; for slices and maps the copy shares
// storage with the slot.
type Clone[T any] struct {
	Raw T
}

func (s *Clone[T]) SetValue(v T)           { s.Raw = v }
func (s *Clone[T]) Value() (*T, bool)      { return &s.Raw, true }
func (s *Clone[T]) RemoveValue() (T, bool) { return s.Raw, true }
func (s *Clone[T]) DeleteValue()           {}
func (s *Clone[T]) SetKey(k T)             { s.Raw = k }
func (s *Clone[T]) Key() (T, bool)         { return s.Raw, true }

func (s *Clone[T]) SwapKey(k T) (T, bool) {
	old := s.Raw
	s.Raw = k
	return old, true
}
