package models

// Option holds a value that may be absent. The zero value is the
// absent option. Option compares with == whenever T does, so structs
// carrying options stay usable as map keys.
type Option[T comparable] struct {
	v  T
	ok bool
}

// Some returns an option holding v. Some of a zero value is still a
// set option, an empty genre is not the same thing as no genre.
func Some[T comparable](v T) Option[T] {
	return Option[T]{v: v, ok: true}
}

// Get returns the value and whether it is set.
func (o Option[T]) Get() (T, bool) { return o.v, o.ok }

// IsSet reports whether the option holds a value.
func (o Option[T]) IsSet() bool { return o.ok }

// Or returns the value when set, def otherwise.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}
