package api

// Result carries either a payload or the reason the call failed. The store
// collapses it to a boolean, but the reason stays available to callers.
type Result[T any] struct {
	Value T
	Err   error
}

func Succeeded[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}
