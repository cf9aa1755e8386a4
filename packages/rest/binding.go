package rest

import "fmt"

// Binding creates the async client of a provider and the sync client that
// wraps it.
type Binding struct {
	async func(env *Env) (any, error)
	sync  func(env *Env, async any) (any, error)
}

// Bind builds a Binding from typed factories.
func Bind[S, A any](async func(env *Env) (A, error), sync func(env *Env, async A) (S, error)) Binding {
	return Binding{
		async: func(env *Env) (any, error) {
			return async(env)
		},
		sync: func(env *Env, a any) (any, error) {
			typed, ok := a.(A)
			if !ok {
				return nil, fmt.Errorf("async client has type %T", a)
			}
			return sync(env, typed)
		},
	}
}

// IsZero reports whether b was never bound.
func (b Binding) IsZero() bool {
	return b.async == nil || b.sync == nil
}
