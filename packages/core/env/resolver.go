package env

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
)

var variablePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// WarnFunc is a function type for handling warnings
type WarnFunc func(format string, args ...any)

// UnresolvedError lists the placeholders ResolveStrict could not resolve.
type UnresolvedError struct {
	Placeholders []string
}

func (e *UnresolvedError) Error() string {
	return "unresolved placeholders: " + strings.Join(e.Placeholders, ", ")
}

// Resolver handles variable resolution with thread-safe access to variables.
// It supports environment variables, built-in functions and user-defined
// variables.
type Resolver struct {
	mu        sync.RWMutex
	variables map[string]any
	funcs     *Funcs
	warnFunc  WarnFunc
}

func NewResolver() *Resolver {
	return &Resolver{
		variables: make(map[string]any),
		funcs:     NewFuncs(),
	}
}

// SetWarnFunc sets a function to be called when warnings occur (e.g., unresolved variables)
func (r *Resolver) SetWarnFunc(fn WarnFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnFunc = fn
}

func (r *Resolver) warn(format string, args ...any) {
	r.mu.RLock()
	fn := r.warnFunc
	r.mu.RUnlock()
	if fn != nil {
		fn(format, args...)
	}
}

func (r *Resolver) SetVariables(vars map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range vars {
		r.variables[k] = v
	}
}

func (r *Resolver) SetVariable(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variables[name] = value
}

// Funcs returns the function registry used by the resolver.
func (r *Resolver) Funcs() *Funcs {
	return r.funcs
}

// Resolve replaces every placeholder it can. Unresolved placeholders are kept
// as they are and reported to the warn function.
func (r *Resolver) Resolve(input string) string {
	out, _ := r.resolve(input)
	return out
}

// ResolveStrict is Resolve that fails on any unresolved placeholder.
func (r *Resolver) ResolveStrict(input string) (string, error) {
	out, missing := r.resolve(input)
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", &UnresolvedError{Placeholders: missing}
	}
	return out, nil
}

func (r *Resolver) resolve(input string) (string, []string) {
	var missing []string
	out := variablePattern.ReplaceAllStringFunc(input, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])
		if val, ok := r.lookup(expr); ok {
			return val
		}
		missing = append(missing, match)
		return match
	})
	return out, missing
}

func (r *Resolver) lookup(expr string) (string, bool) {
	if strings.HasPrefix(expr, "$") {
		envVar := expr[1:]
		if val, ok := os.LookupEnv(envVar); ok {
			return val, true
		}
		r.warn("unresolved environment variable: $%s", envVar)
		return "", false
	}

	if strings.Contains(expr, "(") {
		if result, ok := r.funcs.Call(expr, r.Resolve); ok {
			return fmt.Sprintf("%v", result), true
		}
		r.warn("unresolved function call: %s", expr)
		return "", false
	}

	r.mu.RLock()
	val, ok := r.variables[expr]
	r.mu.RUnlock()
	if ok {
		return fmt.Sprintf("%v", val), true
	}

	r.warn("unresolved variable: %s", expr)
	return "", false
}

func (r *Resolver) HasVariable(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.variables[name]
	return ok
}

func (r *Resolver) GetVariable(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variables[name]
	return v, ok
}

// HasUnresolvedVariables reports whether input still holds placeholders
// after resolution.
func (r *Resolver) HasUnresolvedVariables(input string) bool {
	_, missing := r.resolve(input)
	return len(missing) > 0
}

func (r *Resolver) Clone() *Resolver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewResolver()
	for k, v := range r.variables {
		clone.variables[k] = v
	}
	return clone
}
