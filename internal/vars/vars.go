// Package vars implements the typed key-value store consulted by the
// automation engine for ${name} substitution and SetVariable actions.
package vars

import (
	"errors"
	"strconv"
	"sync"
)

// ErrNotFound is returned by Get when a variable has never been set.
var ErrNotFound = errors.New("vars: variable not found")

// Type identifies the runtime type of a Value.
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
)

// Value is a small tagged union. The zero value is the null value.
type Value struct {
	Type  Type
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

func NewBool(v bool) Value     { return Value{Type: TypeBool, Bool: v} }
func NewInt(v int64) Value     { return Value{Type: TypeInt, Int: v} }
func NewFloat(v float64) Value { return Value{Type: TypeFloat, Float: v} }
func NewString(s string) Value { return Value{Type: TypeString, Str: s} }

// String renders the value the way variable expansion embeds it:
// booleans as true/false, integers in decimal, floats with two decimals.
func (v Value) String() string {
	switch v.Type {
	case TypeBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.Float, 'f', 2, 64)
	case TypeString:
		return v.Str
	default:
		return ""
	}
}

// Parse converts a literal into the narrowest matching Value type.
// Used when variable values arrive as text (seed files, console input).
func Parse(s string) Value {
	if s == "true" || s == "false" {
		return NewBool(s == "true")
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NewFloat(f)
	}
	return NewString(s)
}

// Store is the variable store collaborator consumed by the engine.
type Store interface {
	Get(name string) (Value, error)
	Set(name string, v Value) error
}

// MemoryStore is a mutex-guarded in-memory Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]Value
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]Value)}
}

func (s *MemoryStore) Get(name string) (Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[name]
	if !ok {
		return Value{}, ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(name string, v Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[name] = v
	return nil
}
