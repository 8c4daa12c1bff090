package models

import (
	"fmt"
	"iter"
)

// ActivityReference points at an activity definition in the manifest. Hash identifies the
// concrete activity; when Override is set it names the activity type re-skin that should be
// used when deciding what kind of activity this is.
type ActivityReference struct {
	Hash     uint
	Override *uint
}

// NewActivityReference builds a reference, treating an override of 0 as no override.
func NewActivityReference(hash uint, override uint) ActivityReference {
	ref := ActivityReference{Hash: hash}
	if override != 0 {
		ref.Override = &override
	}

	return ref
}

// TypeHash is the hash that categorizes the activity: the override when present, otherwise
// the activity hash itself.
func (a ActivityReference) TypeHash() uint {
	if a.Override != nil {
		return *a.Override
	}

	return a.Hash
}

func (a ActivityReference) String() string {
	if a.Override != nil {
		return fmt.Sprintf("Activity{hash: %d, override: %d}", a.Hash, *a.Override)
	}

	return fmt.Sprintf("Activity{hash: %d}", a.Hash)
}

// Modifiers is a lazily evaluated sequence of modifier (skull) display names in the order the
// API listed them. It can be ranged over any number of times.
type Modifiers iter.Seq[string]

// NoModifiers is the empty modifier sequence.
func NoModifiers() Modifiers {
	return func(yield func(string) bool) {}
}

// Collect materializes the sequence.
func (m Modifiers) Collect() []string {
	names := make([]string, 0, 4)
	if m == nil {
		return names
	}

	for name := range m {
		names = append(names, name)
	}

	return names
}
