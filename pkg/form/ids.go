package form

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	controlSuffix     = "-form-item"
	descriptionSuffix = "-form-item-description"
	messageSuffix     = "-form-item-message"
)

// IDGenerator produces opaque item identifiers. Identifiers must be unique
// within a rendered document.
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a plain function to IDGenerator.
type IDFunc func() string

// NewID calls fn.
func (fn IDFunc) NewID() string { return fn() }

// UUIDGenerator returns random identifiers of the form "<prefix>-<uuid>".
func UUIDGenerator(prefix string) IDGenerator {
	prefix = strings.TrimSpace(prefix)
	return IDFunc(func() string {
		if prefix == "" {
			return uuid.NewString()
		}
		return prefix + "-" + uuid.NewString()
	})
}

// Sequence returns deterministic identifiers ("<prefix>-1", "<prefix>-2", ...).
// It is safe for concurrent use.
type Sequence struct {
	prefix string
	next   atomic.Uint64
}

// NewSequence creates a Sequence starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: strings.TrimSpace(prefix)}
}

// NewID returns the next identifier.
func (s *Sequence) NewID() string {
	n := s.next.Add(1)
	if s.prefix == "" {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s-%d", s.prefix, n)
}

// ControlID derives the control identifier from an item id.
func ControlID(itemID string) string { return itemID + controlSuffix }

// DescriptionID derives the description identifier from an item id.
func DescriptionID(itemID string) string { return itemID + descriptionSuffix }

// MessageID derives the message identifier from an item id.
func MessageID(itemID string) string { return itemID + messageSuffix }
