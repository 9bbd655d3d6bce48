package plugin

import (
	"errors"

	"github.com/google/uuid"
)

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx|Spatial")
}

// uidNamespace scopes name-based UIDs so they never collide with UIDs
// generated from the same string by other tools.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("multipan.plugin"))

// ErrEmptyID is returned by ValidateUID for an Info without an ID.
var ErrEmptyID = errors.New("plugin: empty plugin ID")

// UID derives a stable 16-byte class ID from the string ID
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(uidNamespace, []byte(i.ID))
}

// UIDString returns the UID in canonical 8-4-4-4-12 form
func (i Info) UIDString() string {
	return uuid.UUID(i.UID()).String()
}

// ValidateUID checks that a usable UID can be generated
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return ErrEmptyID
	}
	return nil
}
