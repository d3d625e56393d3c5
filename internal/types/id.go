// README: Identifier and coordinate value objects shared by modules.
package types

import (
	"strings"

	"github.com/google/uuid"
)

type ID string

// NewID returns a prefixed random identifier such as "ride_3f2c...".
func NewID(prefix string) ID {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix == "" {
		return ID(raw)
	}
	return ID(prefix + "_" + raw)
}

type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}
