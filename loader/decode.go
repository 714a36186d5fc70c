package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/nathoo/realmcore/types"
	"gopkg.in/yaml.v3"
)

// Decode parses a YAML or JSON world definition. Unknown keys are rejected.
// Validation is left to the caller.
func Decode(data []byte) (*types.WorldDef, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def types.WorldDef
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRooms
		}
		return nil, fmt.Errorf("parsing definition: %w", err)
	}
	if len(def.Rooms) == 0 {
		return nil, ErrNoRooms
	}
	return &def, nil
}
