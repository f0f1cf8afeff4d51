// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// validateSchema checks decoded settings against the embedded CUE schema.
// The schema keeps every field optional, since defaults fill the gaps, but any
// value present must have the right type and range.
func validateSchema(settings map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(configSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup config schema definition: %w", err)
	}

	value := ctx.Encode(settings)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode config for validation: %w", err)
	}

	if err := def.Unify(value).Validate(); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}
