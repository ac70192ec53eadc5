package types

import "github.com/go-playground/validator/v10"

// Validator runs the `validate` struct tags on inbound request DTOs. One
// instance is shared; validator.Validate caches struct metadata and is
// safe for concurrent use.
var Validator = validator.New()
