package util

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance used for config and
// request binding checks.
var Validate = validator.New()
