package utils

import "errors"

// ErrorRecordNotFound marks a lookup whose target row does not exist. Typed
// errors wrap it so callers can match with errors.Is regardless of layer.
var ErrorRecordNotFound = errors.New("record not found")
