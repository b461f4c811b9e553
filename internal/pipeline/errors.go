package pipeline

import "errors"

// Sentinel errors for pipeline stages.
var (
	ErrParse          = errors.New("markup parsing failed")
	ErrHTMLConversion = errors.New("HTML conversion failed")
)
