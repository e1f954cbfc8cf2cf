package detect

import "fmt"

// InitParamError reports a problem with how a Detector or its shared
// ProbabilityIndex was configured — wiring, not input.
type InitParamError struct {
	Reason string
}

func (e *InitParamError) Error() string {
	return fmt.Sprintf("detect: invalid configuration: %s", e.Reason)
}

// CantDetectError reports that a Detector was asked to classify text with
// no usable signal in it — e.g. nothing but punctuation, or characters
// that never appear in any loaded profile.
type CantDetectError struct {
	Reason string
}

func (e *CantDetectError) Error() string {
	return fmt.Sprintf("detect: cannot detect language: %s", e.Reason)
}
