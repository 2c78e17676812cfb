package validate

// FailureError reports the first failing validator of a field. Message
// is the validator's rendered template; Error returns it verbatim.
type FailureError struct {
	Path    string
	Value   any
	Message string
}

func (e *FailureError) Error() string {
	return e.Message
}
