package report

import "fmt"

// DuplicateTagError is returned by Register when a tag name is already
// taken. Registration happens once at startup, so hitting this means the
// service is misconfigured.
type DuplicateTagError struct {
	Tag string
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("report tag %q already registered", e.Tag)
}

// UnknownTagError is returned when a template references a tag that was
// never registered. Rendering aborts; no partial report is produced.
type UnknownTagError struct {
	Tag string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown report tag %q", e.Tag)
}

// TagResolutionError wraps a producer failure with the tag that caused it.
type TagResolutionError struct {
	Tag string
	Err error
}

func (e *TagResolutionError) Error() string {
	return fmt.Sprintf("resolve report tag %q: %v", e.Tag, e.Err)
}

func (e *TagResolutionError) Unwrap() error {
	return e.Err
}
