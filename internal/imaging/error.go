package imaging

import "fmt"

// Op names the stage of a conversion that failed.
type Op string

const (
	OpOpen   Op = "open"
	OpDecode Op = "decode"
	OpWrite  Op = "write"
)

// ImageError is returned by ConvertToOpaqueRGBA for unreadable inputs and
// unwritable outputs.
type ImageError struct {
	Op   Op
	Path string
	Err  error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ImageError) Unwrap() error { return e.Err }
