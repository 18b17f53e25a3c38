package msgparser

import "fmt"

// UnknownCodeError is returned by Decode when a property's type code
// isn't one of the recognized MS-OXCDATA PtypXxx values.
type UnknownCodeError struct {
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("DataTypeError: Unknown value encoding: 0x%s", e.Code)
}
