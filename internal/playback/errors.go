package playback

import "fmt"

// RestoreError reports that the saved position could not be applied to the
// media cursor. The controller logs it and carries on.
type RestoreError struct {
	Offset float64
	Err    error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore position %.2fs: %v", e.Offset, e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }
