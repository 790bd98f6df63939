package ruleset

import "fmt"

// InvalidError reports a structurally invalid ruleset. Location
// identifies the offending element.
type InvalidError struct {
	Location string
	Reason   string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid ruleset at %s: %s", e.Location, e.Reason)
}
