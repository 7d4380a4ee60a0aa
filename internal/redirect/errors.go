package redirect

import "fmt"

// MaxRedirectError is returned when an exchange reaches the configured
// redirect ceiling. It is terminal for the exchange and never retried.
type MaxRedirectError struct {
	Limit int
}

func (e *MaxRedirectError) Error() string {
	return fmt.Sprintf("maximum redirect reached: %d", e.Limit)
}

// InvalidLocationError reports a redirect response whose Location
// header is missing or not resolvable against the current URI.
type InvalidLocationError struct {
	Location string
	Err      error
}

func (e *InvalidLocationError) Error() string {
	if e.Location == "" {
		return "redirect response without a Location header"
	}
	return fmt.Sprintf("unresolvable redirect location %q: %v", e.Location, e.Err)
}

func (e *InvalidLocationError) Unwrap() error { return e.Err }
