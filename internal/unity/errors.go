package unity

import "fmt"

// AuthError is a failed login exchange. Its message is exactly the detail
// reported per table when a cycle fails to authenticate.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return e.Detail
}

// UpstreamError is a non-success response from the array API, scoped to the
// command that issued the call.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	body := e.Body
	if e.Status == 404 {
		body = "HTTP Status 404 - Not Found"
	}
	return fmt.Sprintf("API responded with %d: %s", e.Status, body)
}
