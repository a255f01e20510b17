package tool

// OutcomeStatus is the terminal status of one invoker call.
type OutcomeStatus string

const (
	StatusSuccess OutcomeStatus = "success"
	StatusError   OutcomeStatus = "error"
)

// Outcome is the normalized result of invoking a tool action.
// Invokers always return a terminal Outcome; external faults are folded
// into Status = error with a human-readable message.
type Outcome struct {
	Status       OutcomeStatus `json:"status"`
	Data         any           `json:"data,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Success wraps data in a success outcome.
func Success(data any) Outcome {
	return Outcome{Status: StatusSuccess, Data: data}
}

// Failure wraps a message in an error outcome.
func Failure(msg string) Outcome {
	return Outcome{Status: StatusError, ErrorMessage: msg}
}
