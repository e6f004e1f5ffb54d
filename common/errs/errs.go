package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// SomethingWentWrong is returned when an unexpected error occurs.
	SomethingWentWrong = ErrorKind("Something went wrong")

	// NotFound is returned when a requested item is not found.
	// e.g. royalty query for an unregistered asset id.
	NotFound = ErrorKind("Not Found")

	// Unauthorized is returned when the caller is not entitled to perform the operation.
	Unauthorized = ErrorKind("Unauthorized")

	// MalformedRate is returned when a royalty rate is outside the accepted range.
	MalformedRate = ErrorKind("Malformed Rate")

	// InvalidArgument is returned when an argument is invalid.
	InvalidArgument = ErrorKind("Invalid Argument")

	// Conflict is returned when the item already exists.
	Conflict = ErrorKind("Conflict")

	// Unsupported is returned when a feature or configuration value is not supported.
	Unsupported = ErrorKind("Unsupported")

	// Closed is returned when the resource has been closed.
	Closed = ErrorKind("Closed")

	// Timeout is returned when an operation does not finish in time.
	Timeout = ErrorKind("Timeout")

	OverflowUint64  = ErrorKind("overflow uint64")
	OverflowUint128 = ErrorKind("overflow uint128")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
