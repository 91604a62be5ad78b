package articut

import (
	"errors"
	"strings"
)

// Service failures reported through the msg field of the response body.
// The endpoint answers with HTTP 200 even when a request is rejected, so
// these are the errors callers should test for with errors.Is.
var (
	// ErrInvalidVersion indicates the requested service version does not exist.
	ErrInvalidVersion = errors.New("specified version does not exist")

	// ErrInvalidLevel indicates the requested annotation level does not exist.
	ErrInvalidLevel = errors.New("specified level does not exist")

	// ErrAuthFailed indicates the username was rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrInvalidAPIKey indicates the API key was rejected.
	ErrInvalidAPIKey = errors.New("invalid Articut key")

	// ErrInputTooLong indicates the input text exceeds the per-request limit.
	ErrInputTooLong = errors.New("input text is too long")

	// ErrQuotaExhausted indicates the account has no word count balance left.
	ErrQuotaExhausted = errors.New("insufficient word count balance")

	// ErrInternalServer indicates a failure inside the service.
	ErrInternalServer = errors.New("internal server error")

	// ErrInvalidContentType indicates the request body type was rejected.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidArguments indicates the request carried malformed arguments.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrDictParseFailed indicates the user-defined dictionary could not be parsed.
	ErrDictParseFailed = errors.New("user defined dictionary parse error")

	// ErrDictTooLarge indicates the user-defined dictionary exceeds the size limit.
	ErrDictTooLarge = errors.New("user defined dictionary file size exceeded")

	// ErrRateLimited indicates too many requests per minute.
	ErrRateLimited = errors.New("requests per minute exceeded")
)

// messageTable maps fragments of the server's human-readable msg field
// to typed errors. Matching is ordered substring containment and the
// first hit wins. The fragments must track what the live service emits
// verbatim, misspelled "Authtication" included.
var messageTable = []struct {
	fragment string
	err      error
}{
	{"Specified version does not exist", ErrInvalidVersion},
	{"Specified level does not exist", ErrInvalidLevel},
	{"Authtication failed", ErrAuthFailed},
	{"Invalid Articut key", ErrInvalidAPIKey},
	{"Your input_str is too long", ErrInputTooLong},
	{"Insufficient word count balance", ErrQuotaExhausted},
	{"Internal server error", ErrInternalServer},
	{"Invalid content_type", ErrInvalidContentType},
	{"Invalid arguments", ErrInvalidArguments},
	{"UserDefinedDICT Parsing", ErrDictParseFailed},
	{"Maximum UserDefinedDICT file size", ErrDictTooLarge},
	{"Requests per minute exceeded", ErrRateLimited},
}

// errorFromMessage returns the typed error for a server message, or nil
// when the message matches no known failure phrase. The service has no
// structured error codes; an unrecognized message means success.
func errorFromMessage(msg string) error {
	for _, entry := range messageTable {
		if strings.Contains(msg, entry.fragment) {
			return entry.err
		}
	}
	return nil
}

// NetworkError wraps a transport-level failure: request construction,
// connection errors, and response bodies that do not decode as JSON.
// It is the only error kind this package returns that does not
// originate from the service itself.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return "articut: network error: " + e.Err.Error()
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is a transport failure rather than
// a failure reported by the service.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
