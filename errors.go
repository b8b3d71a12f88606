package main

// Error codes surfaced at the API boundary. Callers above the auth bridge
// and the read API never see raw backend errors, only this taxonomy with
// fixed user-safe messages.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeUnknown            = "UNKNOWN"
)

const (
	msgUnknown            = "please refresh the website"
	msgInvalidCredentials = "username and password is wrong please try again"
	msgUsernameTaken      = "this username is already occupied"
)

// apiError is the {code, message} shape returned by auth endpoints.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Code + ": " + e.Message }

func errBadRequest(msg string) *apiError {
	return &apiError{Code: CodeBadRequest, Message: msg}
}

func errInvalidCredentials() *apiError {
	return &apiError{Code: CodeInvalidCredentials, Message: msgInvalidCredentials}
}

func errUsernameTaken() *apiError {
	return &apiError{Code: CodeUsernameTaken, Message: msgUsernameTaken}
}

func errUnknown() *apiError {
	return &apiError{Code: CodeUnknown, Message: msgUnknown}
}

// asAPIError unwraps an error into the taxonomy, degrading anything
// unclassified to UNKNOWN.
func asAPIError(err error) *apiError {
	if ae, ok := err.(*apiError); ok {
		return ae
	}
	return errUnknown()
}
