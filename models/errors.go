package models

// Error taxonomy consumed by helper.HTTPHelper.GetStatusCode. Validation and
// authorization failures carry specific messages for the caller; dependency
// failures are logged server-side and surfaced generically.

type ErrorValidation struct {
	Message       string   `json:"message"`
	MissingFields []string `json:"missing_fields,omitempty"`
	WordCount     int      `json:"word_count,omitempty"`
	WordLimit     int      `json:"word_limit,omitempty"`
}

func (e ErrorValidation) Error() string {
	return e.Message
}

type ErrorNotFound struct {
	Message string `json:"message"`
}

func (e ErrorNotFound) Error() string {
	return e.Message
}

type ErrorUnauthorized struct {
	Message string `json:"message"`
}

func (e ErrorUnauthorized) Error() string {
	return e.Message
}

type ErrorConflict struct {
	Message string `json:"message"`
}

func (e ErrorConflict) Error() string {
	return e.Message
}

type ErrorInternalServer struct {
	Message string `json:"message"`
}

func (e ErrorInternalServer) Error() string {
	return e.Message
}
