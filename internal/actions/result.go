package actions

// Code classifies a failed Result so transports can pick a status without
// parsing messages.
type Code string

const (
	CodeOK           Code = "ok"
	CodeUnauthorized Code = "unauthorized"
	CodeSelfAction   Code = "self_action"
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeFailure      Code = "failure"
)

const (
	MsgUnauthorized = "Unauthorized"
	MsgFailure      = "Something went wrong, please try again"
	MsgSelfDelete   = "You cannot delete your own account"
	MsgSelfDemote   = "You cannot change your own role"
)

// Result is what every mutation returns. Failures never carry storage
// detail, only a message safe to show in the dashboard.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    Code   `json:"-"`
}

func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data, Code: CodeOK}
}

func Fail[T any](code Code, msg string) Result[T] {
	return Result[T]{Success: false, Error: msg, Code: code}
}

func Unauthorized[T any]() Result[T] {
	return Fail[T](CodeUnauthorized, MsgUnauthorized)
}

func Invalid[T any](msg string) Result[T] {
	return Fail[T](CodeValidation, msg)
}

func NotFound[T any](msg string) Result[T] {
	return Fail[T](CodeNotFound, msg)
}

func Conflict[T any](msg string) Result[T] {
	return Fail[T](CodeConflict, msg)
}

func Failure[T any]() Result[T] {
	return Fail[T](CodeFailure, MsgFailure)
}
