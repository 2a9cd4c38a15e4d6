package edit

import (
	"errors"
	"fmt"
)

// Category classifies terminal errors. Each category has its own process
// exit code so scripts can branch on the kind of failure.
type Category int

const (
	// CategoryFile covers unreadable URL files and recipes.
	CategoryFile Category = iota + 1

	// CategoryAppend covers malformed --append arguments.
	CategoryAppend

	// CategoryArg covers options given without their argument.
	CategoryArg

	// CategoryFlag covers unknown options and options given too often.
	CategoryFlag

	// CategorySet covers malformed, unknown or repeated --set components.
	CategorySet

	// CategoryMemory covers allocation failures.
	CategoryMemory

	// CategoryURL covers edits that do not add up to a URL.
	CategoryURL
)

var categoryNames = map[Category]string{
	CategoryFile:   "file",
	CategoryAppend: "append",
	CategoryArg:    "arg",
	CategoryFlag:   "flag",
	CategorySet:    "set",
	CategoryMemory: "memory",
	CategoryURL:    "url",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Error is a terminal user-input error. It ends the whole batch.
type Error struct {
	Category Category
	Message  string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf creates an Error of the given category.
func Errorf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// IsCategory reports whether err is an Error of the given category.
// Uses errors.As to handle wrapped errors.
func IsCategory(err error, category Category) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == category
	}
	return false
}
