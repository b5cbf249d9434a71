package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeDelete Type = "delete"
	TypeFilter Type = "filter"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs is "add <date> <text...>". Text keeps its inner spacing.
type AddArgs struct {
	Date string
	Text string
}

// TargetArgs names a task by id, for done and delete.
type TargetArgs struct {
	ID int64
}

type FilterArgs struct {
	Mode string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Filter *FilterArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeDone, "toggle":
		return parseTarget(input, TypeDone, rest)
	case TypeDelete, "rm":
		return parseTarget(input, TypeDelete, rest)
	case TypeFilter:
		return parseFilter(input, rest)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw, rest string) (Command, error) {
	date, text, _ := strings.Cut(rest, " ")
	if date == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a date and a text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Date: date, Text: text}}, nil
}

func parseTarget(raw string, typ Type, rest string) (Command, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one task id", typ)}
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(fields[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %s", fields[0])}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parseFilter(raw, rest string) (Command, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, completed, uncompleted"}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Mode: strings.ToLower(fields[0])}}, nil
}
