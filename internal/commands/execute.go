package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Done   func(TargetArgs) (Result, error)
	Delete func(TargetArgs) (Result, error)
	Filter func(FilterArgs) (Result, error)
}

type runner func() (Result, error)

func Execute(cmd Command, handlers Handlers) (Result, error) {
	run, known := handlers.routes(cmd)[cmd.Type]
	if !known {
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
	if run == nil {
		return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", cmd.Type)}
	}
	return run()
}

// routes binds every command type to its handler applied to the parsed
// arguments. A nil runner means the handler is not configured.
func (h Handlers) routes(cmd Command) map[Type]runner {
	return map[Type]runner{
		TypeAdd:    bind(h.Add, cmd.Add),
		TypeDone:   bind(h.Done, cmd.Target),
		TypeDelete: bind(h.Delete, cmd.Target),
		TypeFilter: bind(h.Filter, cmd.Filter),
	}
}

func bind[A any](fn func(A) (Result, error), args *A) runner {
	if fn == nil {
		return nil
	}
	return func() (Result, error) {
		if args == nil {
			return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "missing arguments"}
		}
		return fn(*args)
	}
}
