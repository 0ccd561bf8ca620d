package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Task    func(TaskArgs) (Result, error)
	Note    func(NoteArgs) (Result, error)
	Habit   func(HabitArgs) (Result, error)
	Filter  func(FilterArgs) (Result, error)
	Search  func(SearchArgs) (Result, error)
	Show    func(ShowArgs) (Result, error)
	Due     func(DueArgs) (Result, error)
	Sub     func(SubArgs) (Result, error)
	SubDone func(SubDoneArgs) (Result, error)
	Rename  func(RenameArgs) (Result, error)
	Desc    func(DescArgs) (Result, error)
	Delete  func() (Result, error)
	Theme   func(ThemeArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func call[A any](t Type, fn func(A) (Result, error), args *A) (Result, error) {
	if fn == nil {
		return Result{}, missing(t)
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s command has no arguments", t)}
	}
	return fn(*args)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeTask:
		return call(cmd.Type, handlers.Task, cmd.Task)
	case TypeNote:
		return call(cmd.Type, handlers.Note, cmd.Note)
	case TypeHabit:
		return call(cmd.Type, handlers.Habit, cmd.Habit)
	case TypeFilter:
		return call(cmd.Type, handlers.Filter, cmd.Filter)
	case TypeSearch:
		return call(cmd.Type, handlers.Search, cmd.Search)
	case TypeShow:
		return call(cmd.Type, handlers.Show, cmd.Show)
	case TypeDue:
		return call(cmd.Type, handlers.Due, cmd.Due)
	case TypeSub:
		return call(cmd.Type, handlers.Sub, cmd.Sub)
	case TypeSubDone:
		return call(cmd.Type, handlers.SubDone, cmd.SubDone)
	case TypeRename:
		return call(cmd.Type, handlers.Rename, cmd.Rename)
	case TypeDesc:
		return call(cmd.Type, handlers.Desc, cmd.Desc)
	case TypeTheme:
		return call(cmd.Type, handlers.Theme, cmd.Theme)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
