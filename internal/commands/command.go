package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/daybook/internal/model"
)

type Type string

const (
	TypeTask    Type = "task"
	TypeNote    Type = "note"
	TypeHabit   Type = "habit"
	TypeFilter  Type = "filter"
	TypeSearch  Type = "search"
	TypeShow    Type = "show"
	TypeDue     Type = "due"
	TypeSub     Type = "sub"
	TypeSubDone Type = "subdone"
	TypeRename  Type = "rename"
	TypeDesc    Type = "desc"
	TypeDelete  Type = "delete"
	TypeTheme   Type = "theme"
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

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type TaskArgs struct {
	Title   string
	Filters []string
	Due     *model.Date
}

type NoteArgs struct {
	Title   string
	Content string
	Filters []string
}

type HabitArgs struct {
	Title string
}

type FilterOp string

const (
	FilterAdd    FilterOp = "add"
	FilterRemove FilterOp = "rm"
	FilterRename FilterOp = "mv"
)

type FilterArgs struct {
	Op      FilterOp
	Name    string
	NewName string
}

type SearchArgs struct {
	Term string
}

type ShowSubject string

const (
	ShowTag   ShowSubject = "tag"
	ShowDone  ShowSubject = "done"
	ShowClear ShowSubject = "clear"
)

type ShowArgs struct {
	Subject ShowSubject
	Tag     string
}

// DueArgs clears the due date when Date is nil.
type DueArgs struct {
	Date *model.Date
}

type SubArgs struct {
	Text string
}

// SubDoneArgs addresses a sub-task by its 1-based position.
type SubDoneArgs struct {
	Index int
}

type RenameArgs struct {
	Title string
}

type DescArgs struct {
	Text string
}

// ThemeArgs toggles the theme when Theme is empty.
type ThemeArgs struct {
	Theme model.Theme
}

type Command struct {
	Type    Type
	Raw     string
	Task    *TaskArgs
	Note    *NoteArgs
	Habit   *HabitArgs
	Filter  *FilterArgs
	Search  *SearchArgs
	Show    *ShowArgs
	Due     *DueArgs
	Sub     *SubArgs
	SubDone *SubDoneArgs
	Rename  *RenameArgs
	Desc    *DescArgs
	Theme   *ThemeArgs
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
	args := strings.Fields(rest)

	switch Type(head) {
	case TypeTask:
		return parseTask(input, args)
	case TypeNote:
		return parseNote(input, rest)
	case TypeHabit:
		if rest == "" {
			return Command{}, invalid("habit requires a title")
		}
		return Command{Type: TypeHabit, Raw: input, Habit: &HabitArgs{Title: rest}}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Term: rest}}, nil
	case TypeShow:
		return parseShow(input, args)
	case TypeDue:
		return parseDue(input, args)
	case TypeSub:
		if rest == "" {
			return Command{}, invalid("sub requires text")
		}
		return Command{Type: TypeSub, Raw: input, Sub: &SubArgs{Text: rest}}, nil
	case TypeSubDone:
		return parseSubDone(input, args)
	case TypeRename:
		if rest == "" {
			return Command{}, invalid("rename requires a title")
		}
		return Command{Type: TypeRename, Raw: input, Rename: &RenameArgs{Title: rest}}, nil
	case TypeDesc:
		return Command{Type: TypeDesc, Raw: input, Desc: &DescArgs{Text: rest}}, nil
	case TypeDelete:
		return Command{Type: TypeDelete, Raw: input}, nil
	case TypeTheme:
		return parseTheme(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// splitTags separates #tag words from the rest of the text.
func splitTags(words []string) (string, []string) {
	var text []string
	var tags []string
	for _, w := range words {
		if tag, ok := strings.CutPrefix(w, "#"); ok && tag != "" {
			tags = append(tags, tag)
			continue
		}
		text = append(text, w)
	}
	return strings.Join(text, " "), model.NormalizeFilters(tags)
}

func parseTask(raw string, args []string) (Command, error) {
	var due *model.Date
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if value, ok := strings.CutPrefix(strings.ToLower(arg), "due:"); ok {
			d, err := model.ParseDate(value)
			if err != nil {
				return Command{}, invalid("due date must be YYYY-MM-DD, got %q", value)
			}
			due = &d
			continue
		}
		words = append(words, arg)
	}
	title, tags := splitTags(words)
	if title == "" {
		return Command{}, invalid("task requires a title")
	}
	return Command{Type: TypeTask, Raw: raw, Task: &TaskArgs{Title: title, Filters: tags, Due: due}}, nil
}

func parseNote(raw, rest string) (Command, error) {
	head, content, _ := strings.Cut(rest, "|")
	title, tags := splitTags(strings.Fields(head))
	if title == "" {
		return Command{}, invalid("note requires a title")
	}
	return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{Title: title, Content: strings.TrimSpace(content), Filters: tags}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("filter requires add, rm or mv")
	}
	op := FilterOp(strings.ToLower(args[0]))
	switch op {
	case FilterAdd, FilterRemove:
		if len(args) != 2 {
			return Command{}, invalid("filter %s requires one name", op)
		}
		return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Op: op, Name: args[1]}}, nil
	case FilterRename:
		if len(args) != 3 {
			return Command{}, invalid("filter mv requires old and new names")
		}
		return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Op: op, Name: args[1], NewName: args[2]}}, nil
	default:
		return Command{}, invalid("unknown filter operation %q", args[0])
	}
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("show requires tag:<name>, done or clear")
	}
	arg := strings.ToLower(args[0])
	if tag, ok := strings.CutPrefix(arg, "tag:"); ok {
		tag = model.NormalizeFilter(tag)
		if tag == "" {
			return Command{}, invalid("show tag: requires a name")
		}
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: ShowTag, Tag: tag}}, nil
	}
	switch ShowSubject(arg) {
	case ShowDone, ShowClear:
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: ShowSubject(arg)}}, nil
	default:
		return Command{}, invalid("unknown show subject %q", args[0])
	}
}

func parseDue(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("due requires YYYY-MM-DD or none")
	}
	if strings.EqualFold(args[0], "none") {
		return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{}}, nil
	}
	d, err := model.ParseDate(args[0])
	if err != nil {
		return Command{}, invalid("due date must be YYYY-MM-DD, got %q", args[0])
	}
	return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{Date: &d}}, nil
}

func parseSubDone(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("subdone requires a sub-task number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, invalid("subdone requires a positive number, got %q", args[0])
	}
	return Command{Type: TypeSubDone, Raw: raw, SubDone: &SubDoneArgs{Index: n}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{}}, nil
	}
	theme := model.Theme(strings.ToLower(args[0]))
	if !theme.IsValid() {
		return Command{}, invalid("theme must be light or dark, got %q", args[0])
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: theme}}, nil
}
