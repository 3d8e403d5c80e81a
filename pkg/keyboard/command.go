package keyboard

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrConfiguration = errors.New("keyboard configuration error")
	ErrInvalidKey    = errors.New("invalid key")
)

type CommandKind int

const (
	CommandInsertText CommandKind = iota
	CommandDeleteBackward
	CommandSwitchInputSource
)

func (k CommandKind) String() string {
	switch k {
	case CommandInsertText:
		return "insert"
	case CommandDeleteBackward:
		return "delete"
	case CommandSwitchInputSource:
		return "switchinput"
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Command is an instruction for the host text surface. Text is only set for
// CommandInsertText.
type Command struct {
	Kind CommandKind
	Text string
}

func InsertText(text string) Command {
	return Command{Kind: CommandInsertText, Text: text}
}

func DeleteBackward() Command {
	return Command{Kind: CommandDeleteBackward}
}

func SwitchInputSource() Command {
	return Command{Kind: CommandSwitchInputSource}
}

func (c Command) String() string {
	if c.Kind == CommandInsertText {
		return fmt.Sprintf("%s(%s)", c.Kind, strconv.Quote(c.Text))
	}
	return c.Kind.String()
}
