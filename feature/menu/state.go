package menu

// State is a step of the interactive loop.
type State int

const (
	// StateMenuDisplay shows the options and waits for a selection.
	StateMenuDisplay State = iota
	// StateAwaitingInput collects the parameters of the selected operation.
	StateAwaitingInput
	// StateExecuting runs the selected operation against the store.
	StateExecuting
	// StateReporting prints the outcome of the operation.
	StateReporting
	// StateExited is terminal.
	StateExited
)

func (s State) String() string {
	switch s {
	case StateMenuDisplay:
		return "MenuDisplay"
	case StateAwaitingInput:
		return "AwaitingInput"
	case StateExecuting:
		return "Executing"
	case StateReporting:
		return "Reporting"
	case StateExited:
		return "Exited"
	default:
		return "Unknown"
	}
}

// Menu selections.
const (
	OptionUpload   = "1"
	OptionDownload = "2"
	OptionDelete   = "3"
	OptionList     = "4"
	OptionExit     = "5"
)
