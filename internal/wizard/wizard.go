// Package wizard is the order form's step machine. It holds no I/O: the
// caller feeds events and renders whatever state comes back.
package wizard

import (
	"strings"
)

type Step int

const (
	NamingCustomer Step = iota + 1
	NamingShirt
	PickingSize
	PickingStyles
)

func (s Step) String() string {
	switch s {
	case NamingCustomer:
		return "naming-customer"
	case NamingShirt:
		return "naming-shirt"
	case PickingSize:
		return "picking-size"
	case PickingStyles:
		return "picking-styles"
	default:
		return "unknown"
	}
}

// MinPersonaLen is exclusive: names must be longer than this.
const MinPersonaLen = 2

type State struct {
	Step         Step
	Persona      string
	NombreCamisa string
	TallaID      uint64
	EstiloIDs    []uint64
	Submitting   bool
	Submitted    bool
	PedidoID     uint64
	Error        string
}

func New() State {
	return State{Step: NamingCustomer}
}

type EventKind int

const (
	SetPersona EventKind = iota + 1
	ConfirmPersona
	SetShirtName
	ConfirmShirtName
	SelectSize
	ToggleStyle
	Edit
	SubmitStarted
	SubmitFailed
	SubmitSucceeded
)

type Event struct {
	Kind EventKind
	Text string
	ID   uint64
	Step Step
}

// Apply returns the state after e. Events that do not fit the current state
// leave it unchanged.
func Apply(s State, e Event) State {
	s.EstiloIDs = append([]uint64(nil), s.EstiloIDs...)
	if s.Submitted {
		return s
	}
	if s.Submitting && e.Kind != SubmitFailed && e.Kind != SubmitSucceeded {
		return s
	}

	switch e.Kind {
	case SetPersona:
		if s.Step == NamingCustomer {
			s.Persona = e.Text
		}
	case ConfirmPersona:
		if s.Step == NamingCustomer && PersonaValid(s.Persona) {
			s.Step = NamingShirt
		}
	case SetShirtName:
		if s.Step == NamingShirt {
			s.NombreCamisa = e.Text
		}
	case ConfirmShirtName:
		if s.Step == NamingShirt {
			s.Step = PickingSize
		}
	case SelectSize:
		if s.Step >= PickingSize && e.ID != 0 {
			s.TallaID = e.ID
			s.Step = PickingStyles
		}
	case ToggleStyle:
		if s.Step >= PickingStyles && e.ID != 0 {
			s.EstiloIDs = toggle(s.EstiloIDs, e.ID)
		}
	case Edit:
		if e.Step >= NamingCustomer && e.Step < s.Step {
			s.Step = e.Step
		}
	case SubmitStarted:
		if CanSubmit(s) {
			s.Submitting = true
			s.Error = ""
		}
	case SubmitFailed:
		if s.Submitting {
			s.Submitting = false
			s.Error = e.Text
		}
	case SubmitSucceeded:
		if s.Submitting {
			s.Submitting = false
			s.Submitted = true
			s.PedidoID = e.ID
			s.Error = ""
		}
	}
	return s
}

// CanSubmit does not look at Step: answers given through edits count as
// soon as all of them are present.
func CanSubmit(s State) bool {
	return strings.TrimSpace(s.Persona) != "" && s.TallaID != 0 && len(s.EstiloIDs) > 0
}

func PersonaValid(persona string) bool {
	return len([]rune(strings.TrimSpace(persona))) > MinPersonaLen
}

// Visible reports whether the section for step is shown.
func Visible(s State, step Step) bool {
	return s.Step >= step
}

// Editable reports whether step is completed and can be reopened.
func Editable(s State, step Step) bool {
	return s.Step > step
}

func Selected(s State, id uint64) bool {
	for _, v := range s.EstiloIDs {
		if v == id {
			return true
		}
	}
	return false
}

func toggle(ids []uint64, id uint64) []uint64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}
