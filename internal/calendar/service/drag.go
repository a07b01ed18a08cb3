package service

import (
	"errors"
	"fmt"

	"stock-event-calendar/internal/entity"
)

// DragState is the state of a drag gesture over the month grid.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
	DragOverDay
	DragOverTrash
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	case DragOverDay:
		return "over-day"
	case DragOverTrash:
		return "over-trash"
	}
	return fmt.Sprintf("DragState(%d)", int(s))
}

// DropAction is what a completed drop asks the board to do.
type DropAction int

const (
	// DropNone means the gesture ended outside any target.
	DropNone DropAction = iota
	// DropPlace adds a placement on the hovered day.
	DropPlace
	// DropRemove removes the dragged placement.
	DropRemove
	// DropRejectDefault means a default occurrence was dropped on the trash.
	DropRejectDefault
)

// DropOutcome describes a finished gesture.
type DropOutcome struct {
	Action     DropAction
	EventID    string
	SourceDate string
	TargetDate string
}

var (
	ErrDragInProgress   = errors.New("a drag is already in progress")
	ErrNoDragInProgress = errors.New("no drag in progress")
)

// DragSession tracks one drag gesture. The zero value is idle.
type DragSession struct {
	state        DragState
	eventID      string
	sourceDate   string
	sourcePlaced bool
	overDate     string
}

// State returns the current state.
func (s *DragSession) State() DragState {
	return s.state
}

// HoverDate returns the highlighted day while over-day.
func (s *DragSession) HoverDate() string {
	if s.state != DragOverDay {
		return ""
	}
	return s.overDate
}

// Start picks up the event block rendered on sourceDate. isPlaced reports
// whether that block is a user placement rather than the native occurrence.
func (s *DragSession) Start(event entity.Event, sourceDate string, isPlaced bool) error {
	if s.state != DragIdle {
		return ErrDragInProgress
	}
	if event.IsFixedDate {
		return ErrFixedDateEvent
	}
	s.state = DragDragging
	s.eventID = event.ID
	s.sourceDate = sourceDate
	s.sourcePlaced = isPlaced
	return nil
}

// EnterDay highlights date. Entering a new cell implicitly leaves the old one.
func (s *DragSession) EnterDay(date string) {
	if s.state == DragIdle {
		return
	}
	s.state = DragOverDay
	s.overDate = date
}

// LeaveDay clears the highlight.
func (s *DragSession) LeaveDay() {
	if s.state == DragOverDay {
		s.state = DragDragging
		s.overDate = ""
	}
}

// EnterTrash moves the pointer over the trash zone.
func (s *DragSession) EnterTrash() {
	if s.state == DragIdle {
		return
	}
	s.state = DragOverTrash
	s.overDate = ""
}

// LeaveTrash moves the pointer off the trash zone.
func (s *DragSession) LeaveTrash() {
	if s.state == DragOverTrash {
		s.state = DragDragging
	}
}

// Cancel abandons the gesture.
func (s *DragSession) Cancel() {
	*s = DragSession{}
}

// Drop releases the pointer and returns the session to idle.
func (s *DragSession) Drop() (DropOutcome, error) {
	if s.state == DragIdle {
		return DropOutcome{}, ErrNoDragInProgress
	}

	out := DropOutcome{EventID: s.eventID, SourceDate: s.sourceDate}
	switch s.state {
	case DragOverDay:
		out.Action = DropPlace
		out.TargetDate = s.overDate
	case DragOverTrash:
		if s.sourcePlaced {
			out.Action = DropRemove
			out.TargetDate = s.sourceDate
		} else {
			out.Action = DropRejectDefault
		}
	default:
		out.Action = DropNone
	}

	*s = DragSession{}
	return out, nil
}
