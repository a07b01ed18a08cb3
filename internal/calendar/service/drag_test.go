package service

import (
	"testing"

	"stock-event-calendar/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragSession_PlaceOnDay(t *testing.T) {
	var s DragSession
	require.NoError(t, s.Start(entity.Event{ID: "e1"}, "2025-11-07", false))
	assert.Equal(t, DragDragging, s.State())

	s.EnterDay("2025-11-12")
	assert.Equal(t, DragOverDay, s.State())
	assert.Equal(t, "2025-11-12", s.HoverDate())

	s.LeaveDay()
	assert.Equal(t, DragDragging, s.State())
	assert.Empty(t, s.HoverDate())

	s.EnterDay("2025-11-13")
	s.EnterDay("2025-11-14")

	out, err := s.Drop()
	require.NoError(t, err)
	assert.Equal(t, DropOutcome{Action: DropPlace, EventID: "e1", SourceDate: "2025-11-07", TargetDate: "2025-11-14"}, out)
	assert.Equal(t, DragIdle, s.State())
}

func TestDragSession_FixedDateEventIsNotDraggable(t *testing.T) {
	var s DragSession
	err := s.Start(entity.Event{ID: "fomc", IsFixedDate: true}, "2025-11-07", false)
	assert.ErrorIs(t, err, ErrFixedDateEvent)
	assert.Equal(t, DragIdle, s.State())
}

func TestDragSession_Trash(t *testing.T) {
	t.Run("placed event is removed", func(t *testing.T) {
		var s DragSession
		require.NoError(t, s.Start(entity.Event{ID: "e1"}, "2025-11-12", true))
		s.EnterTrash()
		assert.Equal(t, DragOverTrash, s.State())

		out, err := s.Drop()
		require.NoError(t, err)
		assert.Equal(t, DropRemove, out.Action)
		assert.Equal(t, "2025-11-12", out.TargetDate)
	})

	t.Run("default occurrence is rejected", func(t *testing.T) {
		var s DragSession
		require.NoError(t, s.Start(entity.Event{ID: "e1"}, "2025-11-07", false))
		s.EnterTrash()
		out, err := s.Drop()
		require.NoError(t, err)
		assert.Equal(t, DropRejectDefault, out.Action)
	})

	t.Run("leaving the trash ends over nothing", func(t *testing.T) {
		var s DragSession
		require.NoError(t, s.Start(entity.Event{ID: "e1"}, "2025-11-07", true))
		s.EnterTrash()
		s.LeaveTrash()
		out, err := s.Drop()
		require.NoError(t, err)
		assert.Equal(t, DropNone, out.Action)
	})
}

func TestDragSession_InvalidTransitions(t *testing.T) {
	var s DragSession
	_, err := s.Drop()
	assert.ErrorIs(t, err, ErrNoDragInProgress)

	s.EnterDay("2025-11-12")
	assert.Equal(t, DragIdle, s.State())

	require.NoError(t, s.Start(entity.Event{ID: "e1"}, "2025-11-07", false))
	assert.ErrorIs(t, s.Start(entity.Event{ID: "e2"}, "2025-11-07", false), ErrDragInProgress)

	s.Cancel()
	assert.Equal(t, DragIdle, s.State())
	assert.Equal(t, "over-trash", DragOverTrash.String())
}
