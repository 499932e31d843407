package hardware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced Clock for tests.
type fakeClock struct {
	now uint32
}

func (c *fakeClock) Now() uint32 {
	return c.now
}

// TestSimBoardRawSemantics verifies pull-up line behavior: open reads true,
// closed reads false, unknown pins read open.
func TestSimBoardRawSemantics(t *testing.T) {
	t.Parallel()

	board := NewSimBoard(&fakeClock{})

	// Unset pin floats open.
	require.True(t, board.ReadRaw(PinButton))

	board.SetSwitch(PinButton, true)
	require.False(t, board.ReadRaw(PinButton))

	board.SetSwitch(PinButton, false)
	require.True(t, board.ReadRaw(PinButton))
}

// TestSimBoardOutputsAndColor verifies recorded output and indicator state.
func TestSimBoardOutputsAndColor(t *testing.T) {
	t.Parallel()

	board := NewSimBoard(&fakeClock{})

	require.False(t, board.Output(PinAlarm))
	board.SetOutput(PinAlarm, true)
	require.True(t, board.Output(PinAlarm))

	board.SetColor(255, 0, 0)

	r, g, b := board.Color()
	require.Equal(t, uint8(255), r)
	require.Equal(t, uint8(0), g)
	require.Equal(t, uint8(0), b)
}

// TestSimBoardClock verifies the board delegates Now to the injected clock.
func TestSimBoardClock(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: 42}
	board := NewSimBoard(clock)

	require.Equal(t, uint32(42), board.Now())

	clock.now = 100
	require.Equal(t, uint32(100), board.Now())
}
