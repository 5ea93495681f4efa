package viewer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Spinner is a frame sequence for an in-progress indicator.
type Spinner struct {
	Frames []string
}

var (
	// SpinnerDots is the default braille spinner.
	SpinnerDots = Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}

	// SpinnerLine is a plain ASCII fallback.
	SpinnerLine = Spinner{
		Frames: []string{"-", "\\", "|", "/"},
	}
)

// GetFrame returns the frame at index, wrapping around.
func (s Spinner) GetFrame(index int) string {
	if len(s.Frames) == 0 {
		return ""
	}
	return s.Frames[index%len(s.Frames)]
}

// FrameCount returns the number of frames.
func (s Spinner) FrameCount() int { return len(s.Frames) }

// spinnerTickMsg advances the rebuild indicator by one frame.
type spinnerTickMsg struct{}

const spinnerTickInterval = 120 * time.Millisecond

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerTickInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// RebuildSpinner animates while the engine's external differ runs: the
// Model starts it before kicking off an async Rebuild and stops it in the
// completion handler.
type RebuildSpinner struct {
	spinner Spinner
	frame   int
	active  bool
}

// NewRebuildSpinner wraps s as an inactive rebuild indicator.
func NewRebuildSpinner(s Spinner) *RebuildSpinner {
	return &RebuildSpinner{spinner: s}
}

// Start marks the spinner active and returns the command that begins
// ticking it.
func (rs *RebuildSpinner) Start() tea.Cmd {
	rs.active = true
	return spinnerTick()
}

// Stop deactivates the spinner; View renders empty until the next Start.
func (rs *RebuildSpinner) Stop() { rs.active = false }

// Active reports whether the spinner is currently animating.
func (rs *RebuildSpinner) Active() bool { return rs.active }

// Update advances the frame on each tick and reschedules the next one
// while active.
func (rs *RebuildSpinner) Update(msg tea.Msg) (*RebuildSpinner, tea.Cmd) {
	if !rs.active {
		return rs, nil
	}
	if _, ok := msg.(spinnerTickMsg); !ok {
		return rs, nil
	}
	rs.frame++
	return rs, spinnerTick()
}

// View renders the current frame, or "" while inactive.
func (rs *RebuildSpinner) View() string {
	if !rs.active {
		return ""
	}
	return rs.spinner.GetFrame(rs.frame)
}
