package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a status message
	w.Status("🔍", "Scanning /home/user...")

	// Then: output contains icon and message
	output := buf.String()
	assert.Contains(t, output, "🔍")
	assert.Contains(t, output, "Scanning /home/user...")
}

func TestWriter_Success_PrintsCheckmark(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a success message
	w.Success("Index complete!")

	// Then: output contains checkmark and message
	output := buf.String()
	assert.Contains(t, output, "✅")
	assert.Contains(t, output, "Index complete!")
}

func TestWriter_Warning_PrintsWarningIcon(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a warning message
	w.Warning("Browser profile not found")

	// Then: output contains warning icon and message
	output := buf.String()
	assert.Contains(t, output, "⚠️")
	assert.Contains(t, output, "Browser profile not found")
}

func TestWriter_Error_PrintsErrorIcon(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing an error message
	w.Error("Failed to open store")

	// Then: output contains error icon and message
	output := buf.String()
	assert.Contains(t, output, "❌")
	assert.Contains(t, output, "Failed to open store")
}

func TestWriter_Progress_PipedOnlyPrintsCompletion(t *testing.T) {
	// Given: a writer over a plain buffer (not a terminal)
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: reporting intermediate then final progress
	w.Progress(50, 100, "Indexing files")
	assert.Empty(t, buf.String())

	w.Progress(100, 100, "Indexing files")

	// Then: only the completed line appears, without carriage returns
	output := buf.String()
	assert.Contains(t, output, "100%")
	assert.Contains(t, output, "Indexing files")
	assert.NotContains(t, output, "\r")
}

func TestWriter_Progress_ZeroTotal_NoOutput(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing progress with zero total
	// Then: no crash, graceful handling
	assert.NotPanics(t, func() {
		w.Progress(0, 0, "Processing")
	})
	assert.Empty(t, buf.String())
}

func TestWriter_Statusf_FormatsMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a formatted status message
	w.Statusf("📂", "Indexed %d files under %s", 42, "/home/user/docs")

	// Then: output contains formatted message
	output := buf.String()
	assert.Contains(t, output, "📂")
	assert.Contains(t, output, "Indexed 42 files under /home/user/docs")
}

func TestProgressBar_Render(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		width    int
		wantFull int // number of filled characters
	}{
		{
			name:     "0 percent",
			current:  0,
			total:    100,
			width:    10,
			wantFull: 0,
		},
		{
			name:     "50 percent",
			current:  50,
			total:    100,
			width:    10,
			wantFull: 5,
		},
		{
			name:     "100 percent",
			current:  100,
			total:    100,
			width:    10,
			wantFull: 10,
		},
		{
			name:     "25 percent",
			current:  25,
			total:    100,
			width:    20,
			wantFull: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderProgressBar(tt.current, tt.total, tt.width)

			// Count filled characters (█)
			filled := strings.Count(bar, "█")
			assert.Equal(t, tt.wantFull, filled)

			// Total width should be correct
			assert.Equal(t, tt.width, len([]rune(bar)))
		})
	}
}

func TestWriter_Newline_PrintsEmptyLine(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a newline
	w.Newline()

	// Then: output is just a newline
	assert.Equal(t, "\n", buf.String())
}

func TestNew_BufferIsNotTerminal(t *testing.T) {
	// Given/When: creating a writer over a buffer
	w := New(&bytes.Buffer{})

	// Then: TTY mode is off
	assert.NotNil(t, w)
	assert.False(t, w.tty)
}
