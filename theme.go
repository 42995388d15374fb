package agui

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the
// inspector matches any color scheme.
type Theme struct {
	Run      int // Run header and footer
	Step     int // Step markers
	Thinking int // Thinking block text
	ToolCall int // Tool call header
	Error    int // Protocol and run errors
	Success  int // Finished runs, tool results
	Muted    int // Status bar, metadata
	CodeBg   int // Code block background
	Accent   int // Headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Run:      4,
		Step:     6,
		Thinking: 8,
		ToolCall: 3,
		Error:    1,
		Success:  2,
		Muted:    8,
		CodeBg:   0,
		Accent:   5,
	}
}
