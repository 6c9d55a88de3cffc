package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeMeetingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestMeetingCommand(t *testing.T) {
	path := writeMeetingFile(t, `{
  "events": [
    {"title": "standup", "when": {"start": 540, "end": 570}, "attendees": ["ann"]},
    {"title": "lunch", "when": {"start": 720, "end": 780}, "attendees": ["bob"]}
  ],
  "request": {"attendees": ["ann", "bob"], "duration": 60}
}`)

	out, err := executeCommand("meeting", "--file", path)
	if err != nil {
		t.Fatalf("meeting: %v", err)
	}

	want := "00:00-09:00  (9h)\n09:30-12:00  (2h30m)\n13:00-24:00  (11h)\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestMeetingCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{"events": [`},
		{"bad range", `{"events": [{"title": "x", "when": {"start": 600, "end": 500}}], "request": {"duration": 30}}`},
		{"negative duration", `{"request": {"duration": -5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeMeetingFile(t, tt.content)
			if _, err := executeCommand("meeting", "--file", path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMeetingCommandRequiresFile(t *testing.T) {
	_, err := executeCommand("meeting")
	if err == nil || !strings.Contains(err.Error(), "file") {
		t.Errorf("err = %v, want required flag error", err)
	}
}
