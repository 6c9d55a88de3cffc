package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/portfolio/internal/meeting"
)

// meetingFile is the input format of the meeting command.
type meetingFile struct {
	Events  []meeting.Event `json:"events"`
	Request meeting.Request `json:"request"`
}

func newMeetingCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Find free time for a meeting",
		Long: `Find the time ranges in a day when everyone can meet.

The input file is JSON with "events" (title, when {start,end} in minutes since
midnight, attendees) and "request" (attendees, optionalAttendees, duration).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readMeetingFile(file)
			if err != nil {
				return err
			}

			free := meeting.Query(in.Events, in.Request)
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), free)
			}
			return printRanges(cmd.OutOrStdout(), free)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with events and the request")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}

	return cmd
}

func readMeetingFile(path string) (meetingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return meetingFile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var in meetingFile
	if err := json.Unmarshal(data, &in); err != nil {
		return meetingFile{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if in.Request.Duration < 0 {
		return meetingFile{}, fmt.Errorf("duration must not be negative")
	}
	for i, e := range in.Events {
		if err := e.When.Validate(); err != nil {
			return meetingFile{}, fmt.Errorf("event %d (%s): %w", i, e.Title, err)
		}
	}
	return in, nil
}
