package cli

import (
	"bytes"
	"strings"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	_, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	formatFlag := root.PersistentFlags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("expected --format flag to exist")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("expected --format default 'text', got %q", formatFlag.DefValue)
	}

	dbFlag := root.PersistentFlags().Lookup("db")
	if dbFlag == nil {
		t.Fatal("expected --db flag to exist")
	}
}

func TestSubcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"serve", "comments", "milk", "farms", "color", "meeting", "status", "config", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected subcommand %q", name)
		}
	}

	for _, name := range []string{"list", "delete-all", "add"} {
		cmd, _, err := root.Find([]string{"comments", name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected subcommand comments %q", name)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "portfolio ") {
		t.Errorf("output = %q", out)
	}
}

func TestServeInvalidPortEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_PORT", "not-a-port")

	_, err := executeCommand("serve", "--env-file", "does-not-exist.env")
	if err == nil {
		t.Fatal("expected error for invalid PORTFOLIO_PORT")
	}
}
