package command

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionTemplate(t *testing.T) {
	cmd := NewRootCmd("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := out.String(); got != "murmur version 1.2.3\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestChatRequiresServer(t *testing.T) {
	t.Setenv("MURMUR_SERVER", "")
	t.Setenv("MURMUR_USER", "")

	cmd := NewRootCmd("dev")
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"chat", "lobby", "--user", "alice"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error without a server")
	}
	if !strings.Contains(err.Error(), "MURMUR_SERVER") {
		t.Errorf("error = %q, want mention of MURMUR_SERVER", err)
	}
}

func TestChatRequiresUsername(t *testing.T) {
	t.Setenv("MURMUR_SERVER", "http://localhost:8080")
	t.Setenv("MURMUR_USER", "")

	cmd := NewRootCmd("dev")
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"chat", "lobby"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error without a username")
	}
	if !strings.Contains(err.Error(), "--user") {
		t.Errorf("error = %q, want mention of --user", err)
	}
}
