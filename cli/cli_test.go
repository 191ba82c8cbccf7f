package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
)

func TestActionCommand(t *testing.T) {
	called := false
	root := NewRootCommand("app", "short", "long")
	root.AddCommand(NewActionCommand("do", "Do it.", "Do it.", func(cmd *cobra.Command, args []string) error {
		called = true
		return nil
	}))
	root.AddCommand(NewActionCommand("fail", "Fail.", "Fail.", func(cmd *cobra.Command, args []string) error {
		return errors.New("failed")
	}))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	root.SetArgs([]string{"do"})
	if err := root.Execute(); err != nil || !called {
		t.Fatal("Expect the action to run", err)
	}
	root.SetArgs([]string{"fail"})
	if err := root.Execute(); err == nil {
		t.Fatal("Expect the action's error")
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("app")
	if cmd.Use != "version" {
		t.Fatal("Unexpected use", cmd.Use)
	}
	if NewInitCommand("app", nil).Use != "init" {
		t.Fatal("Unexpected init use")
	}
}
