package main

import (
	"bytes"
	"testing"
)

// setupHome isolates configuration and data under a temporary HOME.
func setupHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ORBIT_DATA_DIR", home+"/data")
	t.Setenv("ORBIT_STORAGE_BACKEND", "")
	t.Setenv("ORBIT_LOG_LEVEL", "")
	return home
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
