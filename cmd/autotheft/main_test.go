package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestExecuteClosesLogOnError(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"failing command", []string{"config", "--difficulty", "impossible"}, true},
		{"successful command", []string{"config", "--difficulty", "hard"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "autotheft.log")
			t.Cleanup(func() {
				flagLogPath, flagDifficulty, flagConfig = "~/.autotheft/autotheft.log", "", ""
				rootCmd.SetArgs(nil)
			})

			rootCmd.SetOut(io.Discard)
			rootCmd.SetErr(io.Discard)
			rootCmd.SetArgs(append(tc.args, "--log", path))

			err := execute()
			if (err != nil) != tc.wantErr {
				t.Fatalf("execute() error = %v, wantErr %v", err, tc.wantErr)
			}
			if logFile != nil {
				t.Error("log file should be closed after the command returns")
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("log file was not created: %v", err)
			}
		})
	}
}
