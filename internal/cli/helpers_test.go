package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/spf13/pflag"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

// runCLI executes the root command with args, resetting global flag state
// first, and returns captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	sitePathFlag, configPathFlag = "", ""
	jsonOutput, verbose = false, false
	parseParts, parseDatetime = false, false
	docsSince, docsUntil = "", ""
	resolvedSitePath, cfg = "", nil
	initOutput, initDateField, initPassthrough = "", "", nil
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	t.Cleanup(func() { jsonOutput = false })

	var runErr error
	out := captureStdout(t, func() {
		rootCmd.SetArgs(args)
		runErr = rootCmd.Execute()
	})
	return out, runErr
}

// decodeResponse unmarshals a JSON envelope, decoding Data into data.
func decodeResponse(t *testing.T, out string, data interface{}) Response {
	t.Helper()
	var raw struct {
		Response
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode data: %v; out=%s", err, out)
		}
	}
	return raw.Response
}
