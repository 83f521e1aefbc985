package plugin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestExecutor_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	scriptPath := writeScript(t, tmpDir, "test-plugin.sh", `#!/bin/sh
cat <<'EOF'
{"success":true,"data":{"message":"hello world"}}
EOF
`)

	p := &Plugin{
		Manifest: Manifest{
			Name:       "test-plugin",
			Version:    "1.0.0",
			Executable: "test-plugin.sh",
			Actions:    []string{"log"},
		},
		Path:       tmpDir,
		Executable: scriptPath,
	}

	req := &Request{
		Action:  "log",
		Gesture: "pinch",
		Side:    "right",
		Active:  true,
		Config:  json.RawMessage(`{"key":"value"}`),
	}

	executor := NewExecutor(5 * time.Second)
	response, err := executor.Execute(p, req)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if !response.Success {
		t.Error("expected success=true")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data["message"] != "hello world" {
		t.Errorf("expected message 'hello world', got %v", data["message"])
	}
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	scriptPath := writeScript(t, tmpDir, "echo-plugin.sh", `#!/bin/sh
INPUT=$(cat)
echo "{\"success\":true,\"data\":{\"received\":$INPUT}}"
`)

	p := &Plugin{
		Manifest:   Manifest{Name: "echo-plugin", Executable: "echo-plugin.sh"},
		Path:       tmpDir,
		Executable: scriptPath,
	}

	req := &Request{Action: "echo", Gesture: "spread", Side: "left", Active: false}

	executor := NewExecutor(5 * time.Second)
	response, err := executor.Execute(p, req)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	var data struct {
		Received Request `json:"received"`
	}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data.Received.Gesture != "spread" || data.Received.Side != "left" || data.Received.Active {
		t.Errorf("plugin received %+v, want the original request", data.Received)
	}
}

func TestExecutor_Execute_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	scriptPath := writeScript(t, tmpDir, "slow-plugin.sh", `#!/bin/sh
sleep 5
echo '{"success":true}'
`)

	p := &Plugin{
		Manifest:   Manifest{Name: "slow-plugin", Executable: "slow-plugin.sh"},
		Path:       tmpDir,
		Executable: scriptPath,
	}

	executor := NewExecutor(100 * time.Millisecond)
	_, err := executor.Execute(p, &Request{Action: "noop"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("error = %v, want timeout", err)
	}
}

func TestExecutor_Execute_InvalidOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir := t.TempDir()
	scriptPath := writeScript(t, tmpDir, "bad-plugin.sh", `#!/bin/sh
echo "not json"
`)

	p := &Plugin{
		Manifest:   Manifest{Name: "bad-plugin", Executable: "bad-plugin.sh"},
		Path:       tmpDir,
		Executable: scriptPath,
	}

	executor := NewExecutor(5 * time.Second)
	if _, err := executor.Execute(p, &Request{Action: "noop"}); err == nil {
		t.Fatal("expected parse error for non-JSON output")
	}
}
