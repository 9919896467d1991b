package capability

import "testing"

func TestDetectSubprocess(t *testing.T) {
	caps := Detect(`import subprocess
subprocess.run(["ls", "-la"])`)
	if len(caps) != 1 {
		t.Fatalf("Expected 1 capability, got %d: %v", len(caps), caps)
	}
	if caps[0].Kind != "execve/system" {
		t.Errorf("Expected execve/system, got %q", caps[0].Kind)
	}
	if caps[0].Reason != "calls to subprocess or os.system" {
		t.Errorf("Unexpected reason: %q", caps[0].Reason)
	}
}

func TestDetectFileAccess(t *testing.T) {
	caps := Detect(`with open("data.txt") as f:
    body = f.read()`)
	if len(caps) != 1 || caps[0].Kind != "open/read/write" {
		t.Fatalf("Expected open/read/write only, got %v", caps)
	}
	if caps[0].Reason != "file open calls found" {
		t.Errorf("Unexpected reason: %q", caps[0].Reason)
	}
}

func TestDetectNetwork(t *testing.T) {
	caps := Detect(`resp = requests.get(url)`)
	if len(caps) != 1 || caps[0].Kind != "network" {
		t.Fatalf("Expected network only, got %v", caps)
	}
}

func TestDetectMultipleInFixedOrder(t *testing.T) {
	code := `os.system("ls")
open("f")
s = socket(AF_INET)
requests.post(url)`
	caps := Detect(code)
	if len(caps) != 4 {
		t.Fatalf("Expected all 4 capabilities, got %d: %v", len(caps), caps)
	}
	order := []string{"execve/system", "open/read/write", "socket", "network"}
	for i, want := range order {
		if caps[i].Kind != want {
			t.Errorf("Position %d: expected %q, got %q", i, want, caps[i].Kind)
		}
	}
}

func TestDetectCleanCode(t *testing.T) {
	if caps := Detect("def add(a, b):\n    return a + b"); len(caps) != 0 {
		t.Errorf("Expected no capabilities, got %v", caps)
	}
}
