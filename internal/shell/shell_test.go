package shell

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quocvuong92/agentsh/internal/config"
	"github.com/quocvuong92/agentsh/internal/logging"
)

// newTestShell builds a Shell against a temp agents dir with output
// captured in a buffer and logging silenced.
func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		AgentsDir:   dir,
		Model:       "test-model",
		HistoryFile: filepath.Join(dir, "history.txt"),
	}

	sh, err := New(cfg, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out bytes.Buffer
	sh.session.Out = &out
	sh.session.In = strings.NewReader("")

	sh.log = logging.New(logging.Options{Level: logging.LevelNone, Output: io.Discard})
	sh.dispatcher = NewDispatcher(sh.registry, sh.session, sh.log)

	return sh, &out
}

// writeAgentFile drops a minimal agent definition into dir
func writeAgentFile(t *testing.T, dir, name string) {
	t.Helper()

	def := map[string]any{
		"name":          name,
		"bio":           "A test agent.",
		"model":         "test-model",
		"loop_interval": 1,
	}
	data, err := json.Marshal(def)
	if err != nil {
		t.Fatalf("marshal agent definition: %v", err)
	}
	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write agent file: %v", err)
	}
}
