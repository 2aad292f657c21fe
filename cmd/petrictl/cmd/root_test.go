package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jt05610/petrisym/examples"
	pf "github.com/jt05610/petrisym/petrifile"
	"github.com/jt05610/petrisym/petrifile/v1/yaml"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func mutexFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mutex.yaml")
	df, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer df.Close()
	f := &pf.File{
		Net:     examples.Mutex(),
		Queries: []pf.Query{{Name: "exclusion", Formula: `AG(!(crit1 >= 1 && crit2 >= 1))`}},
	}
	if err := (&yaml.Service{}).Save(context.Background(), df, f); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReduce(t *testing.T) {
	out := run(t, "reduce", "EF(EF(true))")
	if strings.TrimSpace(out) != "true" {
		t.Errorf("expected true, got %q", out)
	}
}

func TestCheck(t *testing.T) {
	path := mutexFile(t)
	out := run(t, "check", path, "-q", `fireable("exit1") && fireable("exit2")`)
	for _, want := range []string{"exclusion:", "initial marking: true", "query 1:", "markings: 8 in"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in\n%s", want, out)
		}
	}
}

func TestInfo(t *testing.T) {
	out := run(t, "info", mutexFile(t))
	for _, want := range []string{"5 places, 4 transitions", "markings within capacity: 32"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in\n%s", want, out)
		}
	}
}
