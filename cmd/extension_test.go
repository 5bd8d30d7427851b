package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	e := newTestEnv(t, "")

	dir := t.TempDir()
	script := "#!/bin/sh\necho \"$MONO_LEDGER_FILE $MONO_CURRENCY $MONO_VERBOSE $*\"\nexit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "mono-hello"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found || code != 3 {
		t.Fatalf("RunExtension() = %t, %d; want true, 3", found, code)
	}
	if got, want := e.out.String(), e.file+" USD false a b\n"; got != want {
		t.Errorf("extension output = %q, want %q", got, want)
	}

	if found, _ := RunExtension("no-such-extension", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}
