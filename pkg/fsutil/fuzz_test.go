package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/inclex/pkg/fsutil"
)

func FuzzWriteAtomicRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("<script>a /* b */ c</script>"))
	f.Add([]byte{0x00, 0xff, '\n'})

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "f")
		if err := fsutil.WriteAtomic(context.Background(), path, content, 0); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}
		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(got) != string(content) {
			t.Fatalf("content mismatch")
		}
		if changed, _ := fsutil.Changed(info, content); changed {
			t.Fatalf("Changed reported a difference for identical content")
		}
		_ = os.Remove(path)
	})
}
