package langdetect

import (
	"testing"
)

func BenchmarkDetectMarkup(b *testing.B) {
	content := []byte(`<!DOCTYPE html>
<html>
<body><script>a + b</script></body>
</html>`)
	b.ResetTimer()
	for range b.N {
		Detect("index.html", content)
	}
}

func BenchmarkDetectUnknownExtension(b *testing.B) {
	content := []byte("count = count + 1 /* step */")
	b.ResetTimer()
	for range b.N {
		Detect("step.calc", content)
	}
}
