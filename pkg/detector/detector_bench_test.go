package detector_test

import (
	"testing"
)

func BenchmarkDetector_Detect(b *testing.B) {
	d := defaultDetector()

	urls := []string{
		"http://en.test.com/",
		"http://www.test.com/path/index.html?lang=en-US",
		"http://www.test.com/path/en/index.html",
		"http://www.test.com/?a=b&language=fra",
		"http://www.test.com/nothing/here",
	}

	b.ResetTimer()

	for i := range b.N {
		d.Detect(urls[i%len(urls)])
	}
}
