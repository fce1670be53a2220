package logger

import (
	"fmt"
	"sync"
	"testing"
)

func TestSetAndRestore(t *testing.T) {
	var got []string
	Set(func(level Level, format string, args ...any) {
		got = append(got, level.String()+" "+fmt.Sprintf(format, args...))
	})
	Warnf("[HOOK] %s failed", "open")
	Debugf("tick %d", 1)
	Set(nil)
	Infof("after restore")

	want := []string{"WARN [HOOK] open failed", "DEBUG tick 1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConcurrentSet(t *testing.T) {
	defer Set(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Set(func(Level, string, ...any) {})
		}()
		go func() {
			defer wg.Done()
			Debugf("concurrent %d", 1)
		}()
	}
	wg.Wait()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"debug", Debug, false},
		{"INFO", Info, false},
		{"Warning", Warn, false},
		{"error", Error, false},
		{"verbose", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestFilter(t *testing.T) {
	var got []Level
	p := Filter(Warn, func(level Level, _ string, _ ...any) { got = append(got, level) })
	for _, l := range []Level{Debug, Info, Warn, Error} {
		p(l, "x")
	}
	if len(got) != 2 || got[0] != Warn || got[1] != Error {
		t.Errorf("passed levels = %v, want [WARN ERROR]", got)
	}
}
