package ringbuf

import "testing"

func TestWriteReadRoundTrip(t *testing.T) {
	r := New(16)

	r.Lock()
	r.Write([]byte("hello"))
	r.Unlock()

	if !r.CanRead() {
		t.Fatal("expected CanRead true after write")
	}

	r.Lock()
	out := make([]byte, 5)
	r.Read(out)
	r.Unlock()

	if string(out) != "hello" {
		t.Errorf("expected %q, got %q", "hello", out)
	}
	if r.CanRead() {
		t.Error("expected CanRead false after draining")
	}
}

func TestWrapAround(t *testing.T) {
	r := New(8)

	r.Lock()
	r.Write([]byte("abcdef")) // write_pos = 6
	r.Unlock()
	r.Lock()
	drain := make([]byte, 6)
	r.Read(drain)
	r.Unlock()

	r.Lock()
	r.Write([]byte("0123456")) // write_pos 6 -> wraps: (6+7)-8=5
	r.Unlock()

	if !r.CanRead() {
		t.Fatal("expected CanRead true")
	}

	r.Lock()
	out := make([]byte, 7)
	r.Read(out)
	r.Unlock()

	if string(out) != "0123456" {
		t.Errorf("expected %q after wraparound, got %q", "0123456", out)
	}
}

func TestLength(t *testing.T) {
	r := New(16)
	r.Lock()
	r.Write([]byte("1234"))
	if got := r.Length(); got != 4 {
		t.Errorf("expected length 4, got %d", got)
	}
	r.Unlock()
}
