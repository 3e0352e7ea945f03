package autodetect

import "testing"

func TestDetectDPKGShape(t *testing.T) {
	format, ok := Detect([]byte("2020-01-02 03:04:05 some log message"))
	if !ok {
		t.Fatal("expected a match for a DPKG/unpadded-datetime-shaped sample")
	}
	if format != "%Y-%m-%d %H:%M:%S" {
		t.Fatalf("format = %q", format)
	}
}

func TestDetectRFC3339Shape(t *testing.T) {
	format, ok := Detect([]byte("2020-01-02T03:04:05+00:00 some log message"))
	if !ok {
		t.Fatal("expected a match for an RFC3339-shaped sample")
	}
	if format != "%Y-%m-%dT%H:%M:%S%z" {
		t.Fatalf("format = %q", format)
	}
}

func TestDetectNoMatch(t *testing.T) {
	_, ok := Detect([]byte("this has no recognizable timestamp in it at all"))
	if ok {
		t.Fatal("expected ok=false for a sample with no timestamp")
	}
}
