package papi

import "testing"

func TestVersionRoundTrip(t *testing.T) {
	for _, c := range []uint8{0, 1, 4, 5, 127, 128, 254, 255} {
		for _, d := range []uint8{0, 3, 200, 255} {
			v := NewVersion(c, d, c^d, d)
			maj, min, rev, inc := v.Unpack()
			if maj != c || min != d || rev != c^d || inc != d {
				t.Fatalf("Unpack(NewVersion(%d, %d, %d, %d)) = %d, %d, %d, %d", c, d, c^d, d, maj, min, rev, inc)
			}
		}
	}
}

func TestVersionBits(t *testing.T) {
	v := NewVersion(5, 4, 1, 0)
	if uint32(v) != 0x05040100 {
		t.Errorf("NewVersion(5, 4, 1, 0) = %#08x, want 0x05040100", uint32(v))
	}
	if uint32(CurrentVersion) != 0x05040000 {
		t.Errorf("CurrentVersion = %#08x, want 0x05040000", uint32(CurrentVersion))
	}
	if got := v.String(); got != "5.4.1.0" {
		t.Errorf("String() = %q, want %q", got, "5.4.1.0")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"5.4", NewVersion(5, 4, 0, 0), false},
		{"5.4.1", NewVersion(5, 4, 1, 0), false},
		{"6.0.0.1", NewVersion(6, 0, 0, 1), false},
		{"5", 0, true},
		{"5.4.1.0.2", 0, true},
		{"5.256", 0, true},
		{"a.b", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseVersion(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVersion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVersion(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
