package switchbox

import "testing"

func TestSlavePortShimTable(t *testing.T) {
	cases := []struct {
		bundle Bundle
		index  uint8
		want   uint8
	}{
		{BundleDMA, 0, 2},
		{BundleSouth, 0, 3},
		{BundleWest, 0, 11},
		{BundleNorth, 0, 15},
		{BundleEast, 0, 19},
	}
	for _, c := range cases {
		got, err := SlavePort(c.bundle, c.index, true)
		if err != nil {
			t.Fatalf("SlavePort(%s, %d, shim) error: %v", c.bundle, c.index, err)
		}
		if got != c.want {
			t.Errorf("SlavePort(%s, %d, shim) = %d, want %d", c.bundle, c.index, got, c.want)
		}
	}
}

func TestSlavePortMETable(t *testing.T) {
	cases := []struct {
		bundle Bundle
		want   uint8
	}{
		{BundleDMA, 2},
		{BundleSouth, 7},
		{BundleWest, 13},
		{BundleNorth, 17},
		{BundleEast, 21},
	}
	for _, c := range cases {
		got, err := SlavePort(c.bundle, 0, false)
		if err != nil {
			t.Fatalf("SlavePort(%s, 0, me) error: %v", c.bundle, err)
		}
		if got != c.want {
			t.Errorf("SlavePort(%s, 0, me) = %d, want %d", c.bundle, got, c.want)
		}
	}
}

func TestMasterPortShimTable(t *testing.T) {
	cases := []struct {
		bundle Bundle
		want   uint8
	}{
		{BundleDMA, 2},
		{BundleSouth, 3},
		{BundleWest, 9},
		{BundleNorth, 13},
		{BundleEast, 19},
	}
	for _, c := range cases {
		got, err := MasterPort(c.bundle, 0, true)
		if err != nil {
			t.Fatalf("MasterPort(%s, 0, shim) error: %v", c.bundle, err)
		}
		if got != c.want {
			t.Errorf("MasterPort(%s, 0, shim) = %d, want %d", c.bundle, got, c.want)
		}
	}
}

func TestMasterPortMETable(t *testing.T) {
	cases := []struct {
		bundle Bundle
		want   uint8
	}{
		{BundleDMA, 2},
		{BundleSouth, 7},
		{BundleWest, 11},
		{BundleNorth, 15},
		{BundleEast, 21},
	}
	for _, c := range cases {
		got, err := MasterPort(c.bundle, 0, false)
		if err != nil {
			t.Fatalf("MasterPort(%s, 0, me) error: %v", c.bundle, err)
		}
		if got != c.want {
			t.Errorf("MasterPort(%s, 0, me) = %d, want %d", c.bundle, got, c.want)
		}
	}
}

func TestSlavePortUnknownBundleErrors(t *testing.T) {
	if _, err := SlavePort(Bundle("bogus"), 0, false); err == nil {
		t.Fatal("expected error for unknown bundle")
	}
}

func TestSlavePortIndexOutOfRange(t *testing.T) {
	if _, err := SlavePort(BundleDMA, 255, false); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}
