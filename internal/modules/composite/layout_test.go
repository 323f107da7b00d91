// README: Layout geometry tests, including the reference 4000x3000 frame.
package composite

import "testing"

func TestComputeLayoutReferenceFrame(t *testing.T) {
	l := ComputeLayout(4000, 3000)

	if l.BandHeight != 375 {
		t.Errorf("BandHeight = %d, want 375", l.BandHeight)
	}
	if l.BandY != 2625 || l.BandY+l.BandHeight != 3000 {
		t.Errorf("band spans y=%d..%d, want 2625..3000", l.BandY, l.BandY+l.BandHeight)
	}
	if l.BandX != 500 || l.BandWidth != 3000 {
		t.Errorf("band x=%d width=%d, want 500/3000", l.BandX, l.BandWidth)
	}
	if l.ThumbSize != 470 {
		t.Errorf("ThumbSize = %d, want 470", l.ThumbSize)
	}
	if l.ThumbX != 510 || l.ThumbY != 2640 {
		t.Errorf("thumb at (%d,%d), want (510,2640)", l.ThumbX, l.ThumbY)
	}
	if l.TextX < 980 {
		t.Errorf("TextX = %d, want >= 980", l.TextX)
	}
	if l.TextY != 2660 {
		t.Errorf("TextY = %d, want 2660", l.TextY)
	}
	if l.LinePitch != 75 {
		t.Errorf("LinePitch = %d, want 75", l.LinePitch)
	}
}

func TestComputeLayoutScalesLinearly(t *testing.T) {
	small := ComputeLayout(2000, 1500)
	large := ComputeLayout(4000, 3000)

	if large.BandHeight != 2*small.BandHeight {
		t.Errorf("BandHeight %d vs %d: not linear", small.BandHeight, large.BandHeight)
	}
	if large.LinePitch != 2*small.LinePitch {
		t.Errorf("LinePitch %d vs %d: not linear", small.LinePitch, large.LinePitch)
	}
	if large.BandY != 2*small.BandY {
		t.Errorf("BandY %d vs %d: not linear", small.BandY, large.BandY)
	}
}

func TestComputeLayoutTextClearsThumbnail(t *testing.T) {
	cases := []struct{ w, h int }{
		{4000, 3000},
		{1920, 1080},
		{1280, 720},
		{640, 480},
		{3072, 4096}, // portrait
	}
	for _, tc := range cases {
		l := ComputeLayout(tc.w, tc.h)
		if l.TextX <= l.ThumbX+l.ThumbSize {
			t.Errorf("%dx%d: text column x=%d overlaps thumbnail ending at %d",
				tc.w, tc.h, l.TextX, l.ThumbX+l.ThumbSize)
		}
		if l.BandY+l.BandHeight != tc.h {
			t.Errorf("%dx%d: band not flush to bottom", tc.w, tc.h)
		}
	}
}
