package gputex

import "testing"

func TestFrontBackSwap(t *testing.T) {
	front := &Texture{Size: 1024}
	back := &Texture{Size: 1024}
	fb := &FrontBack{Front: front, Back: back}

	fb.Swap()
	if fb.Front != back || fb.Back != front {
		t.Fatal("Swap did not exchange front and back")
	}

	fb.Swap()
	if fb.Front != front || fb.Back != back {
		t.Fatal("second Swap did not restore original order")
	}
}
