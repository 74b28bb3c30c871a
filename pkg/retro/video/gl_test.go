package video

import "testing"

func TestPow2(t *testing.T) {
	tests := []struct{ in, out int }{
		{1, 1}, {2, 2}, {3, 4}, {160, 256}, {224, 256}, {240, 256}, {320, 512}, {512, 512},
	}
	for _, test := range tests {
		if got := pow2(test.in); got != test.out {
			t.Errorf("pow2(%v) = %v, want %v", test.in, got, test.out)
		}
	}
}
