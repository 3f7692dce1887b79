package route

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type linkSet map[[2]int]bool

func (ls linkSet) HasEdge(u int, v int) bool {
	return ls[[2]int{u, v}] || ls[[2]int{v, u}]
}

func TestRoute_Walks(t *testing.T) {
	// 1---2---3   4
	links := linkSet{{1, 2}: true, {2, 3}: true}

	testCases := []struct {
		desc  string
		route Route
		want  bool
	}{
		{
			desc:  "single node",
			route: New(4),
			want:  true,
		},
		{
			desc:  "one hop",
			route: New(1, 2),
			want:  true,
		},
		{
			desc:  "two hops reversed",
			route: New(3, 2, 1),
			want:  true,
		},
		{
			desc:  "skips a node",
			route: New(1, 3),
			want:  false,
		},
		{
			desc:  "disconnected node",
			route: New(3, 4),
			want:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if got := tc.route.Walks(links); got != tc.want {
				t.Errorf("Walks(): want %t, got %t", tc.want, got)
			}
		})
	}
}

func TestRoute_zeroValue(t *testing.T) {
	var r Route

	if got := r.Length(); got != 0 {
		t.Errorf("Length(): want 0, got %d", got)
	}
	if got := r.Hops(); got != 0 {
		t.Errorf("Hops(): want 0, got %d", got)
	}
	if got := r.String(); got != "" {
		t.Errorf("String(): want empty string, got %q", got)
	}
	if r.Connects(0, 0) {
		t.Errorf("Connects(0, 0): want false, got true")
	}
}

func TestNew_panicsWithoutNodes(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("New(): want panic, got none")
		}
	}()
	New()
}

func TestRoute_Reverse_keepsOriginal(t *testing.T) {
	r := New(4, 3, 2)
	want := []int{4, 3, 2}

	_ = r.Reverse()

	if diff := cmp.Diff(want, r.Nodes()); diff != "" {
		t.Errorf("Nodes(): mismatch (-want +got):\n%s", diff)
	}
}
