package pagination

import "testing"

func TestNormalize(t *testing.T) {
	testCases := []struct {
		in   Query
		want Query
	}{
		{in: Query{}, want: Query{Start: 0, Limit: 20}},
		{in: Query{Start: -3, Limit: 5}, want: Query{Start: 0, Limit: 5}},
		{in: Query{Start: 40, Limit: 1000}, want: Query{Start: 40, Limit: 100}},
	}
	for _, c := range testCases {
		q := c.in
		q.Normalize()
		if q != c.want {
			t.Errorf("normalize %+v = %+v, want %+v", c.in, q, c.want)
		}
	}
}
