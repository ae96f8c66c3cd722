package backend

import "testing"

func TestBuildQuery_OmitsEmptyValues(t *testing.T) {
	got := buildQuery([]Param{
		{Key: "status", Value: "pending"},
		{Key: "search", Value: ""},
		{Key: "vendor", Value: nil},
		{Key: "page", Value: 2},
	})
	want := "?status=pending&page=2"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildQuery_PreservesInsertionOrder(t *testing.T) {
	got := buildQuery([]Param{
		{Key: "zebra", Value: 1},
		{Key: "apple", Value: 2},
		{Key: "mango", Value: 3},
	})
	want := "?zebra=1&apple=2&mango=3"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildQuery_AllEmptyYieldsEmptyString(t *testing.T) {
	if got := buildQuery([]Param{{Key: "a", Value: ""}, {Key: "b", Value: nil}}); got != "" {
		t.Fatalf("got %q, want empty string", got)
	}
	if got := buildQuery(nil); got != "" {
		t.Fatalf("nil params: got %q, want empty string", got)
	}
}

func TestBuildQuery_StringifiesAndEscapes(t *testing.T) {
	got := buildQuery([]Param{
		{Key: "unreadOnly", Value: true},
		{Key: "q", Value: "taxi & tips"},
		{Key: "amount", Value: 125.5},
	})
	want := "?unreadOnly=true&q=taxi+%26+tips&amount=125.5"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildQuery_KeepsZeroLikeValues(t *testing.T) {
	// Only nil and "" are omitted; a literal 0 or false passed as a value
	// stays on the wire.
	got := buildQuery([]Param{{Key: "offset", Value: 0}, {Key: "deep", Value: false}})
	want := "?offset=0&deep=false"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
