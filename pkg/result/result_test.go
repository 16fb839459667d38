package result

import "testing"

func TestEnvelopeConstructors(t *testing.T) {
	l := Loading[int]()
	if l.Kind != KindLoading || l.Terminal() {
		t.Fatalf("unexpected loading envelope: %#v", l)
	}

	s := Success(42)
	if s.Kind != KindSuccess || s.Value != 42 || !s.Terminal() {
		t.Fatalf("unexpected success envelope: %#v", s)
	}

	e := Failure[int]("boom")
	if e.Kind != KindError || e.Message != "boom" || !e.Terminal() {
		t.Fatalf("unexpected error envelope: %#v", e)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindLoading: "loading",
		KindSuccess: "success",
		KindError:   "error",
		Kind(99):    "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
