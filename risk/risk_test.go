package risk

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	cases := map[string]Level{
		"delete_ticket":      High,
		"create_user":        Moderate,
		"update_view":        Moderate,
		"get_ticket":         Safe,
		"list_tool_risks":    Safe,
		"apply_macro":        Safe,
		"undelete_ticket":    Safe,
		"Delete_ticket":      Safe,
		"summarize_comments": Safe,
	}
	for name, want := range cases {
		if got := Classify(name); got != want {
			t.Fatalf("%s: want %s got %s", name, want, got)
		}
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe("delete_group", "Delete a group"); got != "[HIGH_RISK] Delete a group" {
		t.Fatalf("got %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	for _, in := range []string{"high_risk", "HIGH_RISK", "High_Risk"} {
		if l, ok := ParseLevel(in); !ok || l != High {
			t.Fatalf("%s: got %v %v", in, l, ok)
		}
	}
	if _, ok := ParseLevel("critical"); ok {
		t.Fatalf("unexpected match for critical")
	}
	if High.Category() != "high_risk" {
		t.Fatalf("category: got %s", High.Category())
	}
}

func TestGroup(t *testing.T) {
	got := Group([]string{"get_a", "delete_a", "create_a", "list_a"})
	want := map[Level][]string{
		Safe:     {"get_a", "list_a"},
		Moderate: {"create_a"},
		High:     {"delete_a"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("group mismatch (-want +got):\n%s", diff)
	}
}
