package docs

import (
	"strings"
	"testing"
)

func TestEverySectionHasContent(t *testing.T) {
	if len(SectionNames) != len(sections) {
		t.Fatalf("section list and table disagree: %d vs %d", len(SectionNames), len(sections))
	}
	for _, name := range SectionNames {
		if _, ok := sections[name]; !ok {
			t.Fatalf("missing section %q", name)
		}
	}
}

func TestUnknownSectionListsKeys(t *testing.T) {
	got := Section("billing")
	for _, name := range SectionNames {
		if !strings.Contains(got, name) {
			t.Fatalf("listing missing %q: %s", name, got)
		}
	}
}

func TestRiskCategory(t *testing.T) {
	tools := []string{"get_ticket", "delete_ticket", "update_ticket"}

	high := RiskCategory("high_risk", tools)
	if !strings.Contains(high, "[HIGH_RISK] delete_ticket") || strings.Contains(high, "get_ticket") {
		t.Fatalf("unexpected high listing: %s", high)
	}
	all := RiskCategory("all", tools)
	for _, want := range []string{"[SAFE] get_ticket", "[MODERATE_RISK] update_ticket", "[HIGH_RISK] delete_ticket"} {
		if !strings.Contains(all, want) {
			t.Fatalf("missing %q in %s", want, all)
		}
	}
	unknown := RiskCategory("critical", tools)
	if !strings.Contains(unknown, "moderate_risk") {
		t.Fatalf("unknown category should list keys: %s", unknown)
	}
}
