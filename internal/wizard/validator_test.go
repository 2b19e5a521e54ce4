package wizard

import (
	"testing"

	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
)

func completeValues() FormValues {
	return FormValues{
		Name:        "The Left Hand of Darkness",
		Description: "A Hainish cycle classic.",
		Category:    "science-fiction",
		PriceCents:  45000,
		Brand:       "Ace Books",
		ImageURLs:   []string{"https://cdn.example.com/covers/lhod.jpg"},
		GroupBuy:    enums.TriStateOff,
		Stock:       12,
	}
}

func TestEvaluateBasicTab(t *testing.T) {
	v := New()
	values := completeValues()

	if !v.Evaluate(enums.ListingTabBasic, values) {
		t.Fatal("complete basic fields should satisfy the tab")
	}
	if !v.Completed(enums.ListingTabBasic) {
		t.Fatal("basic should be in the completed set")
	}

	// Clearing a field must remove the tab again; completion is never sticky.
	values.Name = "   "
	if v.Evaluate(enums.ListingTabBasic, values) {
		t.Fatal("blank name should invalidate the basic tab")
	}
	if v.Completed(enums.ListingTabBasic) {
		t.Fatal("basic should have left the completed set")
	}
}

func TestEvaluateDetailsTabRequiresPositivePriceAndBrand(t *testing.T) {
	v := New()
	values := completeValues()

	if !v.Evaluate(enums.ListingTabDetails, values) {
		t.Fatal("valid details should satisfy the tab")
	}

	values.PriceCents = 0
	if v.Evaluate(enums.ListingTabDetails, values) {
		t.Fatal("zero price should invalidate the details tab")
	}

	values.PriceCents = 45000
	values.Brand = ""
	if v.Evaluate(enums.ListingTabDetails, values) {
		t.Fatal("empty brand should invalidate the details tab")
	}
}

func TestImagesTabHasNoHardRequirement(t *testing.T) {
	v := New()
	if !v.Evaluate(enums.ListingTabImages, FormValues{}) {
		t.Fatal("images tab is satisfied even with no images")
	}
}

func TestInventoryTabRequiresExplicitGroupBuyChoice(t *testing.T) {
	v := New()
	values := completeValues()

	values.GroupBuy = enums.TriStateUnset
	if v.Evaluate(enums.ListingTabInventory, values) {
		t.Fatal("undecided group-buy toggle must not satisfy the inventory tab")
	}

	// An explicit "off" is a decision, unlike the default.
	values.GroupBuy = enums.TriStateOff
	if !v.Evaluate(enums.ListingTabInventory, values) {
		t.Fatal("explicit off should satisfy the inventory tab")
	}

	values.GroupBuy = enums.TriStateOn
	if !v.Evaluate(enums.ListingTabInventory, values) {
		t.Fatal("explicit on should satisfy the inventory tab")
	}
}

func TestIsReadyRequiresAllTabs(t *testing.T) {
	v := New()
	values := completeValues()

	v.EvaluateAll(values)
	if !v.IsReady() {
		t.Fatalf("all tabs satisfied but not ready; missing %v", v.MissingTabs())
	}

	// Invalidating any single tab flips readiness off.
	values.GroupBuy = enums.TriStateUnset
	v.Evaluate(enums.ListingTabInventory, values)
	if v.IsReady() {
		t.Fatal("ready must be false with one tab incomplete")
	}
}

func TestCheckReadyEnumeratesMissingTabs(t *testing.T) {
	v := New()
	values := completeValues()
	values.Brand = ""
	values.GroupBuy = enums.TriStateUnset
	v.EvaluateAll(values)

	err := v.CheckReady()
	if !pkgerrors.HasCode(err, pkgerrors.CodeIncompleteListing) {
		t.Fatalf("expected incomplete-listing error, got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string][]string)
	if !ok {
		t.Fatalf("expected missing-tab details, got %T", pkgerrors.As(err).Details())
	}
	missing := details["missing_tabs"]
	if len(missing) != 2 || missing[0] != "details" || missing[1] != "inventory" {
		t.Fatalf("expected [details inventory] in order, got %v", missing)
	}
}

func TestNextTabFollowsFixedOrder(t *testing.T) {
	cases := []struct {
		current enums.ListingTab
		next    enums.ListingTab
		ok      bool
	}{
		{enums.ListingTabBasic, enums.ListingTabDetails, true},
		{enums.ListingTabDetails, enums.ListingTabImages, true},
		{enums.ListingTabImages, enums.ListingTabInventory, true},
		{enums.ListingTabInventory, enums.ListingTabInventory, false},
	}
	for _, tc := range cases {
		next, ok := NextTab(tc.current)
		if next != tc.next || ok != tc.ok {
			t.Fatalf("NextTab(%s) = (%s, %v), want (%s, %v)", tc.current, next, ok, tc.next, tc.ok)
		}
	}
}

func TestNavigationIsUnconstrained(t *testing.T) {
	v := New()
	if v.ActiveTab() != enums.ListingTabBasic {
		t.Fatalf("wizard should start on basic, got %s", v.ActiveTab())
	}

	// Jumping ahead never requires earlier tabs to be complete.
	if !v.GoTo(enums.ListingTabInventory) {
		t.Fatal("jump to inventory should succeed")
	}
	if v.ActiveTab() != enums.ListingTabInventory {
		t.Fatalf("active tab should be inventory, got %s", v.ActiveTab())
	}
	if v.GoTo(enums.ListingTab("shipping")) {
		t.Fatal("unknown tab must be rejected")
	}

	v.GoTo(enums.ListingTabImages)
	next, ok := v.Advance()
	if !ok || next != enums.ListingTabInventory {
		t.Fatalf("Advance from images = (%s, %v), want (inventory, true)", next, ok)
	}
	if _, ok := v.Advance(); ok {
		t.Fatal("Advance past the last tab should report false")
	}
}

func TestResetClearsCompletionAndPointer(t *testing.T) {
	v := New()
	v.EvaluateAll(completeValues())
	v.GoTo(enums.ListingTabInventory)

	v.Reset()
	if v.IsReady() {
		t.Fatal("reset should clear the completed set")
	}
	if v.ActiveTab() != enums.ListingTabBasic {
		t.Fatalf("reset should return to the first tab, got %s", v.ActiveTab())
	}
	if got := len(v.MissingTabs()); got != len(enums.ListingTabOrder) {
		t.Fatalf("all tabs should be missing after reset, got %d", got)
	}
}
