// Package wizard gates multi-step product-listing creation on exhaustive
// per-tab validity. Each tab has a pure predicate over its own fields only;
// completion is recomputed on every evaluation and is never sticky.
package wizard

import (
	"strings"

	pkgerrors "github.com/rahulpatwa/bookbazaar-backend/pkg/errors"
	"github.com/rahulpatwa/bookbazaar-backend/pkg/enums"
)

// FormValues holds the current field values of the listing form. The
// validator reads them; it never mutates them.
type FormValues struct {
	Name        string
	Description string
	Category    string

	PriceCents int64
	Brand      string

	ImageURLs []string

	// GroupBuy must be explicitly decided; the default is not a choice.
	GroupBuy enums.TriState
	Stock    int
}

// Validator tracks which wizard tabs are currently satisfied. It is not
// safe for concurrent use; each listing form owns its own instance.
type Validator struct {
	completed map[enums.ListingTab]bool
	active    enums.ListingTab
}

// New returns a validator positioned on the first tab with nothing
// completed.
func New() *Validator {
	return &Validator{
		completed: map[enums.ListingTab]bool{},
		active:    enums.ListingTabOrder[0],
	}
}

// Evaluate reruns the tab's predicate against the current form values and
// updates the completed set either way. It is total: unknown tabs are
// simply not completable.
func (v *Validator) Evaluate(tab enums.ListingTab, values FormValues) bool {
	ok := tabSatisfied(tab, values)
	if ok {
		v.completed[tab] = true
	} else {
		delete(v.completed, tab)
	}
	return ok
}

// EvaluateAll reruns every tab's predicate, for callers that load a saved
// draft and need the full picture at once.
func (v *Validator) EvaluateAll(values FormValues) {
	for _, tab := range enums.ListingTabOrder {
		v.Evaluate(tab, values)
	}
}

// IsReady reports whether every tab is satisfied.
func (v *Validator) IsReady() bool {
	return len(v.completed) == len(enums.ListingTabOrder)
}

// Completed reports whether a single tab is currently satisfied.
func (v *Validator) Completed(tab enums.ListingTab) bool {
	return v.completed[tab]
}

// MissingTabs lists the unsatisfied tabs in navigation order.
func (v *Validator) MissingTabs() []enums.ListingTab {
	missing := []enums.ListingTab{}
	for _, tab := range enums.ListingTabOrder {
		if !v.completed[tab] {
			missing = append(missing, tab)
		}
	}
	return missing
}

// CheckReady returns nil when submission may proceed, or an error that
// enumerates the specific missing tabs.
func (v *Validator) CheckReady() error {
	missing := v.MissingTabs()
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for _, tab := range missing {
		names = append(names, tab.String())
	}
	return pkgerrors.New(pkgerrors.CodeIncompleteListing, "listing has incomplete tabs").
		WithDetails(map[string][]string{"missing_tabs": names})
}

// ActiveTab returns the tab the wizard currently points at.
func (v *Validator) ActiveTab() enums.ListingTab {
	return v.active
}

// Advance moves the active pointer to the next tab if one exists. It never
// requires the current tab to be complete; navigation is unconstrained.
func (v *Validator) Advance() (enums.ListingTab, bool) {
	next, ok := NextTab(v.active)
	if ok {
		v.active = next
	}
	return v.active, ok
}

// GoTo jumps the active pointer to any known tab, out of order.
func (v *Validator) GoTo(tab enums.ListingTab) bool {
	if !tab.IsValid() {
		return false
	}
	v.active = tab
	return true
}

// Reset clears all completion state and returns to the first tab. Called
// when the backing form is discarded or successfully submitted.
func (v *Validator) Reset() {
	v.completed = map[enums.ListingTab]bool{}
	v.active = enums.ListingTabOrder[0]
}

// NextTab returns the tab following current in the fixed order. The second
// return is false when current is the last tab or unknown.
func NextTab(current enums.ListingTab) (enums.ListingTab, bool) {
	for i, tab := range enums.ListingTabOrder {
		if tab == current && i+1 < len(enums.ListingTabOrder) {
			return enums.ListingTabOrder[i+1], true
		}
	}
	return current, false
}

func tabSatisfied(tab enums.ListingTab, values FormValues) bool {
	switch tab {
	case enums.ListingTabBasic:
		return filled(values.Name) && filled(values.Description) && filled(values.Category)
	case enums.ListingTabDetails:
		return values.PriceCents > 0 && filled(values.Brand)
	case enums.ListingTabImages:
		// No minimum image count; visiting the tab is enough.
		return true
	case enums.ListingTabInventory:
		return values.GroupBuy.Decided()
	}
	return false
}

func filled(value string) bool {
	return strings.TrimSpace(value) != ""
}
