package sim

import (
	"github.com/user/adventure-sim/internal/interfaces"
)

// Catalog holds the loaded events of one category and supports random
// and filtered retrieval. Catalogs are read-only after load.
type Catalog struct {
	name   string
	events []interfaces.Event
}

// NewCatalog creates an empty catalog with a display name.
func NewCatalog(name string) *Catalog {
	return &Catalog{name: name}
}

// Name returns the catalog's display name.
func (cat *Catalog) Name() string {
	return cat.name
}

// Add appends an event to the catalog.
func (cat *Catalog) Add(ev interfaces.Event) {
	cat.events = append(cat.events, ev)
}

// Len returns the number of loaded events.
func (cat *Catalog) Len() int {
	return len(cat.events)
}

// Events returns the backing slice; callers must not mutate it.
func (cat *Catalog) Events() []interfaces.Event {
	return cat.events
}

// Random returns a uniformly chosen event, or nil for an empty catalog.
func (cat *Catalog) Random(r interfaces.Roller) interfaces.Event {
	if len(cat.events) == 0 {
		return nil
	}
	return cat.events[r.Intn(len(cat.events))]
}

// ByID looks up an event by identifier.
func (cat *Catalog) ByID(id string) interfaces.Event {
	for _, ev := range cat.events {
		if ev.ID() == id {
			return ev
		}
	}
	return nil
}

// RandomByPrimary returns a random attribute-check event whose primary
// attribute is one of the given keys. If the filter yields nothing it
// falls back to an unfiltered random pick.
func (cat *Catalog) RandomByPrimary(attrs []string, r interfaces.Roller) interfaces.Event {
	var filtered []interfaces.Event
	for _, ev := range cat.events {
		check, ok := ev.(*AttributeCheckEvent)
		if !ok {
			continue
		}
		for _, attr := range attrs {
			if check.PrimaryAttribute() == attr {
				filtered = append(filtered, ev)
				break
			}
		}
	}
	if len(filtered) == 0 {
		return cat.Random(r)
	}
	return filtered[r.Intn(len(filtered))]
}
