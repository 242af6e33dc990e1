package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Selection is the set of guides queued for a batch payment, kept in the
// order they were picked. Only payable guides with a real row can enter; the
// batch endpoint receives IDs() verbatim so settlement order matches
// selection order.
type Selection struct {
	order   []uuid.UUID
	members map[uuid.UUID]bool
}

func NewSelection() *Selection {
	return &Selection{members: make(map[uuid.UUID]bool)}
}

// Toggle adds the month's guide if absent and removes it if present. An
// unpayable or unmaterialized month is never added; toggling one that is
// somehow present still removes it. Returns whether the guide is selected
// afterwards.
func (s *Selection) Toggle(d DisplayGuide) bool {
	if d.Guide == nil {
		return false
	}
	id := d.Guide.ID
	if s.members[id] {
		s.remove(id)
		return false
	}
	if !d.Payable {
		return false
	}
	s.add(id)
	return true
}

// SelectAll replaces the selection with exactly the payable months of the
// given view, in view order.
func (s *Selection) SelectAll(view []DisplayGuide) {
	s.Clear()
	for _, d := range view {
		if d.Payable && d.Guide != nil {
			s.add(d.Guide.ID)
		}
	}
}

func (s *Selection) Clear() {
	s.order = s.order[:0]
	s.members = make(map[uuid.UUID]bool)
}

func (s *Selection) Contains(id uuid.UUID) bool {
	return s.members[id]
}

func (s *Selection) Len() int {
	return len(s.order)
}

// IDs returns the selected guide ids in selection order.
func (s *Selection) IDs() []uuid.UUID {
	out := make([]uuid.UUID, len(s.order))
	copy(out, s.order)
	return out
}

// Total sums the base values of the selected guides from the given view;
// batch payments always charge base values, so this is the amount the batch
// will debit if every item settles.
func (s *Selection) Total(view []DisplayGuide) decimal.Decimal {
	total := decimal.Zero
	for _, d := range view {
		if d.Guide != nil && s.members[d.Guide.ID] {
			total = total.Add(d.Guide.BaseValue)
		}
	}
	return total
}

func (s *Selection) add(id uuid.UUID) {
	s.members[id] = true
	s.order = append(s.order, id)
}

func (s *Selection) remove(id uuid.UUID) {
	delete(s.members, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
