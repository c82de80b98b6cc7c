package acctsync

import (
	"fmt"
	"slices"
)

// ManualGroups is the registry of manual account groups, keyed by group ID.
// It is persisted as one document; all operations work on the in-memory map
// and the caller saves the whole document back.
type ManualGroups map[string]*ManualAccountGroup

// Create adds a new empty group: no name, no target, no members.
func (g ManualGroups) Create() *ManualAccountGroup {
	group := &ManualAccountGroup{
		ID:                newID(),
		PortfolioAccounts: []string{},
	}
	g[group.ID] = group
	return group
}

func (g ManualGroups) get(id string) (*ManualAccountGroup, error) {
	group, ok := g[id]
	if !ok {
		return nil, fmt.Errorf("unknown manual group %q", id)
	}
	return group, nil
}

// Rename sets the display name of a group.
func (g ManualGroups) Rename(id, name string) error {
	group, err := g.get(id)
	if err != nil {
		return err
	}
	group.Name = name
	return nil
}

// SetTarget binds the group to the performance account it should be written
// into. An empty name unbinds the group; unbound groups are skipped by the
// push pass.
func (g ManualGroups) SetTarget(id, performanceAccountName string) error {
	group, err := g.get(id)
	if err != nil {
		return err
	}
	group.PerformanceAccountName = performanceAccountName
	return nil
}

// AddMember adds a portfolio input ID to the group. Adding an ID that is
// already a member is a no-op, not an error.
func (g ManualGroups) AddMember(id, accountInputID string) error {
	group, err := g.get(id)
	if err != nil {
		return err
	}
	if slices.Contains(group.PortfolioAccounts, accountInputID) {
		return nil
	}
	group.PortfolioAccounts = append(group.PortfolioAccounts, accountInputID)
	return nil
}

// RemoveMember removes a portfolio input ID from the group. Removing an
// absent ID is a no-op, not an error.
func (g ManualGroups) RemoveMember(id, accountInputID string) error {
	group, err := g.get(id)
	if err != nil {
		return err
	}
	group.PortfolioAccounts = slices.DeleteFunc(group.PortfolioAccounts, func(member string) bool {
		return member == accountInputID
	})
	return nil
}

// Delete removes the grouping metadata only; the underlying portfolio
// accounts are never touched.
func (g ManualGroups) Delete(id string) error {
	if _, err := g.get(id); err != nil {
		return err
	}
	delete(g, id)
	return nil
}

// ComputeBalance sums the amounts of the group members still present in the
// current portfolio inputs. Absent member IDs contribute zero. The stored
// TotalBalance is never trusted for this: it is only a display cache from
// the last sync.
func (g ManualGroups) ComputeBalance(id string, inputs []PortfolioAccountInput) Money {
	group, ok := g[id]
	if !ok {
		return Money{}
	}
	byID := make(map[string]PortfolioAccountInput, len(inputs))
	for _, input := range inputs {
		byID[input.ID] = input
	}
	var total Money
	for _, member := range group.PortfolioAccounts {
		if input, ok := byID[member]; ok {
			total = total.Add(input.Amount)
		}
	}
	return total
}

// All returns the groups sorted by name then ID, for stable display.
func (g ManualGroups) All() []*ManualAccountGroup {
	groups := make([]*ManualAccountGroup, 0, len(g))
	for _, group := range g {
		groups = append(groups, group)
	}
	slices.SortFunc(groups, func(a, b *ManualAccountGroup) int {
		if a.Name != b.Name {
			if a.Name < b.Name {
				return -1
			}
			return 1
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return groups
}
