package leave

import "fmt"

// Default yearly allotments for a fresh ledger.
const (
	DefaultAnnual   = 20
	DefaultSick     = 10
	DefaultPersonal = 5
)

// Balance is one employee's ledger: allotted and used days per tracked category.
type Balance struct {
	EmployeeID   string
	Annual       int
	Sick         int
	Personal     int
	UsedAnnual   int
	UsedSick     int
	UsedPersonal int
}

func DefaultBalance(employeeID string) Balance {
	return Balance{
		EmployeeID: employeeID,
		Annual:     DefaultAnnual,
		Sick:       DefaultSick,
		Personal:   DefaultPersonal,
	}
}

func (b Balance) Allotted(c Category) (int, error) {
	switch c {
	case CategoryAnnual:
		return b.Annual, nil
	case CategorySick:
		return b.Sick, nil
	case CategoryPersonal:
		return b.Personal, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUntrackedCategory, c)
}

func (b Balance) Used(c Category) (int, error) {
	switch c {
	case CategoryAnnual:
		return b.UsedAnnual, nil
	case CategorySick:
		return b.UsedSick, nil
	case CategoryPersonal:
		return b.UsedPersonal, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUntrackedCategory, c)
}

// Available is allotted minus used. It can be negative for ledgers that were
// over-reserved before approvals were guarded.
func (b Balance) Available(c Category) (int, error) {
	allotted, err := b.Allotted(c)
	if err != nil {
		return 0, err
	}
	used, _ := b.Used(c)
	return allotted - used, nil
}

// Reserve adds days to the used counter. With guard set it refuses to go past
// the allotment.
func (b *Balance) Reserve(c Category, days int, guard bool) error {
	available, err := b.Available(c)
	if err != nil {
		return err
	}
	if guard && available < days {
		return insufficient(c)
	}
	b.addUsed(c, days)
	return nil
}

// Release gives days back, never taking used below zero.
func (b *Balance) Release(c Category, days int) error {
	used, err := b.Used(c)
	if err != nil {
		return err
	}
	if days > used {
		days = used
	}
	b.addUsed(c, -days)
	return nil
}

func (b *Balance) addUsed(c Category, delta int) {
	switch c {
	case CategoryAnnual:
		b.UsedAnnual += delta
	case CategorySick:
		b.UsedSick += delta
	case CategoryPersonal:
		b.UsedPersonal += delta
	}
}
