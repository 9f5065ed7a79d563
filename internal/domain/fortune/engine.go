package fortune

import "time"

// Reading is the outcome for a single category.
type Reading struct {
	Category Category
	Number   int
	Entry
}

// Result holds the four readings of one invocation.
type Result struct {
	DateNumber    int
	Inner         Reading
	Environment   Reading
	Relationships Reading
	Overall       Reading
}

// Readings returns the four readings in display order.
func (r *Result) Readings() []Reading {
	return []Reading{r.Inner, r.Environment, r.Relationships, r.Overall}
}

// Get returns the reading for c. The second value is false for an
// unknown category.
func (r *Result) Get(c Category) (Reading, bool) {
	switch c {
	case CategoryInner:
		return r.Inner, true
	case CategoryEnvironment:
		return r.Environment, true
	case CategoryRelationships:
		return r.Relationships, true
	case CategoryOverall:
		return r.Overall, true
	default:
		return Reading{}, false
	}
}

// Compute derives the fortune for email on date. date is read in its own
// location, so callers pick the calendar day by picking the zone. The
// only error is ErrInvalidEmail.
func Compute(email string, date time.Time, table *Table) (*Result, error) {
	seg, err := ParseEmail(email)
	if err != nil {
		return nil, err
	}

	dn := DateNumber(date)
	inner := FortuneNumber(BaseNumber(seg.Local), dn)
	env := FortuneNumber(BaseNumber(seg.DomainLabel), dn)
	rel := FortuneNumber(BaseNumber(seg.Compact), dn)
	overall := Reduce(inner + env + rel)

	read := func(c Category, n int) Reading {
		return Reading{Category: c, Number: n, Entry: table.Lookup(c, n)}
	}

	return &Result{
		DateNumber:    dn,
		Inner:         read(CategoryInner, inner),
		Environment:   read(CategoryEnvironment, env),
		Relationships: read(CategoryRelationships, rel),
		Overall:       read(CategoryOverall, overall),
	}, nil
}
