package fortune

// Category identifies one of the four fortune dimensions.
type Category string

const (
	CategoryInner         Category = "inner"
	CategoryEnvironment   Category = "environment"
	CategoryRelationships Category = "relationships"
	CategoryOverall       Category = "overall"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryInner,
	CategoryEnvironment,
	CategoryRelationships,
	CategoryOverall,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryInner, CategoryEnvironment, CategoryRelationships, CategoryOverall:
		return true
	default:
		return false
	}
}

// Title is the human readable heading used by the bot and the CLI.
func (c Category) Title() string {
	switch c {
	case CategoryInner:
		return "Inner self"
	case CategoryEnvironment:
		return "Environment"
	case CategoryRelationships:
		return "Relationships"
	case CategoryOverall:
		return "Overall"
	default:
		return string(c)
	}
}
