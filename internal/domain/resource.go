package domain

// Resource identifies the thing being reserved: the shared workshop or
// one of five classes of specialized machine.
type Resource string

const (
	Workshop   Resource = "workshop"
	Microvac   Resource = "microvac"
	Irradiator Resource = "irradiator"
	Extruder   Resource = "extruder"
	HVC        Resource = "hvc"
	Harvester  Resource = "harvester"
)

// Resources lists every known resource, in the order spec.md §1 names them.
var Resources = []Resource{Workshop, Microvac, Irradiator, Extruder, HVC, Harvester}

// Known reports whether r is one of the six recognized resources.
func (r Resource) Known() bool {
	for _, k := range Resources {
		if k == r {
			return true
		}
	}
	return false
}

// Special reports whether r is anything other than the shared workshop.
func (r Resource) Special() bool {
	return r != Workshop
}

// PerHalfHourCapacity is the maximum number of simultaneous reservations
// of r active during any single half-hour, per spec.md §4.3 rule 7.
func (r Resource) PerHalfHourCapacity() int {
	switch r {
	case Workshop:
		return 15
	case Microvac:
		return 2
	case Irradiator:
		return 2
	case Extruder:
		return 3
	case HVC:
		return 1
	case Harvester:
		return 1
	default:
		return 0
	}
}
