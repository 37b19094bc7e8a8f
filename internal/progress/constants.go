package progress

// Stamina constants
const (
	// ShiftStartHour is the local hour at which the daily drain clock starts.
	ShiftStartHour = 7

	// DrainDurationHours is how long a full bar takes to empty.
	DrainDurationHours = 18

	// DrainPerSecond is the linear stamina loss per elapsed second.
	DrainPerSecond = 100.0 / (DrainDurationHours * 3600)
)

// Unit conversion constants
const (
	// DefaultCapacityPerDay is used when a mission carries no capacity.
	// 150 ha over 90 days.
	DefaultCapacityPerDay = 1.66

	HoursPerShift    = 8
	WorkersPerCrew   = 10
	MetersPerHectare = 10000
)

// XP constants
const (
	// BaseReportXP is the flat reward for any accepted report.
	BaseReportXP = 500

	// XPPerUnit is the bonus per normalized unit of progress.
	XPPerUnit = 10

	// xpFloorEpsilon absorbs binary rounding in products like 10 * 1.66 so
	// that a value that is 166 on paper floors to 166, not 165.
	xpFloorEpsilon = 1e-9
)

// Default profile values for a fresh session
const (
	DefaultJabatan    = "Forester"
	DefaultStatusText = "Siap Menghijaukan!"
)
