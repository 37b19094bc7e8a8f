package postgres

// DefaultReportLimit caps ListByUser when no limit is given.
const DefaultReportLimit = 50
