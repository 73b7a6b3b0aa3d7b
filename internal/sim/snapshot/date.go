package snapshot

// WeeksPerYear is the number of simulated weeks in a year. The week counter
// wraps back to 1 when it would reach 53.
const WeeksPerYear = 52

// Date identifies a simulated week.
type Date struct {
	Week int `json:"week"`
	Year int `json:"year"`
}

// Next returns the date advanced by exactly one week, wrapping the year.
func (d Date) Next() Date {
	if d.Week >= WeeksPerYear {
		return Date{Week: 1, Year: d.Year + 1}
	}
	return Date{Week: d.Week + 1, Year: d.Year}
}

// Absolute returns the date as a single monotonically increasing week count.
func (d Date) Absolute() int {
	return d.Year*WeeksPerYear + (d.Week - 1)
}

// WeeksSince returns the number of weeks elapsed from other to d.
// Negative when other is in the future.
func (d Date) WeeksSince(other Date) int {
	return d.Absolute() - other.Absolute()
}

// Before reports whether d precedes other.
func (d Date) Before(other Date) bool {
	return d.Absolute() < other.Absolute()
}

// Equal reports whether both dates identify the same week.
func (d Date) Equal(other Date) bool {
	return d.Week == other.Week && d.Year == other.Year
}
