package models

// The enumerations below use the provider's own spelling. The empty string
// means "not set": the provider applies its own default and nothing is sent.

// SeriesFrequency is the observation frequency of a series.
type SeriesFrequency string

const (
	FrequencyHighest            SeriesFrequency = "Highest"
	FrequencyAnnual             SeriesFrequency = "Annual"
	FrequencySemiAnnual         SeriesFrequency = "SemiAnnual"
	FrequencyQuarterly          SeriesFrequency = "Quarterly"
	FrequencyMonthly            SeriesFrequency = "Monthly"
	FrequencyWeekly             SeriesFrequency = "Weekly"
	FrequencyDaily              SeriesFrequency = "Daily"
	FrequencyLowest             SeriesFrequency = "Lowest"
	FrequencyQuarterlyOrMonthly SeriesFrequency = "QuarterlyOrMonthly"
	FrequencyMonthlyOrWeekly    SeriesFrequency = "MonthlyOrWeekly"
	FrequencyFirst              SeriesFrequency = "First"
	FrequencyLast               SeriesFrequency = "Last"
	FrequencyBiMonthly          SeriesFrequency = "BiMonthly"
)

// SeriesWeekdays is a bit mask of the days included in a daily calendar.
// Zero means not set.
type SeriesWeekdays int

const (
	Monday    SeriesWeekdays = 1
	Tuesday   SeriesWeekdays = 2
	Wednesday SeriesWeekdays = 4
	Thursday  SeriesWeekdays = 8
	Friday    SeriesWeekdays = 16
	Saturday  SeriesWeekdays = 32
	Sunday    SeriesWeekdays = 64

	MondayToFriday   SeriesWeekdays = Monday | Tuesday | Wednesday | Thursday | Friday
	SundayToThursday SeriesWeekdays = Sunday | Monday | Tuesday | Wednesday | Thursday
	FullWeek         SeriesWeekdays = MondayToFriday | Saturday | Sunday
)

// Valid reports whether w is a non-empty mask of known days.
func (w SeriesWeekdays) Valid() bool {
	return w > 0 && w&^FullWeek == 0
}

// CalendarMergeMode decides how differing calendars are combined.
type CalendarMergeMode string

const (
	CalendarFullCalendar   CalendarMergeMode = "FullCalendar"
	CalendarAvailableInAll CalendarMergeMode = "AvailableInAll"
	CalendarAvailableInAny CalendarMergeMode = "AvailableInAny"
	CalendarFirstSeries    CalendarMergeMode = "FirstSeries"
)

// SeriesMissingValueMethod fills gaps in a series.
type SeriesMissingValueMethod string

const (
	MissingValueNone                SeriesMissingValueMethod = "None"
	MissingValueAuto                SeriesMissingValueMethod = "Auto"
	MissingValuePreviousValue       SeriesMissingValueMethod = "PreviousValue"
	MissingValueZero                SeriesMissingValueMethod = "Zero"
	MissingValueLinearInterpolation SeriesMissingValueMethod = "LinearInterpolation"
)

// SeriesToLowerFrequencyMethod is used when converting to a lower frequency.
type SeriesToLowerFrequencyMethod string

const (
	ToLowerAuto                        SeriesToLowerFrequencyMethod = "Auto"
	ToLowerLast                        SeriesToLowerFrequencyMethod = "Last"
	ToLowerFirst                       SeriesToLowerFrequencyMethod = "First"
	ToLowerFlow                        SeriesToLowerFrequencyMethod = "Flow"
	ToLowerPercentageChange            SeriesToLowerFrequencyMethod = "PercentageChange"
	ToLowerHighest                     SeriesToLowerFrequencyMethod = "Highest"
	ToLowerLowest                      SeriesToLowerFrequencyMethod = "Lowest"
	ToLowerAverage                     SeriesToLowerFrequencyMethod = "Average"
	ToLowerConditionalPercentageChange SeriesToLowerFrequencyMethod = "ConditionalPercentageChange"
)

// SeriesToHigherFrequencyMethod is used when converting to a higher frequency.
type SeriesToHigherFrequencyMethod string

const (
	ToHigherAuto                SeriesToHigherFrequencyMethod = "Auto"
	ToHigherSame                SeriesToHigherFrequencyMethod = "Same"
	ToHigherDistribute          SeriesToHigherFrequencyMethod = "Distribute"
	ToHigherPercentageChange    SeriesToHigherFrequencyMethod = "PercentageChange"
	ToHigherLinearInterpolation SeriesToHigherFrequencyMethod = "LinearInterpolation"
	ToHigherPulse               SeriesToHigherFrequencyMethod = "Pulse"
	ToHigherQuadratic           SeriesToHigherFrequencyMethod = "Quadratic"
	ToHigherCubic               SeriesToHigherFrequencyMethod = "Cubic"
)

// SeriesPartialPeriodsMethod handles incomplete periods when downsampling.
type SeriesPartialPeriodsMethod string

const (
	PartialPeriodsNone       SeriesPartialPeriodsMethod = "None"
	PartialPeriodsAuto       SeriesPartialPeriodsMethod = "Auto"
	PartialPeriodsRepeatLast SeriesPartialPeriodsMethod = "RepeatLast"
	PartialPeriodsZero       SeriesPartialPeriodsMethod = "Zero"
)

// CalendarDateMode says how a StartOrEndPoint is resolved.
type CalendarDateMode string

const (
	DatePointInTime     CalendarDateMode = "PointInTime"
	DateDataInAllSeries CalendarDateMode = "DataInAllSeries"
	DateDataInAnySeries CalendarDateMode = "DataInAnySeries"
)
