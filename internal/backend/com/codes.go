package com

import "github.com/tejusbharadwaj/mbdata/internal/models"

// Native integer codes of the application's enumerations.
var (
	frequencyCodes = map[models.SeriesFrequency]int{
		models.FrequencyHighest:            0,
		models.FrequencyAnnual:             1,
		models.FrequencySemiAnnual:         2,
		models.FrequencyQuarterly:          3,
		models.FrequencyMonthly:            4,
		models.FrequencyWeekly:             5,
		models.FrequencyDaily:              6,
		models.FrequencyLowest:             7,
		models.FrequencyQuarterlyOrMonthly: 8,
		models.FrequencyMonthlyOrWeekly:    9,
		models.FrequencyFirst:              10,
		models.FrequencyLast:               11,
		models.FrequencyBiMonthly:          12,
	}

	calendarMergeModeCodes = map[models.CalendarMergeMode]int{
		models.CalendarFullCalendar:   0,
		models.CalendarAvailableInAll: 1,
		models.CalendarAvailableInAny: 2,
		models.CalendarFirstSeries:    3,
	}

	missingValueCodes = map[models.SeriesMissingValueMethod]int{
		models.MissingValueNone:                0,
		models.MissingValueAuto:                1,
		models.MissingValuePreviousValue:       2,
		models.MissingValueZero:                3,
		models.MissingValueLinearInterpolation: 4,
	}

	toLowerCodes = map[models.SeriesToLowerFrequencyMethod]int{
		models.ToLowerAuto:                        0,
		models.ToLowerLast:                        1,
		models.ToLowerFirst:                       2,
		models.ToLowerFlow:                        3,
		models.ToLowerPercentageChange:            4,
		models.ToLowerHighest:                     5,
		models.ToLowerLowest:                      6,
		models.ToLowerAverage:                     7,
		models.ToLowerConditionalPercentageChange: 8,
	}

	toHigherCodes = map[models.SeriesToHigherFrequencyMethod]int{
		models.ToHigherAuto:                0,
		models.ToHigherSame:                1,
		models.ToHigherDistribute:          2,
		models.ToHigherPercentageChange:    3,
		models.ToHigherLinearInterpolation: 4,
		models.ToHigherPulse:               5,
		models.ToHigherQuadratic:           6,
		models.ToHigherCubic:               7,
	}

	partialPeriodsCodes = map[models.SeriesPartialPeriodsMethod]int{
		models.PartialPeriodsNone:       0,
		models.PartialPeriodsAuto:       1,
		models.PartialPeriodsRepeatLast: 2,
		models.PartialPeriodsZero:       3,
	}

	dateModeCodes = map[models.CalendarDateMode]int{
		models.DateDataInAnySeries: 0,
		models.DateDataInAllSeries: 1,
		models.DatePointInTime:     2,
	}
)

// FrequencyCode returns the native code of f.
func FrequencyCode(f models.SeriesFrequency) (int, bool) {
	c, ok := frequencyCodes[f]
	return c, ok
}

// CalendarMergeModeCode returns the native code of m.
func CalendarMergeModeCode(m models.CalendarMergeMode) (int, bool) {
	c, ok := calendarMergeModeCodes[m]
	return c, ok
}

// DateModeCode returns the native code of m.
func DateModeCode(m models.CalendarDateMode) (int, bool) {
	c, ok := dateModeCodes[m]
	return c, ok
}

// MissingValueCode returns the native code of m.
func MissingValueCode(m models.SeriesMissingValueMethod) (int, bool) {
	c, ok := missingValueCodes[m]
	return c, ok
}

// ToLowerFrequencyCode returns the native code of m.
func ToLowerFrequencyCode(m models.SeriesToLowerFrequencyMethod) (int, bool) {
	c, ok := toLowerCodes[m]
	return c, ok
}

// ToHigherFrequencyCode returns the native code of m.
func ToHigherFrequencyCode(m models.SeriesToHigherFrequencyMethod) (int, bool) {
	c, ok := toHigherCodes[m]
	return c, ok
}

// PartialPeriodsCode returns the native code of m.
func PartialPeriodsCode(m models.SeriesPartialPeriodsMethod) (int, bool) {
	c, ok := partialPeriodsCodes[m]
	return c, ok
}
