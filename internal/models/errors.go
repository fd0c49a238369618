package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// Validation errors. These are rejected at the creation boundary and
	// never enter the due-processing path.
	ErrAmountNotPositive        = errors.New("amounts must be larger than zero")
	ErrCategoryRequired         = errors.New("a category is required")
	ErrWalletRequired           = errors.New("a wallet is required")
	ErrStartDateRequired        = errors.New("a start date is required")
	ErrFrequencyInvalid         = errors.New("the frequency must be one of DAILY, WEEKLY, MONTHLY, QUARTERLY, YEARLY")
	ErrPeriodInvalid            = errors.New("the budget period must be one of WEEK, MONTH, QUARTER, YEAR")
	ErrEndDateBeforeStart       = errors.New("the end date must not be before the start date")
	ErrCategoryNameNotUnique    = errors.New("a category with this name already exists")
	ErrWalletNameNotUnique      = errors.New("a wallet with this name already exists")
	ErrOccurrenceAlreadyExists  = errors.New("a transaction for this schedule occurrence already exists")
	ErrMatchRulePatternNotValid = errors.New("the match rule pattern must not be empty")
)
