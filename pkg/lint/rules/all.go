package rules

// Each group registers its rules from init.
import (
	_ "github.com/leapstack-labs/propcheck/pkg/lint/rules/props"
)
