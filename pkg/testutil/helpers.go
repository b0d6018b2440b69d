// Package testutil provides common utility functions for testing.
package testutil

import (
	"strings"

	"github.com/avalle/asset-runway/internal/simulation"
)

// FindYear finds a projection row by year in the results slice.
// Returns a pointer to the row if found, nil otherwise.
func FindYear(projection []simulation.YearProjection, year int) *simulation.YearProjection {
	for i := range projection {
		if projection[i].Year == year {
			return &projection[i]
		}
	}
	return nil
}

// FindMilestone finds the first milestone whose event contains the given
// substring. Returns a pointer to the milestone if found, nil otherwise.
func FindMilestone(milestones []simulation.Milestone, event string) *simulation.Milestone {
	for i := range milestones {
		if strings.Contains(milestones[i].Event, event) {
			return &milestones[i]
		}
	}
	return nil
}
