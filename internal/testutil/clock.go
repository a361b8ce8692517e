// Package testutil holds helpers shared by tests across packages.
package testutil

import "schedsync/internal/core/domain"

// Clock parses an "HH:MM" literal and panics when it is malformed.
func Clock(value string) domain.Clock {
	c, err := domain.ParseClock(value)
	if err != nil {
		panic(err)
	}
	return c
}
