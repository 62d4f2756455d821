// Package planner holds the scheduling and prioritization rules of the study planner.
//
// Every function here is pure: callers load sessions and tasks from storage and pass them in,
// together with the calendar location and the current day where a rule depends on them.
package planner
