// Package events defines the events published on the event bus when a
// production plan is computed or rejected.
package events
