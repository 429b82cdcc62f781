// Package models contains the famlist domain types shared by the
// synchronizer, the remote gateway and the local cache.
package models

import "time"

// GroupConfig identifies a device's current membership: which group the
// device belongs to and under which display name. Exactly one GroupConfig
// is active per device at a time; it is overwritten on change and removed
// on sign-out.
type GroupConfig struct {
	GroupID    string `json:"groupId"`
	MemberName string `json:"memberName"`
}

// ListItem is one entry in a group's shared list.
//
// ID is generator-assigned and immutable. AddedBy captures the member's
// display name at creation time. Display ordering is CreatedAt ascending.
type ListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	AddedBy   string    `json:"addedBy"`
	CreatedAt time.Time `json:"createdAt"`
}
