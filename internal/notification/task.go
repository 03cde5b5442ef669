// Package notification implements asynchronous delivery of access links.
// Tasks are transient: they live only in the dispatcher queue and are lost on
// process exit. The issue-grant command covers manual re-delivery.
package notification

import (
	grantsDomain "github.com/allisson/grants/internal/grants/domain"
)

// DeliveryTask describes one access link to deliver.
type DeliveryTask struct {
	OwnerEmail string
	Tier       grantsDomain.Tier
	Link       string
}
