package services

import (
	"fmt"
	"math/rand"
)

// NewTrackingNumber returns "TRK" plus six random digits (100000-999999).
// Uniqueness is enforced at commit time, not here; the order repository
// regenerates on collision before inserting the shipment.
func NewTrackingNumber() string {
	return fmt.Sprintf("TRK%06d", 100000+rand.Intn(900000))
}
