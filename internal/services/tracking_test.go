package services_test

import (
	"strconv"
	"strings"
	"testing"

	"webstore/internal/services"
)

func TestNewTrackingNumberFormat(t *testing.T) {
	for i := 0; i < 1000; i++ {
		tn := services.NewTrackingNumber()
		if !reTrack.MatchString(tn) {
			t.Fatalf("bad format %q", tn)
		}
		n, err := strconv.Atoi(strings.TrimPrefix(tn, "TRK"))
		if err != nil {
			t.Fatal(err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("out of range: %d", n)
		}
	}
}
