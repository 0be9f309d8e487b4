package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestArchiveObjectName(t *testing.T) {
	id := uuid.MustParse("9b2f6a4e-3c1d-4e5f-8a7b-6c5d4e3f2a1b")
	at := time.Date(2024, 3, 8, 14, 5, 9, 42, time.FixedZone("ICT", 7*3600))

	got := ArchiveObjectName(id, "extraction", at)
	want := "model-responses/extraction/9b2f6a4e-3c1d-4e5f-8a7b-6c5d4e3f2a1b/20240308T070509.000000042Z.json"
	if got != want {
		t.Fatalf("ArchiveObjectName = %q, want %q", got, want)
	}
}
