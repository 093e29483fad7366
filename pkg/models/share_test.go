package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPresentationShareValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name  string
		share PresentationShare
		want  bool
	}{
		{
			name:  "no expiry, multi use",
			share: PresentationShare{},
			want:  true,
		},
		{
			name:  "future expiry",
			share: PresentationShare{ExpiresAt: &future},
			want:  true,
		},
		{
			name:  "past expiry",
			share: PresentationShare{ExpiresAt: &past},
			want:  false,
		},
		{
			name:  "past expiry wins even when unused",
			share: PresentationShare{ExpiresAt: &past, IsSingleUse: true},
			want:  false,
		},
		{
			name:  "single use, unused",
			share: PresentationShare{IsSingleUse: true},
			want:  true,
		},
		{
			name:  "single use, consumed",
			share: PresentationShare{IsSingleUse: true, UsedAt: &past},
			want:  false,
		},
		{
			name:  "multi use ignores used_at",
			share: PresentationShare{UsedAt: &past},
			want:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.share.Valid(now))
		})
	}
}
