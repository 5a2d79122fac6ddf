package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActivityIconMapping(t *testing.T) {
	require.Equal(t, "award", UserActivity{Kind: ActivityAchievement}.Icon())
	require.Equal(t, "eye", UserActivity{Kind: ActivityCourseView}.Icon())
	require.Equal(t, "download", UserActivity{Kind: ActivityResourceDownload}.Icon())

	// Unknown kinds fall back to the generic icon.
	require.Equal(t, "activity", UserActivity{Kind: "telemetry"}.Icon())
	require.Equal(t, "activity", UserActivity{Kind: ActivityPageView}.Icon())
}

func TestActivityPriorityClassMapping(t *testing.T) {
	require.Equal(t, "bg-blue-100 text-blue-800", UserActivity{Priority: PriorityLow}.PriorityClass())
	require.Equal(t, "bg-yellow-100 text-yellow-800", UserActivity{Priority: PriorityMedium}.PriorityClass())
	require.Equal(t, "bg-red-100 text-red-800", UserActivity{Priority: PriorityHigh}.PriorityClass())
	require.Equal(t, "bg-gray-100 text-gray-800", UserActivity{Priority: "urgent"}.PriorityClass())
	require.Equal(t, "bg-gray-100 text-gray-800", UserActivity{}.PriorityClass())
}

func TestActivityRelatedRef(t *testing.T) {
	id := uint(42)
	activity := UserActivity{RelatedKind: "course", RelatedID: &id}

	ref, ok := activity.Related()
	require.True(t, ok)
	require.Equal(t, RelatedRef{Kind: "course", ID: 42}, ref)

	_, ok = UserActivity{RelatedKind: "course"}.Related()
	require.False(t, ok)

	_, ok = UserActivity{RelatedID: &id}.Related()
	require.False(t, ok)
}
