package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchesGoal(t *testing.T) {
	testCases := []struct {
		desc     string
		selected string
		goal     string
		want     bool
	}{
		{desc: "exact", selected: "サッカー", goal: "サッカー", want: true},
		{desc: "full width", selected: "ＩＯＴＶ", goal: "IOTV", want: true},
		{desc: "underscore title", selected: "New_York", goal: "New York", want: true},
		{desc: "annotation", selected: "サッカー (競技)", goal: "サッカー", want: true},
		{desc: "different page", selected: "野球", goal: "サッカー", want: false},
		{desc: "empty goal", selected: "", goal: "", want: false},
		{desc: "punctuation only goal matches literally", selected: "!?", goal: "!?", want: true},
		{desc: "punctuation only goal does not match other punctuation", selected: "...", goal: "!?", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			require.Equal(t, tc.want, MatchesGoal(tc.selected, tc.goal))
		})
	}
}

func TestGoalOwnerPrefersLiteralMatch(t *testing.T) {
	goals := []string{"Mercury (planet)", "Mercury"}

	require.Equal(t, 1, goalOwner("Mercury", goals))
	require.Equal(t, 0, goalOwner("Mercury (planet)", goals))
	require.Equal(t, 0, goalOwner("MERCURY", goals))
	require.Equal(t, -1, goalOwner("Venus", goals))
	require.Equal(t, -1, goalOwner("", []string{"", ""}))
}
