package game

// MatchesGoal reports whether selecting selected reaches goal. A literal
// match wins before normalization is tried. An empty goal is never reached.
func MatchesGoal(selected, goal string) bool {
	if goal == "" {
		return false
	}
	if selected == goal {
		return true
	}
	key := Normalize(goal)
	return key != "" && Normalize(selected) == key
}

// goalOwner returns the index of the goal reached by selected, or -1.
// Literal matches across all goals take precedence over normalized ones so
// two goals that normalize alike still resolve to the exact owner.
func goalOwner(selected string, goals []string) int {
	for i, goal := range goals {
		if goal != "" && goal == selected {
			return i
		}
	}
	for i, goal := range goals {
		if MatchesGoal(selected, goal) {
			return i
		}
	}
	return -1
}
