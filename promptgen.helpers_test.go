package promptgen

// Shared test fixtures. The two-library workspace exercises
// cross-library pooling: both libraries own a group named "Hair" tagged
// "appearance", so unqualified references to either pool across them.

const (
	testLibFantasyID = "fantasy"
	testLibSciFiID   = "scifi"
)

func testFantasyLibrary() *Library {
	return NewLibrary("Fantasy",
		WithLibraryID(testLibFantasyID),
		WithLibraryDescription("Fantasy portrait building blocks"),
		WithGroups(
			NewGroup("Hair", []string{"appearance"}, []string{"blonde hair", "red hair"}),
			NewGroup("Eyes", []string{"appearance"}, []string{"blue eyes", "green eyes"}),
			NewGroup("Mood", []string{"feeling"}, []string{"somber", "joyful", "pensive"}),
		),
	)
}

func testSciFiLibrary() *Library {
	return NewLibrary("Sci-Fi",
		WithLibraryID(testLibSciFiID),
		WithGroups(
			NewGroup("Hair", []string{"appearance"}, []string{"chrome hair"}),
			NewGroup("Gear", []string{"equipment"}, []string{"plasma rifle", "neural lace"}),
		),
	)
}

func testWorkspace() *Workspace {
	return NewWorkspace().
		WithLibrary(testFantasyLibrary()).
		WithLibrary(testSciFiLibrary())
}

func fantasyOnlyWorkspace() *Workspace {
	return NewWorkspace().WithLibrary(testFantasyLibrary())
}
