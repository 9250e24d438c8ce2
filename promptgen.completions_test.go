package promptgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionLabels(items []CompletionItem) []string {
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	return labels
}

func TestGetCompletions_BareAtOffersEverything(t *testing.T) {
	w := testWorkspace()
	source := "hello @"

	items := w.GetCompletions(source, len([]rune(source)))

	// 5 groups, 3 distinct tags, 2 libraries
	require.Len(t, items, 10)
	assert.Equal(t, []string{
		"Hair", "Eyes", "Mood", "Hair", "Gear",
		"appearance", "feeling", "equipment",
		"fantasy", "scifi",
	}, completionLabels(items))

	assert.Equal(t, CompletionKindGroup, items[0].Kind)
	assert.Equal(t, "Fantasy", items[0].Detail)
	assert.Equal(t, testLibFantasyID, items[0].LibraryID)
	assert.Equal(t, testLibSciFiID, items[3].LibraryID)

	lib := items[8]
	assert.Equal(t, CompletionKindLibrary, lib.Kind)
	assert.Equal(t, `"fantasy:`, lib.InsertText)
}

func TestGetCompletions_PartialReferenceRanks(t *testing.T) {
	w := testWorkspace()
	source := "@Ha"

	items := w.GetCompletions(source, len([]rune(source)))

	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "Hair", item.Label)
		assert.Positive(t, item.Score)
	}
}

func TestGetCompletions_MidSourceReference(t *testing.T) {
	w := testWorkspace()

	items := w.GetCompletions("@Mo rest of the line", 3)

	require.Len(t, items, 1)
	assert.Equal(t, "Mood", items[0].Label)
}

func TestGetCompletions_QualifiedReferenceScopesToLibrary(t *testing.T) {
	w := testWorkspace()
	source := `@"fantasy:`

	items := w.GetCompletions(source, len([]rune(source)))

	assert.Equal(t, []string{"Hair", "Eyes", "Mood"}, completionLabels(items))
	for _, item := range items {
		assert.Equal(t, CompletionKindGroup, item.Kind)
		assert.Equal(t, "Fantasy", item.Detail)
		assert.Equal(t, testLibFantasyID, item.LibraryID)
	}
}

func TestGetCompletions_QualifiedPartialFilters(t *testing.T) {
	w := testWorkspace()
	source := `@"fantasy:E`

	items := w.GetCompletions(source, len([]rune(source)))

	assert.Equal(t, []string{"Eyes"}, completionLabels(items))
}

func TestGetCompletions_UnknownQualifier(t *testing.T) {
	w := testWorkspace()
	source := `@"nolib:H`

	items := w.GetCompletions(source, len([]rune(source)))

	assert.Empty(t, items)
}

func TestGetCompletions_QuotedWithoutColonMatchesLibraries(t *testing.T) {
	w := testWorkspace()
	source := `@"fan`

	items := w.GetCompletions(source, len([]rune(source)))

	require.Len(t, items, 1)
	assert.Equal(t, "fantasy", items[0].Label)
	assert.Equal(t, CompletionKindLibrary, items[0].Kind)
}

func TestGetCompletions_SlotReusesNamesFromSource(t *testing.T) {
	w := testWorkspace()
	source := "{{ Scene }} and {{ Sc"

	items := w.GetCompletions(source, len([]rune(source)))

	require.Len(t, items, 1)
	assert.Equal(t, "Scene", items[0].Label)
	assert.Equal(t, CompletionKindSlot, items[0].Kind)
	assert.Equal(t, "Scene", items[0].InsertText)
}

func TestGetCompletions_SlotSeesAssignBindings(t *testing.T) {
	w := testWorkspace()
	source := `[[ "Mood" | assign("Feeling") ]] and {{ F`

	items := w.GetCompletions(source, len([]rune(source)))

	require.Len(t, items, 1)
	assert.Equal(t, "Feeling", items[0].Label)
	assert.Equal(t, CompletionKindSlot, items[0].Kind)
}

func TestGetCompletions_PlainTextCursor(t *testing.T) {
	w := testWorkspace()

	items := w.GetCompletions("just words", 4)

	assert.Empty(t, items)
}

func TestGetCompletions_CursorAtStart(t *testing.T) {
	w := testWorkspace()

	items := w.GetCompletions("@Hair", 0)

	assert.Empty(t, items)
}

func TestGetCompletions_NegativeCursor(t *testing.T) {
	w := testWorkspace()

	items := w.GetCompletions("@Hair", -1)

	assert.Empty(t, items)
}

func TestGetCompletions_CursorBeyondEndClamps(t *testing.T) {
	w := testWorkspace()

	clamped := w.GetCompletions("@Ha", 50)
	exact := w.GetCompletions("@Ha", 3)

	assert.Equal(t, exact, clamped)
	require.Len(t, clamped, 2)
}
