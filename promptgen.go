// Package promptgen provides a deterministic prompt-templating engine for
// generative-AI workflows: named groups of interchangeable option strings
// are organized into libraries, referenced from templates, and resolved
// into concrete text by seed-controlled random choice.
//
// Template syntax:
//
//	A {{ subject }} with @"Hair Color" and {blue|green|grey} eyes.
//	{Fantasy + Sci-Fi - Horror}   # tag expression over group tags
//	[[ "Outfit" | excludeGroup("formal") | assign("outfit") ]]
//
// # Basic Usage
//
// Build a workspace from libraries and render a template:
//
//	hair := promptgen.NewGroup("Hair Color", []string{"appearance"},
//	    []string{"blonde", "chestnut", "jet black"})
//	lib := promptgen.NewLibrary("Characters", promptgen.WithGroups(hair))
//
//	ws := promptgen.NewWorkspaceBuilder().AddLibrary(lib).Build()
//	result, err := ws.Render("A hero with @\"Hair Color\" hair.", nil)
//	// result.Output: "A hero with chestnut hair."
//	// result.Seed:   the seed used, for reproducing this exact render
//
// # Determinism
//
// Rendering is a pure function of (source, workspace, slot values, seed).
// Pass promptgen.WithSeed to reproduce a render; omit it to draw a fresh
// seed, which is surfaced in RenderResult.Seed for reroll.
//
//	result, _ := ws.Render(source, nil, promptgen.WithSeed(42))
//	again, _ := ws.Render(source, nil, promptgen.WithSeed(result.Seed))
//	// result.Output == again.Output
//
// # Immutability
//
// A Workspace is a persistent value: WithLibrary and WithoutLibrary return
// new workspaces and never invalidate the old one, so concurrent readers
// need no coordination.
//
// # Parsing and Validation
//
// Parsing never fails outright: a best-effort AST is always produced and
// problems are reported as span-annotated diagnostics.
//
//	pr := ws.ParseTemplate("pick {red|blue} for {{ name }} and @Hiar")
//	for _, d := range pr.Errors {
//	    // "unknown reference ... did you mean 'Hair'?" with a source span
//	}
//
// # Search and Completion
//
// Group and option names are searchable with a fuzzy subsequence matcher,
// and GetCompletions offers cursor-context completions for editors:
//
//	res := ws.Search("@hair/blo")       // options matching "blo" in hair groups
//	items := ws.GetCompletions(src, 12) // completions at rune offset 12
package promptgen
