package provider

import (
	"testing"
)

func TestParseSolution(t *testing.T) {
	raw := `Here is the solution:
<step>
<explanation>Subtract 3 from both sides: 2x = 4</explanation>
<concepts>inverse operations, equality</concepts>
</step>
<step>
<explanation>Divide both sides by 2: x = 2</explanation>
<concepts>division</concepts>
</step>
<answer>x = 2</answer>`

	solution, err := ParseSolution(raw)
	if err != nil {
		t.Fatalf("ParseSolution() error = %v", err)
	}

	if solution.FinalAnswer != "x = 2" {
		t.Errorf("FinalAnswer = %q, want %q", solution.FinalAnswer, "x = 2")
	}
	if len(solution.Steps) != 2 {
		t.Fatalf("len(Steps) = %d, want 2", len(solution.Steps))
	}
	if solution.Steps[0].Explanation != "Subtract 3 from both sides: 2x = 4" {
		t.Errorf("Steps[0].Explanation = %q", solution.Steps[0].Explanation)
	}
	if len(solution.Steps[0].KeyConcepts) != 2 || solution.Steps[0].KeyConcepts[0] != "inverse operations" {
		t.Errorf("Steps[0].KeyConcepts = %v", solution.Steps[0].KeyConcepts)
	}
}

func TestParseSolutionMissingAnswer(t *testing.T) {
	raw := `<step><explanation>Some work</explanation></step>`

	_, err := ParseSolution(raw)
	if err != ErrMissingAnswer {
		t.Errorf("ParseSolution() error = %v, want ErrMissingAnswer", err)
	}
}

func TestParseSolutionBareStep(t *testing.T) {
	// Models sometimes drop the inner explanation tag; the step body is
	// still usable.
	raw := `<step>Add 1 to both sides</step><answer>x = 5</answer>`

	solution, err := ParseSolution(raw)
	if err != nil {
		t.Fatalf("ParseSolution() error = %v", err)
	}
	if len(solution.Steps) != 1 || solution.Steps[0].Explanation != "Add 1 to both sides" {
		t.Errorf("Steps = %+v", solution.Steps)
	}
}

func TestParseSolutionNoSteps(t *testing.T) {
	// Steps are optional sections; the answer alone is structurally valid.
	solution, err := ParseSolution(`<answer>42</answer>`)
	if err != nil {
		t.Fatalf("ParseSolution() error = %v", err)
	}
	if solution.FinalAnswer != "42" || len(solution.Steps) != 0 {
		t.Errorf("got %+v", solution)
	}
}

func TestParseDefinition(t *testing.T) {
	raw := `<basic_definition>A polygon with three sides.</basic_definition>
<detailed_definition>Triangles are classified by side length and angle.</detailed_definition>
<example>A slice of pizza approximates a triangle.</example>
<example>Roof trusses are triangular for rigidity.</example>
<related>polygon, angle, trigonometry</related>`

	definition, err := ParseDefinition(raw)
	if err != nil {
		t.Fatalf("ParseDefinition() error = %v", err)
	}

	if definition.BasicDefinition != "A polygon with three sides." {
		t.Errorf("BasicDefinition = %q", definition.BasicDefinition)
	}
	if definition.DetailedDefinition == "" {
		t.Error("DetailedDefinition is empty")
	}
	if len(definition.Examples) != 2 {
		t.Errorf("len(Examples) = %d, want 2", len(definition.Examples))
	}
	if len(definition.RelatedConcepts) != 3 {
		t.Errorf("len(RelatedConcepts) = %d, want 3", len(definition.RelatedConcepts))
	}
}

func TestParseDefinitionMissingBasic(t *testing.T) {
	raw := `<detailed_definition>Lots of detail but no basic definition.</detailed_definition>`

	_, err := ParseDefinition(raw)
	if err != ErrMissingDefinition {
		t.Errorf("ParseDefinition() error = %v, want ErrMissingDefinition", err)
	}
}

func TestParseDefinitionOptionalSectionsMissing(t *testing.T) {
	definition, err := ParseDefinition(`<basic_definition>Short.</basic_definition>`)
	if err != nil {
		t.Fatalf("ParseDefinition() error = %v", err)
	}
	if definition.BasicDefinition != "Short." {
		t.Errorf("BasicDefinition = %q", definition.BasicDefinition)
	}
	if definition.Examples != nil || definition.RelatedConcepts != nil {
		t.Errorf("optional sections should be nil, got %+v", definition)
	}
}

func TestBuildPromptsStrictMode(t *testing.T) {
	normal := buildSolvePrompt(SolveInput{Problem: "2x = 4", Subject: "algebra"})
	strict := buildSolvePrompt(SolveInput{Problem: "2x = 4", Subject: "algebra", Strict: true})

	if normal == strict {
		t.Error("strict prompt should differ from normal prompt")
	}
	if len(strict) <= len(normal) {
		t.Error("strict prompt should extend the normal prompt")
	}

	normalDef := buildDefinePrompt(DefineInput{Term: "triangle", Subject: "geometry", GradeLevel: "high school"})
	strictDef := buildDefinePrompt(DefineInput{Term: "triangle", Subject: "geometry", GradeLevel: "high school", Strict: true})
	if normalDef == strictDef {
		t.Error("strict define prompt should differ from normal prompt")
	}
}
