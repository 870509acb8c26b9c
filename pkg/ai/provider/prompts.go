package provider

import (
	"fmt"
	"strings"
)

const (
	solveSystemPrompt = "You are an expert STEM tutor. Provide clear, detailed solutions with step-by-step explanations."

	defineSystemPrompt = "You are an expert educator explaining concepts at an appropriate level."

	classifySystemPrompt = "You are a STEM subject classifier. Respond only with the subject name."
)

const solvePromptTemplate = `<problem>
%s
</problem>

<subject>%s</subject>

<instructions>
Solve this %s problem step by step. Respond ONLY in the following tagged format:

<step>
<explanation>What is done in this step and why</explanation>
<concepts>comma-separated key concepts used in this step</concepts>
</step>

Repeat the <step> block for every step of the solution, in order. Then finish with:

<answer>the final answer, stated clearly and concisely</answer>

Use mathematical expressions in plain text. Do not add any text outside the tags.
</instructions>`

const definePromptTemplate = `<term>%s</term>

<context>
<grade_level>%s</grade_level>
<subject>%s</subject>
</context>

<instructions>
Explain this term at a %s level. Respond ONLY in the following tagged format:

<basic_definition>a clear, grade-appropriate one or two sentence definition</basic_definition>
<detailed_definition>a fuller explanation with usage in the subject area</detailed_definition>
<example>a real-world example or application</example>
<related>comma-separated related concepts</related>

The <example> tag may repeat. Do not add any text outside the tags.
</instructions>`

// strictSuffix is appended when the previous attempt produced output that
// failed structural validation.
const strictSuffix = `

<format_reminder>
Your previous response could not be parsed. Follow the tagged format EXACTLY
as specified, with every tag opened and closed, and no prose, markdown or
code fences outside the tags.
</format_reminder>`

const classifyPromptTemplate = `<content>
%s
</content>

<supported_subjects>
%s
</supported_subjects>

<instructions>
Identify which subject from supported_subjects best matches the content.
Consider key terms, the type of problem, and any mathematical or scientific
notation. Respond with ONLY the single best matching subject name from the
list, in lowercase. If uncertain, respond with "general".
</instructions>`

func buildSolvePrompt(input SolveInput) string {
	prompt := fmt.Sprintf(solvePromptTemplate, input.Problem, input.Subject, input.Subject)
	if input.Strict {
		prompt += strictSuffix
	}
	return prompt
}

func buildDefinePrompt(input DefineInput) string {
	prompt := fmt.Sprintf(definePromptTemplate, input.Term, input.GradeLevel, input.Subject, input.GradeLevel)
	if input.Strict {
		prompt += strictSuffix
	}
	return prompt
}

// BuildClassifyPrompt builds the subject-classification prompt used by the
// preprocessing layer.
func BuildClassifyPrompt(content string, supportedSubjects []string) string {
	return fmt.Sprintf(classifyPromptTemplate, content, strings.Join(supportedSubjects, ", "))
}
