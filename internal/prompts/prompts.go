// Package prompts renders generation requests into instruction text for
// the text-generation service. Every builder is pure.
package prompts

import (
	"fmt"
	"strings"
)

// Kind identifies what a generation request is for.
type Kind string

const (
	KindPassage       Kind = "passage"
	KindQuestions     Kind = "questions"
	KindWritingPrompt Kind = "writing-prompt"
	KindFeedback      Kind = "feedback"
)

// Request is one rendered generation request.
type Request struct {
	Kind        Kind
	Text        string
	MaxTokens   int
	Temperature float64
}

// Builder renders requests with the token budget from Config.
type Builder struct {
	cfg Config
}

// New creates a Builder. A zero MaxTokens falls back to the default.
func New(cfg Config) *Builder {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Builder{cfg: cfg}
}

// Passage asks for an academic reading passage on topic.
func (b *Builder) Passage(topic string) Request {
	return b.request(KindPassage, buildPassage(topic), b.cfg.PassageTemperature)
}

// Questions asks for count multiple-choice questions on passage,
// restricted to allowedTypes.
func (b *Builder) Questions(passage string, allowedTypes []string, count int) Request {
	return b.request(KindQuestions, buildQuestions(passage, allowedTypes, count), b.cfg.QuestionsTemperature)
}

// IntegratedWriting asks for an integrated writing task. An empty theme
// produces the fixed task text.
func (b *Builder) IntegratedWriting(theme string) Request {
	return b.request(KindWritingPrompt, withTheme(integratedTask, theme), b.cfg.WritingTemperature)
}

// IndependentWriting asks for an independent writing task.
func (b *Builder) IndependentWriting(theme string) Request {
	return b.request(KindWritingPrompt, withTheme(independentTask, theme), b.cfg.WritingTemperature)
}

// Feedback asks for a scored review of essay written for promptText.
func (b *Builder) Feedback(promptText, essay string) Request {
	return b.request(KindFeedback, buildFeedback(promptText, essay), b.cfg.FeedbackTemperature)
}

func (b *Builder) request(kind Kind, text string, temperature float64) Request {
	return Request{
		Kind:        kind,
		Text:        text,
		MaxTokens:   b.cfg.MaxTokens,
		Temperature: temperature,
	}
}

func buildPassage(topic string) string {
	var b strings.Builder

	b.WriteString("Generate a reading passage for TOEFL practice that:\n")
	b.WriteString("1. Is about 400-600 words long (longer passages allow for more questions)\n")
	b.WriteString("2. Contains academic vocabulary appropriate for TOEFL\n")
	fmt.Fprintf(&b, "3. Discusses the topic: %s\n", topic)
	b.WriteString("4. Has clear paragraph structure with 4-6 paragraphs\n")
	b.WriteString("5. Includes relevant examples, evidence, and supporting details\n")
	b.WriteString("6. Has a clear main idea and supporting points\n")
	b.WriteString("7. Uses an academic tone suitable for university-level readers\n")
	b.WriteString("8. Contains information that could be tested in different question types\n")
	b.WriteString("\nFormat the response as plain text only with a title.")

	return b.String()
}

const questionsExample = `[
  {
    "type": "[question_type]",
    "question": "[question_text]",
    "options": ["[option1]", "[option2]", "[option3]", "[option4]"],
    "correct": [correct_index]
  },
  {
    "type": "[question_type]",
    "question": "[question_text]",
    "options": ["[option1]", "[option2]", "[option3]", "[option4]"],
    "correct": [correct_index]
  },
  ...
]`

func buildQuestions(passage string, allowedTypes []string, count int) string {
	types := strings.Join(allowedTypes, ", ")

	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d TOEFL-style questions for this passage:\n", count)
	b.WriteString(strings.TrimSpace(passage))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Create questions ONLY for the following selected question types: %s\n", types)
	b.WriteString("Distribute the questions evenly among these types.\n\n")

	b.WriteString("For each question:\n")
	fmt.Fprintf(&b, "1. Include the question type (must be one from: %s)\n", types)
	b.WriteString("2. Provide 4 multiple choice options that are plausible but with only one correct answer\n")
	b.WriteString("3. Specify the correct answer index (0-3)\n")
	b.WriteString("4. Make sure questions test real comprehension, not just superficial details\n")
	b.WriteString("5. Include vocabulary questions that test context-specific meanings\n")
	b.WriteString("6. For inference questions, ensure they require understanding implied information\n\n")

	b.WriteString("Format the response exactly as follows (valid JSON array):\n")
	b.WriteString(questionsExample)

	return b.String()
}

const integratedTask = "Generate a TOEFL Integrated Writing task with exactly these three sections:\n" +
	"1. '# Reading Passage' (250-word excerpt)\n" +
	"2. '# Lecture Summary' (150-200 word summary)\n" +
	"3. '# Writing Prompt'\n" +
	"Make sure to include all three section headings exactly as shown above."

const independentTask = "Generate a TOEFL Independent Writing task: one essay prompt. " +
	"Use '# Independent Writing Prompt' heading."

func withTheme(task, theme string) string {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return task
	}
	return task + "\nBase the task on this theme: " + theme
}

func buildFeedback(promptText, essay string) string {
	var b strings.Builder

	b.WriteString("You are a TOEFL writing instructor. Provide detailed feedback on this essay.\n\n")
	b.WriteString("PROMPT:\n")
	b.WriteString(strings.TrimSpace(promptText))
	b.WriteString("\n\nSTUDENT'S ESSAY:\n")
	b.WriteString(strings.TrimSpace(essay))
	b.WriteString("\n\nRate these areas on a scale of 0-5:\n")
	for _, area := range FeedbackAreas {
		fmt.Fprintf(&b, "- %s\n", area)
	}
	b.WriteString("\nThen give an overall score (0-30) and specific recommendations.")

	return b.String()
}

// FeedbackAreas are the rubric areas scored 0-5 in essay feedback.
var FeedbackAreas = []string{"Development", "Organization", "Language Use", "Relevance"}
