package llm

import (
	"fmt"
	"unicode/utf8"
)

// promptContextLimit bounds how much document text goes into a prompt.
const promptContextLimit = 3000

// SystemPrompt frames every provider call.
const SystemPrompt = "You are a helpful legal document interpretation assistant. " +
	"Provide clear, accurate, and concise explanations of legal documents and concepts. " +
	"Always include appropriate disclaimers. " +
	"Use markdown-like formatting with headings and bullet points for readability."

const disclaimer = `

IMPORTANT DISCLAIMER: I am an AI assistant and not a lawyer.
This information is for educational purposes only and does not constitute legal advice.
Always consult with a qualified attorney for legal matters.
`

const summaryOutline = `Please analyze this legal document and provide a comprehensive summary including:
1. Document Type and Purpose
2. Key Parties and Their Roles
3. Main Obligations and Responsibilities
4. Important Dates and Deadlines
5. Payment Terms (if applicable)
6. Termination Clauses
7. Liability and Indemnity Provisions
8. Confidentiality Requirements
9. Dispute Resolution Methods
10. Potential Risks and Red Flags

Structure your response in clear sections with bullet points.
`

// BuildPrompt assembles the user prompt for a summary (empty question) or
// a question-answering call. Document text is truncated to the first 3000
// characters and the fixed legal disclaimer is always appended.
func BuildPrompt(documentText, question string) string {
	excerpt := truncateRunes(documentText, promptContextLimit)

	var prompt string
	if question != "" {
		prompt = fmt.Sprintf(`You are Lexibridge, an AI legal document interpretation assistant.

Document Content (first 3000 characters):
%s

User Question: %s

Please analyze this legal document and provide a comprehensive response to the user's question.
Structure your response with clear sections and bullet points where appropriate.
`, excerpt, question)
	} else {
		prompt = fmt.Sprintf(`You are Lexibridge, an AI legal document interpretation assistant.

Document Content (first 3000 characters):
%s

%s`, excerpt, summaryOutline)
	}

	return prompt + disclaimer
}

// truncateRunes cuts on a rune boundary so multi-byte characters are never
// split into invalid UTF-8.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
