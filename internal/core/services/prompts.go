package services

import "fmt"

// Retrieval and sampling parameters for the pipeline. K is fixed: every
// retrieval asks for the same neighbour count, with no similarity cutoff.
const (
	// TopK is the number of passages retrieved per query.
	TopK = 15

	// SummaryQuery is the canonical retrieval query for summarization.
	SummaryQuery = "Full summary of the video content"

	// translateTemperature keeps translation deterministic.
	translateTemperature = 0.0

	// answerTemperature keeps answers near-deterministic.
	answerTemperature = 0.2

	// summaryTemperature allows slightly freer summary phrasing.
	summaryTemperature = 0.3
)

// notRelevant is the sentinel the extraction prompt asks for when a
// passage contains nothing relevant to the question.
const notRelevant = "NOT_RELEVANT"

const translatePrompt = `Translate the following text to English with only necessary details:

%s`

const extractPrompt = `Given the following question and text passage, extract only the parts of the passage that are relevant to answering the question. Return the extracted text verbatim, without commentary. If nothing in the passage is relevant, return exactly %s.

Question: %s

Passage:
%s`

const answerPrompt = `You are a helpful assistant.
Answer ONLY from the provided transcript context.
For very trivial or obvious questions, answer by understanding the context.
If the context is insufficient, just say you don't know.

%s

Question: %s`

const summaryPrompt = `You are an expert summarizer. Summarize the following transcript text
clearly, concisely, and factually. Avoid repetition. Include all key ideas
and maintain the logical flow of the video. Don't use the word transcript
in the summary; the reader should not know a transcript was the source.

If the video includes educational or informative content, highlight
important takeaways and structure your summary with short paragraphs
or bullet points for clarity.

Transcript:
%s

Summary:`

func renderTranslate(text string) string {
	return fmt.Sprintf(translatePrompt, text)
}

func renderExtract(question, passage string) string {
	return fmt.Sprintf(extractPrompt, notRelevant, question, passage)
}

func renderAnswer(context, question string) string {
	return fmt.Sprintf(answerPrompt, context, question)
}

func renderSummary(context string) string {
	return fmt.Sprintf(summaryPrompt, context)
}
