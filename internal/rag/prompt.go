package rag

import "strings"

// qaPrompt is the "stuff" question-answering prompt: every retrieved passage
// is placed into a single prompt ahead of the question.
const qaPrompt = `Use the following pieces of context to answer the question at the end. If you don't know the answer, just say that you don't know, don't try to make up an answer.

{context}

Question: {question}
Helpful Answer:`

// BuildPrompt fills the QA prompt with the retrieved context and the question.
func BuildPrompt(context, question string) string {
	return strings.NewReplacer("{context}", context, "{question}", question).Replace(qaPrompt)
}
