package flows

import (
	"fmt"
	"strings"
)

func summarizePrompt(transcript string) string {
	return fmt.Sprintf(`You are the note taker in a brainstorming session. Summarize the conversation transcript below.

INSTRUCTIONS:
1. Capture the main topics, decisions and open questions.
2. Keep it to a few sentences. Put the most important point in the first sentence.
3. Write in the language of the transcript.
4. Do not invent content that is not in the transcript.

TRANSCRIPT:
%s

OUTPUT FORMAT:
Respond with ONLY a JSON object:

{"summary": "..."}`, transcript)
}

func themesPrompt(text string) string {
	return fmt.Sprintf(`Identify the key themes in the text below.

INSTRUCTIONS:
1. Return at most %d themes.
2. Each theme is a short noun phrase of one to four words.
3. Write the themes in the language of the text.

TEXT:
%s

OUTPUT FORMAT:
Respond with ONLY a JSON object:

{"themes": ["...", "..."]}`, MaxThemes, text)
}

func whiteboardPrompt(in WhiteboardInput) string {
	current := in.Whiteboard
	if blank(current) {
		current = "(the whiteboard is empty)"
	}
	themes := in.Themes
	if blank(themes) {
		themes = "(no themes identified yet)"
	}

	return fmt.Sprintf(`You maintain a shared whiteboard for a brainstorming session.
A participant gave the following spoken instruction:

%q

Session themes: %s

CURRENT WHITEBOARD:
%s

INSTRUCTIONS:
1. Apply the instruction to the whiteboard. Expand, reorganise or add ideas as asked.
2. Keep existing content unless the instruction asks to change it.
3. Use short lines and bullet points suitable for a whiteboard.
4. Return the complete whiteboard, not only the changes.

OUTPUT FORMAT:
Respond with ONLY a JSON object:

{"whiteboard": "..."}`, in.VoicePrompt, themes, current)
}

func insightsPrompt(in InsightsInput) string {
	var sb strings.Builder
	sb.WriteString("You are a facilitator helping a team think further about their session.\n\n")
	sb.WriteString("SUMMARY:\n")
	sb.WriteString(in.Summary)
	sb.WriteString("\n\n")
	if !blank(in.Themes) {
		sb.WriteString("THEMES: ")
		sb.WriteString(in.Themes)
		sb.WriteString("\n\n")
	}
	if !blank(in.Whiteboard) {
		sb.WriteString("WHITEBOARD:\n")
		sb.WriteString(in.Whiteboard)
		sb.WriteString("\n\n")
	}
	sb.WriteString(`INSTRUCTIONS:
1. Propose two to four new insights, connections or questions the team has not stated yet.
2. Write in the language of the summary.

OUTPUT FORMAT:
Respond with ONLY a JSON object:

{"insights": "..."}`)
	return sb.String()
}

// ImagePrompt renders the prompt used to illustrate a whiteboard.
func ImagePrompt(whiteboard, themes string) string {
	var sb strings.Builder
	sb.WriteString("Create a clean, hand-drawn style whiteboard sketch that visualises the following ideas. ")
	sb.WriteString("Use simple shapes, arrows and short labels. Do not render long paragraphs of text.\n\n")
	if !blank(themes) {
		sb.WriteString("Themes: ")
		sb.WriteString(themes)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Whiteboard:\n")
	sb.WriteString(whiteboard)
	return sb.String()
}
