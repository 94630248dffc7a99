package analysis

import (
	"fmt"
	"strings"

	"bujonow/internal/journal"
)

// ChatResponder answers questions about a user's journal without an API.
// Responses are rule-based, keyed on the question and on emotions stored in
// recent entries.
type ChatResponder struct{}

// NewChatResponder returns the rule-based chat responder.
func NewChatResponder() *ChatResponder {
	return &ChatResponder{}
}

var chatReflections = []string{
	"Regular journaling helps you track your emotional patterns and growth over time.",
	"Your journal is a conversation with yourself - what would your future self want to know about today?",
	"Journaling can help externalize your thoughts, making them easier to examine and understand.",
	"The act of writing itself often brings clarity to situations that feel confusing.",
	"Looking for patterns in your journal can reveal what truly matters to you.",
}

var chatPracticeSuggestions = []string{
	"Try journaling at the same time each day to build a consistent habit.",
	"Consider using prompts when you're not sure what to write about.",
	"Adding a brief gratitude practice to your journaling can boost positive emotions.",
	"Reviewing past entries can help you notice patterns in your thoughts and feelings.",
	"Be honest in your journal - it's a private space for authentic reflection.",
	"Try different journaling formats: lists, narratives, or even drawings and diagrams.",
}

var chatEmotionResponses = map[string]string{
	"happy":       "It's wonderful to experience happiness. Journaling about positive experiences can actually enhance their impact on your well-being.",
	"sad":         "When feeling sad, journaling can be a comforting way to process those emotions. Consider writing about both the feelings and any potential sources.",
	"angry":       "Anger often signals that a boundary has been crossed or a need isn't being met. Journaling can help identify the root cause.",
	"anxious":     "Writing about anxiety can help externalize your worries and see them more objectively. Consider listing what's in and outside of your control.",
	"stressed":    "Journaling can be an effective stress management tool. Try writing about your stressors and then brainstorming small steps to address them.",
	"grateful":    "Gratitude journaling has been shown to increase happiness and satisfaction. Even noting one thing you're grateful for can shift your perspective.",
	"frustrated":  "Frustration often comes from obstacles to our goals. Writing about the situation might reveal alternative paths forward.",
	"overwhelmed": "When feeling overwhelmed, try breaking down your thoughts on paper. This can make challenges feel more manageable.",
	"confused":    "Writing through confusion can help organize thoughts and bring clarity. Try exploring different perspectives in your writing.",
	"hopeful":     "Hope is powerful. Journaling about your hopes can help clarify your values and what you want to move toward.",
}

// chatEmotionOrder fixes matching order when a message mentions several
// emotions.
var chatEmotionOrder = []string{
	"happy", "sad", "angry", "anxious", "stressed",
	"grateful", "frustrated", "overwhelmed", "confused", "hopeful",
}

// Reply generates a response to the user's message, grounded in the emotions
// stored on their recent entries.
func (c *ChatResponder) Reply(userInput string, recent []journal.Entry) string {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return "Please type a message to chat with your journal assistant."
	}
	lower := strings.ToLower(userInput)

	var recentEmotions []string
	for i := range recent {
		if emotion := recent[i].PrimaryEmotion(); emotion != "" && emotion != "unknown" {
			recentEmotions = append(recentEmotions, emotion)
		}
	}
	predominant := "mixed"
	counts := make(map[string]int)
	best := 0
	for _, emotion := range recentEmotions {
		counts[emotion]++
	}
	for _, name := range sortedEmotions(counts) {
		if counts[name] > best {
			best = counts[name]
			predominant = name
		}
	}

	switch {
	case containsAny(lower, "how", "what", "pattern", "trend", "notice") && containsAny(lower, "feel", "feeling", "emotion", "mood"):
		if len(recentEmotions) == 0 {
			return "I don't have enough information about your recent journal entries to analyze emotional patterns. Try adding more journal entries with your feelings."
		}
		if predominant != "mixed" {
			return fmt.Sprintf("Based on your recent journal entries, you've been feeling predominantly %s. This emotion has appeared most frequently in your %d recent entries. Remember that acknowledging your emotions is an important step in understanding yourself better.", predominant, len(recent))
		}
		return "Your recent journal entries show a mix of different emotions. This variety is normal and reflects the complexity of daily life. Consider exploring which situations tend to trigger specific emotional responses."

	case containsAny(lower, "suggest", "recommendation", "advice", "help", "tip"):
		first := pick(userInput, len(chatPracticeSuggestions))
		selected := []string{
			chatPracticeSuggestions[first],
			chatPracticeSuggestions[(first+1)%len(chatPracticeSuggestions)],
		}
		return "Here are some suggestions for your journaling practice:\n\n- " + strings.Join(selected, "\n\n- ")

	case containsAny(lower, "meaning", "purpose", "reflect", "insight"):
		return chatReflections[pick(userInput, len(chatReflections))]

	case containsAny(lower, "hi", "hello", "hey", "greetings"):
		return "Hello! I'm your journal assistant. How can I help with your journaling practice today?"

	case strings.Contains(lower, "who are you") || strings.Contains(lower, "what can you do"):
		return "I'm your journal assistant. I can help you reflect on your journal entries, provide suggestions for your journaling practice, and answer questions about journaling. What would you like to know?"

	case strings.Contains(lower, "thank"):
		return "You're welcome! I'm here to support your journaling journey."

	case strings.Contains(lower, "why journal") || strings.Contains(lower, "why should i journal"):
		return "Journaling helps process emotions, gain clarity, track personal growth, improve mental health, and preserve memories. It's a powerful tool for self-reflection and understanding."

	case strings.Contains(lower, "how often") && strings.Contains(lower, "journal"):
		return "The ideal journaling frequency is whatever works best for you - daily, weekly, or whenever you feel the need. Consistency is more important than frequency, so find a rhythm that's sustainable for your lifestyle."
	}

	if len(userInput) > 10 {
		for _, emotion := range chatEmotionOrder {
			if strings.Contains(lower, emotion) {
				return chatEmotionResponses[emotion]
			}
		}
		for _, phrase := range []string{"today i", "i feel", "i felt", "i am", "i'm feeling", "right now i"} {
			if strings.Contains(lower, phrase) {
				return "Thank you for sharing your thoughts. If you'd like to save this as a journal entry, record it as today's entry. What would you like to explore about what you've shared?"
			}
		}
	}

	if len(recent) > 0 {
		return fmt.Sprintf("You have %d recent journal entries. What specific aspect of your journaling practice would you like to discuss or explore?", len(recent))
	}
	return "What specific aspect of journaling would you like to explore today? I can offer suggestions, reflections, or answer questions about journaling practices."
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
