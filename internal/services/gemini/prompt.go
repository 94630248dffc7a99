package gemini

import (
	"fmt"
	"sort"
	"strings"
)

// groundingDocuments is the small well-being corpus used to ground the
// model's suggestions. The top-ranked documents for the input text are
// spliced into the prompt.
var groundingDocuments = []string{
	"Practicing gratitude can significantly improve mental well-being by shifting focus from negative thoughts.",
	"CBT techniques help reframe negative thinking patterns into constructive insights.",
	"Social connection and being heard improve emotional regulation and resilience.",
	"Journaling builds self-awareness and emotional processing.",
	"Mindfulness and breathing exercises can reduce anxiety symptoms.",
	"Setting boundaries helps prevent burnout and protects well-being.",
	"Labeling emotions accurately helps regulate them.",
	"Acts of self-care can boost mood and positivity.",
	"A sense of purpose improves long-term well-being.",
	"Self-compassion reduces self-criticism and nurtures kindness.",
	"Building resilience involves embracing challenges and learning from adversity.",
	"Exercise and physical activity have a profound impact on mental health.",
	"Developing a growth mindset helps overcome obstacles and setbacks.",
	"Sleep hygiene and quality rest play a critical role in emotional health.",
	"Accepting imperfections and practicing self-forgiveness can reduce stress.",
	"Positive affirmations can improve self-esteem and mental clarity.",
	"Mindful eating and nutrition impact mental and emotional states.",
	"Visualization techniques can help manage stress and anxiety.",
	"Effective communication skills are essential for managing conflict and building connections.",
	"Grief is a complex emotional experience that requires time, patience, and support.",
	"Your mental health is just as important as your physical health.",
	"It's okay not to be okay.",
	"Taking care of your mental health is an act of self-love.",
	"You are worthy of happiness and peace of mind.",
	"There is no shame in seeking help for your mental health.",
	"You are not alone in your struggles.",
	"It's okay to ask for support when you need it.",
	"Mental health is not a destination, it's a journey.",
	"You are stronger than you realize.",
	"Small steps can lead to big progress in mental health.",
	"You are deserving of love and compassion, especially from yourself.",
	"It's okay to have bad days and ask for support when you need it.",
}

// rankContext returns the top-k grounding documents by word overlap with the
// input. Overlap ranking stands in for embedding retrieval so analysis stays
// a single API round trip.
func rankContext(input string, docs []string, k int) []string {
	inputWords := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(input)) {
		inputWords[strings.Trim(w, ".,!?;:\"'")] = struct{}{}
	}
	type scored struct {
		doc   string
		score int
		index int
	}
	ranked := make([]scored, 0, len(docs))
	for i, doc := range docs {
		score := 0
		for _, w := range strings.Fields(strings.ToLower(doc)) {
			if _, ok := inputWords[strings.Trim(w, ".,!?;:\"'")]; ok {
				score++
			}
		}
		ranked = append(ranked, scored{doc: doc, score: score, index: i})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if k > len(ranked) {
		k = len(ranked)
	}
	top := make([]string, 0, k)
	for _, s := range ranked[:k] {
		top = append(top, s.doc)
	}
	return top
}

func buildAnalysisPrompt(text string) string {
	context := strings.Join(rankContext(text, groundingDocuments, 3), "\n")
	return fmt.Sprintf(`You are a supportive AI journaling assistant.
Analyze the user's journal input text and return a structured JSON with the following:
1. Primary emotion (e.g., sad, anxious, hopeful)
2. Up to 3 key themes
3. One CBT-style reflection suggestion
4. One daily affirmation

Use this context to ground your suggestions:
%s

Here are a few examples:

Journal Input Text:
I feel hopeless. Everything I do seems to go wrong.
Response:
{
  "emotion": "hopeless",
  "themes": ["self-doubt", "negativity"],
  "suggestion": "Try writing down three things that went well each day, no matter how small.",
  "affirmation": "You are resilient and capable of overcoming hard days."
}

Journal Input Text:
I felt better today. I went for a walk and saw some friends.
Response:
{
  "emotion": "grateful",
  "themes": ["connection", "nature"],
  "suggestion": "Continue spending time doing things that bring you joy.",
  "affirmation": "Joy is found in small, simple moments."
}

Now analyze the following entry:
%s
Respond in JSON format like:
{
  "emotion": "...",
  "themes": ["...", "..."],
  "suggestion": "...",
  "affirmation": "..."
}`, context, text)
}

func buildWeeklySummaryPrompt(combined string) string {
	context := strings.Join(rankContext(combined, groundingDocuments, 3), "\n")
	return fmt.Sprintf(`You are an AI assistant that helps users reflect on their journaling.
Analyze the collection of journal entries from the past week and provide:
1. A brief summary of the overall week
2. Key emotional patterns observed
3. 2-3 recommendations for the coming week based on the patterns

Context for grounding your recommendations:
%s

Journal entries from the past week:
%s

Return your analysis in JSON format like:
{
  "summary": "One paragraph summary of the week",
  "emotion_trend": "Description of emotional patterns",
  "recommendations": ["Recommendation 1", "Recommendation 2", "Recommendation 3"]
}`, context, combined)
}

const imageAnalysisPrompt = `You are an assistant that analyzes photos attached to journal entries.
Describe the photo briefly, count visible faces, and name the dominant emotion shown, if any.
Return JSON like:
{
  "detected_emotion": "happy",
  "faces": 1,
  "description": "A person smiling outdoors on a sunny trail."
}`
