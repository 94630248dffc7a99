package journal

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DefaultCategory is assigned to entries created without an explicit category.
const DefaultCategory = "daily"

// Task is a bullet-journal task item attached to an entry.
type Task struct {
	Task     string `json:"task"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// Goal is a bullet-journal goal item attached to an entry.
type Goal struct {
	Goal      string `json:"goal"`
	Timeframe string `json:"timeframe,omitempty"`
	Progress  int    `json:"progress"`
}

// ChatMessage is one exchange in the entry's AI chat history.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// AISummary is the free-form AI-generated summary of an entry. Documents
// written by earlier versions stored it as either a string or a JSON array,
// so decoding tolerates both; it is always re-encoded as a string.
type AISummary string

func (a *AISummary) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*a = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = AISummary(s)
	case '[':
		var parts []string
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			// Arrays of non-string payloads collapse to empty rather than
			// failing the whole document.
			*a = ""
			return nil
		}
		*a = AISummary(strings.Join(parts, "\n"))
	default:
		*a = AISummary(string(trimmed))
	}
	return nil
}

// Content holds the accumulated body of an entry.
type Content struct {
	Text        string        `json:"text"`
	Tasks       []Task        `json:"tasks"`
	Goals       []Goal        `json:"goals"`
	Tags        []string      `json:"tags"`
	ChatHistory []ChatMessage `json:"chat_history"`
	AISummary   AISummary     `json:"ai_summary"`
}

// Metadata is derived from the content on every write; it is never settable
// by callers.
type Metadata struct {
	LastModified   string `json:"last_modified"`
	WordCount      int    `json:"word_count"`
	HasTasks       bool   `json:"has_tasks"`
	HasGoals       bool   `json:"has_goals"`
	HasChatHistory bool   `json:"has_chat_history"`
	HasAISummary   bool   `json:"has_ai_summary"`
}

// Entry is one user's journal record for a single calendar date.
type Entry struct {
	Date            string         `json:"date"`
	Timestamp       string         `json:"timestamp"`
	Category        string         `json:"category"`
	Content         Content        `json:"content"`
	EmotionAnalysis map[string]any `json:"emotion_analysis"`
	Metadata        Metadata       `json:"metadata"`
}

// PrimaryEmotion returns the entry's primary emotion label, or "" when the
// analysis payload is empty or carries no usable value.
func (e *Entry) PrimaryEmotion() string {
	if e == nil || e.EmotionAnalysis == nil {
		return ""
	}
	value, ok := e.EmotionAnalysis["primary_emotion"]
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
