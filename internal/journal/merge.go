package journal

import "strings"

// mergeDelimiter separates the new text from the previous text when an entry
// is merged. The exact value is load-bearing: existing documents were written
// with it and callers display the combined text verbatim.
const mergeDelimiter = " \n "

// mergeTextReplacer escapes literal newlines and strips square brackets from
// incoming text before it is prepended to the existing body.
var mergeTextReplacer = strings.NewReplacer("\n", "\\n", "[", "", "]", "")

func sanitizeMergeText(text string) string {
	return mergeTextReplacer.Replace(text)
}

// Record is the upsert-merge operation: create the entry when the date has
// none, otherwise merge the supplied fields into the existing document.
//
// Merge rules, preserved from observed behavior:
//   - text: sanitized new text, the merge delimiter, then the old text
//   - tasks, goals, tags: new before old, never deduplicated
//   - chat history: new messages appended after the existing ones
//   - emotion analysis: shallow merge, new keys overwrite old key by key,
//     keys missing from the new payload keep their old values
//   - ai_summary: replaced only when the new value is non-empty
//   - category and creation timestamp: kept from the existing entry
//
// Identity is idempotent (always exactly one entry per date) but content is
// not: recording the same text twice duplicates it in the merged body.
func (s *Store) Record(params EntryParams) (*Entry, error) {
	date := params.Date
	if date.IsZero() {
		date = s.now()
	}
	unlock := s.lockDate(date)
	defer unlock()

	existing, err := s.Get(date)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return s.createLocked(params, date)
	}

	merged := *existing
	merged.Content.Text = sanitizeMergeText(params.Text) + mergeDelimiter + existing.Content.Text
	merged.Content.Tasks = append(append([]Task{}, params.Tasks...), existing.Content.Tasks...)
	merged.Content.Goals = append(append([]Goal{}, params.Goals...), existing.Content.Goals...)
	merged.Content.Tags = append(append([]string{}, params.Tags...), existing.Content.Tags...)
	merged.Content.ChatHistory = append(append([]ChatMessage{}, existing.Content.ChatHistory...), params.ChatHistory...)

	analysis := make(map[string]any, len(existing.EmotionAnalysis)+len(params.Analysis))
	for key, value := range existing.EmotionAnalysis {
		analysis[key] = value
	}
	for key, value := range params.Analysis {
		analysis[key] = value
	}
	merged.EmotionAnalysis = analysis

	if params.AISummary != "" {
		merged.Content.AISummary = AISummary(params.AISummary)
	}

	s.recomputeMetadata(&merged)
	if err := s.save(&merged, date); err != nil {
		return nil, err
	}
	return &merged, nil
}
