// Command bujonow is the journaling CLI: it records text, voice, and photo
// entries, chats with the reflection assistant, and renders weekly summaries
// and mood reports from the local entry store.
package main
