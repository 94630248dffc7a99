// Package whisperx runs WhisperX speech-to-text over voice journal notes.
//
// Voice notes arrive in whatever container the recorder produced (m4a, ogg,
// mp3). The service converts them to mono 16kHz WAV with ffmpeg, invokes
// WhisperX through uvx, and reads the transcript back from the JSON output.
package whisperx
