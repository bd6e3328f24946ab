package models

import "time"

// CycleRecord is the output of one analysis pass: transcribe, summarize, identify themes,
// refine the whiteboard, generate an image and derive new insights.
type CycleRecord struct {
	ID                    string    `json:"id" yaml:"id" parquet:"id"`
	Transcription         string    `json:"transcription" yaml:"transcription" parquet:"transcription"`
	Summary               string    `json:"summary" yaml:"summary" parquet:"summary"`
	IdentifiedThemes      string    `json:"identified_themes" yaml:"identified_themes" parquet:"identified_themes"`
	WhiteboardContent     string    `json:"whiteboard_content" yaml:"whiteboard_content" parquet:"whiteboard_content"`
	GeneratedImageDataURI string    `json:"generated_image_data_uri" yaml:"generated_image_data_uri" parquet:"generated_image_data_uri"`
	NewInsights           string    `json:"new_insights" yaml:"new_insights" parquet:"new_insights"`
	CompletedAt           time.Time `json:"completed_at" yaml:"completed_at" parquet:"completed_at,timestamp"`
}

// ReportRequest asks for a session report over an ordered sequence of cycles.
// Metadata fields are optional and default to placeholder text.
type ReportRequest struct {
	Cycles   []CycleRecord `json:"cycles" yaml:"cycles"`
	Title    string        `json:"title,omitempty" yaml:"title,omitempty"`
	Project  string        `json:"project,omitempty" yaml:"project,omitempty"`
	Contact  string        `json:"contact,omitempty" yaml:"contact,omitempty"`
	User     string        `json:"user,omitempty" yaml:"user,omitempty"`
	Provider string        `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model    string        `json:"model,omitempty" yaml:"model,omitempty"`
}

// ProcessedCycle is a CycleRecord prepared for rendering in a report.
type ProcessedCycle struct {
	CycleRecord
	Index       int    `json:"index"`
	ImageStatus string `json:"image_status"`
}

// Notification is a transient user-visible message raised by a failed flow call.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Destructive bool      `json:"destructive"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionView is the serialisable state of a whiteboard session.
type SessionView struct {
	ID           string          `json:"id"`
	Transcript   string          `json:"transcript"`
	Summary      string          `json:"summary"`
	Themes       string          `json:"themes"`
	VoicePrompt  string          `json:"voice_prompt"`
	Whiteboard   string          `json:"whiteboard"`
	ImageDataURI string          `json:"image_data_uri,omitempty"`
	Insights     string          `json:"insights"`
	Loading      map[string]bool `json:"loading"`
	Cycles       []CycleRecord   `json:"cycles"`
	LastNotice   *Notification   `json:"last_notice,omitempty"`
	Provider     string          `json:"provider,omitempty"`
	Model        string          `json:"model,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
