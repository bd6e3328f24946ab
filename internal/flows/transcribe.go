package flows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/whiteboard/internal/audio"
)

type TranscribeInput struct {
	AudioDataURI string `json:"audio_data_uri"`
}

// Transcribe returns a placeholder transcript for a recording. Speech recognition is not
// wired to a backend; the stub only describes what was received.
func (r *Runner) Transcribe(ctx context.Context, in TranscribeInput) Result {
	if blank(in.AudioDataURI) {
		return emptyInput(TranscriptionUnavailable)
	}

	mime, data, err := audio.ParseDataURI(in.AudioDataURI)
	if err != nil {
		slog.Warn("Invalid audio payload", "err", err)
		return emptyInput(TranscriptionUnavailable)
	}

	info := audio.Inspect(mime, data)
	slog.Info("Audio received for transcription", "mime", info.MIMEType, "bytes", info.Bytes, "duration", info.Duration)

	return ok(fmt.Sprintf("[Simuleret transskription] Lydoptagelse modtaget (%s). "+
		"Automatisk talegenkendelse er ikke tilsluttet; indtast eller ret transskriptionen manuelt.", info.Describe()))
}
