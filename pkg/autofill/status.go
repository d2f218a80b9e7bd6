package autofill

import "errors"

// Tone classifies a status message.
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneError   Tone = "error"
	ToneSuccess Tone = "success"
)

// Status texts shown on the status element.
const (
	MessageEmptyIdentifier = "Please provide a DOI or DOI link."
	MessageFetching        = "Fetching..."
	MessageLoaded          = "DOI data loaded successfully!"
	MessageFailed          = "Failed to fetch DOI metadata."
	MessageIncomplete      = "DOI data loaded, but some fields could not be filled."
)

// Color returns the CSS colour cue for the tone.
func (t Tone) Color() string {
	switch t {
	case ToneError:
		return "#ff6b6b"
	case ToneSuccess:
		return "#48bb78"
	default:
		return "#60a5fa"
	}
}

// Status is a message and its tone.
type Status struct {
	Tone Tone
	Text string
}

func failureStatus(err error) Status {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) && lookupErr.Message != "" {
		return Status{Tone: ToneError, Text: lookupErr.Message}
	}
	return Status{Tone: ToneError, Text: MessageFailed}
}
