package flows

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

type summaryOutput struct {
	Summary string `json:"summary" jsonschema:"a concise summary of the conversation"`
}

type themesOutput struct {
	Themes []string `json:"themes" jsonschema:"at most five short theme phrases"`
}

type whiteboardOutput struct {
	Whiteboard string `json:"whiteboard" jsonschema:"the complete refined whiteboard text"`
}

type insightsOutput struct {
	Insights string `json:"insights" jsonschema:"new insights derived from the session"`
}

var (
	summarySchema    = mustSchema[summaryOutput]()
	themesSchema     = mustSchema[themesOutput]()
	whiteboardSchema = mustSchema[whiteboardOutput]()
	insightsSchema   = mustSchema[insightsOutput]()
)

// mustSchema derives the reply schema for T. Unknown extra keys are tolerated,
// missing or mistyped declared keys are not.
func mustSchema[T any]() *jsonschema.Resolved {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("flows: schema for %T: %v", *new(T), err))
	}
	s.AdditionalProperties = nil
	rs, err := s.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("flows: resolve schema for %T: %v", *new(T), err))
	}
	return rs
}
