package config

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

const projectSchema = `
#Layout: "HERO" | "CONCEPT" | "LIST" | "GRID" | "COMPARISON" | "DIAGRAM" |
	"TALKING_HEAD" | "QUOTE" |
	"SPLIT_TEXT_TOP" | "SPLIT_MEDIA_TOP" | "SPLIT_TEXT_LEFT" | "SPLIT_MEDIA_LEFT"

#Timing: {
	delay?:            int & >=0
	speed?:            number & >0
	window_fraction?:  number & >0 & <=1
	min_spacing?:      int & >=0
	jitter_amplitude?: number & >=0
	jitter_k?:         number
}

#Scene: {
	layout:      #Layout
	duration:    number & >0
	voice_over?: string
	content?: {...}
	timing?: #Timing
}

#Project: {
	fps:                 int & >0
	width?:              int & >0
	height?:             int & >0
	theme?:              string
	transition_seconds?: number & >=0
	theme_overrides?: {
		music_volume?: number & >=0 & <=1
		sfx_volume?:   number & >=0 & <=1
		...
	}
	scenes: [...#Scene]
}
`

// checkSchema validates the structural constraints of p against the CUE
// schema and returns one FieldError per violation.
func checkSchema(p *Project) []FieldError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(projectSchema)
	if err := schema.Err(); err != nil {
		return []FieldError{{Field: "schema", Message: err.Error()}}
	}

	def := schema.LookupPath(cue.ParsePath("#Project"))
	value := def.Unify(ctx.Encode(p))

	err := value.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var out []FieldError
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, FieldError{
			Field:   strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return out
}
