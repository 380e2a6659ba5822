package config

import (
	"fmt"
	"strings"
)

// FieldError is one rejected field of a project.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ConfigError rejects a project before any frame is computed.
type ConfigError struct {
	Errors []FieldError
}

func (e *ConfigError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.String()
	}
	return fmt.Sprintf("invalid project: %s", strings.Join(parts, "; "))
}

// Validate checks p and returns a *ConfigError describing every problem, or nil.
func Validate(p *Project) error {
	var errs []FieldError

	if len(p.Scenes) == 0 {
		errs = append(errs, FieldError{Field: "scenes", Message: "at least one scene is required"})
	}

	errs = append(errs, checkSchema(p)...)

	for i, s := range p.Scenes {
		if !s.Layout.Valid() {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("scenes.%d.layout", i),
				Message: fmt.Sprintf("unknown layout %q", s.Layout),
			})
			continue
		}
		for _, field := range missingContent(s) {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("scenes.%d.content.%s", i, field),
				Message: fmt.Sprintf("required for layout %s", s.Layout),
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &ConfigError{Errors: errs}
}

// RequiredFields documents the content fields each layout needs.
var RequiredFields = map[Layout][]string{
	LayoutHero:           {"text"},
	LayoutConcept:        {"media"},
	LayoutList:           {"points"},
	LayoutGrid:           {"medias"},
	LayoutComparison:     {"medias"},
	LayoutDiagram:        {"code"},
	LayoutTalkingHead:    {"video_source|media"},
	LayoutQuote:          {"quote"},
	LayoutSplitTextTop:   {"top", "bottom"},
	LayoutSplitMediaTop:  {"top", "bottom"},
	LayoutSplitTextLeft:  {"left", "right"},
	LayoutSplitMediaLeft: {"left", "right"},
}

func missingContent(s Scene) []string {
	c := s.Content
	var missing []string
	for _, field := range RequiredFields[s.Layout] {
		present := true
		switch field {
		case "text":
			present = strings.TrimSpace(c.Text) != ""
		case "media":
			present = c.Media != ""
		case "points":
			present = len(c.Points) > 0
		case "medias":
			present = len(c.Medias) > 0
			if s.Layout == LayoutComparison {
				present = len(c.Medias) >= 2
			}
		case "code":
			present = len(diagramSteps(c.Code)) > 0
		case "video_source|media":
			present = c.VideoSource != "" || c.Media != ""
		case "quote":
			present = strings.TrimSpace(c.Quote) != ""
		case "top":
			present = zoneSet(c.Top)
		case "bottom":
			present = zoneSet(c.Bottom)
		case "left":
			present = zoneSet(c.Left)
		case "right":
			present = zoneSet(c.Right)
		}
		if !present {
			missing = append(missing, field)
		}
	}
	return missing
}

func zoneSet(z *Zone) bool {
	return z != nil && (z.Media != "" || strings.TrimSpace(z.Text) != "")
}

// DiagramSteps splits diagram code into its incremental instructions. A
// leading "graph ..." header is kept apart and prefixed to every step.
func DiagramSteps(code string) (header string, steps []string) {
	var lines []string
	for _, l := range strings.Split(code, ";") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, strings.TrimSpace(l))
		}
	}
	header = "graph TD"
	if len(lines) > 0 && strings.Contains(lines[0], "graph") {
		header = lines[0]
		lines = lines[1:]
	}
	return header, lines
}

func diagramSteps(code string) []string {
	_, steps := DiagramSteps(code)
	return steps
}
