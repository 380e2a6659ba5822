package layout

import (
	"path"
	"strings"
)

const (
	SfxPop        = "sfx/pop.mp3"
	SfxDoublePop  = "sfx/double_pop.mp3"
	SfxClick      = "sfx/click.mp3"
	SfxTypingKey  = "sfx/typing_key.mp3"
	SfxComparison = "transitions-sfx/whoosh1.mp3"

	TypingKeyVolume = 0.2
	MediaSfxVolume  = 0.8
)

var mediaSfx = map[string]string{
	"cerveau": SfxPop,
	"machine": SfxClick,
	"generic": SfxPop,
}

// MediaSfx picks the entrance sound of an illustration by its base name.
func MediaSfx(ref string) string {
	key := strings.TrimSuffix(path.Base(ref), path.Ext(ref))
	if s, ok := mediaSfx[strings.ToLower(key)]; ok {
		return s
	}
	return mediaSfx["generic"]
}
