package config

// Theme holds the resolved style tokens of a render.
type Theme struct {
	Name       string      `yaml:"name" json:"name"`
	Colors     Colors      `yaml:"colors" json:"colors"`
	Typography Typography  `yaml:"typography" json:"typography"`
	Audio      AudioLevels `yaml:"audio" json:"audio"`
	Assets     ThemeAssets `yaml:"assets" json:"assets"`
}

type Colors struct {
	Background string `yaml:"background" json:"background"`
	Text       string `yaml:"text" json:"text"`
	Accent     string `yaml:"accent" json:"accent"`
}

type Typography struct {
	FontFamily string `yaml:"font_family" json:"fontFamily"`
	Hero       int    `yaml:"hero" json:"hero"`
	Title      int    `yaml:"title" json:"title"`
	Body       int    `yaml:"body" json:"body"`
}

type AudioLevels struct {
	MusicVolume float64 `yaml:"music_volume" json:"musicVolume"`
	SfxVolume   float64 `yaml:"sfx_volume" json:"sfxVolume"`
}

type ThemeAssets struct {
	BackgroundVideo string `yaml:"background_video,omitempty" json:"backgroundVideo,omitempty"`
	BackgroundMusic string `yaml:"background_music,omitempty" json:"backgroundMusic,omitempty"`
}

// ThemeOverrides replaces individual theme tokens from the project file.
type ThemeOverrides struct {
	Accent          string   `yaml:"accent,omitempty" json:"accent,omitempty"`
	Background      string   `yaml:"background,omitempty" json:"background,omitempty"`
	Text            string   `yaml:"text,omitempty" json:"text,omitempty"`
	MusicVolume     *float64 `yaml:"music_volume,omitempty" json:"music_volume,omitempty"`
	SfxVolume       *float64 `yaml:"sfx_volume,omitempty" json:"sfx_volume,omitempty"`
	BackgroundMusic *string  `yaml:"background_music,omitempty" json:"background_music,omitempty"`
	BackgroundVideo *string  `yaml:"background_video,omitempty" json:"background_video,omitempty"`
}

// DefaultThemeName is used when the project names no theme or an unknown one.
const DefaultThemeName = "youtube_videos"

func builtinThemes() map[string]Theme {
	return map[string]Theme{
		"youtube_videos": {
			Name:       "youtube_videos",
			Colors:     Colors{Background: "#000000", Text: "#FFFFFF", Accent: "#F3C80D"},
			Typography: Typography{FontFamily: "Inter", Hero: 120, Title: 80, Body: 40},
			Audio:      AudioLevels{MusicVolume: 0.1, SfxVolume: 0.6},
			Assets: ThemeAssets{
				BackgroundVideo: "branding/dark-grid.mp4",
				BackgroundMusic: "branding/motivational-music1.mp3",
			},
		},
		"online_course": {
			Name:       "online_course",
			Colors:     Colors{Background: "#001529", Text: "#e6f7ff", Accent: "#ff9318"},
			Typography: Typography{FontFamily: "Inter", Hero: 110, Title: 75, Body: 35},
			Audio:      AudioLevels{MusicVolume: 0.15, SfxVolume: 0.5},
			Assets:     ThemeAssets{BackgroundVideo: "branding/schoolboard.jpg"},
		},
		"minimal_flat": {
			Name:       "minimal_flat",
			Colors:     Colors{Background: "#2ecc71", Text: "#ffffff", Accent: "#27ae60"},
			Typography: Typography{FontFamily: "Inter", Hero: 100, Title: 70, Body: 30},
			Audio:      AudioLevels{MusicVolume: 0, SfxVolume: 0.4},
		},
	}
}

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	return []string{"youtube_videos", "online_course", "minimal_flat"}
}

// ThemeByName returns a built-in theme, falling back to the default.
func ThemeByName(name string) Theme {
	themes := builtinThemes()
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultThemeName]
}

// With applies overrides to a copy of t.
func (t Theme) With(o *ThemeOverrides) Theme {
	if o == nil {
		return t
	}
	if o.Accent != "" {
		t.Colors.Accent = o.Accent
	}
	if o.Background != "" {
		t.Colors.Background = o.Background
	}
	if o.Text != "" {
		t.Colors.Text = o.Text
	}
	if o.MusicVolume != nil {
		t.Audio.MusicVolume = *o.MusicVolume
	}
	if o.SfxVolume != nil {
		t.Audio.SfxVolume = *o.SfxVolume
	}
	if o.BackgroundMusic != nil {
		t.Assets.BackgroundMusic = *o.BackgroundMusic
	}
	if o.BackgroundVideo != nil {
		t.Assets.BackgroundVideo = *o.BackgroundVideo
	}
	return t
}
