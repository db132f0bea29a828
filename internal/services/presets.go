package services

type Preset struct {
	Name   string
	Label  string
	Width  int
	Height int
}

var Presets = []Preset{
	{Name: "wide", Label: "🖼️ Wide", Width: 800, Height: 400},
	{Name: "square", Label: "⬛ Square", Width: 1080, Height: 1080},
	{Name: "story", Label: "📱 Story", Width: 1080, Height: 1920},
}

const DefaultPreset = "wide"

func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

func PresetByLabel(label string) (Preset, bool) {
	for _, p := range Presets {
		if p.Label == label {
			return p, true
		}
	}
	return Preset{}, false
}

// Apply sizes req to the preset canvas.
func (p Preset) Apply(req Request) Request {
	req.Width = p.Width
	req.Height = p.Height
	return req
}
