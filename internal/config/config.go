package config

import "captionfit/internal/fit"

type Config struct {
	BotToken    string       `yaml:"bot_token"`
	FontFile    string       `yaml:"font_file"`
	OutputDir   string       `yaml:"output_dir"`
	TempDir     string       `yaml:"temp_dir"`
	MaxFileSize int64        `yaml:"max_file_size"`
	Workers     int          `yaml:"workers"`
	Overflow    string       `yaml:"overflow"`
	Render      RenderConfig `yaml:"render"`
}

type RenderConfig struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	Margin          int    `yaml:"margin"`
	MinFontSize     int    `yaml:"min_font_size"`
	MaxFontSize     int    `yaml:"max_font_size"`
	TextColor       string `yaml:"text_color"`
	BackgroundColor string `yaml:"background_color"`
}

type Job struct {
	Text       string `yaml:"text"`
	Name       string `yaml:"name"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

type BatchFile struct {
	Jobs []Job `yaml:"jobs"`
}

const (
	OverflowFail = "fail"
	OverflowClip = "clip"
)

func Default() *Config {
	return &Config{
		OutputDir:   "./output",
		TempDir:     "./temp",
		MaxFileSize: 10 * 1024 * 1024,
		Workers:     4,
		Overflow:    OverflowFail,
		Render: RenderConfig{
			Width:           800,
			Height:          400,
			Margin:          fit.DefaultMargin,
			MinFontSize:     10,
			MaxFontSize:     120,
			TextColor:       "255,255,255",
			BackgroundColor: "0,0,0",
		},
	}
}
