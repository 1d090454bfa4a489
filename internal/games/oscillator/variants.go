package oscillator

import (
	"github.com/vovakirdan/oscillator/internal/config"
	"github.com/vovakirdan/oscillator/internal/registry"
)

var variants = []registry.VariantInfo{
	{
		ID:          config.VariantClassic,
		Title:       "Oscillator Classic",
		Description: "Hold to start. Keep the swing off the edges as long as you can.",
	},
	{
		ID:          config.VariantCourse,
		Title:       "Oscillator Course",
		Description: "Press to start. Dodge the bars scrolling down the lane.",
	},
	{
		ID:          config.VariantShrooms,
		Title:       "Oscillator Shrooms",
		Description: "Press to start. Round mushrooms, denser spawns.",
	},
}

func init() {
	for _, info := range variants {
		registry.Register(info, func(c config.GameConstants) registry.Game {
			return New(info.ID, info.Title, c)
		})
	}
}
