package cli

import (
	"github.com/common-nighthawk/go-figure"
)

const bannerText = "catalog"

func (a *App) printBanner() {
	a.println(figure.NewFigure(bannerText, "cybermedium", true).String())
	a.printf("Backend: %s (type 'help' for commands)\n", a.config.BaseURL)
}
