package main

import (
	"log"

	"grid-skirmish/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	g, err := game.New("config.yaml")
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Grid Skirmish")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
