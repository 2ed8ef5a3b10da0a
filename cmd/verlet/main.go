package main

import "verlet/internal/sim"

func main() {
	sim.RunDesktop()
}
